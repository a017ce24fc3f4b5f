package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/byte4ever/powergit/hosting/commands"
	"github.com/byte4ever/powergit/hosting/config"
)

// Keys shared by flags, viper and the environment.
const (
	keyPlatform  = "platform"
	keyConfigDir = "config-dir"
	keyVerbose   = "verbose"
	keyFormat    = "format"
	keyTemplate  = "template"

	envPrefix = "POWERGIT"
)

// newRootCmd builds the command tree. Output written by
// the commands goes to out and errOut.
//
//nolint:funlen // command tree setup
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "powergit",
		Short: "Manage git hosting credentials and create repositories",
		Long: `powergit keeps a URL and a token per git hosting platform
(github, gitlab, bitbucket) in ~/.config/power_git/config.json and uses
them to initialize repositories locally and on the platform.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			setupLogging(errOut, v.GetBool(keyVerbose))

			return nil
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringP(
		keyPlatform, "p", "",
		"git hosting platform: github, gitlab or bitbucket "+
			"(default: the platform marked as default)",
	)
	pf.String(
		keyConfigDir, "",
		"configuration directory (default: ~/.config/power_git)",
	)
	pf.BoolP(keyVerbose, "v", false, "verbose logging")

	for _, key := range []string{keyPlatform, keyConfigDir, keyVerbose} {
		if err := v.BindPFlag(key, pf.Lookup(key)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", key, err))
		}
	}

	env := func(cmd *cobra.Command) (commands.Env, error) {
		paths, err := config.ResolvePaths(v.GetString(keyConfigDir))
		if err != nil {
			return commands.Env{}, err //nolint:wrapcheck // already wrapped
		}

		return commands.Env{
			Store: config.NewStore(paths),
			Out:   cmd.OutOrStdout(),
			Err:   cmd.ErrOrStderr(),
		}, nil
	}

	root.AddCommand(
		newSetCmd(v, env),
		newShowCmd(v, env),
		newInitCmd(v, env),
	)

	return root
}

type envFunc func(cmd *cobra.Command) (commands.Env, error)

func newSetCmd(v *viper.Viper, env envFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "set <url|token|default> <value>",
		Short: "Set a credential field for a platform",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			c, err := commands.NewSet(e, args, v.GetString(keyPlatform))
			if err != nil {
				return err //nolint:wrapcheck // commands add context
			}

			return c.Run() //nolint:wrapcheck // commands add context
		},
	}
}

func newShowCmd(v *viper.Viper, env envFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show config",
		Short: "Print the stored configuration",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			c, err := commands.NewShow(e, args, commands.ShowOptions{
				Format:   v.GetString(keyFormat),
				Template: v.GetString(keyTemplate),
			})
			if err != nil {
				return err //nolint:wrapcheck // commands add context
			}

			return c.Run() //nolint:wrapcheck // commands add context
		},
	}

	fs := cmd.Flags()
	fs.String(keyFormat, commands.FormatText, "output format: text, json or yaml")
	fs.String(
		keyTemplate, commands.DefaultLineTemplate,
		"line template for text output; tags: name, url, token, default",
	)

	for _, key := range []string{keyFormat, keyTemplate} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", key, err))
		}
	}

	return cmd
}

func newInitCmd(v *viper.Viper, env envFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "init [repo-name]",
		Short: "Initialize a repository locally and, given a name, on the platform",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env(cmd)
			if err != nil {
				return err
			}

			c, err := commands.NewInit(
				e, args, v.GetString(keyPlatform), commands.InitOptions{},
			)
			if err != nil {
				return err //nolint:wrapcheck // commands add context
			}

			return c.Run(cmd.Context()) //nolint:wrapcheck // commands add context
		},
	}
}

// setupLogging installs a text handler on w. Only
// warnings and errors are shown unless verbose is set.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	))
}

package commands

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/byte4ever/powergit/hosting/config"
	"github.com/byte4ever/powergit/templating"
)

// Output formats accepted by Show.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultLineTemplate renders one record per line in
// text format.
const DefaultLineTemplate = "{{name}}: {{url}} -- {{token}}"

// ShowOptions tune how Show prints the document.
type ShowOptions struct {
	// Format is text, json or yaml. Empty means text.
	Format string
	// Template is the text line template. Empty
	// means DefaultLineTemplate.
	Template string
}

// Show prints the config document.
type Show struct {
	env      Env
	selector string
	format   string
	tpl      string
	engine   templating.Engine
}

// NewShow validates args (exactly one selector) and
// opts. Nothing is read or written.
func NewShow(
	env Env,
	args []string,
	opts ShowOptions,
) (*Show, error) {
	const errCtx = "show"

	if len(args) != 1 {
		return nil, fmt.Errorf(
			"%s: %w: please provide a show argument",
			errCtx, ErrArgs,
		)
	}

	format := strings.ToLower(opts.Format)
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf(
			"%s: %w: unknown format %q (use text, json or yaml)",
			errCtx, ErrArgs, opts.Format,
		)
	}

	tpl := opts.Template
	if tpl == "" {
		tpl = DefaultLineTemplate
	}

	sh := &Show{
		env:      env,
		selector: args[0],
		format:   format,
		tpl:      tpl,
	}

	if err := sh.engine.Validate(tpl); err != nil {
		return nil, fmt.Errorf(
			"%s: %w: %w", errCtx, ErrArgs, err,
		)
	}

	return sh, nil
}

// Run prints the selected view.
func (c *Show) Run() error {
	const errCtx = "show"

	if !strings.EqualFold(c.selector, "config") {
		c.env.report("Please provide a valid show argument")

		return nil
	}

	if err := c.env.ensure(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	doc, err := c.env.Store.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := c.print(doc); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func (c *Show) print(doc config.Document) error {
	switch c.format {
	case FormatJSON:
		by, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}

		return c.write(string(by) + "\n")

	case FormatYAML:
		by, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}

		return c.write(string(by))

	default:
		for _, r := range doc {
			line, err := c.engine.ExpandString(
				c.tpl,
				map[string]interface{}{
					"name":    r.Name,
					"url":     r.Cfg.URL,
					"token":   r.Cfg.Token,
					"default": r.Cfg.Default,
				},
			)
			if err != nil {
				return err //nolint:wrapcheck // engine adds context
			}

			if err := c.write(line + "\n"); err != nil {
				return err
			}
		}

		return nil
	}
}

func (c *Show) write(s string) error {
	if _, err := fmt.Fprint(c.env.Out, s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

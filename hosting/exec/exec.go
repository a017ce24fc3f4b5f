// Package exec runs external commands and captures their
// combined output and exit status.
package exec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Result is the outcome of a finished command.
type Result struct {
	// Output is combined stdout and stderr.
	Output string
	// ExitCode is the process exit status, -1 when the
	// process could not be started.
	ExitCode int
}

// Ex executes the named command in dir and returns its
// result. Pass empty dir to use the current working
// directory. A non-zero exit status is reported both in
// Result.ExitCode and as an error.
func Ex(
	ctx context.Context,
	dir string,
	name string,
	arg ...string,
) (Result, error) {
	const errCtx = "executing command"

	slog.Debug(
		"executing",
		"cmd", name,
		"args", strings.Join(arg, " "),
		"dir", dir,
	)

	cmd := exec.CommandContext(ctx, name, arg...)
	if dir != "" {
		cmd.Dir = dir
	}

	by, err := cmd.CombinedOutput()

	res := Result{
		Output:   string(by),
		ExitCode: cmd.ProcessState.ExitCode(),
	}

	slog.Debug(
		"output",
		"result", res.Output,
		"exit_code", res.ExitCode,
	)

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			res.ExitCode = -1
		}

		return res, fmt.Errorf(
			"%s: %s %s: %w",
			errCtx, name, strings.Join(arg, " "), err,
		)
	}

	return res, nil
}

// Available reports whether name resolves to an
// executable on PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}

package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/byte4ever/powergit/hosting/config"
	"github.com/byte4ever/powergit/hosting/platform"
)

var (
	// ErrArgs is returned for missing or invalid
	// command line arguments.
	ErrArgs = errors.New("invalid arguments")
	// ErrConfigMissing is returned when the document
	// has no record for the selected platform.
	ErrConfigMissing = errors.New("platform config missing")
)

// Env is what every command needs to run.
type Env struct {
	// Store persists the config document.
	Store *config.Store
	// Out receives command results.
	Out io.Writer
	// Err receives user facing error messages.
	Err io.Writer
}

// ensure makes sure the document exists.
func (e Env) ensure() error {
	created, err := e.Store.EnsureInitialized()
	if err != nil {
		return err //nolint:wrapcheck // already carries context
	}

	if created {
		slog.Debug(
			"initialized default config",
			"path", e.Store.Path(),
		)
	}

	return nil
}

// explicitPlatform resolves a non-empty platform flag
// without touching the store. It reports false when the
// flag is empty and the default must be looked up.
func explicitPlatform(flag string) (platform.Kind, bool) {
	if strings.TrimSpace(flag) == "" {
		return platform.Unsupported, false
	}

	return platform.Resolve(flag), true
}

// resolvePlatform resolves flag, falling back to the
// record flagged as default when flag is empty.
func (e Env) resolvePlatform(flag string) (platform.Kind, error) {
	const errCtx = "resolving platform"

	if kind, ok := explicitPlatform(flag); ok {
		return kind, nil
	}

	doc, err := e.Store.Load()
	if err != nil {
		return platform.Unsupported, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	rec, ok := doc.Default()
	if !ok {
		return platform.Unsupported, nil
	}

	slog.Debug("using default platform", "platform", rec.Name)

	return platform.Resolve(rec.Name), nil
}

// report writes a tolerated error message.
func (e Env) report(msg string) {
	_, _ = fmt.Fprintln(e.Err, msg) //nolint:errcheck // best-effort output
}

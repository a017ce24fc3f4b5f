package commands

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/byte4ever/powergit/hosting/config"
	"github.com/byte4ever/powergit/hosting/platform"
)

// Field selects which setting Set changes.
type Field int

// Settable fields.
const (
	FieldUnknown Field = iota
	FieldURL
	FieldToken
	FieldDefault
)

// ParseField maps a selector to a Field, ignoring case.
func ParseField(s string) Field {
	switch strings.ToLower(s) {
	case "url":
		return FieldURL
	case "token":
		return FieldToken
	case "default":
		return FieldDefault
	default:
		return FieldUnknown
	}
}

// Set changes one setting of one platform record.
type Set struct {
	env      Env
	field    string
	value    string
	platform string
}

// NewSet validates args ("<field> <value>") and the
// platform flag. Nothing is read or written.
func NewSet(
	env Env,
	args []string,
	platformFlag string,
) (*Set, error) {
	const errCtx = "set"

	if len(args) < 2 {
		return nil, fmt.Errorf(
			"%s: %w: please provide all args",
			errCtx, ErrArgs,
		)
	}

	if kind, ok := explicitPlatform(platformFlag); ok {
		if err := kind.Check(); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return &Set{
		env:      env,
		field:    args[0],
		value:    args[1],
		platform: platformFlag,
	}, nil
}

// Run applies the change and rewrites the document.
func (c *Set) Run() error {
	const errCtx = "set"

	field := ParseField(c.field)
	if field == FieldUnknown {
		c.env.report("Please provide a valid argument")

		return nil
	}

	var isDefault bool

	if field == FieldDefault {
		b, err := strconv.ParseBool(c.value)
		if err != nil {
			return fmt.Errorf(
				"%s: %w: default must be true or false, got %q",
				errCtx, ErrArgs, c.value,
			)
		}

		isDefault = b
	}

	if err := c.env.ensure(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	kind, err := c.env.resolvePlatform(c.platform)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := kind.Check(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	doc, err := c.env.Store.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	next, ok := apply(doc, kind, field, c.value, isDefault)
	if !ok {
		slog.Debug(
			"no record for platform, nothing to set",
			"platform", kind.String(),
		)

		return nil
	}

	if err := c.env.Store.ReplaceAll(next); err != nil {
		return fmt.Errorf(
			"%s: failed to set %s: %w",
			errCtx, fieldLabel(field), err,
		)
	}

	_, _ = fmt.Fprintf( //nolint:errcheck // best-effort output
		c.env.Out, "%s set for %s\n",
		fieldLabel(field), kind.String(),
	)

	return nil
}

// apply returns a copy of doc with the change made. It
// reports false when doc has no record for kind.
func apply(
	doc config.Document,
	kind platform.Kind,
	field Field,
	value string,
	isDefault bool,
) (config.Document, bool) {
	idx := doc.Index(kind.String())
	if idx < 0 {
		return nil, false
	}

	next := doc.Clone()

	switch field {
	case FieldURL:
		next[idx].Cfg.URL = value
	case FieldToken:
		next[idx].Cfg.Token = value
	case FieldDefault:
		if isDefault {
			for i := range next {
				next[i].Cfg.Default = false
			}
		}

		next[idx].Cfg.Default = isDefault
	case FieldUnknown:
		return nil, false
	}

	return next, true
}

func fieldLabel(f Field) string {
	switch f {
	case FieldURL:
		return "Url"
	case FieldToken:
		return "Token"
	case FieldDefault:
		return "Default"
	default:
		return "Unknown"
	}
}

package templating

import (
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Engine expands templates against a set of values.
type Engine struct {
	StartTag string
	EndTag   string
}

// Expand renders tpl with vars and writes the result
// to w.
func (en *Engine) Expand(
	w io.Writer,
	tpl string,
	vars map[string]interface{},
) error {
	const errCtx = "expanding template"

	startTag, endTag := en.tags()

	t, err := fasttemplate.NewTemplate(tpl, startTag, endTag)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	_, err = t.ExecuteFunc(
		w,
		func(w io.Writer, tag string) (int, error) {
			val, ok := vars[strings.TrimSpace(tag)]
			if !ok {
				return io.WriteString(w, startTag+tag+endTag)
			}

			return fmt.Fprint(w, val)
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// ExpandString renders tpl with vars.
func (en *Engine) ExpandString(
	tpl string,
	vars map[string]interface{},
) (string, error) {
	var sb strings.Builder

	if err := en.Expand(&sb, tpl, vars); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// Validate checks that tpl is well formed.
func (en *Engine) Validate(tpl string) error {
	const errCtx = "validating template"

	startTag, endTag := en.tags()

	if _, err := fasttemplate.NewTemplate(
		tpl, startTag, endTag,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// tags returns the configured start/end tags, falling
// back to double-brace defaults.
func (en *Engine) tags() (string, string) {
	startTag := en.StartTag
	if startTag == "" {
		startTag = "{{"
	}

	endTag := en.EndTag
	if endTag == "" {
		endTag = "}}"
	}

	return startTag, endTag
}

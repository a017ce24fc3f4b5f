package config

import (
	"fmt"

	"github.com/byte4ever/powergit/hosting/platform"
)

// Settings holds the credentials stored for one
// platform. Empty strings mean "not configured".
type Settings struct {
	// URL is the API endpoint or instance URL.
	URL string `json:"url" yaml:"url"`
	// Token is the access token.
	Token string `json:"token" yaml:"token"`
	// Default marks the platform used when none is
	// given on the command line.
	Default bool `json:"default" yaml:"default"`
}

// Record is one entry of the document.
type Record struct {
	Name string   `json:"name" yaml:"name"`
	Cfg  Settings `json:"cfg" yaml:"cfg"`
}

// Document is the full persisted configuration, one
// Record per platform.
type Document []Record

// DefaultDocument returns the document written on first
// run: every known platform with empty credentials.
func DefaultDocument() Document {
	kinds := platform.Known()
	doc := make(Document, 0, len(kinds))

	for _, k := range kinds {
		doc = append(doc, Record{Name: k.String()})
	}

	return doc
}

// Find returns the record named name.
func (d Document) Find(name string) (Record, bool) {
	if i := d.Index(name); i >= 0 {
		return d[i], true
	}

	return Record{}, false
}

// Index returns the position of the record named name,
// or -1.
func (d Document) Index(name string) int {
	for i := range d {
		if d[i].Name == name {
			return i
		}
	}

	return -1
}

// Default returns the record flagged as default, if
// any. The first flagged record wins.
func (d Document) Default() (Record, bool) {
	for _, r := range d {
		if r.Cfg.Default {
			return r, true
		}
	}

	return Record{}, false
}

// Names returns record names in document order.
func (d Document) Names() []string {
	out := make([]string, 0, len(d))
	for _, r := range d {
		out = append(out, r.Name)
	}

	return out
}

// Clone returns an independent copy of d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}

	out := make(Document, len(d))
	copy(out, d)

	return out
}

// Validate checks that every record names a known
// platform in canonical form and that names are unique.
// A known platform without a record is accepted.
func (d Document) Validate() error {
	const errCtx = "validating document"

	seen := make(map[string]struct{}, len(d))

	for _, r := range d {
		if kind := platform.Resolve(r.Name); !kind.Supported() ||
			kind.String() != r.Name {
			return fmt.Errorf(
				"%s: %w: unknown record %q",
				errCtx, ErrCorrupt, r.Name,
			)
		}

		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf(
				"%s: %w: duplicate record %q",
				errCtx, ErrCorrupt, r.Name,
			)
		}

		seen[r.Name] = struct{}{}
	}

	return nil
}

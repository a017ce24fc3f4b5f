package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned when a command requires a
// known platform and got Unsupported.
var ErrUnsupported = errors.New("unsupported platform")

// Kind identifies a git hosting provider.
type Kind int

const (
	// Unsupported is the sentinel for any unknown
	// platform name.
	Unsupported Kind = iota
	// GitHub is github.com or a GitHub Enterprise host.
	GitHub
	// GitLab is gitlab.com or a self-managed instance.
	GitLab
	// Bitbucket is Bitbucket Cloud.
	Bitbucket
)

var names = map[Kind]string{
	Unsupported: "unsupported",
	GitHub:      "github",
	GitLab:      "gitlab",
	Bitbucket:   "bitbucket",
}

// Known returns the supported kinds in their canonical
// order.
func Known() []Kind {
	return []Kind{GitHub, GitLab, Bitbucket}
}

// Names returns the supported platform names joined
// for use in messages.
func Names() string {
	kinds := Known()
	out := make([]string, 0, len(kinds))

	for _, k := range kinds {
		out = append(out, k.String())
	}

	return strings.Join(out, ", ")
}

// Resolve maps input to a Kind, ignoring case and
// surrounding whitespace. It never fails.
func Resolve(input string) Kind {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "github":
		return GitHub
	case "gitlab":
		return GitLab
	case "bitbucket":
		return Bitbucket
	default:
		return Unsupported
	}
}

// String returns the lowercase platform name.
func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}

	return names[Unsupported]
}

// Supported reports whether k is one of Known.
func (k Kind) Supported() bool {
	return k == GitHub || k == GitLab || k == Bitbucket
}

// Check returns nil for a supported kind and an error
// wrapping ErrUnsupported otherwise.
func (k Kind) Check() error {
	if k.Supported() {
		return nil
	}

	return fmt.Errorf(
		"%w: please use one of the following: %s",
		ErrUnsupported, Names(),
	)
}

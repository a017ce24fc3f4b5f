package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the config directory relative to the
	// user's home.
	DirName = ".config/power_git"
	// FileName is the document file name.
	FileName = "config.json"
)

// Paths locates the config document.
type Paths struct {
	Dir  string
	File string
}

// ResolvePaths returns the config location. When
// override is empty the directory is DirName under the
// user's home, otherwise override itself.
func ResolvePaths(override string) (Paths, error) {
	const errCtx = "resolving config paths"

	dir := override
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf(
				"%s: home dir: %w", errCtx, err,
			)
		}

		dir = filepath.Join(home, DirName)
	}

	return Paths{
		Dir:  dir,
		File: filepath.Join(dir, FileName),
	}, nil
}

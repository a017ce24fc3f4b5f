// Package commands implements the set, show and init commands. Each command
// is built with a constructor that validates its positional arguments before
// any file is touched, then executed with Run.
//
// Commands share an Env holding the config store and the output writers.
// Fatal problems are returned as errors; the tolerated cases (an unknown set
// field or show selector, an unsupported platform on init) are reported on
// Env.Err and Run returns nil.
package commands

// Package platform resolves user supplied platform names to the closed set of
// supported git hosting providers.
//
// Resolve is total: unknown input maps to Unsupported instead of an error, so
// each caller decides whether an unsupported platform is fatal.
package platform

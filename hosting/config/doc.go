// Package config persists per-platform credentials in a single JSON document.
//
// The document is a JSON array holding one Record per known platform. It is
// always rewritten in full: ReplaceAll writes a temporary file next to the
// target and renames it into place, so readers never see a partial document.
// ResolvePaths is the only place that knows where the document lives; its
// result is handed to NewStore.
package config

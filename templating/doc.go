// Package templating renders single-line templates such as the per-record
// lines printed by "show config". It uses valyala/fasttemplate with
// configurable delimiters (default "{{" and "}}").
//
// Unknown placeholders are left in the output unchanged so a typo in a user
// supplied template is visible rather than silently dropped.
package templating

// Package diag implements the diagnostics log of a compilation run.
//
// The log is append-only. Messages keep the order they were reported in and
// are never removed. Two counters are maintained as messages arrive: errors
// and fatal errors. A fatal error counts as both. The pipeline engine reads
// only these counters to decide whether to keep going.
//
// A message may carry an origin: the code unit and byte offset it refers
// to. Line and column are resolved once, when the message is reported, using
// the Locator the log was built with. When the unit cannot be located the
// message is still recorded, without a line or column.
package diag

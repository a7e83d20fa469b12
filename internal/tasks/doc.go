// Package tasks provides the stock compilation tasks: parsing a code unit
// with a parser type, parsing a slice of it, parsing a named token type,
// compiling parse results into values and analysing HCL parse results.
//
// Parse failures are compilation-input problems and go to the session's
// diagnostics log. A source that does not match at all is fatal; a match that
// leaves input unconsumed is an error reported at the end of the match.
package tasks

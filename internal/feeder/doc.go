// Package feeder provides named source units to a compilation.
//
// A Feeder is an ordered list of code units sharing a base location: a
// single in-memory snippet, a map of snippets, one file or the files of a
// folder. Units are addressed by index or name. Loading is on demand: file
// backed feeders read a unit the first time it is asked for and keep the
// result.
//
// Code carries the source text of one unit and converts byte offsets into
// 1-based line and column numbers. Columns count grapheme clusters, so a
// combining sequence or an emoji occupies a single column.
package feeder

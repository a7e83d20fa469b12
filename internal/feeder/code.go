package feeder

import (
	"sort"

	"github.com/apparentlymart/go-textseg/v15/textseg"
	"github.com/hashicorp/hcl/v2"
)

// Code is one named, positioned piece of source text.
type Code struct {
	name   string
	source string

	lineStarts []int // byte offset of each line's first byte, built lazily
}

// NewCode returns a code unit.
func NewCode(name, source string) *Code {
	return &Code{name: name, source: source}
}

// Name returns the code name, unique within its feeder.
func (c *Code) Name() string { return c.name }

// Source returns the full source text.
func (c *Code) Source() string { return c.source }

// Len returns the source length in bytes.
func (c *Code) Len() int { return len(c.source) }

func (c *Code) lines() []int {
	if c.lineStarts == nil {
		c.lineStarts = []int{0}
		for i := 0; i < len(c.source); i++ {
			if c.source[i] == '\n' {
				c.lineStarts = append(c.lineStarts, i+1)
			}
		}
	}
	return c.lineStarts
}

func (c *Code) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(c.source) {
		return len(c.source)
	}
	return offset
}

// LineOf returns the 1-based line containing the byte at offset. Offsets
// outside the source are clamped.
func (c *Code) LineOf(offset int) int {
	offset = c.clamp(offset)
	starts := c.lines()
	// Index of the first line starting after offset; the line we want is the
	// one before it.
	return sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
}

// ColumnOf returns the 1-based column of offset within its line, counted in
// grapheme clusters.
func (c *Code) ColumnOf(offset int) int {
	offset = c.clamp(offset)
	start := c.lines()[c.LineOf(offset)-1]
	n, err := textseg.TokenCount([]byte(c.source[start:offset]), textseg.ScanGraphemeClusters)
	if err != nil {
		return offset - start + 1
	}
	return n + 1
}

// PositionOf returns the line and column of offset.
func (c *Code) PositionOf(offset int) (line, column int) {
	return c.LineOf(offset), c.ColumnOf(offset)
}

// Pos converts offset into an hcl.Pos.
func (c *Code) Pos(offset int) hcl.Pos {
	offset = c.clamp(offset)
	line, column := c.PositionOf(offset)
	return hcl.Pos{Line: line, Column: column, Byte: offset}
}

// Range returns the hcl.Range covering [start, end) in a file called
// filename.
func (c *Code) Range(filename string, start, end int) hcl.Range {
	if end < start {
		end = start
	}
	return hcl.Range{Filename: filename, Start: c.Pos(start), End: c.Pos(end)}
}

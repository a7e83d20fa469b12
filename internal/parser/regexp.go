package parser

import (
	"fmt"
	"regexp"
)

// Regexp returns a parser matching pattern at the offset. Result.Value holds
// the submatches.
func Regexp(pattern string) (Parser, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return Func(func(src string, offset int) (*Result, error) {
		loc := re.FindStringSubmatchIndex(src[offset:])
		if loc == nil {
			return nil, nil
		}
		subs := make([]string, len(loc)/2)
		for i := range subs {
			if loc[2*i] >= 0 {
				subs[i] = src[offset+loc[2*i] : offset+loc[2*i+1]]
			}
		}
		end := offset + loc[1]
		return &Result{Start: offset, End: end, Text: src[offset:end], Value: subs}, nil
	}), nil
}

// MustRegexp is Regexp that panics on a bad pattern.
func MustRegexp(pattern string) Parser {
	p, err := Regexp(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

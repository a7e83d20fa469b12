// Package ctyconv converts between cty values and plain Go values and parses
// HCL type expressions.
//
// Plain Go values are what tasks exchange through the data store: string,
// float64, bool, []any, map[string]any and nil. cty values are what HCL
// expressions evaluate to.
package ctyconv

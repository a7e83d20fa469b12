// Package hclexpr analyses parsed HCL: which variables an expression refers
// to, which functions it calls, and small helpers for working with blocks.
package hclexpr

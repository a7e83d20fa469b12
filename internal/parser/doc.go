// Package parser defines the contract between compilation tasks and a
// parsing engine, and ships a few backends.
//
// A Parser reads source text from a byte offset and returns a Result with
// the offset it stopped at. It does not need to consume the whole input;
// deciding whether leftover input is an error is the caller's job. A nil
// Result with a nil error means the input did not match.
//
// Named parsers are grouped into Types, looked up through a Provider. A Type
// may also know how to compile a Result into a value.
//
// Backends:
//   - Regexp: a regular expression anchored at the offset.
//   - HCLBody: an HCL configuration body (hclsyntax).
//   - HCLExpression: a single HCL expression (hclsyntax).
package parser

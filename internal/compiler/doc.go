// Package compiler implements the pipeline engine.
//
// A Compiler holds a fixed, ordered list of task entries. Compile builds a
// session from the feeders, copies option data into it and then runs every
// entry in order:
//
//   - Global tasks run once.
//   - PerFeeder tasks run once per feeder, in index order.
//   - PerCode tasks run once per code unit, in (feeder, code) order.
//
// Having nothing to iterate over is success. After every single run the
// engine checks the session's fatal counter: a fatal error, a returned error
// or a panic stops the whole pipeline on the spot. Returned errors and panics
// are recorded as an Error diagnostic naming the task index. Compile never
// panics and never returns an error; callers look at HasFatalError on the
// returned session.
//
// # Data Resolution
//
// A relative input binding is looked up from the task's scope outwards: the
// current code unit, then the current feeder, then global data. A missing
// input takes the slot default. A relative output binding is written at the
// task's own scope. Absolute bindings always address the datum they name.
//
// Values crossing a typed slot are checked; a mismatch is an Error
// diagnostic and stops the pipeline.
package compiler

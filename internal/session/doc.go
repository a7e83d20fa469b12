// Package session implements the compilation context threaded through a
// pipeline run.
//
// A Session is built from a list of feeders. It is at the same time:
//   - the data store of the run (datastore.Store, embedded),
//   - the diagnostics log of the run (*diag.Log, embedded),
//   - the cursor the pipeline engine moves over feeders and code units.
//
// # Seeding
//
// On construction every feeder is stored as feeder datum DataFeeder, and
// every code unit as code data DataCode (*feeder.Code) and DataSource
// (string). A unit whose source cannot be loaded is reported as a fatal
// error instead, so a session is always returned and callers inspect
// HasFatalError.
//
// # Cursor
//
// StartFeeder/NextFeeder walk feeders in index order. StartCode/NextCode walk
// every code unit of every feeder in (feeder, code) order; while walking
// codes the current feeder follows the current code. Feeders with no code
// units are skipped by the code walk.
package session

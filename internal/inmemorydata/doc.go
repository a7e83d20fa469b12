// Package inmemorydata provides in-memory implementations of the
// datastore.Store interface.
//
// # Strategies
//
//   - **Simple:** owns its data. One record per feeder holds the feeder's
//     code names, a name→index map and the lazily allocated value maps.
//   - **Link:** forwards every call to another store. Two stages that must
//     observe the same state share one Simple through Links instead of
//     copying it.
//   - **Derive:** a Simple whose shape (feeder count, code names) is copied
//     from another store at construction. Values are independent and start
//     empty, including feeder-level data.
//
// # Lazy Allocation
//
// Building a store allocates only the shape. Value maps for arbitrary data,
// a feeder or a code unit are created by the first write into them, so a
// store over thousands of units that are never written to stays cheap.
//
// # Concurrency
//
// None of the types here are safe for concurrent use. The pipeline engine
// runs tasks strictly in sequence and needs no locking.
package inmemorydata

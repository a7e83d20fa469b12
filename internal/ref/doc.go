// internal/ref/doc.go

/*
Package ref provides the value-typed handles that address data inside one
compilation run.

There are three handles:

  - FeederRef names a feeder by its zero-based index, e.g. `feeder[0]`.
  - CodeRef names a code unit by feeder index and code name,
    e.g. `feeder[0].code["main.hcl"]`.
  - DataRef names a datum attached to nothing (global), to a feeder, or to a
    code unit, e.g. `data["opts"]`, `feeder[1].data["ast"]`.

Handles are plain comparable structs. Two handles built independently from the
same fields compare equal with == and act as the same map key. The canonical
string form produced by String is accepted back by Parse, so handles survive a
trip across a process boundary unchanged.
*/
package ref

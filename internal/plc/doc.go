// Package plc holds the typed controller object graph.
//
// The graph is a strict ownership tree (Controller, Program, Routine,
// Rung, Instruction) plus name-keyed sets of datatypes, modules,
// add-on instructions, and controller-scope tags. Cross references
// (tag datatypes, module parents, AOI instance/definition links, operand
// names) are non-owning and resolve against controller-level namespaces;
// a reference that cannot be resolved is recorded as an explicit Dangling
// marker rather than silently dropped.
//
// Invariants enforced here:
//   - names are unique within each owned collection; violating mutations
//     are rejected with an InvariantError naming the violated invariant
//   - a program-scope tag may share a name with a controller-scope tag;
//     this is legal shadowing, recorded and queryable, never an error
//   - rung instruction lists are derived lazily from rung text and
//     memoized; datatype members with overlapping bit numbers are kept
//     verbatim
//
// Every object keeps its source subtree from the ingested document, so
// serializing a loaded controller reproduces content the model does not
// interpret.
package plc

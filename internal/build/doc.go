// Package build maps an ingested document tree onto the typed
// controller graph.
//
// The builder makes a single top-down traversal. Recognized elements
// dispatch to typed constructors; anything unrecognized is kept on the
// nearest model object's Extra list so serialization stays lossless.
// Structural violations (missing controller, missing names, duplicate
// names, malformed numbers) are fatal and reported as a
// ValidationError carrying the offending node's path.
//
// Cross references resolve in a deferred pass after the whole document
// is mapped, so add-on instruction instances may precede their
// definitions in the file. Unresolvable references become Dangling
// markers on the graph, never build failures.
package build

// Package l5x ingests vendor L5X project exports into a generic,
// order-preserving element tree and serializes that tree back to XML.
//
// The tree is deliberately schema-free: every element keeps its tag name,
// its attributes in document order, its child elements in document order,
// and its direct text content. Ordering is semantically significant
// downstream (rung numbering, operand order), so nothing is sorted or
// deduplicated here.
//
// Parsing is a security boundary. Input files come from third parties, so
// the decoder refuses custom entity definitions and never resolves
// external references. A file that fails to parse yields a
// StructuralError and no partial tree.
//
// Round-trip contract: Marshal produces a normalized layout (two-space
// indentation, attributes and children in preserved order). For any tree,
// Parse(Marshal(tree)) reproduces the tree, and re-marshaling is
// byte-identical. Content the rest of the system does not understand
// survives the cycle untouched.
package l5x

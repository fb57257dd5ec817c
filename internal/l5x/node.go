package l5x

// RootName is the document element every L5X export starts with.
const RootName = "RSLogix5000Content"

// Attr is a single element attribute. Attribute order is preserved from
// the source document.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the generic tree. A Node is built once by Parse
// (or by test helpers) and treated as immutable afterwards.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Attr returns the value of the named attribute and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrDefault returns the value of the named attribute, or def when absent.
func (n *Node) AttrDefault(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// Child returns the first child element with the given tag name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all child elements with the given tag name, in
// document order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{
		Name: n.Name,
		Text: n.Text,
	}
	if len(n.Attrs) > 0 {
		cp.Attrs = make([]Attr, len(n.Attrs))
		copy(cp.Attrs, n.Attrs)
	}
	if len(n.Children) > 0 {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	return cp
}

// Equal reports deep structural equality of two subtrees.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Name != other.Name || n.Text != other.Text {
		return false
	}
	if len(n.Attrs) != len(other.Attrs) || len(n.Children) != len(other.Children) {
		return false
	}
	for i, a := range n.Attrs {
		if other.Attrs[i] != a {
			return false
		}
	}
	for i, c := range n.Children {
		if !c.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

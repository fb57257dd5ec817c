package l5x

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Marshal serializes a tree to the normalized L5X layout: an XML
// declaration, two-space indentation, attributes and children emitted in
// preserved order. Marshal is the structural inverse of Parse:
// re-parsing and re-marshaling the output is byte-identical.
func Marshal(root *Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(root, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the serialized form of root to w.
func Encode(root *Node, w io.Writer) error {
	if root == nil {
		return fmt.Errorf("l5x: nil root")
	}
	if root.Name != RootName {
		return fmt.Errorf("l5x: refusing to serialize document element %q, want %q",
			root.Name, RootName)
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	if err := encodeNode(w, root, 0); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeNode(w io.Writer, n *Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	var sb strings.Builder
	sb.WriteString(indent)
	sb.WriteByte('<')
	sb.WriteString(n.Name)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(a.Value))
		sb.WriteByte('"')
	}

	switch {
	case n.Text == "" && len(n.Children) == 0:
		sb.WriteString("/>")
		_, err := io.WriteString(w, sb.String())
		return err

	case len(n.Children) == 0:
		sb.WriteByte('>')
		sb.WriteString(escapeText(n.Text))
		sb.WriteString("</")
		sb.WriteString(n.Name)
		sb.WriteByte('>')
		_, err := io.WriteString(w, sb.String())
		return err

	default:
		sb.WriteByte('>')
		// Mixed content keeps direct text ahead of child elements.
		if n.Text != "" {
			sb.WriteString(escapeText(n.Text))
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		for _, c := range n.Children {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			if err := encodeNode(w, c, depth+1); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "\n%s</%s>", indent, n.Name)
		return err
	}
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\n", "&#10;",
	"\t", "&#9;",
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeAttr(s string) string { return attrEscaper.Replace(s) }

func escapeText(s string) string { return textEscaper.Replace(s) }

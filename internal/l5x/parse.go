package l5x

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parse builds the element tree from an L5X byte stream.
//
// The document element must be RSLogix5000Content. Namespace prefixes are
// stripped, namespace declaration attributes are dropped, and
// whitespace-only character data between elements is discarded. XML
// comments and processing instructions are discarded as well, so a
// round trip through Marshal emits the normalized layout without them.
// Attribute order, child order, and text are preserved exactly.
//
// The decoder is given an empty entity table, so documents relying on
// custom or externally defined entities fail with a StructuralError
// instead of expanding attacker-controlled content.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.Entity = map[string]string{}

	var stack []*Node
	var root *Node
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, structural(decoder, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, &StructuralError{
					Msg:  fmt.Sprintf("unexpected element %q after document end", t.Name.Local),
					Line: line(decoder),
				}
			}
			node := &Node{
				Name:  t.Name.Local,
				Attrs: convertAttrs(t.Attr),
			}
			if len(stack) == 0 {
				if node.Name != RootName {
					return nil, &StructuralError{
						Msg:  fmt.Sprintf("unexpected document element %q, want %q", node.Name, RootName),
						Line: line(decoder),
					}
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, &StructuralError{
						Msg:  "character data outside document element",
						Line: line(decoder),
					}
				}
				continue
			}
			if strings.TrimSpace(string(t)) == "" {
				continue
			}
			stack[len(stack)-1].Text += string(t)
		}
	}

	if root == nil {
		return nil, &StructuralError{Msg: "empty document", Err: io.ErrUnexpectedEOF}
	}
	if !rootClosed {
		return nil, &StructuralError{Msg: "unterminated document element", Err: io.ErrUnexpectedEOF}
	}
	return root, nil
}

// ParseBytes is a convenience wrapper around Parse.
func ParseBytes(data []byte) (*Node, error) {
	return Parse(strings.NewReader(string(data)))
}

// structural wraps a decoder error, keeping line information when present.
func structural(decoder *xml.Decoder, err error) *StructuralError {
	se := &StructuralError{Msg: err.Error(), Err: err}
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		se.Msg = syntaxErr.Msg
		se.Line = syntaxErr.Line
	} else {
		se.Line = line(decoder)
	}
	return se
}

func line(decoder *xml.Decoder) int {
	l, _ := decoder.InputPos()
	return l
}

// convertAttrs strips namespace machinery: declaration attributes are
// dropped and prefixed names keep only their local part.
func convertAttrs(xmlAttrs []xml.Attr) []Attr {
	attrs := make([]Attr, 0, len(xmlAttrs))
	for _, a := range xmlAttrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		attrs = append(attrs, Attr{Name: a.Name.Local, Value: a.Value})
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

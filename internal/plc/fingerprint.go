package plc

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content-addressed fingerprints. The version
// suffix enables future algorithm migration.
const (
	DomainController = "ingot/controller/v1"
	DomainModule     = "ingot/module/v1"
)

// Fingerprint computes a content-addressed identity for the controller
// graph. Two loads of the same document produce the same fingerprint;
// any change to interpreted structure changes it. Uninterpreted source
// subtrees do not participate.
func (c *Controller) Fingerprint() string {
	programs := make([]any, 0, len(c.programs))
	for _, p := range c.programs {
		routines := make([]any, 0, len(p.routines))
		for _, r := range p.routines {
			rungs := make([]any, 0, len(r.rungs))
			for _, g := range r.rungs {
				rungs = append(rungs, map[string]any{
					"number": g.Number,
					"text":   g.Text,
				})
			}
			routines = append(routines, map[string]any{
				"name":  r.Name,
				"type":  string(r.Type),
				"rungs": rungs,
			})
		}
		programs = append(programs, map[string]any{
			"name":     p.Name,
			"class":    string(p.Class),
			"routines": routines,
			"tags":     tagFacts(p.tags),
		})
	}

	datatypes := make([]any, 0, len(c.datatypes))
	for _, d := range c.datatypes {
		members := make([]any, 0, len(d.members))
		for _, m := range d.members {
			members = append(members, map[string]any{
				"name":     m.Name,
				"datatype": m.DataTypeName,
				"hidden":   m.Hidden,
				"bit":      m.BitNumber,
			})
		}
		datatypes = append(datatypes, map[string]any{
			"name":    d.Name,
			"members": members,
		})
	}

	modules := make([]any, 0, len(c.modules))
	for _, m := range c.modules {
		modules = append(modules, map[string]any{
			"name":    m.Name,
			"catalog": m.CatalogNumber,
			"parent":  m.ParentName,
		})
	}

	aois := make([]any, 0, len(c.aois))
	for _, a := range c.aois {
		aois = append(aois, map[string]any{
			"name":     a.Name,
			"revision": a.Revision,
		})
	}

	obj := map[string]any{
		"name":      c.Name,
		"processor": c.ProcessorType,
		"programs":  programs,
		"datatypes": datatypes,
		"modules":   modules,
		"aois":      aois,
		"tags":      tagFacts(c.tags),
	}

	canonical, err := marshalCanonical(obj)
	if err != nil {
		// The graph only holds strings, ints, and bools, so canonical
		// marshaling cannot fail on a well-formed controller.
		panic(fmt.Sprintf("controller fingerprint: %v", err))
	}
	return hashWithDomain(DomainController, canonical)
}

// Fingerprint computes a content-addressed identity for a module's
// hardware-relevant facts.
func (m *Module) Fingerprint() string {
	conns := make([]any, 0, len(m.connections))
	for _, cp := range m.connections {
		conns = append(conns, map[string]any{
			"name":        cp.Name,
			"type":        cp.Type,
			"input_size":  cp.InputSize,
			"output_size": cp.OutputSize,
		})
	}
	obj := map[string]any{
		"name":        m.Name,
		"catalog":     m.CatalogNumber,
		"parent":      m.ParentName,
		"connections": conns,
	}
	canonical, err := marshalCanonical(obj)
	if err != nil {
		panic(fmt.Sprintf("module fingerprint: %v", err))
	}
	return hashWithDomain(DomainModule, canonical)
}

func tagFacts(tags []*Tag) []any {
	out := make([]any, 0, len(tags))
	for _, t := range tags {
		out = append(out, map[string]any{
			"name":     t.Name,
			"datatype": t.DataTypeName,
			"class":    string(t.Class),
		})
	}
	return out
}

// hashWithDomain computes SHA256(domain + 0x00 + data). The null byte
// separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// marshalCanonical produces RFC 8785 canonical JSON: object keys sorted
// by UTF-16 code units, strings NFC normalized, no HTML escaping, no
// floats, no null. Canonical JSON is the only serialization used for
// identity computation.
func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return appendCanonicalString(nil, val), nil
	case int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case float32, float64:
		return nil, fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	case []any:
		out := []byte{'['}
		for i, elem := range val {
			if i > 0 {
				out = append(out, ',')
			}
			b, err := marshalCanonical(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			out = append(out, b...)
		}
		return append(out, ']'), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return compareKeysRFC8785(keys[i], keys[j]) < 0
		})
		out := []byte{'{'}
		for i, k := range keys {
			if i > 0 {
				out = append(out, ',')
			}
			out = appendCanonicalString(out, k)
			out = append(out, ':')
			b, err := marshalCanonical(val[k])
			if err != nil {
				return nil, fmt.Errorf("value for key %q: %w", k, err)
			}
			out = append(out, b...)
		}
		return append(out, '}'), nil
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// appendCanonicalString appends the RFC 8785 rendering of s: NFC
// normalized, with only quote, backslash, and control characters
// escaped. HTML characters and U+2028/U+2029 stay literal.
func appendCanonicalString(dst []byte, s string) []byte {
	s = norm.NFC.String(s)
	dst = append(dst, '"')
	for _, r := range s {
		switch r {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			if r < 0x20 {
				dst = append(dst, fmt.Sprintf(`\u%04x`, r)...)
			} else {
				dst = append(dst, string(r)...)
			}
		}
	}
	return append(dst, '"')
}

// compareKeysRFC8785 orders keys by UTF-16 code units. Go's native
// string comparison is UTF-8 byte order, which differs for characters
// outside the BMP.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := len(a16)
	if len(b16) < n {
		n = len(b16)
	}
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

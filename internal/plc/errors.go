package plc

import (
	"errors"
	"fmt"
)

// Invariant names used by InvariantError. The editor layer surfaces these
// verbatim when a mutation is rejected.
const (
	InvariantUniqueName = "name-uniqueness"
	InvariantTagScope   = "tag-scope"
	InvariantRungOrder  = "rung-order"
)

// InvariantError reports a mutation that would corrupt the graph.
type InvariantError struct {
	// Invariant is the violated invariant name.
	Invariant string

	// Collection is the owned collection involved (e.g. "programs").
	Collection string

	// Name is the offending entity name.
	Name string

	// Message overrides the default duplicate-name rendering.
	Message string
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("plc: %s violated: %s", e.Invariant, e.Message)
	}
	return fmt.Sprintf("plc: %s violated: %q already exists in %s", e.Invariant, e.Name, e.Collection)
}

// IsInvariantViolation reports whether err is (or wraps) an InvariantError.
func IsInvariantViolation(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

func duplicate(collection, name string) error {
	return &InvariantError{
		Invariant:  InvariantUniqueName,
		Collection: collection,
		Name:       name,
	}
}

// RefKind identifies what sort of cross reference failed to resolve.
type RefKind string

const (
	RefDatatype     RefKind = "datatype"
	RefModuleParent RefKind = "module-parent"
)

// Dangling is an explicit marker for an unresolved cross reference.
// Resolution failures are not fatal: the marker stays in the graph so
// downstream consumers can detect and surface it.
type Dangling struct {
	// Kind is the reference category.
	Kind RefKind

	// From names the referring entity.
	From string

	// Target is the name that could not be resolved.
	Target string
}

// String renders the marker for diagnostics.
func (d Dangling) String() string {
	return fmt.Sprintf("%s %q referenced by %q is unresolved", d.Kind, d.Target, d.From)
}

package catalog

import (
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/plcforge/ingot/internal/plc"
)

// CompileError reports a malformed config record with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Compile parses a CUE value into a Definition. The value should be
// one module record, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`module: Enet: {catalog_number: "1756-EN2T", ...}`)
//	def, err := Compile(v.LookupPath(cue.ParsePath("module.Enet")))
//
// Compile enforces shape only; semantic checks live in Validate so
// callers get the full violation list in one pass.
func Compile(v cue.Value) (*Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &Definition{ControlsType: plc.ControlsUnknown}

	labels := v.Path().Selectors()
	if len(labels) > 0 {
		def.Label = labels[len(labels)-1].String()
	}

	var err error
	if def.CatalogNumber, err = optionalString(v, "catalog_number"); err != nil {
		return nil, err
	}
	if def.Class, err = optionalString(v, "class"); err != nil {
		return nil, err
	}
	if def.ParentType, err = optionalString(v, "parent_type"); err != nil {
		return nil, err
	}

	ctVal := v.LookupPath(cue.ParsePath("controls_type"))
	if ctVal.Exists() {
		s, err := ctVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		// Unknown values survive compilation; Validate flags them.
		def.ControlsType = plc.ControlsType(s)
	}

	if def.RequiredImports, err = stringList(v, "required_imports"); err != nil {
		return nil, err
	}
	if def.TagTemplates, err = parseTagTemplates(v); err != nil {
		return nil, err
	}
	if def.RungTemplates, err = parseRungTemplates(v); err != nil {
		return nil, err
	}
	if def.ConnectionPoints, err = parseConnectionPoints(v); err != nil {
		return nil, err
	}

	return def, nil
}

// CompileConfig parses every record under the top-level "module" struct
// of a config value. Records fail independently: the error list is
// per-record and successful definitions are still returned.
func CompileConfig(v cue.Value) ([]*Definition, []error) {
	if err := v.Err(); err != nil {
		return nil, []error{formatCUEError(err)}
	}

	moduleVal := v.LookupPath(cue.ParsePath("module"))
	if !moduleVal.Exists() {
		return nil, []error{&CompileError{
			Field:   "module",
			Message: "config must declare a top-level module struct",
			Pos:     v.Pos(),
		}}
	}

	iter, err := moduleVal.Fields()
	if err != nil {
		return nil, []error{formatCUEError(err)}
	}

	var defs []*Definition
	var errs []error
	for iter.Next() {
		def, err := Compile(iter.Value())
		if err != nil {
			errs = append(errs, fmt.Errorf("module %q: %w", iter.Label(), err))
			continue
		}
		if def.Label == "" {
			def.Label = iter.Label()
		}
		defs = append(defs, def)
	}
	return defs, errs
}

func optionalString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalInt(v cue.Value, field string) (int, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return 0, nil
	}
	n, err := fv.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return int(n), nil
}

func stringList(v cue.Value, field string) ([]string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	iter, err := fv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseTagTemplates(v cue.Value) ([]TagTemplate, error) {
	fv := v.LookupPath(cue.ParsePath("tag_templates"))
	if !fv.Exists() {
		return nil, nil
	}
	iter, err := fv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []TagTemplate
	for iter.Next() {
		item := iter.Value()
		var tt TagTemplate
		if tt.Name, err = optionalString(item, "name"); err != nil {
			return nil, err
		}
		if tt.DataType, err = optionalString(item, "datatype"); err != nil {
			return nil, err
		}
		if tt.Class, err = optionalString(item, "class"); err != nil {
			return nil, err
		}
		out = append(out, tt)
	}
	return out, nil
}

func parseRungTemplates(v cue.Value) ([]RungTemplate, error) {
	fv := v.LookupPath(cue.ParsePath("rung_templates"))
	if !fv.Exists() {
		return nil, nil
	}
	iter, err := fv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []RungTemplate
	for iter.Next() {
		item := iter.Value()
		var rt RungTemplate
		if rt.Routine, err = optionalString(item, "routine"); err != nil {
			return nil, err
		}
		if rt.Text, err = optionalString(item, "text"); err != nil {
			return nil, err
		}
		if rt.Comment, err = optionalString(item, "comment"); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, nil
}

func parseConnectionPoints(v cue.Value) ([]ConnectionSpec, error) {
	fv := v.LookupPath(cue.ParsePath("connection_points"))
	if !fv.Exists() {
		return nil, nil
	}
	iter, err := fv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []ConnectionSpec
	for iter.Next() {
		item := iter.Value()
		var cp ConnectionSpec
		if cp.Name, err = optionalString(item, "name"); err != nil {
			return nil, err
		}
		if cp.Type, err = optionalString(item, "type"); err != nil {
			return nil, err
		}
		if cp.InputSize, err = optionalInt(item, "input_size"); err != nil {
			return nil, err
		}
		if cp.OutputSize, err = optionalInt(item, "output_size"); err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}

package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/plcforge/ingot/internal/plc"
)

// Validation error codes (C100-C199).
const (
	ErrMissingCatalogNumber = "C101" // catalog_number is required
	ErrUnknownControlsType  = "C102" // controls_type not recognized
	ErrMalformedTemplate    = "C103" // template missing name or text
	ErrUnknownPlaceholder   = "C104" // placeholder not in the recognized set
	ErrBadConnectionPoint   = "C105" // connection point unnamed or negative size
	ErrDuplicateCatalog     = "C106" // catalog number already registered
)

// Recognized template placeholders. Anything else is a validation
// error, not a silent passthrough.
const (
	PlaceholderModuleName   = "module.name"
	PlaceholderParentModule = "module.parent_module"
	PlaceholderProcessName  = "controller.process_name"
)

var placeholders = map[string]bool{
	PlaceholderModuleName:   true,
	PlaceholderParentModule: true,
	PlaceholderProcessName:  true,
}

// Placeholder syntax is exact: no whitespace padding inside the braces.
var placeholderPattern = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// ValidationError is one config violation with a stable code.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled definition against the config rules.
// It returns every violation found rather than failing fast, so a
// config author sees the whole list in one pass.
func Validate(def *Definition) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(def.CatalogNumber) == "" {
		errs = append(errs, ValidationError{
			Field:   "catalog_number",
			Message: "catalog_number is required and must be non-empty",
			Code:    ErrMissingCatalogNumber,
		})
	}

	if _, ok := plc.ParseControlsType(string(def.ControlsType)); !ok {
		errs = append(errs, ValidationError{
			Field:   "controls_type",
			Message: fmt.Sprintf("unknown controls_type %q", def.ControlsType),
			Code:    ErrUnknownControlsType,
		})
	}

	for i, tt := range def.TagTemplates {
		field := fmt.Sprintf("tag_templates[%d]", i)
		if strings.TrimSpace(tt.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "tag template requires a non-empty name",
				Code:    ErrMalformedTemplate,
			})
		}
		if strings.TrimSpace(tt.DataType) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".datatype",
				Message: "tag template requires a non-empty datatype",
				Code:    ErrMalformedTemplate,
			})
		}
		errs = append(errs, validatePlaceholders(field+".name", tt.Name)...)
	}

	for i, rt := range def.RungTemplates {
		field := fmt.Sprintf("rung_templates[%d]", i)
		if strings.TrimSpace(rt.Text) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".text",
				Message: "rung template requires non-empty text",
				Code:    ErrMalformedTemplate,
			})
		}
		errs = append(errs, validatePlaceholders(field+".text", rt.Text)...)
		errs = append(errs, validatePlaceholders(field+".comment", rt.Comment)...)
	}

	for i, cp := range def.ConnectionPoints {
		field := fmt.Sprintf("connection_points[%d]", i)
		if strings.TrimSpace(cp.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "connection point requires a non-empty name",
				Code:    ErrBadConnectionPoint,
			})
		}
		if cp.InputSize < 0 || cp.OutputSize < 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "connection point sizes must not be negative",
				Code:    ErrBadConnectionPoint,
			})
		}
	}

	return errs
}

func validatePlaceholders(field, text string) []ValidationError {
	var errs []ValidationError
	for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if !placeholders[name] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("unknown placeholder %q", name),
				Code:    ErrUnknownPlaceholder,
			})
		}
	}
	return errs
}

// Package catalog compiles declarative module-definition configs and
// serves them through a registry.
//
// Configs are CUE files (plain JSON also loads, since JSON is a subset
// of CUE). Each file declares one or more module definitions keyed by
// label:
//
//	module: Enet1756: {
//		catalog_number: "1756-EN2T"
//		controls_type:  "Ethernet"
//		tag_templates: [{name: "{{module.name}}_Ok", datatype: "BOOL"}]
//	}
//
// Compilation is strict and per-record: one malformed record never
// blocks the rest of a directory load. Validation collects every
// violation with a stable C-series code instead of failing fast.
// Template placeholders are checked at compile time; expansion against
// a concrete hardware module happens later, during the build.
package catalog

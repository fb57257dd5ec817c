// Package harness runs YAML-driven ingestion scenarios.
//
// A scenario names an input project file, optional catalog configs and
// classification descriptors, and the expected outcome: variant, score,
// graph facts, and whether the round trip must be byte-identical. The
// golden path serializes the loaded controller and compares it against
// a checked-in fixture, so serializer changes are always deliberate.
package harness

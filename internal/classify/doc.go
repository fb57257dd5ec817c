// Package classify scores loaded controller graphs against registered
// pattern descriptors and picks the best-fitting controller variant.
//
// A descriptor carries five glob-pattern sets: datatypes, modules,
// programs, safety programs, and controller-scope tags. Each set is an
// independent check worth 0.2: the check passes when any pattern in
// the set matches any name in the category, and an empty set always
// fails its check. Scores are therefore one of 0.0, 0.2, ... 1.0.
//
// The factory is deterministic: identical inputs and registration
// order always produce the same variant. Ties on score resolve to the
// earliest-registered descriptor, and a best score below the
// acceptance threshold yields the generic variant, never an error.
package classify

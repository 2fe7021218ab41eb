// Package ir provides the fully elaborated, type-annotated intermediate
// representation consumed by the code generator.
//
// This package contains type definitions, identifier utilities and the JSON
// decoder only. Every other package imports ir; ir imports nothing internal
// apart from the errors facade.
//
// Key design constraints:
//   - Type, Value and Pattern are sealed interfaces; only the node types in
//     this package implement them, so a type switch over them is exhaustive
//   - Trees are immutable once decoded; the compiler folds them into a fresh
//     target tree and never mutates them
//   - Every value node carries exactly one type annotation (Tpe)
//   - Ordered collections (record fields, constructor arguments, modules,
//     declarations) are slices, never maps, so output order is deterministic
package ir

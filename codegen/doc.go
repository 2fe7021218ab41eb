// Package codegen compiles the elaborated IR into the Scala-shaped target AST.
//
// The pieces, leaf first:
//   - Type Mapper (typemap.go): IR type expressions to target types
//   - Custom Type Encoder (customtype.go): sum types and record aliases to
//     class hierarchies
//   - Value/Pattern Compiler (value.go, let.go, curry.go, pattern.go):
//     expressions and patterns, with an immutable Scope threaded by value
//   - Module Assembler (module.go): one CompilationUnit per IR module
//   - Batch (batch.go): modules compiled in parallel, merged deterministically
//
// A Compiler is read-only after New and safe for concurrent use. The mapping
// functions never log and never perform I/O; failures come back as
// *CompileError values that unwrap to errors.ErrMalformedIR or
// errors.ErrUnsupportedShape.
//
// Known limitation: extensible record types are widened to a closed
// structural type. The row variable is dropped, so generated code accepts
// exactly the declared fields.
package codegen

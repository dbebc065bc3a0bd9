// Package lower converts a parsed hlir.Module into a gir function.
//
// The engine is organized as four cooperating components threaded through
// one explicit Context value: the TypeTable interns gir type ids for hlir
// types and synthesized descriptors, the ValueTable interns gir ids for
// hlir SSA values, the resource binder turns resource metadata into
// decorated module-scope variables, and the function lowerer walks the
// entry point's CFG translating instructions and terminators.
//
// Lowering is single-threaded and synchronous. Structural problems
// (missing metadata, unknown shader model) abort with an error; holes in
// the supported instruction surface produce diagnostics and skip the
// offending instruction so development shaders still translate partially.
package lower

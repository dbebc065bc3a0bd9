// Package hlir defines the high-level GPU bytecode intermediate
// representation consumed by the lowering engine.
//
// An hlir.Module is the already-parsed form of a shader: functions made of
// basic blocks holding typed SSA instructions, plus named metadata nodes
// describing the shader model, entry points, stage signatures, and resource
// bindings. The bitcode reader that produces modules lives outside this
// repository; tests and the girdump tool construct modules directly.
package hlir

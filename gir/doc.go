// Package gir defines the portable graphics IR produced by the lowering
// engine, along with the builder facility that interns types and constants
// and allocates identifiers.
//
// The package is deliberately split in two halves. The Builder owns
// module-scope state: interned types and constants, module variables,
// decorations, capabilities, and the entry-point record. The NodePool owns
// the per-function control-flow graph: nodes holding ordered operation
// streams, phi records, and terminators, linked by arena indices. A
// ConvertedFunction pairs the pool with its entry node and is handed to
// downstream passes (structurization, binary encoding) that live outside
// this repository.
package gir

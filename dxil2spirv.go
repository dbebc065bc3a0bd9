// Package dxilspirv lowers a parsed HLIR shader module into a portable
// graphics IR function.
//
// The package wires the three layers together:
//   - hlir — the typed SSA input IR with its metadata conventions
//   - lower — the lowering engine (type/value interning, resource
//     binding, CFG materialization, instruction translation)
//   - gir — the produced IR, its builder facility, and the CFG node pool
//
// Example usage:
//
//	builder := gir.NewBuilder()
//	result, err := dxilspirv.Convert(module, builder)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fn := result.Function // CFG node pool + entry node
//
// The returned function is an in-memory operation stream; binary encoding
// and control-flow structurization are downstream concerns.
package dxilspirv

import (
	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
	"github.com/pixelcluster/dxil-spirv/lower"
)

// Convert lowers the module's entry point using the given builder. The
// builder is borrowed and must outlive the returned result. A non-nil
// error means a structural failure (missing or malformed metadata); holes
// in the supported instruction surface are reported as diagnostics on the
// result instead.
func Convert(module *hlir.Module, builder *gir.Builder) (*lower.Result, error) {
	return lower.Convert(module, builder)
}

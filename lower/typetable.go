package lower

import (
	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
)

// TypeTable maps hlir types and synthesized component descriptors to
// interned gir type ids. Interning itself lives in the builder; the table
// adds the hlir-facing translation and the pointee side table consulted
// when an id denotes a loaded resource handle.
type TypeTable struct {
	builder  *gir.Builder
	idToType map[gir.ID]gir.ID
}

// NewTypeTable returns a table over the given builder.
func NewTypeTable(b *gir.Builder) *TypeTable {
	return &TypeTable{
		builder:  b,
		idToType: make(map[gir.ID]gir.ID),
	}
}

// TypeOf returns the gir type id for an hlir type, or zero for kinds the
// engine does not lower. Pointers land in Function storage; callers emit
// their own pointer types for non-local storage classes.
func (t *TypeTable) TypeOf(ty hlir.Type) gir.ID {
	switch ty := ty.(type) {
	case hlir.FloatType:
		return t.builder.MakeFloatType(ty.Bits)
	case hlir.IntType:
		if ty.Bits == 1 {
			return t.builder.MakeBoolType()
		}
		return t.builder.MakeIntegerType(ty.Bits, false)
	case hlir.PointerType:
		elem := t.TypeOf(ty.Elem)
		if elem == 0 {
			return 0
		}
		return t.builder.MakePointer(gir.StorageClassFunction, elem)
	case hlir.ArrayType:
		elem := t.TypeOf(ty.Elem)
		if elem == 0 {
			return 0
		}
		return t.builder.MakeArrayType(elem, t.builder.MakeUintConstant(ty.Len), 0)
	default:
		return 0
	}
}

// Synth returns the gir type for a signature component descriptor:
// scalar when rows == cols == 1, a cols-component vector when rows == 1,
// and a rows x cols matrix otherwise. Unknown component codes yield zero.
func (t *TypeTable) Synth(component hlir.ComponentType, rows, cols uint32) gir.ID {
	var scalar gir.ID
	switch component {
	case hlir.ComponentI1:
		scalar = t.builder.MakeBoolType()
	case hlir.ComponentI16:
		scalar = t.builder.MakeIntegerType(16, true)
	case hlir.ComponentU16:
		scalar = t.builder.MakeIntegerType(16, false)
	case hlir.ComponentI32:
		scalar = t.builder.MakeIntegerType(32, true)
	case hlir.ComponentU32:
		scalar = t.builder.MakeIntegerType(32, false)
	case hlir.ComponentI64:
		scalar = t.builder.MakeIntegerType(64, true)
	case hlir.ComponentU64:
		scalar = t.builder.MakeIntegerType(64, false)
	case hlir.ComponentF16:
		scalar = t.builder.MakeFloatType(16)
	case hlir.ComponentF32:
		scalar = t.builder.MakeFloatType(32)
	case hlir.ComponentF64:
		scalar = t.builder.MakeFloatType(64)
	default:
		return 0
	}

	switch {
	case rows == 1 && cols == 1:
		return scalar
	case rows == 1:
		return t.builder.MakeVectorType(scalar, cols)
	default:
		return t.builder.MakeMatrixType(scalar, rows, cols)
	}
}

// RecordPointee associates a loaded handle id with its pointee type.
// Populated only at handle-load sites.
func (t *TypeTable) RecordPointee(id, typeID gir.ID) {
	t.idToType[id] = typeID
}

// TypeOfID returns the recorded pointee type of a loaded handle id, or
// zero when none was recorded.
func (t *TypeTable) TypeOfID(id gir.ID) gir.ID {
	return t.idToType[id]
}

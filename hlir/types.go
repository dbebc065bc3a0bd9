package hlir

// Type represents a type in the input IR.
type Type interface {
	typeKind()
}

// VoidType represents the absence of a value.
type VoidType struct{}

func (VoidType) typeKind() {}

// FloatType represents a floating-point type of 16, 32 or 64 bits.
type FloatType struct {
	Bits uint32
}

func (FloatType) typeKind() {}

// IntType represents an integer type. Bits == 1 is the boolean type;
// wider integers carry no signedness, operations decide interpretation.
type IntType struct {
	Bits uint32
}

func (IntType) typeKind() {}

// PointerType represents a pointer to an element type. Storage placement
// is decided at lowering time; function-local unless a caller overrides.
type PointerType struct {
	Elem Type
}

func (PointerType) typeKind() {}

// ArrayType represents a fixed-length array.
type ArrayType struct {
	Elem Type
	Len  uint32
}

func (ArrayType) typeKind() {}

// StructType represents an aggregate of member types.
type StructType struct {
	Fields []Type
}

func (StructType) typeKind() {}

// Common singleton types.
var (
	Void   = VoidType{}
	Bool   = IntType{Bits: 1}
	Int32  = IntType{Bits: 32}
	Half   = FloatType{Bits: 16}
	Float  = FloatType{Bits: 32}
	Double = FloatType{Bits: 64}
)

// Vec4Struct returns the struct type {t, t, t, t} used by op-table
// intrinsics that return four components plus nothing else.
func Vec4Struct(t Type) StructType {
	return StructType{Fields: []Type{t, t, t, t}}
}

// SampleResultStruct returns the five-member struct returned by sampling
// intrinsics: four components of t and a trailing status word.
func SampleResultStruct(t Type) StructType {
	return StructType{Fields: []Type{t, t, t, t, Int32}}
}

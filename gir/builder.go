package gir

import (
	"fmt"
	"math"
)

type typeKind uint8

const (
	kindVoid typeKind = iota
	kindBool
	kindInt
	kindFloat
	kindVector
	kindMatrix
	kindArray
	kindStruct
	kindPointer
	kindImage
	kindSampler
	kindSampledImage
)

// typeInfo is the structural descriptor recorded for every interned type.
// Component holds the scalar of vectors and matrices, the element of
// arrays, the pointee of pointers, the sampled type of images, and the
// image type of sampled images.
type typeInfo struct {
	kind      typeKind
	width     uint32
	signed    bool
	component ID
	count     uint32
	rows      uint32
	length    ID
	stride    uint32
	storage   StorageClass
	members   []ID

	dim          Dim
	depth        bool
	arrayed      bool
	multisampled bool
	sampled      uint32
	format       ImageFormat
}

// EntryPoint records the entry-point declaration of a module.
type EntryPoint struct {
	Model     ExecutionModel
	Name      string
	Interface []ID
}

// Builder allocates ids and owns the module-scope operation streams.
// Types and scalar constants are interned: structurally equal requests
// return the same id. All methods are single-threaded; the id allocator
// is monotonic and never reuses values.
type Builder struct {
	nextID ID

	typeCache  map[string]ID
	constCache map[string]ID
	info       map[ID]typeInfo
	valueTypes map[ID]ID
	names      map[ID]string

	types       []Operation
	globals     []Operation
	annotations []Operation

	capabilities []Capability
	capSet       map[Capability]bool

	entry *EntryPoint
}

// NewBuilder returns an empty builder. The first allocated id is 1.
func NewBuilder() *Builder {
	return &Builder{
		nextID:     1,
		typeCache:  make(map[string]ID),
		constCache: make(map[string]ID),
		info:       make(map[ID]typeInfo),
		valueTypes: make(map[ID]ID),
		names:      make(map[ID]string),
		capSet:     make(map[Capability]bool),
	}
}

// AllocID allocates a fresh id, greater than every id allocated before.
func (b *Builder) AllocID() ID {
	id := b.nextID
	b.nextID++
	return id
}

// Bound returns one past the largest allocated id.
func (b *Builder) Bound() ID {
	return b.nextID
}

func (b *Builder) internType(key string, emit func(id ID) (Operation, typeInfo)) ID {
	if id, ok := b.typeCache[key]; ok {
		return id
	}
	id := b.AllocID()
	op, info := emit(id)
	b.types = append(b.types, op)
	b.info[id] = info
	b.typeCache[key] = id
	return id
}

// MakeVoidType interns the void type.
func (b *Builder) MakeVoidType() ID {
	return b.internType("void", func(id ID) (Operation, typeInfo) {
		return Operation{Op: OpTypeVoid, ID: id}, typeInfo{kind: kindVoid}
	})
}

// MakeBoolType interns the boolean type.
func (b *Builder) MakeBoolType() ID {
	return b.internType("bool", func(id ID) (Operation, typeInfo) {
		return Operation{Op: OpTypeBool, ID: id}, typeInfo{kind: kindBool}
	})
}

// MakeFloatType interns a floating-point type of the given bit width.
func (b *Builder) MakeFloatType(bits uint32) ID {
	return b.internType(fmt.Sprintf("f%d", bits), func(id ID) (Operation, typeInfo) {
		return Operation{Op: OpTypeFloat, ID: id, Arguments: []uint32{bits}},
			typeInfo{kind: kindFloat, width: bits}
	})
}

// MakeIntegerType interns an integer type of the given bit width.
func (b *Builder) MakeIntegerType(bits uint32, signed bool) ID {
	key := fmt.Sprintf("u%d", bits)
	if signed {
		key = fmt.Sprintf("i%d", bits)
	}
	return b.internType(key, func(id ID) (Operation, typeInfo) {
		signedness := uint32(0)
		if signed {
			signedness = 1
		}
		return Operation{Op: OpTypeInt, ID: id, Arguments: []uint32{bits, signedness}},
			typeInfo{kind: kindInt, width: bits, signed: signed}
	})
}

// MakeVectorType interns a vector of count components.
func (b *Builder) MakeVectorType(component ID, count uint32) ID {
	return b.internType(fmt.Sprintf("vec:%d:%d", component, count), func(id ID) (Operation, typeInfo) {
		return Operation{Op: OpTypeVector, ID: id, Arguments: []uint32{uint32(component), count}},
			typeInfo{kind: kindVector, component: component, count: count}
	})
}

// MakeMatrixType interns a matrix of rows x cols components. The column
// vector type is interned as a side effect.
func (b *Builder) MakeMatrixType(component ID, rows, cols uint32) ID {
	column := b.MakeVectorType(component, rows)
	return b.internType(fmt.Sprintf("mat:%d:%dx%d", component, rows, cols), func(id ID) (Operation, typeInfo) {
		return Operation{Op: OpTypeMatrix, ID: id, Arguments: []uint32{uint32(column), cols}},
			typeInfo{kind: kindMatrix, component: component, count: cols, rows: rows}
	})
}

// MakeArrayType interns an array of the element type whose length is the
// given constant id. A non-zero stride distinguishes layouts; the caller
// adds the ArrayStride decoration.
func (b *Builder) MakeArrayType(elem, length ID, stride uint32) ID {
	return b.internType(fmt.Sprintf("arr:%d:%d:%d", elem, length, stride), func(id ID) (Operation, typeInfo) {
		return Operation{Op: OpTypeArray, ID: id, Arguments: []uint32{uint32(elem), uint32(length)}},
			typeInfo{kind: kindArray, component: elem, length: length, stride: stride}
	})
}

// MakeStructType creates a struct over the member types. Structs are not
// interned: two calls with identical members yield distinct ids, so
// per-resource Block decorations never collide.
func (b *Builder) MakeStructType(members []ID, name string) ID {
	id := b.AllocID()
	args := make([]uint32, len(members))
	for i, m := range members {
		args[i] = uint32(m)
	}
	b.types = append(b.types, Operation{Op: OpTypeStruct, ID: id, Arguments: args})
	b.info[id] = typeInfo{kind: kindStruct, members: append([]ID(nil), members...)}
	if name != "" {
		b.names[id] = name
	}
	return id
}

// MakePointer interns a pointer to elem in the given storage class.
func (b *Builder) MakePointer(storage StorageClass, elem ID) ID {
	return b.internType(fmt.Sprintf("ptr:%d:%d", storage, elem), func(id ID) (Operation, typeInfo) {
		return Operation{Op: OpTypePointer, ID: id, Arguments: []uint32{uint32(storage), uint32(elem)}},
			typeInfo{kind: kindPointer, component: elem, storage: storage}
	})
}

// MakeImageType interns an image type. sampled is 1 for sampled-only
// images and 2 for storage images.
func (b *Builder) MakeImageType(sampledType ID, dim Dim, depth, arrayed, multisampled bool, sampled uint32, format ImageFormat) ID {
	key := fmt.Sprintf("img:%d:%d:%t:%t:%t:%d:%d", sampledType, dim, depth, arrayed, multisampled, sampled, format)
	return b.internType(key, func(id ID) (Operation, typeInfo) {
		return Operation{Op: OpTypeImage, ID: id, Arguments: []uint32{
				uint32(sampledType), uint32(dim), boolWord(depth), boolWord(arrayed),
				boolWord(multisampled), sampled, uint32(format),
			}}, typeInfo{
				kind: kindImage, component: sampledType, dim: dim, depth: depth,
				arrayed: arrayed, multisampled: multisampled, sampled: sampled, format: format,
			}
	})
}

// MakeSamplerType interns the sampler type.
func (b *Builder) MakeSamplerType() ID {
	return b.internType("sampler", func(id ID) (Operation, typeInfo) {
		return Operation{Op: OpTypeSampler, ID: id}, typeInfo{kind: kindSampler}
	})
}

// MakeSampledImageType interns the combined image+sampler type over image.
func (b *Builder) MakeSampledImageType(image ID) ID {
	return b.internType(fmt.Sprintf("simg:%d", image), func(id ID) (Operation, typeInfo) {
		return Operation{Op: OpTypeSampledImage, ID: id, Arguments: []uint32{uint32(image)}},
			typeInfo{kind: kindSampledImage, component: image}
	})
}

func (b *Builder) internConstant(key string, typeID ID, op Opcode, words ...uint32) ID {
	if id, ok := b.constCache[key]; ok {
		return id
	}
	id := b.AllocID()
	b.types = append(b.types, Operation{Op: op, ID: id, TypeID: typeID, Arguments: words})
	b.valueTypes[id] = typeID
	b.constCache[key] = id
	return id
}

// MakeUintConstant interns a 32-bit unsigned integer constant.
func (b *Builder) MakeUintConstant(value uint32) ID {
	typeID := b.MakeIntegerType(32, false)
	return b.internConstant(fmt.Sprintf("cu:%d", value), typeID, OpConstant, value)
}

// MakeIntConstant interns a 32-bit signed integer constant.
func (b *Builder) MakeIntConstant(value int32) ID {
	typeID := b.MakeIntegerType(32, true)
	return b.internConstant(fmt.Sprintf("ci:%d", value), typeID, OpConstant, uint32(value))
}

// MakeFloatConstant interns a 32-bit float constant.
func (b *Builder) MakeFloatConstant(value float32) ID {
	typeID := b.MakeFloatType(32)
	bits := math.Float32bits(value)
	return b.internConstant(fmt.Sprintf("cf:%d", bits), typeID, OpConstant, bits)
}

// MakeDoubleConstant interns a 64-bit float constant.
func (b *Builder) MakeDoubleConstant(value float64) ID {
	typeID := b.MakeFloatType(64)
	bits := math.Float64bits(value)
	low := uint32(bits)
	high := uint32(bits >> 32)
	return b.internConstant(fmt.Sprintf("cd:%d", bits), typeID, OpConstant, low, high)
}

// MakeBoolConstant interns a boolean constant.
func (b *Builder) MakeBoolConstant(value bool) ID {
	typeID := b.MakeBoolType()
	if value {
		return b.internConstant("cb:1", typeID, OpConstantTrue)
	}
	return b.internConstant("cb:0", typeID, OpConstantFalse)
}

// CreateVariable creates a variable of typeID in the given storage class
// and returns its id. The pointer type is interned as a side effect.
func (b *Builder) CreateVariable(storage StorageClass, typeID ID, name string) ID {
	ptrType := b.MakePointer(storage, typeID)
	id := b.AllocID()
	b.globals = append(b.globals, Operation{
		Op: OpVariable, ID: id, TypeID: ptrType, Arguments: []uint32{uint32(storage)},
	})
	b.valueTypes[id] = ptrType
	if name != "" {
		b.names[id] = name
	}
	return id
}

// CreateUndefined creates a module-scope undefined value of typeID.
func (b *Builder) CreateUndefined(typeID ID) ID {
	id := b.AllocID()
	b.globals = append(b.globals, Operation{Op: OpUndef, ID: id, TypeID: typeID})
	b.valueTypes[id] = typeID
	return id
}

// AddDecoration decorates target.
func (b *Builder) AddDecoration(target ID, dec Decoration, operands ...uint32) {
	args := append([]uint32{uint32(target), uint32(dec)}, operands...)
	b.annotations = append(b.annotations, Operation{Op: OpDecorate, Arguments: args})
}

// AddMemberDecoration decorates a member of a struct type.
func (b *Builder) AddMemberDecoration(structID ID, member uint32, dec Decoration, operands ...uint32) {
	args := append([]uint32{uint32(structID), member, uint32(dec)}, operands...)
	b.annotations = append(b.annotations, Operation{Op: OpMemberDecorate, Arguments: args})
}

// AddCapability declares a capability once.
func (b *Builder) AddCapability(c Capability) {
	if b.capSet[c] {
		return
	}
	b.capSet[c] = true
	b.capabilities = append(b.capabilities, c)
}

// HasCapability reports whether c has been declared.
func (b *Builder) HasCapability(c Capability) bool {
	return b.capSet[c]
}

// SetEntryPoint records the entry-point declaration.
func (b *Builder) SetEntryPoint(model ExecutionModel, name string) {
	b.entry = &EntryPoint{Model: model, Name: name}
}

// EntryPoint returns the recorded entry point, or nil.
func (b *Builder) EntryPoint() *EntryPoint {
	return b.entry
}

// AddInterfaceID appends a stage I/O variable to the entry-point
// interface list.
func (b *Builder) AddInterfaceID(id ID) {
	if b.entry != nil {
		b.entry.Interface = append(b.entry.Interface, id)
	}
}

// TypeOf returns the result type of a value id created by the builder,
// or zero if the id is unknown.
func (b *Builder) TypeOf(id ID) ID {
	return b.valueTypes[id]
}

// GetDerefTypeID returns the pointee type of a pointer-typed value id.
func (b *Builder) GetDerefTypeID(id ID) ID {
	info, ok := b.info[b.valueTypes[id]]
	if !ok || info.kind != kindPointer {
		return 0
	}
	return info.component
}

// GetScalarTypeID returns the scalar component of a scalar, vector, or
// matrix type id.
func (b *Builder) GetScalarTypeID(typeID ID) ID {
	info, ok := b.info[typeID]
	if !ok {
		return 0
	}
	switch info.kind {
	case kindBool, kindInt, kindFloat:
		return typeID
	case kindVector, kindMatrix:
		return info.component
	default:
		return 0
	}
}

// GetNumTypeComponents returns the component count of a vector type, the
// column count of a matrix type, and 1 for scalars.
func (b *Builder) GetNumTypeComponents(typeID ID) uint32 {
	info, ok := b.info[typeID]
	if !ok {
		return 0
	}
	switch info.kind {
	case kindVector, kindMatrix:
		return info.count
	default:
		return 1
	}
}

// GetTypeDimensionality returns the dimensionality of an image type.
func (b *Builder) GetTypeDimensionality(typeID ID) Dim {
	info, ok := b.info[typeID]
	if !ok || info.kind != kindImage {
		return DimMax
	}
	return info.dim
}

// IsArrayedImageType reports whether an image type is arrayed.
func (b *Builder) IsArrayedImageType(typeID ID) bool {
	info, ok := b.info[typeID]
	return ok && info.kind == kindImage && info.arrayed
}

// IsMultisampledImageType reports whether an image type is multisampled.
func (b *Builder) IsMultisampledImageType(typeID ID) bool {
	info, ok := b.info[typeID]
	return ok && info.kind == kindImage && info.multisampled
}

// GetImageComponentType returns the sampled type of an image type.
func (b *Builder) GetImageComponentType(typeID ID) ID {
	info, ok := b.info[typeID]
	if !ok || info.kind != kindImage {
		return 0
	}
	return info.component
}

// DebugName returns the name recorded for id, if any.
func (b *Builder) DebugName(id ID) string {
	return b.names[id]
}

// TypeInstructions returns the type-and-constant stream in emission order.
func (b *Builder) TypeInstructions() []Operation {
	return b.types
}

// GlobalInstructions returns module-scope variables and undefs in
// emission order.
func (b *Builder) GlobalInstructions() []Operation {
	return b.globals
}

// AnnotationInstructions returns decorations in emission order.
func (b *Builder) AnnotationInstructions() []Operation {
	return b.annotations
}

// Capabilities returns declared capabilities in declaration order.
func (b *Builder) Capabilities() []Capability {
	return b.capabilities
}

func boolWord(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

package hlir

// OpTablePrefix marks call targets dispatched through the op table.
const OpTablePrefix = "dx.op"

// OpCode enumerates op-table sub-opcodes. Values match the bytecode
// encoding; only a subset is listed. SampleGrad is listed but not lowered.
type OpCode uint32

const (
	OpLoadInput          OpCode = 4
	OpStoreOutput        OpCode = 5
	OpCreateHandle       OpCode = 57
	OpCBufferLoadLegacy  OpCode = 59
	OpSample             OpCode = 60
	OpSampleBias         OpCode = 61
	OpSampleLevel        OpCode = 62
	OpSampleGrad         OpCode = 63
	OpSampleCmp          OpCode = 64
	OpSampleCmpLevelZero OpCode = 65
)

// ComponentType enumerates signature element component encodings.
type ComponentType uint32

const (
	ComponentInvalid ComponentType = 0
	ComponentI1      ComponentType = 1
	ComponentI16     ComponentType = 2
	ComponentU16     ComponentType = 3
	ComponentI32     ComponentType = 4
	ComponentU32     ComponentType = 5
	ComponentI64     ComponentType = 6
	ComponentU64     ComponentType = 7
	ComponentF16     ComponentType = 8
	ComponentF32     ComponentType = 9
	ComponentF64     ComponentType = 10
)

// Semantic enumerates system-value semantics of signature elements.
// User covers arbitrary user-defined semantics.
type Semantic uint32

const (
	SemanticUser        Semantic = 0
	SemanticVertexID    Semantic = 1
	SemanticInstanceID  Semantic = 2
	SemanticPosition    Semantic = 3
	SemanticIsFrontFace Semantic = 13
	SemanticTarget      Semantic = 16
	SemanticDepth       Semantic = 17
)

// ResourceClass enumerates the four binding namespaces of CreateHandle.
type ResourceClass uint32

const (
	ResourceSRV     ResourceClass = 0
	ResourceUAV     ResourceClass = 1
	ResourceCBV     ResourceClass = 2
	ResourceSampler ResourceClass = 3
)

// ResourceKind enumerates concrete resource shapes.
type ResourceKind uint32

const (
	KindInvalid          ResourceKind = 0
	KindTexture1D        ResourceKind = 1
	KindTexture2D        ResourceKind = 2
	KindTexture2DMS      ResourceKind = 3
	KindTexture3D        ResourceKind = 4
	KindTextureCube      ResourceKind = 5
	KindTexture1DArray   ResourceKind = 6
	KindTexture2DArray   ResourceKind = 7
	KindTexture2DMSArray ResourceKind = 8
	KindTextureCubeArray ResourceKind = 9
	KindTypedBuffer      ResourceKind = 10
	KindRawBuffer        ResourceKind = 11
	KindStructuredBuffer ResourceKind = 12
	KindCBuffer          ResourceKind = 13
	KindSampler          ResourceKind = 14
)

// Metadata names the lowering engine reads.
const (
	MDShaderModel = "dx.shaderModel"
	MDEntryPoints = "dx.entryPoints"
	MDResources   = "dx.resources"
)

package gir

// ID identifies a type, constant, variable, or instruction result.
// IDs are dense 32-bit integers allocated monotonically by the Builder;
// zero is reserved as "none/invalid".
type ID uint32

// Opcode represents an operation code. Values follow the SPIR-V numbering.
type Opcode uint16

// Opcodes emitted by the lowering engine.
const (
	OpNop                        Opcode = 0
	OpUndef                      Opcode = 1
	OpName                       Opcode = 5
	OpMemberName                 Opcode = 6
	OpEntryPoint                 Opcode = 15
	OpExecutionMode              Opcode = 16
	OpCapability                 Opcode = 17
	OpTypeVoid                   Opcode = 19
	OpTypeBool                   Opcode = 20
	OpTypeInt                    Opcode = 21
	OpTypeFloat                  Opcode = 22
	OpTypeVector                 Opcode = 23
	OpTypeMatrix                 Opcode = 24
	OpTypeImage                  Opcode = 25
	OpTypeSampler                Opcode = 26
	OpTypeSampledImage           Opcode = 27
	OpTypeArray                  Opcode = 28
	OpTypeRuntimeArray           Opcode = 29
	OpTypeStruct                 Opcode = 30
	OpTypePointer                Opcode = 32
	OpTypeFunction               Opcode = 33
	OpConstantTrue               Opcode = 41
	OpConstantFalse              Opcode = 42
	OpConstant                   Opcode = 43
	OpConstantComposite          Opcode = 44
	OpVariable                   Opcode = 59
	OpLoad                       Opcode = 61
	OpStore                      Opcode = 62
	OpAccessChain                Opcode = 65
	OpInBoundsAccessChain        Opcode = 66
	OpDecorate                   Opcode = 71
	OpMemberDecorate             Opcode = 72
	OpVectorShuffle              Opcode = 79
	OpCompositeConstruct         Opcode = 80
	OpCompositeExtract           Opcode = 81
	OpSampledImage               Opcode = 86
	OpImageSampleImplicitLod     Opcode = 87
	OpImageSampleExplicitLod     Opcode = 88
	OpImageSampleDrefImplicitLod Opcode = 89
	OpImageSampleDrefExplicitLod Opcode = 90
	OpConvertFToU                Opcode = 109
	OpConvertFToS                Opcode = 110
	OpConvertSToF                Opcode = 111
	OpConvertUToF                Opcode = 112
	OpUConvert                   Opcode = 113
	OpSConvert                   Opcode = 114
	OpFConvert                   Opcode = 115
	OpBitcast                    Opcode = 124
	OpSNegate                    Opcode = 126
	OpFNegate                    Opcode = 127
	OpIAdd                       Opcode = 128
	OpFAdd                       Opcode = 129
	OpISub                       Opcode = 130
	OpFSub                       Opcode = 131
	OpIMul                       Opcode = 132
	OpFMul                       Opcode = 133
	OpUDiv                       Opcode = 134
	OpSDiv                       Opcode = 135
	OpFDiv                       Opcode = 136
	OpUMod                       Opcode = 137
	OpSRem                       Opcode = 138
	OpSMod                       Opcode = 139
	OpFRem                       Opcode = 140
	OpFMod                       Opcode = 141
	OpSelect                     Opcode = 169
	OpIEqual                     Opcode = 170
	OpINotEqual                  Opcode = 171
	OpUGreaterThan               Opcode = 172
	OpSGreaterThan               Opcode = 173
	OpUGreaterThanEqual          Opcode = 174
	OpSGreaterThanEqual          Opcode = 175
	OpULessThan                  Opcode = 176
	OpSLessThan                  Opcode = 177
	OpULessThanEqual             Opcode = 178
	OpSLessThanEqual             Opcode = 179
	OpFOrdEqual                  Opcode = 180
	OpFUnordEqual                Opcode = 181
	OpFOrdNotEqual               Opcode = 182
	OpFUnordNotEqual             Opcode = 183
	OpFOrdLessThan               Opcode = 184
	OpFUnordLessThan             Opcode = 185
	OpFOrdGreaterThan            Opcode = 186
	OpFUnordGreaterThan          Opcode = 187
	OpFOrdLessThanEqual          Opcode = 188
	OpFUnordLessThanEqual        Opcode = 189
	OpFOrdGreaterThanEqual       Opcode = 190
	OpFUnordGreaterThanEqual     Opcode = 191
	OpShiftRightLogical          Opcode = 194
	OpShiftRightArithmetic       Opcode = 195
	OpShiftLeftLogical           Opcode = 196
	OpBitwiseOr                  Opcode = 197
	OpBitwiseXor                 Opcode = 198
	OpBitwiseAnd                 Opcode = 199
	OpPhi                        Opcode = 245
	OpLabel                      Opcode = 248
	OpBranch                     Opcode = 249
	OpBranchConditional          Opcode = 250
	OpSwitch                     Opcode = 251
	OpKill                       Opcode = 252
	OpReturn                     Opcode = 253
	OpReturnValue                Opcode = 254
	OpUnreachable                Opcode = 255
	OpCopyLogical                Opcode = 400
)

// StorageClass places a pointer or variable in a memory space.
type StorageClass uint32

// Storage classes.
const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassPushConstant    StorageClass = 9
	StorageClassStorageBuffer   StorageClass = 12
)

// Decoration annotates an id or struct member.
type Decoration uint32

// Decorations.
const (
	DecorationBlock         Decoration = 2
	DecorationArrayStride   Decoration = 6
	DecorationBuiltIn       Decoration = 11
	DecorationNonWritable   Decoration = 24
	DecorationLocation      Decoration = 30
	DecorationBinding       Decoration = 33
	DecorationDescriptorSet Decoration = 34
	DecorationOffset        Decoration = 35
)

// BuiltIn identifies a pipeline built-in variable.
type BuiltIn uint32

// Built-ins.
const (
	BuiltInPosition    BuiltIn = 0
	BuiltInFragCoord   BuiltIn = 15
	BuiltInFrontFacing BuiltIn = 17
	BuiltInFragDepth   BuiltIn = 22
	BuiltInVertexIndex BuiltIn = 42
)

// Dim is an image dimensionality.
type Dim uint32

// Image dimensionalities.
const (
	Dim1D          Dim = 0
	Dim2D          Dim = 1
	Dim3D          Dim = 2
	DimCube        Dim = 3
	DimRect        Dim = 4
	DimBuffer      Dim = 5
	DimSubpassData Dim = 6
	// DimMax marks an unmapped resource kind.
	DimMax Dim = 0x7fffffff
)

// ImageFormat is a storage image texel format.
type ImageFormat uint32

// ImageFormatUnknown leaves the format unspecified.
const ImageFormatUnknown ImageFormat = 0

// ExecutionModel is the pipeline stage of an entry point.
type ExecutionModel uint32

// Execution models.
const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
	// ExecutionModelMax marks an unknown shader model string.
	ExecutionModelMax ExecutionModel = 0x7fffffff
)

// Capability declares an optional feature the module relies on.
type Capability uint32

// Capabilities.
const (
	CapabilityMatrix Capability = 0
	CapabilityShader Capability = 1
	CapabilityMinLod Capability = 2337
)

// ImageOperands is the bitmask qualifying a sampling operation.
type ImageOperands uint32

// Image operand bits.
const (
	ImageOperandsBias        ImageOperands = 0x1
	ImageOperandsLod         ImageOperands = 0x2
	ImageOperandsGrad        ImageOperands = 0x4
	ImageOperandsConstOffset ImageOperands = 0x8
	ImageOperandsOffset      ImageOperands = 0x10
	ImageOperandsSample      ImageOperands = 0x40
	ImageOperandsMinLod      ImageOperands = 0x80
)

package gir

import (
	"fmt"
	"io"
	"strings"
)

var opcodeNames = map[Opcode]string{
	OpNop:                        "OpNop",
	OpUndef:                      "OpUndef",
	OpName:                       "OpName",
	OpMemberName:                 "OpMemberName",
	OpEntryPoint:                 "OpEntryPoint",
	OpExecutionMode:              "OpExecutionMode",
	OpCapability:                 "OpCapability",
	OpTypeVoid:                   "OpTypeVoid",
	OpTypeBool:                   "OpTypeBool",
	OpTypeInt:                    "OpTypeInt",
	OpTypeFloat:                  "OpTypeFloat",
	OpTypeVector:                 "OpTypeVector",
	OpTypeMatrix:                 "OpTypeMatrix",
	OpTypeImage:                  "OpTypeImage",
	OpTypeSampler:                "OpTypeSampler",
	OpTypeSampledImage:           "OpTypeSampledImage",
	OpTypeArray:                  "OpTypeArray",
	OpTypeRuntimeArray:           "OpTypeRuntimeArray",
	OpTypeStruct:                 "OpTypeStruct",
	OpTypePointer:                "OpTypePointer",
	OpTypeFunction:               "OpTypeFunction",
	OpConstantTrue:               "OpConstantTrue",
	OpConstantFalse:              "OpConstantFalse",
	OpConstant:                   "OpConstant",
	OpConstantComposite:          "OpConstantComposite",
	OpVariable:                   "OpVariable",
	OpLoad:                       "OpLoad",
	OpStore:                      "OpStore",
	OpAccessChain:                "OpAccessChain",
	OpInBoundsAccessChain:        "OpInBoundsAccessChain",
	OpDecorate:                   "OpDecorate",
	OpMemberDecorate:             "OpMemberDecorate",
	OpVectorShuffle:              "OpVectorShuffle",
	OpCompositeConstruct:         "OpCompositeConstruct",
	OpCompositeExtract:           "OpCompositeExtract",
	OpSampledImage:               "OpSampledImage",
	OpImageSampleImplicitLod:     "OpImageSampleImplicitLod",
	OpImageSampleExplicitLod:     "OpImageSampleExplicitLod",
	OpImageSampleDrefImplicitLod: "OpImageSampleDrefImplicitLod",
	OpImageSampleDrefExplicitLod: "OpImageSampleDrefExplicitLod",
	OpConvertFToU:                "OpConvertFToU",
	OpConvertFToS:                "OpConvertFToS",
	OpConvertSToF:                "OpConvertSToF",
	OpConvertUToF:                "OpConvertUToF",
	OpUConvert:                   "OpUConvert",
	OpSConvert:                   "OpSConvert",
	OpFConvert:                   "OpFConvert",
	OpBitcast:                    "OpBitcast",
	OpSNegate:                    "OpSNegate",
	OpFNegate:                    "OpFNegate",
	OpIAdd:                       "OpIAdd",
	OpFAdd:                       "OpFAdd",
	OpISub:                       "OpISub",
	OpFSub:                       "OpFSub",
	OpIMul:                       "OpIMul",
	OpFMul:                       "OpFMul",
	OpUDiv:                       "OpUDiv",
	OpSDiv:                       "OpSDiv",
	OpFDiv:                       "OpFDiv",
	OpUMod:                       "OpUMod",
	OpSRem:                       "OpSRem",
	OpSMod:                       "OpSMod",
	OpFRem:                       "OpFRem",
	OpFMod:                       "OpFMod",
	OpSelect:                     "OpSelect",
	OpIEqual:                     "OpIEqual",
	OpINotEqual:                  "OpINotEqual",
	OpUGreaterThan:               "OpUGreaterThan",
	OpSGreaterThan:               "OpSGreaterThan",
	OpUGreaterThanEqual:          "OpUGreaterThanEqual",
	OpSGreaterThanEqual:          "OpSGreaterThanEqual",
	OpULessThan:                  "OpULessThan",
	OpSLessThan:                  "OpSLessThan",
	OpULessThanEqual:             "OpULessThanEqual",
	OpSLessThanEqual:             "OpSLessThanEqual",
	OpFOrdEqual:                  "OpFOrdEqual",
	OpFUnordEqual:                "OpFUnordEqual",
	OpFOrdNotEqual:               "OpFOrdNotEqual",
	OpFUnordNotEqual:             "OpFUnordNotEqual",
	OpFOrdLessThan:               "OpFOrdLessThan",
	OpFUnordLessThan:             "OpFUnordLessThan",
	OpFOrdGreaterThan:            "OpFOrdGreaterThan",
	OpFUnordGreaterThan:          "OpFUnordGreaterThan",
	OpFOrdLessThanEqual:          "OpFOrdLessThanEqual",
	OpFUnordLessThanEqual:        "OpFUnordLessThanEqual",
	OpFOrdGreaterThanEqual:       "OpFOrdGreaterThanEqual",
	OpFUnordGreaterThanEqual:     "OpFUnordGreaterThanEqual",
	OpShiftRightLogical:          "OpShiftRightLogical",
	OpShiftRightArithmetic:       "OpShiftRightArithmetic",
	OpShiftLeftLogical:           "OpShiftLeftLogical",
	OpBitwiseOr:                  "OpBitwiseOr",
	OpBitwiseXor:                 "OpBitwiseXor",
	OpBitwiseAnd:                 "OpBitwiseAnd",
	OpPhi:                        "OpPhi",
	OpLabel:                      "OpLabel",
	OpBranch:                     "OpBranch",
	OpBranchConditional:          "OpBranchConditional",
	OpSwitch:                     "OpSwitch",
	OpKill:                       "OpKill",
	OpReturn:                     "OpReturn",
	OpReturnValue:                "OpReturnValue",
	OpUnreachable:                "OpUnreachable",
	OpCopyLogical:                "OpCopyLogical",
}

// String returns the opcode mnemonic.
func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Opcode(%d)", uint16(op))
}

// String renders an operation in a stable single-line form.
func (o Operation) String() string {
	var sb strings.Builder
	if o.ID != 0 {
		fmt.Fprintf(&sb, "%%%d = ", o.ID)
	}
	sb.WriteString(o.Op.String())
	if o.TypeID != 0 {
		fmt.Fprintf(&sb, " %%%d", o.TypeID)
	}
	for _, arg := range o.Arguments {
		fmt.Fprintf(&sb, " %d", arg)
	}
	return sb.String()
}

// DumpModule writes the builder's module-scope streams to w.
func DumpModule(w io.Writer, b *Builder) {
	for _, c := range b.Capabilities() {
		fmt.Fprintf(w, "OpCapability %d\n", uint32(c))
	}
	if ep := b.EntryPoint(); ep != nil {
		fmt.Fprintf(w, "OpEntryPoint model=%d %q interface=%v\n", uint32(ep.Model), ep.Name, ep.Interface)
	}
	for _, op := range b.AnnotationInstructions() {
		fmt.Fprintln(w, op.String())
	}
	for _, op := range b.TypeInstructions() {
		fmt.Fprintln(w, op.String())
	}
	for _, op := range b.GlobalInstructions() {
		fmt.Fprintln(w, op.String())
	}
}

// DumpFunction writes the converted function's CFG to w, entry first,
// in pool order.
func DumpFunction(w io.Writer, f *ConvertedFunction) {
	for ix := 0; ix < f.Pool.Len(); ix++ {
		node := f.Pool.Get(NodeIx(ix))
		fmt.Fprintf(w, "node %d %q", ix, node.Name)
		if len(node.Successors) > 0 {
			fmt.Fprintf(w, " succ=%v", node.Successors)
		}
		fmt.Fprintln(w)
		for _, phi := range node.Phis {
			fmt.Fprintf(w, "  %%%d = OpPhi %%%d", phi.ID, phi.TypeID)
			for _, in := range phi.Incoming {
				fmt.Fprintf(w, " [%%%d, node %d]", in.ID, in.Block)
			}
			fmt.Fprintln(w)
		}
		for _, op := range node.Operations {
			fmt.Fprintf(w, "  %s\n", op.String())
		}
		fmt.Fprintf(w, "  %s\n", terminatorString(node.Terminator))
	}
}

func terminatorString(t Terminator) string {
	switch t := t.(type) {
	case TermBranch:
		return fmt.Sprintf("branch -> node %d", t.Target)
	case TermCondition:
		return fmt.Sprintf("cond %%%d ? node %d : node %d", t.Cond, t.True, t.False)
	case TermSwitch:
		var sb strings.Builder
		fmt.Fprintf(&sb, "switch %%%d default node %d", t.Cond, t.Default)
		for _, c := range t.Cases {
			fmt.Fprintf(&sb, " [%d -> node %d]", c.Value, c.Target)
		}
		return sb.String()
	case TermReturn:
		if t.Value != 0 {
			return fmt.Sprintf("return %%%d", t.Value)
		}
		return "return"
	case TermUnreachable:
		return "unreachable"
	default:
		return "<no terminator>"
	}
}

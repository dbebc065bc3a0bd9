package lower

import (
	"strings"

	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
)

func (c *Context) appendOp(ix gir.NodeIx, op gir.Operation) {
	node := c.node(ix)
	node.Operations = append(node.Operations, op)
}

// constantOperand reads call argument i as a 32-bit constant.
func constantOperand(call *hlir.Call, i int) (uint32, bool) {
	v, ok := hlir.ConstIntValue(call.Operand(i))
	return uint32(v), ok
}

// emitInstruction translates one hlir instruction into the node at ix.
// The dispatch is exhaustive over the closed instruction set; anything
// the engine cannot lower is diagnosed and skipped.
func (c *Context) emitInstruction(ix gir.NodeIx, inst hlir.Instruction) {
	switch inst := inst.(type) {
	case *hlir.Call:
		if strings.HasPrefix(inst.Callee, hlir.OpTablePrefix) {
			c.emitOpTableCall(ix, inst)
		} else {
			c.diagf("cannot lower call to %q: only op-table intrinsics are supported", inst.Callee)
		}
	case *hlir.Binary:
		c.emitBinary(ix, inst)
	case *hlir.Unary:
		c.emitUnary(ix, inst)
	case *hlir.Cast:
		c.emitCast(ix, inst)
	case *hlir.GEP:
		c.emitGEP(ix, inst)
	case *hlir.Load:
		c.emitLoad(ix, inst)
	case *hlir.Store:
		c.emitStore(ix, inst)
	case *hlir.Compare:
		c.emitCompare(ix, inst)
	case *hlir.ExtractValue:
		c.emitExtractValue(ix, inst)
	case *hlir.Alloca:
		c.emitAlloca(inst)
	case *hlir.Select:
		c.emitSelect(ix, inst)
	case *hlir.Phi:
		c.emitPhi(ix, inst)
	default:
		c.diagf("unknown instruction kind %T", inst)
	}
}

var binaryOpcodes = map[hlir.BinaryOp]gir.Opcode{
	hlir.OpFAdd: gir.OpFAdd,
	hlir.OpFSub: gir.OpFSub,
	hlir.OpFMul: gir.OpFMul,
	hlir.OpFDiv: gir.OpFDiv,
	hlir.OpFRem: gir.OpFRem,
	hlir.OpAdd:  gir.OpIAdd,
	hlir.OpSub:  gir.OpISub,
	hlir.OpMul:  gir.OpIMul,
	hlir.OpSDiv: gir.OpSDiv,
	hlir.OpUDiv: gir.OpUDiv,
	hlir.OpSRem: gir.OpSRem,
	// No unsigned remainder exists on the target; modulo matches for
	// the non-negative operands shaders produce in practice.
	hlir.OpURem: gir.OpUMod,
	hlir.OpShl:  gir.OpShiftLeftLogical,
	hlir.OpLShr: gir.OpShiftRightLogical,
	hlir.OpAShr: gir.OpShiftRightArithmetic,
	hlir.OpAnd:  gir.OpBitwiseAnd,
	hlir.OpOr:   gir.OpBitwiseOr,
	hlir.OpXor:  gir.OpBitwiseXor,
}

func (c *Context) emitBinary(ix gir.NodeIx, inst *hlir.Binary) {
	opcode, ok := binaryOpcodes[inst.Op]
	if !ok {
		c.diagf("unknown binary operator %d", inst.Op)
		return
	}
	c.appendOp(ix, gir.Operation{
		Op:     opcode,
		ID:     c.values.Get(inst),
		TypeID: c.types.TypeOf(inst.Ty),
		Arguments: []uint32{
			uint32(c.values.Get(inst.LHS)),
			uint32(c.values.Get(inst.RHS)),
		},
	})
}

func (c *Context) emitUnary(ix gir.NodeIx, inst *hlir.Unary) {
	var opcode gir.Opcode
	switch inst.Op {
	case hlir.OpFNeg:
		opcode = gir.OpFNegate
	default:
		c.diagf("unknown unary operator %d", inst.Op)
		return
	}
	c.appendOp(ix, gir.Operation{
		Op:        opcode,
		ID:        c.values.Get(inst),
		TypeID:    c.types.TypeOf(inst.Ty),
		Arguments: []uint32{uint32(c.values.Get(inst.X))},
	})
}

var castOpcodes = map[hlir.CastOp]gir.Opcode{
	hlir.OpBitCast: gir.OpBitcast,
	hlir.OpSExt:    gir.OpSConvert,
	hlir.OpZExt:    gir.OpUConvert,
	hlir.OpTrunc:   gir.OpUConvert,
	hlir.OpFPExt:   gir.OpFConvert,
	hlir.OpFPTrunc: gir.OpFConvert,
	hlir.OpFPToUI:  gir.OpConvertFToU,
	hlir.OpFPToSI:  gir.OpConvertFToS,
	hlir.OpUIToFP:  gir.OpConvertUToF,
	hlir.OpSIToFP:  gir.OpConvertSToF,
}

func (c *Context) emitCast(ix gir.NodeIx, inst *hlir.Cast) {
	opcode, ok := castOpcodes[inst.Op]
	if !ok {
		c.diagf("unknown cast operation %d", inst.Op)
		return
	}
	c.appendOp(ix, gir.Operation{
		Op:        opcode,
		ID:        c.values.Get(inst),
		TypeID:    c.types.TypeOf(inst.Ty),
		Arguments: []uint32{uint32(c.values.Get(inst.X))},
	})
}

var comparePredicates = map[hlir.Predicate]gir.Opcode{
	hlir.PredFCmpOEQ: gir.OpFOrdEqual,
	hlir.PredFCmpUEQ: gir.OpFUnordEqual,
	hlir.PredFCmpOGT: gir.OpFOrdGreaterThan,
	hlir.PredFCmpUGT: gir.OpFUnordGreaterThan,
	hlir.PredFCmpOGE: gir.OpFOrdGreaterThanEqual,
	hlir.PredFCmpUGE: gir.OpFUnordGreaterThanEqual,
	hlir.PredFCmpOLT: gir.OpFOrdLessThan,
	hlir.PredFCmpULT: gir.OpFUnordLessThan,
	hlir.PredFCmpOLE: gir.OpFOrdLessThanEqual,
	hlir.PredFCmpULE: gir.OpFUnordLessThanEqual,
	hlir.PredFCmpONE: gir.OpFOrdNotEqual,
	hlir.PredFCmpUNE: gir.OpFUnordNotEqual,
	hlir.PredICmpEQ:  gir.OpIEqual,
	hlir.PredICmpNE:  gir.OpINotEqual,
	hlir.PredICmpSLT: gir.OpSLessThan,
	hlir.PredICmpSLE: gir.OpSLessThanEqual,
	hlir.PredICmpSGT: gir.OpSGreaterThan,
	hlir.PredICmpSGE: gir.OpSGreaterThanEqual,
	hlir.PredICmpULT: gir.OpULessThan,
	hlir.PredICmpULE: gir.OpULessThanEqual,
	hlir.PredICmpUGT: gir.OpUGreaterThan,
	hlir.PredICmpUGE: gir.OpUGreaterThanEqual,
}

func (c *Context) emitCompare(ix gir.NodeIx, inst *hlir.Compare) {
	op := gir.Operation{
		ID:     c.values.Get(inst),
		TypeID: c.builder.MakeBoolType(),
	}

	switch inst.Pred {
	case hlir.PredFCmpFalse:
		op.Op = gir.OpCopyLogical
		op.Arguments = []uint32{uint32(c.builder.MakeBoolConstant(false))}
	case hlir.PredFCmpTrue:
		op.Op = gir.OpCopyLogical
		op.Arguments = []uint32{uint32(c.builder.MakeBoolConstant(true))}
	default:
		opcode, ok := comparePredicates[inst.Pred]
		if !ok {
			c.diagf("unknown comparison predicate %d", inst.Pred)
			return
		}
		op.Op = opcode
		op.Arguments = []uint32{
			uint32(c.values.Get(inst.LHS)),
			uint32(c.values.Get(inst.RHS)),
		}
	}

	c.appendOp(ix, op)
}

func (c *Context) emitLoad(ix gir.NodeIx, inst *hlir.Load) {
	c.appendOp(ix, gir.Operation{
		Op:        gir.OpLoad,
		ID:        c.values.Get(inst),
		TypeID:    c.types.TypeOf(inst.Ty),
		Arguments: []uint32{uint32(c.values.Get(inst.Ptr))},
	})
}

func (c *Context) emitStore(ix gir.NodeIx, inst *hlir.Store) {
	// Input order is (value, pointer); the emitted order is swapped.
	c.appendOp(ix, gir.Operation{
		Op: gir.OpStore,
		Arguments: []uint32{
			uint32(c.values.Get(inst.Ptr)),
			uint32(c.values.Get(inst.Val)),
		},
	})
}

func (c *Context) emitGEP(ix gir.NodeIx, inst *hlir.GEP) {
	// Equivalent to a pointer access chain. Without variable-pointer
	// support the first index must be constant zero, in which case the
	// plain access chain matches; it is checked and dropped.
	op := gir.Operation{
		Op:     gir.OpAccessChain,
		ID:     c.values.Get(inst),
		TypeID: c.types.TypeOf(inst.Ty),
	}
	if inst.InBounds {
		op.Op = gir.OpInBoundsAccessChain
	}

	for i, operand := range inst.Operands {
		if i == 1 {
			v, ok := hlir.ConstIntValue(operand)
			if !ok || v != 0 {
				c.diagf("element pointer with non-zero first index is not supported")
				return
			}
			continue
		}
		op.Arguments = append(op.Arguments, uint32(c.values.Get(operand)))
	}

	c.appendOp(ix, op)
}

func (c *Context) emitExtractValue(ix gir.NodeIx, inst *hlir.ExtractValue) {
	op := gir.Operation{
		Op:     gir.OpCompositeExtract,
		ID:     c.values.Get(inst),
		TypeID: c.types.TypeOf(inst.Ty),
	}
	op.Arguments = append(op.Arguments, uint32(c.values.Get(inst.Aggregate)))
	op.Arguments = append(op.Arguments, inst.Indices...)
	c.appendOp(ix, op)
}

func (c *Context) emitAlloca(inst *hlir.Alloca) {
	// Stack arrays arrive as one element of array type rather than N
	// elements of the base type; only that scheme is supported.
	if v, ok := hlir.ConstIntValue(inst.ArraySize); !ok || v != 1 {
		c.diagf("alloca with non-unit array size is not supported")
		return
	}
	pointeeType := c.types.TypeOf(inst.Ty.Elem)
	varID := c.builder.CreateVariable(gir.StorageClassFunction, pointeeType, inst.Name)
	c.values.Bind(inst, varID)
}

func (c *Context) emitSelect(ix gir.NodeIx, inst *hlir.Select) {
	c.appendOp(ix, gir.Operation{
		Op:     gir.OpSelect,
		ID:     c.values.Get(inst),
		TypeID: c.types.TypeOf(inst.Ty),
		Arguments: []uint32{
			uint32(c.values.Get(inst.Cond)),
			uint32(c.values.Get(inst.TrueVal)),
			uint32(c.values.Get(inst.FalseVal)),
		},
	})
}

func (c *Context) emitPhi(ix gir.NodeIx, inst *hlir.Phi) {
	phi := gir.Phi{
		ID:     c.values.Get(inst),
		TypeID: c.types.TypeOf(inst.Ty),
	}
	for _, in := range inst.Incoming {
		phi.Incoming = append(phi.Incoming, gir.Incoming{
			Block: c.bbMap[in.Block],
			ID:    c.values.Get(in.Value),
		})
	}
	node := c.node(ix)
	node.Phis = append(node.Phis, phi)
}

// emitOpTableCall dispatches an op-table intrinsic by the constant
// sub-opcode in its first argument.
func (c *Context) emitOpTableCall(ix gir.NodeIx, call *hlir.Call) {
	rawOpcode, ok := constantOperand(call, 0)
	if !ok {
		c.diagf("op-table call %q without constant opcode operand", call.Callee)
		return
	}

	switch hlir.OpCode(rawOpcode) {
	case hlir.OpLoadInput:
		c.emitLoadInput(ix, call)
	case hlir.OpStoreOutput:
		c.emitStoreOutput(ix, call)
	case hlir.OpCreateHandle:
		c.emitCreateHandle(ix, call)
	case hlir.OpCBufferLoadLegacy:
		c.emitCBufferLoadLegacy(ix, call)
	case hlir.OpSample, hlir.OpSampleBias, hlir.OpSampleLevel, hlir.OpSampleCmp, hlir.OpSampleCmpLevelZero:
		c.emitSample(hlir.OpCode(rawOpcode), ix, call)
	default:
		c.diagf("unknown op-table opcode %d", rawOpcode)
	}
}

func (c *Context) emitLoadInput(ix gir.NodeIx, call *hlir.Call) {
	b := c.builder
	sigIndex, _ := constantOperand(call, 1)
	varID := c.inputElementIDs[sigIndex]

	ptrID := varID
	numRows := b.GetNumTypeComponents(b.GetDerefTypeID(varID))
	if numRows > 1 {
		ptrID = b.AllocID()
		elemType := c.types.TypeOf(call.Ty)
		c.appendOp(ix, gir.Operation{
			Op:     gir.OpInBoundsAccessChain,
			ID:     ptrID,
			TypeID: b.MakePointer(gir.StorageClassInput, elemType),
			Arguments: []uint32{
				uint32(varID),
				uint32(c.values.GetWidth(call.Operand(3), 32)),
			},
		})
	}

	c.appendOp(ix, gir.Operation{
		Op:        gir.OpLoad,
		ID:        c.values.Get(call),
		TypeID:    c.types.TypeOf(call.Ty),
		Arguments: []uint32{uint32(ptrID)},
	})
}

func (c *Context) emitStoreOutput(ix gir.NodeIx, call *hlir.Call) {
	b := c.builder
	sigIndex, _ := constantOperand(call, 1)
	varID := c.outputElementIDs[sigIndex]

	ptrID := varID
	numRows := b.GetNumTypeComponents(b.GetDerefTypeID(varID))
	if numRows > 1 {
		ptrID = b.AllocID()
		elemType := b.GetScalarTypeID(b.GetDerefTypeID(varID))
		c.appendOp(ix, gir.Operation{
			Op:     gir.OpInBoundsAccessChain,
			ID:     ptrID,
			TypeID: b.MakePointer(gir.StorageClassOutput, elemType),
			Arguments: []uint32{
				uint32(varID),
				uint32(c.values.GetWidth(call.Operand(3), 32)),
			},
		})
	}

	c.appendOp(ix, gir.Operation{
		Op: gir.OpStore,
		Arguments: []uint32{
			uint32(ptrID),
			uint32(c.values.Get(call.Operand(4))),
		},
	})
}

func (c *Context) emitCreateHandle(ix gir.NodeIx, call *hlir.Call) {
	b := c.builder
	rawClass, _ := constantOperand(call, 1)
	rangeIndex, _ := constantOperand(call, 2)
	// Operand 3 is the index into the range, operand 4 the non-uniform
	// flag; single-entry ranges need neither.

	switch hlir.ResourceClass(rawClass) {
	case hlir.ResourceSRV:
		imageID := c.resourceAt(c.srvIndexToID, rangeIndex, "srv")
		if imageID == 0 {
			return
		}
		typeID := b.GetDerefTypeID(imageID)
		loadID := b.AllocID()
		c.appendOp(ix, gir.Operation{
			Op:        gir.OpLoad,
			ID:        loadID,
			TypeID:    typeID,
			Arguments: []uint32{uint32(imageID)},
		})
		c.types.RecordPointee(loadID, typeID)
		c.handleToPtrID[call] = loadID

	case hlir.ResourceUAV:
		c.handleToPtrID[call] = c.resourceAt(c.uavIndexToID, rangeIndex, "uav")

	case hlir.ResourceCBV:
		c.handleToPtrID[call] = c.resourceAt(c.cbvIndexToID, rangeIndex, "cbv")

	case hlir.ResourceSampler:
		samplerID := c.resourceAt(c.samplerIndexToID, rangeIndex, "sampler")
		if samplerID == 0 {
			return
		}
		typeID := b.GetDerefTypeID(samplerID)
		loadID := b.AllocID()
		c.appendOp(ix, gir.Operation{
			Op:        gir.OpLoad,
			ID:        loadID,
			TypeID:    typeID,
			Arguments: []uint32{uint32(samplerID)},
		})
		c.types.RecordPointee(loadID, typeID)
		c.handleToPtrID[call] = loadID

	default:
		c.diagf("unknown resource class %d in handle creation", rawClass)
	}
}

func (c *Context) emitCBufferLoadLegacy(ix gir.NodeIx, call *hlir.Call) {
	b := c.builder
	ptrID := c.handleToPtrID[call.Operand(1)]
	if ptrID == 0 {
		c.diagf("constant-buffer load without a bound handle")
		return
	}

	vec4Type := b.MakeVectorType(b.MakeFloatType(32), 4)
	vec4Index := c.values.Get(call.Operand(2))
	chainID := b.AllocID()
	c.appendOp(ix, gir.Operation{
		Op:     gir.OpInBoundsAccessChain,
		ID:     chainID,
		TypeID: b.MakePointer(gir.StorageClassUniform, vec4Type),
		Arguments: []uint32{
			uint32(ptrID),
			uint32(b.MakeUintConstant(0)),
			uint32(vec4Index),
		},
	})

	// The intrinsic returns a four-member struct; a vec4 load suffices
	// since extract-value works on vectors too. Integer results need a
	// bitcast after the float load.
	needBitcast := false
	if result, ok := call.Ty.(hlir.StructType); ok && len(result.Fields) == 4 {
		if _, isFloat := result.Fields[0].(hlir.FloatType); !isFloat {
			needBitcast = true
		}
	}

	var loadID gir.ID
	if needBitcast {
		loadID = b.AllocID()
	} else {
		loadID = c.values.Get(call)
	}
	c.appendOp(ix, gir.Operation{
		Op:        gir.OpLoad,
		ID:        loadID,
		TypeID:    vec4Type,
		Arguments: []uint32{uint32(chainID)},
	})

	if needBitcast {
		c.appendOp(ix, gir.Operation{
			Op:        gir.OpBitcast,
			ID:        c.values.Get(call),
			TypeID:    b.MakeVectorType(b.MakeIntegerType(32, false), 4),
			Arguments: []uint32{uint32(loadID)},
		})
	}
}

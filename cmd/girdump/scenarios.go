package main

import (
	"github.com/pixelcluster/dxil-spirv/hlir"
)

// scenario is a built-in demo shader: a hand-assembled hlir module the
// dump command lowers and prints.
type scenario struct {
	name        string
	description string
	build       func() *hlir.Module
}

var scenarios = []scenario{
	{"passthrough-vs", "vertex shader copying POSITION to SV_Position", buildPassthroughVS},
	{"cbuffer-fetch", "constant-buffer vec4 fetch and component extract", buildCBufferFetch},
	{"sample-tex2d", "Texture2D sampled with a bound sampler", buildSampleTex2D},
	{"sample-cmp", "comparison sampling at level zero with splat result", buildSampleCmp},
	{"phi-join", "conditional branch into a join block with a phi", buildPhiJoin},
	{"switch", "three-way switch terminator", buildSwitch},
}

func findScenario(name string) *scenario {
	for i := range scenarios {
		if scenarios[i].name == name {
			return &scenarios[i]
		}
	}
	return nil
}

func shaderModelMD(model string) *hlir.MDNode {
	return hlir.NewMDNode(hlir.NewMDNode(hlir.MDString(model)))
}

func entryPointsMD(fn *hlir.Function, signature *hlir.MDNode) *hlir.MDNode {
	return hlir.NewMDNode(hlir.NewMDNode(
		&hlir.MDValue{},
		hlir.MDString(fn.Name),
		signature,
	))
}

func signatureElementMD(elementID uint32, name string, component hlir.ComponentType,
	semantic hlir.Semantic, rows, cols, semanticIndex uint32) *hlir.MDNode {
	return hlir.NewMDNode(
		hlir.MDInt(elementID),
		hlir.MDString(name),
		hlir.MDInt(component),
		hlir.MDInt(semantic),
		hlir.MDInt(0),
		hlir.MDInt(0),
		hlir.MDInt(rows),
		hlir.MDInt(cols),
		hlir.MDInt(semanticIndex),
		hlir.MDInt(0),
	)
}

func srvMD(index uint32, name string, space, register uint32, kind hlir.ResourceKind, component hlir.ComponentType) *hlir.MDNode {
	return hlir.NewMDNode(
		hlir.MDInt(index),
		nil,
		hlir.MDString(name),
		hlir.MDInt(space),
		hlir.MDInt(register),
		hlir.MDInt(1),
		hlir.MDInt(kind),
		hlir.MDInt(0),
		hlir.NewMDNode(hlir.MDInt(0), hlir.MDInt(component)),
	)
}

func cbvMD(index uint32, name string, space, register, size uint32) *hlir.MDNode {
	return hlir.NewMDNode(
		hlir.MDInt(index),
		nil,
		hlir.MDString(name),
		hlir.MDInt(space),
		hlir.MDInt(register),
		hlir.MDInt(1),
		hlir.MDInt(size),
	)
}

func samplerMD(index uint32, name string, space, register uint32) *hlir.MDNode {
	return hlir.NewMDNode(
		hlir.MDInt(index),
		nil,
		hlir.MDString(name),
		hlir.MDInt(space),
		hlir.MDInt(register),
		hlir.MDInt(1),
		hlir.MDInt(0),
	)
}

func resourcesMD(srvs, uavs, cbvs, samplers *hlir.MDNode) *hlir.MDNode {
	var ops []hlir.Metadata
	for _, list := range []*hlir.MDNode{srvs, uavs, cbvs, samplers} {
		if list == nil {
			ops = append(ops, nil)
		} else {
			ops = append(ops, list)
		}
	}
	return hlir.NewMDNode(hlir.NewMDNode(ops...))
}

func opTableCall(ty hlir.Type, opcode hlir.OpCode, args ...hlir.Value) *hlir.Call {
	callArgs := append([]hlir.Value{hlir.NewConstInt(uint64(opcode))}, args...)
	return &hlir.Call{Ty: ty, Callee: "dx.op.demo", Args: callArgs}
}

// buildPassthroughVS copies a four-component POSITION input to the
// SV_Position built-in, one component at a time.
func buildPassthroughVS() *hlir.Module {
	entry := &hlir.BasicBlock{Name: "entry"}
	for col := uint64(0); col < 4; col++ {
		load := opTableCall(hlir.Float, hlir.OpLoadInput,
			hlir.NewConstInt(0), hlir.NewConstInt(0), hlir.NewConstInt(col))
		store := opTableCall(hlir.Void, hlir.OpStoreOutput,
			hlir.NewConstInt(0), hlir.NewConstInt(0), hlir.NewConstInt(col), load)
		entry.Instrs = append(entry.Instrs, load, store)
	}
	entry.Term = &hlir.Return{}

	fn := &hlir.Function{Name: "main", Blocks: []*hlir.BasicBlock{entry}}

	signature := hlir.NewMDNode(
		hlir.NewMDNode(signatureElementMD(0, "POSITION", hlir.ComponentF32, hlir.SemanticUser, 1, 4, 0)),
		hlir.NewMDNode(signatureElementMD(0, "SV_Position", hlir.ComponentF32, hlir.SemanticPosition, 1, 4, 0)),
	)

	return &hlir.Module{
		Functions: []*hlir.Function{fn},
		NamedMetadata: map[string]*hlir.MDNode{
			hlir.MDShaderModel: shaderModelMD("vs"),
			hlir.MDEntryPoints: entryPointsMD(fn, signature),
		},
	}
}

// buildCBufferFetch creates a 64-byte constant buffer, fetches vec4 slot
// 2, and extracts the first component.
func buildCBufferFetch() *hlir.Module {
	handleTy := hlir.PointerType{Elem: hlir.Float}
	handle := opTableCall(handleTy, hlir.OpCreateHandle,
		hlir.NewConstInt(uint64(hlir.ResourceCBV)), hlir.NewConstInt(0),
		hlir.NewConstInt(0), hlir.NewConstInt(0))
	load := opTableCall(hlir.Vec4Struct(hlir.Float), hlir.OpCBufferLoadLegacy,
		handle, hlir.NewConstInt(2))
	extract := &hlir.ExtractValue{Ty: hlir.Float, Aggregate: load, Indices: []uint32{0}}

	entry := &hlir.BasicBlock{
		Name:   "entry",
		Instrs: []hlir.Instruction{handle, load, extract},
		Term:   &hlir.Return{},
	}
	fn := &hlir.Function{Name: "main", Blocks: []*hlir.BasicBlock{entry}}

	return &hlir.Module{
		Functions: []*hlir.Function{fn},
		NamedMetadata: map[string]*hlir.MDNode{
			hlir.MDShaderModel: shaderModelMD("vs"),
			hlir.MDEntryPoints: entryPointsMD(fn, nil),
			hlir.MDResources: resourcesMD(nil, nil,
				hlir.NewMDNode(cbvMD(0, "cb0", 0, 0, 64)), nil),
		},
	}
}

func sampleResources() map[string]*hlir.MDNode {
	return map[string]*hlir.MDNode{
		hlir.MDResources: resourcesMD(
			hlir.NewMDNode(srvMD(0, "tex", 0, 1, hlir.KindTexture2D, hlir.ComponentF32)),
			nil, nil,
			hlir.NewMDNode(samplerMD(0, "samp", 0, 2)),
		),
	}
}

// buildSampleTex2D samples a Texture2D at a fixed coordinate and routes
// the red channel to SV_Target.
func buildSampleTex2D() *hlir.Module {
	handleTy := hlir.PointerType{Elem: hlir.Float}
	texHandle := opTableCall(handleTy, hlir.OpCreateHandle,
		hlir.NewConstInt(uint64(hlir.ResourceSRV)), hlir.NewConstInt(0),
		hlir.NewConstInt(0), hlir.NewConstInt(0))
	sampHandle := opTableCall(handleTy, hlir.OpCreateHandle,
		hlir.NewConstInt(uint64(hlir.ResourceSampler)), hlir.NewConstInt(0),
		hlir.NewConstInt(0), hlir.NewConstInt(0))

	undefF := hlir.NewUndef(hlir.Float)
	undefI := hlir.NewUndef(hlir.Int32)
	sample := opTableCall(hlir.SampleResultStruct(hlir.Float), hlir.OpSample,
		texHandle, sampHandle,
		hlir.NewConstFloat(0.5), hlir.NewConstFloat(0.25), undefF, undefF,
		hlir.NewConstInt(0), hlir.NewConstInt(0), undefI,
		hlir.NewUndef(hlir.Float))
	red := &hlir.ExtractValue{Ty: hlir.Float, Aggregate: sample, Indices: []uint32{0}}
	store := opTableCall(hlir.Void, hlir.OpStoreOutput,
		hlir.NewConstInt(0), hlir.NewConstInt(0), hlir.NewConstInt(0), red)

	entry := &hlir.BasicBlock{
		Name:   "entry",
		Instrs: []hlir.Instruction{texHandle, sampHandle, sample, red, store},
		Term:   &hlir.Return{},
	}
	fn := &hlir.Function{Name: "main", Blocks: []*hlir.BasicBlock{entry}}

	signature := hlir.NewMDNode(
		hlir.NewMDNode(),
		hlir.NewMDNode(signatureElementMD(0, "SV_Target", hlir.ComponentF32, hlir.SemanticTarget, 1, 1, 0)),
	)

	md := sampleResources()
	md[hlir.MDShaderModel] = shaderModelMD("ps")
	md[hlir.MDEntryPoints] = entryPointsMD(fn, signature)

	return &hlir.Module{Functions: []*hlir.Function{fn}, NamedMetadata: md}
}

// buildSampleCmp performs comparison sampling at level zero; the scalar
// result splats into a four-vector.
func buildSampleCmp() *hlir.Module {
	handleTy := hlir.PointerType{Elem: hlir.Float}
	texHandle := opTableCall(handleTy, hlir.OpCreateHandle,
		hlir.NewConstInt(uint64(hlir.ResourceSRV)), hlir.NewConstInt(0),
		hlir.NewConstInt(0), hlir.NewConstInt(0))
	sampHandle := opTableCall(handleTy, hlir.OpCreateHandle,
		hlir.NewConstInt(uint64(hlir.ResourceSampler)), hlir.NewConstInt(0),
		hlir.NewConstInt(0), hlir.NewConstInt(0))

	undefF := hlir.NewUndef(hlir.Float)
	undefI := hlir.NewUndef(hlir.Int32)
	sample := opTableCall(hlir.SampleResultStruct(hlir.Float), hlir.OpSampleCmpLevelZero,
		texHandle, sampHandle,
		hlir.NewConstFloat(0.5), hlir.NewConstFloat(0.5), undefF, undefF,
		undefI, undefI, undefI,
		hlir.NewConstFloat(0.75))
	red := &hlir.ExtractValue{Ty: hlir.Float, Aggregate: sample, Indices: []uint32{0}}
	store := opTableCall(hlir.Void, hlir.OpStoreOutput,
		hlir.NewConstInt(0), hlir.NewConstInt(0), hlir.NewConstInt(0), red)

	entry := &hlir.BasicBlock{
		Name:   "entry",
		Instrs: []hlir.Instruction{texHandle, sampHandle, sample, red, store},
		Term:   &hlir.Return{},
	}
	fn := &hlir.Function{Name: "main", Blocks: []*hlir.BasicBlock{entry}}

	signature := hlir.NewMDNode(
		hlir.NewMDNode(),
		hlir.NewMDNode(signatureElementMD(0, "SV_Target", hlir.ComponentF32, hlir.SemanticTarget, 1, 1, 0)),
	)

	md := sampleResources()
	md[hlir.MDShaderModel] = shaderModelMD("ps")
	md[hlir.MDEntryPoints] = entryPointsMD(fn, signature)

	return &hlir.Module{Functions: []*hlir.Function{fn}, NamedMetadata: md}
}

// buildPhiJoin branches on a comparison and joins with a phi.
func buildPhiJoin() *hlir.Module {
	cond := &hlir.Compare{Pred: hlir.PredICmpEQ, LHS: hlir.NewConstInt(1), RHS: hlir.NewConstInt(1)}
	a := &hlir.Binary{Op: hlir.OpFAdd, Ty: hlir.Float, LHS: hlir.NewConstFloat(1), RHS: hlir.NewConstFloat(2)}
	b := &hlir.Binary{Op: hlir.OpFMul, Ty: hlir.Float, LHS: hlir.NewConstFloat(3), RHS: hlir.NewConstFloat(4)}

	join := &hlir.BasicBlock{Name: "join"}
	bb1 := &hlir.BasicBlock{Name: "then", Instrs: []hlir.Instruction{a}, Term: &hlir.Branch{Target: join}}
	bb2 := &hlir.BasicBlock{Name: "else", Instrs: []hlir.Instruction{b}, Term: &hlir.Branch{Target: join}}
	entry := &hlir.BasicBlock{
		Name:   "entry",
		Instrs: []hlir.Instruction{cond},
		Term:   &hlir.CondBranch{Cond: cond, True: bb1, False: bb2},
	}

	phi := &hlir.Phi{Ty: hlir.Float, Incoming: []hlir.PhiIncoming{
		{Block: bb1, Value: a},
		{Block: bb2, Value: b},
	}}
	join.Instrs = []hlir.Instruction{phi}
	join.Term = &hlir.Return{}

	fn := &hlir.Function{Name: "main", Blocks: []*hlir.BasicBlock{entry, bb1, bb2, join}}

	return &hlir.Module{
		Functions: []*hlir.Function{fn},
		NamedMetadata: map[string]*hlir.MDNode{
			hlir.MDShaderModel: shaderModelMD("cs"),
			hlir.MDEntryPoints: entryPointsMD(fn, nil),
		},
	}
}

// buildSwitch dispatches over an integer with two cases plus default.
func buildSwitch() *hlir.Module {
	v := &hlir.Binary{Op: hlir.OpAdd, Ty: hlir.Int32, LHS: hlir.NewConstInt(1), RHS: hlir.NewConstInt(2)}

	bb0 := &hlir.BasicBlock{Name: "case0", Term: &hlir.Return{}}
	bb1 := &hlir.BasicBlock{Name: "case1", Term: &hlir.Return{}}
	def := &hlir.BasicBlock{Name: "default", Term: &hlir.Return{}}
	entry := &hlir.BasicBlock{
		Name:   "entry",
		Instrs: []hlir.Instruction{v},
		Term: &hlir.Switch{
			Cond:    v,
			Default: def,
			Cases: []hlir.SwitchCase{
				{Value: 0, Target: bb0},
				{Value: 1, Target: bb1},
			},
		},
	}

	fn := &hlir.Function{Name: "main", Blocks: []*hlir.BasicBlock{entry, bb0, bb1, def}}

	return &hlir.Module{
		Functions: []*hlir.Function{fn},
		NamedMetadata: map[string]*hlir.MDNode{
			hlir.MDShaderModel: shaderModelMD("cs"),
			hlir.MDEntryPoints: entryPointsMD(fn, nil),
		},
	}
}

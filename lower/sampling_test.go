package lower

import (
	"testing"

	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
)

func texture2DResources() *hlir.MDNode {
	return resourcesMD(
		hlir.NewMDNode(srvMD(0, "tex", 0, 1, hlir.KindTexture2D, hlir.ComponentF32)),
		nil, nil,
		hlir.NewMDNode(samplerMD(0, "samp", 0, 2)),
	)
}

func sampleHandles() (*hlir.Call, *hlir.Call) {
	handleTy := hlir.PointerType{Elem: hlir.Float}
	tex := opTableCall(handleTy, hlir.OpCreateHandle,
		hlir.NewConstInt(uint64(hlir.ResourceSRV)), hlir.NewConstInt(0),
		hlir.NewConstInt(0), hlir.NewConstInt(0))
	samp := opTableCall(handleTy, hlir.OpCreateHandle,
		hlir.NewConstInt(uint64(hlir.ResourceSampler)), hlir.NewConstInt(0),
		hlir.NewConstInt(0), hlir.NewConstInt(0))
	return tex, samp
}

func lowerSampleBlock(t *testing.T, instrs ...hlir.Instruction) (*gir.CFGNode, *Result, *gir.Builder) {
	t.Helper()
	mod := simpleModule("ps", nil, texture2DResources(), retBlock(instrs...))
	result, b, err := lowerModule(mod)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	return result.Function.EntryNode(), result, b
}

// TestSampleTexture2D is the end-to-end sampling scenario: implicit-lod
// sample of a Texture2D with zero offsets and no clamp.
func TestSampleTexture2D(t *testing.T) {
	tex, samp := sampleHandles()
	undefF := hlir.NewUndef(hlir.Float)
	sample := opTableCall(hlir.SampleResultStruct(hlir.Float), hlir.OpSample,
		tex, samp,
		hlir.NewConstFloat(0.5), hlir.NewConstFloat(0.25), undefF, undefF,
		hlir.NewConstInt(0), hlir.NewConstInt(0), hlir.NewUndef(hlir.Int32),
		hlir.NewUndef(hlir.Float))

	entry, result, b := lowerSampleBlock(t, tex, samp, sample)
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}

	// Handle loads, combined image, coordinate vector, then the sample.
	var ops []gir.Opcode
	for _, op := range entry.Operations {
		ops = append(ops, op.Op)
	}
	want := []gir.Opcode{gir.OpLoad, gir.OpLoad, gir.OpSampledImage, gir.OpCompositeConstruct, gir.OpImageSampleImplicitLod}
	if len(ops) != len(want) {
		t.Fatalf("operation stream = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("operation stream = %v, want %v", ops, want)
		}
	}

	coord := entry.Operations[3]
	if coord.TypeID != b.MakeVectorType(b.MakeFloatType(32), 2) {
		t.Errorf("coordinate type = %d, want vec2 float", coord.TypeID)
	}

	sampleOp := entry.Operations[4]
	if sampleOp.TypeID != b.MakeVectorType(b.MakeFloatType(32), 4) {
		t.Errorf("sample result type = %d, want vec4 float", sampleOp.TypeID)
	}
	// sampled image, coordinate, image-operands mask. Zero offsets set
	// no mask bit.
	if len(sampleOp.Arguments) != 3 {
		t.Fatalf("sample arguments = %v, want 3", sampleOp.Arguments)
	}
	if gir.ImageOperands(sampleOp.Arguments[2]) != 0 {
		t.Errorf("image operands = %#x, want none", sampleOp.Arguments[2])
	}
	if gir.ID(sampleOp.Arguments[0]) != entry.Operations[2].ID {
		t.Error("first argument is not the combined sampled image")
	}
}

// TestSampleConstOffset checks a non-zero constant offset switches on the
// ConstOffset operand and appends the offset vector.
func TestSampleConstOffset(t *testing.T) {
	tex, samp := sampleHandles()
	undefF := hlir.NewUndef(hlir.Float)
	sample := opTableCall(hlir.SampleResultStruct(hlir.Float), hlir.OpSample,
		tex, samp,
		hlir.NewConstFloat(0.5), hlir.NewConstFloat(0.25), undefF, undefF,
		hlir.NewConstInt(1), hlir.NewConstInt(0), hlir.NewUndef(hlir.Int32),
		hlir.NewUndef(hlir.Float))

	entry, _, b := lowerSampleBlock(t, tex, samp, sample)

	sampleOps := nodeOps(entry, gir.OpImageSampleImplicitLod)
	if len(sampleOps) != 1 {
		t.Fatalf("sample op count = %d", len(sampleOps))
	}
	op := sampleOps[0]
	if len(op.Arguments) != 4 {
		t.Fatalf("sample arguments = %v, want 4 (offset vector appended)", op.Arguments)
	}
	if gir.ImageOperands(op.Arguments[2])&gir.ImageOperandsConstOffset == 0 {
		t.Error("ConstOffset bit not set")
	}
	// The offset vector is an ivec2 of (1, 0).
	var offsetVec *gir.Operation
	for i := range entry.Operations {
		op := &entry.Operations[i]
		if op.Op == gir.OpCompositeConstruct && op.TypeID == b.MakeVectorType(b.MakeIntegerType(32, true), 2) {
			offsetVec = op
		}
	}
	if offsetVec == nil {
		t.Fatal("offset vector not built")
	}
	if gir.ID(offsetVec.Arguments[0]) != b.MakeIntConstant(1) || gir.ID(offsetVec.Arguments[1]) != b.MakeIntConstant(0) {
		t.Errorf("offset vector arguments = %v", offsetVec.Arguments)
	}
}

// TestSampleLevel checks explicit-lod sampling carries the Lod operand.
func TestSampleLevel(t *testing.T) {
	tex, samp := sampleHandles()
	undefF := hlir.NewUndef(hlir.Float)
	undefI := hlir.NewUndef(hlir.Int32)
	sample := opTableCall(hlir.SampleResultStruct(hlir.Float), hlir.OpSampleLevel,
		tex, samp,
		hlir.NewConstFloat(0.5), hlir.NewConstFloat(0.25), undefF, undefF,
		undefI, undefI, undefI,
		hlir.NewConstFloat(3))

	entry, _, b := lowerSampleBlock(t, tex, samp, sample)

	ops := nodeOps(entry, gir.OpImageSampleExplicitLod)
	if len(ops) != 1 {
		t.Fatalf("explicit-lod op count = %d", len(ops))
	}
	op := ops[0]
	if gir.ImageOperands(op.Arguments[2])&gir.ImageOperandsLod == 0 {
		t.Error("Lod bit not set")
	}
	if gir.ID(op.Arguments[3]) != b.MakeFloatConstant(3) {
		t.Errorf("lod argument = %d, want constant 3.0", op.Arguments[3])
	}
}

// TestSampleMinLodClamp checks a defined clamp operand requests MinLod
// and enables the capability.
func TestSampleMinLodClamp(t *testing.T) {
	tex, samp := sampleHandles()
	undefF := hlir.NewUndef(hlir.Float)
	undefI := hlir.NewUndef(hlir.Int32)
	sample := opTableCall(hlir.SampleResultStruct(hlir.Float), hlir.OpSample,
		tex, samp,
		hlir.NewConstFloat(0.5), hlir.NewConstFloat(0.25), undefF, undefF,
		undefI, undefI, undefI,
		hlir.NewConstFloat(1))

	entry, _, b := lowerSampleBlock(t, tex, samp, sample)

	ops := nodeOps(entry, gir.OpImageSampleImplicitLod)
	op := ops[0]
	if gir.ImageOperands(op.Arguments[2])&gir.ImageOperandsMinLod == 0 {
		t.Error("MinLod bit not set")
	}
	if gir.ID(op.Arguments[len(op.Arguments)-1]) != b.MakeFloatConstant(1) {
		t.Error("clamp argument not appended last")
	}
	if !b.HasCapability(gir.CapabilityMinLod) {
		t.Error("MinLod capability not declared")
	}
}

// TestSampleCmpLevelZero is the comparison scenario: depth-flagged image
// type, dref explicit lod at constant zero, scalar result splat to vec4.
func TestSampleCmpLevelZero(t *testing.T) {
	tex, samp := sampleHandles()
	undefF := hlir.NewUndef(hlir.Float)
	undefI := hlir.NewUndef(hlir.Int32)
	sample := opTableCall(hlir.SampleResultStruct(hlir.Float), hlir.OpSampleCmpLevelZero,
		tex, samp,
		hlir.NewConstFloat(0.5), hlir.NewConstFloat(0.5), undefF, undefF,
		undefI, undefI, undefI,
		hlir.NewConstFloat(0.75))

	entry, result, b := lowerSampleBlock(t, tex, samp, sample)
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}

	ops := nodeOps(entry, gir.OpImageSampleDrefExplicitLod)
	if len(ops) != 1 {
		t.Fatalf("dref explicit-lod op count = %d", len(ops))
	}
	op := ops[0]
	if gir.ImageOperands(op.Arguments[2])&gir.ImageOperandsLod == 0 {
		t.Error("Lod bit not set")
	}
	// Level zero: the lod argument is constant 0.0.
	if gir.ID(op.Arguments[3]) != b.MakeFloatConstant(0) {
		t.Errorf("lod argument = %d, want constant 0.0", op.Arguments[3])
	}
	// The raw result is scalar float.
	if op.TypeID != b.MakeFloatType(32) {
		t.Errorf("raw sample type = %d, want scalar float", op.TypeID)
	}

	// Exactly one combined sampled image is built.
	sampledImages := nodeOps(entry, gir.OpSampledImage)
	if len(sampledImages) != 1 {
		t.Fatalf("sampled-image op count = %d", len(sampledImages))
	}

	// The final splat rebuilds a vec4 from the scalar.
	last := entry.Operations[len(entry.Operations)-1]
	if last.Op != gir.OpCompositeConstruct {
		t.Fatalf("final op = %v, want OpCompositeConstruct", last.Op)
	}
	if last.TypeID != b.MakeVectorType(b.MakeFloatType(32), 4) {
		t.Errorf("splat type = %d, want vec4 float", last.TypeID)
	}
	if len(last.Arguments) != 4 {
		t.Fatalf("splat arguments = %v, want 4", last.Arguments)
	}
	for _, arg := range last.Arguments {
		if gir.ID(arg) != op.ID {
			t.Errorf("splat argument %d is not the scalar sample result", arg)
		}
	}
}

// TestSampleCmpDref checks implicit-lod comparison sampling passes the
// dref operand between coordinates and the mask.
func TestSampleCmpDref(t *testing.T) {
	tex, samp := sampleHandles()
	undefF := hlir.NewUndef(hlir.Float)
	undefI := hlir.NewUndef(hlir.Int32)
	dref := hlir.NewConstFloat(0.5)
	sample := opTableCall(hlir.SampleResultStruct(hlir.Float), hlir.OpSampleCmp,
		tex, samp,
		hlir.NewConstFloat(0.5), hlir.NewConstFloat(0.5), undefF, undefF,
		undefI, undefI, undefI,
		dref, hlir.NewUndef(hlir.Float))

	entry, _, b := lowerSampleBlock(t, tex, samp, sample)

	ops := nodeOps(entry, gir.OpImageSampleDrefImplicitLod)
	if len(ops) != 1 {
		t.Fatalf("dref implicit-lod op count = %d", len(ops))
	}
	op := ops[0]
	// sampled image, coordinate, dref, mask.
	if len(op.Arguments) != 4 {
		t.Fatalf("arguments = %v, want 4", op.Arguments)
	}
	if gir.ID(op.Arguments[2]) != b.MakeFloatConstant(0.5) {
		t.Errorf("dref argument = %d", op.Arguments[2])
	}
	if gir.ImageOperands(op.Arguments[3]) != 0 {
		t.Errorf("image operands = %#x, want none", op.Arguments[3])
	}
}

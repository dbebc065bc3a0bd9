package lower

import (
	"testing"

	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
)

// TestPassthroughVertexShader is the end-to-end stage I/O scenario: one
// user POSITION input, one SV_Position output, entry returning void.
func TestPassthroughVertexShader(t *testing.T) {
	signature := hlir.NewMDNode(
		hlir.NewMDNode(signatureElementMD(0, "POSITION", hlir.ComponentF32, hlir.SemanticUser, 1, 4, 0)),
		hlir.NewMDNode(signatureElementMD(0, "SV_Position", hlir.ComponentF32, hlir.SemanticPosition, 1, 4, 0)),
	)
	mod := simpleModule("vs", signature, nil, retBlock())

	result, b, err := lowerModule(mod)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	ep := b.EntryPoint()
	if ep == nil || ep.Model != gir.ExecutionModelVertex {
		t.Fatalf("entry point = %+v, want vertex model", ep)
	}
	if len(ep.Interface) != 2 {
		t.Fatalf("interface list = %v, want two variables", ep.Interface)
	}

	globals := b.GlobalInstructions()
	if len(globals) != 2 {
		t.Fatalf("global count = %d, want 2", len(globals))
	}
	input, output := globals[0], globals[1]

	if got := gir.StorageClass(input.Arguments[0]); got != gir.StorageClassInput {
		t.Errorf("input storage class = %d", got)
	}
	if got := gir.StorageClass(output.Arguments[0]); got != gir.StorageClassOutput {
		t.Errorf("output storage class = %d", got)
	}

	inDecos := decorationsOf(b, input.ID)
	if loc := inDecos[gir.DecorationLocation]; len(loc) != 1 || loc[0] != 0 {
		t.Errorf("input location = %v, want [0]", loc)
	}
	outDecos := decorationsOf(b, output.ID)
	if builtin := outDecos[gir.DecorationBuiltIn]; len(builtin) != 1 || gir.BuiltIn(builtin[0]) != gir.BuiltInPosition {
		t.Errorf("output builtin = %v, want Position", builtin)
	}
	if _, ok := outDecos[gir.DecorationLocation]; ok {
		t.Error("built-in output must not carry a Location")
	}

	entry := result.Function.EntryNode()
	if _, ok := entry.Terminator.(gir.TermReturn); !ok {
		t.Errorf("entry terminator = %T, want return", entry.Terminator)
	}
	if entry.Name != "entry.entry" {
		t.Errorf("entry node name = %q, want entry.entry", entry.Name)
	}
}

// TestUserLocationsAdvanceByRows checks the location counter on both
// signature paths: each user element claims rows consecutive slots.
func TestUserLocationsAdvanceByRows(t *testing.T) {
	inputs := hlir.NewMDNode(
		signatureElementMD(0, "TEXCOORD", hlir.ComponentF32, hlir.SemanticUser, 2, 4, 0),
		signatureElementMD(1, "NORMAL", hlir.ComponentF32, hlir.SemanticUser, 1, 3, 0),
	)
	outputs := hlir.NewMDNode(
		signatureElementMD(0, "COLOR", hlir.ComponentF32, hlir.SemanticUser, 3, 4, 0),
		signatureElementMD(1, "FOG", hlir.ComponentF32, hlir.SemanticUser, 1, 1, 0),
	)
	mod := simpleModule("vs", hlir.NewMDNode(inputs, outputs), nil, retBlock())

	_, b, err := lowerModule(mod)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	globals := b.GlobalInstructions()
	if len(globals) != 4 {
		t.Fatalf("global count = %d, want 4", len(globals))
	}

	wantLocations := []uint32{0, 2, 0, 3}
	for i, want := range wantLocations {
		decos := decorationsOf(b, globals[i].ID)
		if loc := decos[gir.DecorationLocation]; len(loc) != 1 || loc[0] != want {
			t.Errorf("variable %d location = %v, want [%d]", i, decos[gir.DecorationLocation], want)
		}
	}
}

// TestTargetOutputLocation checks render-target outputs take their
// location from the semantic index, not the running counter.
func TestTargetOutputLocation(t *testing.T) {
	outputs := hlir.NewMDNode(
		signatureElementMD(0, "SV_Target", hlir.ComponentF32, hlir.SemanticTarget, 1, 4, 2),
	)
	mod := simpleModule("ps", hlir.NewMDNode(hlir.NewMDNode(), outputs), nil, retBlock())

	_, b, err := lowerModule(mod)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	decos := decorationsOf(b, b.GlobalInstructions()[0].ID)
	if loc := decos[gir.DecorationLocation]; len(loc) != 1 || loc[0] != 2 {
		t.Errorf("target location = %v, want [2]", loc)
	}
}

// TestUnknownBuiltinSkipped checks non-user system values without a
// builtin mapping get no decoration at all.
func TestUnknownBuiltinSkipped(t *testing.T) {
	inputs := hlir.NewMDNode(
		signatureElementMD(0, "SV_IsFrontFace", hlir.ComponentI1, hlir.SemanticIsFrontFace, 1, 1, 0),
	)
	mod := simpleModule("ps", hlir.NewMDNode(inputs, hlir.NewMDNode()), nil, retBlock())

	_, b, err := lowerModule(mod)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	decos := decorationsOf(b, b.GlobalInstructions()[0].ID)
	if len(decos) != 0 {
		t.Errorf("unexpected decorations: %v", decos)
	}
}

func TestStageIOLoadStore(t *testing.T) {
	signature := hlir.NewMDNode(
		hlir.NewMDNode(signatureElementMD(0, "POSITION", hlir.ComponentF32, hlir.SemanticUser, 1, 4, 0)),
		hlir.NewMDNode(signatureElementMD(0, "SV_Position", hlir.ComponentF32, hlir.SemanticPosition, 1, 4, 0)),
	)

	load := opTableCall(hlir.Float, hlir.OpLoadInput,
		hlir.NewConstInt(0), hlir.NewConstInt(0), hlir.NewConstInt(2))
	store := opTableCall(hlir.Void, hlir.OpStoreOutput,
		hlir.NewConstInt(0), hlir.NewConstInt(0), hlir.NewConstInt(2), load)
	mod := simpleModule("vs", signature, nil, retBlock(load, store))

	result, b, err := lowerModule(mod)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}

	entry := result.Function.EntryNode()
	// Vector I/O goes through per-component access chains: chain, load,
	// chain, store.
	var ops []gir.Opcode
	for _, op := range entry.Operations {
		ops = append(ops, op.Op)
	}
	want := []gir.Opcode{gir.OpInBoundsAccessChain, gir.OpLoad, gir.OpInBoundsAccessChain, gir.OpStore}
	if len(ops) != len(want) {
		t.Fatalf("operation stream = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("operation stream = %v, want %v", ops, want)
		}
	}

	// The input chain points at a float in Input storage and indexes by
	// the column constant.
	chain := entry.Operations[0]
	wantType := b.MakePointer(gir.StorageClassInput, b.MakeFloatType(32))
	if chain.TypeID != wantType {
		t.Errorf("input chain type = %d, want %d", chain.TypeID, wantType)
	}
	if idx := gir.ID(chain.Arguments[1]); idx != b.MakeUintConstant(2) {
		t.Errorf("input chain index = %d, want constant 2", idx)
	}

	// The store writes the loaded value through the output chain.
	storeOp := entry.Operations[3]
	if gir.ID(storeOp.Arguments[0]) != entry.Operations[2].ID {
		t.Error("store pointer is not the output chain")
	}
	if gir.ID(storeOp.Arguments[1]) != entry.Operations[1].ID {
		t.Error("store value is not the loaded input")
	}
}

package dxilspirv

import (
	"errors"
	"testing"

	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
	"github.com/pixelcluster/dxil-spirv/lower"
)

func minimalModule(model string) *hlir.Module {
	entry := &hlir.BasicBlock{Name: "entry", Term: &hlir.Return{}}
	fn := &hlir.Function{Name: "main", Blocks: []*hlir.BasicBlock{entry}}
	return &hlir.Module{
		Functions: []*hlir.Function{fn},
		NamedMetadata: map[string]*hlir.MDNode{
			hlir.MDShaderModel: hlir.NewMDNode(hlir.NewMDNode(hlir.MDString(model))),
			hlir.MDEntryPoints: hlir.NewMDNode(hlir.NewMDNode(
				&hlir.MDValue{}, hlir.MDString("main"), nil)),
		},
	}
}

func TestConvert(t *testing.T) {
	builder := gir.NewBuilder()
	result, err := Convert(minimalModule("vs"), builder)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if result.Function == nil || result.Function.Pool.Len() != 1 {
		t.Fatal("conversion did not produce a single-node function")
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if _, ok := result.Function.EntryNode().Terminator.(gir.TermReturn); !ok {
		t.Errorf("terminator = %T, want return", result.Function.EntryNode().Terminator)
	}
	if ep := builder.EntryPoint(); ep == nil || ep.Model != gir.ExecutionModelVertex {
		t.Errorf("entry point = %+v", ep)
	}
}

func TestConvertUnknownModel(t *testing.T) {
	_, err := Convert(minimalModule("rt"), gir.NewBuilder())
	if !errors.Is(err, lower.ErrUnknownExecutionModel) {
		t.Errorf("err = %v, want ErrUnknownExecutionModel", err)
	}
}

func TestConvertMissingMetadata(t *testing.T) {
	mod := minimalModule("vs")
	delete(mod.NamedMetadata, hlir.MDEntryPoints)
	_, err := Convert(mod, gir.NewBuilder())
	if !errors.Is(err, lower.ErrNoEntryPoint) {
		t.Errorf("err = %v, want ErrNoEntryPoint", err)
	}
}

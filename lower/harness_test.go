package lower

import (
	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
)

// Metadata assembly helpers shared by the package tests.

func shaderModelMD(model string) *hlir.MDNode {
	return hlir.NewMDNode(hlir.NewMDNode(hlir.MDString(model)))
}

func entryPointsMD(name string, signature *hlir.MDNode) *hlir.MDNode {
	return hlir.NewMDNode(hlir.NewMDNode(&hlir.MDValue{}, hlir.MDString(name), signature))
}

func signatureElementMD(elementID uint32, name string, component hlir.ComponentType,
	semantic hlir.Semantic, rows, cols, semanticIndex uint32) *hlir.MDNode {
	return hlir.NewMDNode(
		hlir.MDInt(elementID), hlir.MDString(name), hlir.MDInt(component),
		hlir.MDInt(semantic), hlir.MDInt(0), hlir.MDInt(0),
		hlir.MDInt(rows), hlir.MDInt(cols), hlir.MDInt(semanticIndex), hlir.MDInt(0),
	)
}

func srvMD(index uint32, name string, space, register uint32, kind hlir.ResourceKind, component hlir.ComponentType) *hlir.MDNode {
	return hlir.NewMDNode(
		hlir.MDInt(index), nil, hlir.MDString(name),
		hlir.MDInt(space), hlir.MDInt(register), hlir.MDInt(1),
		hlir.MDInt(kind), hlir.MDInt(0),
		hlir.NewMDNode(hlir.MDInt(0), hlir.MDInt(component)),
	)
}

func rawBufferMD(index uint32, name string, space, register uint32) *hlir.MDNode {
	return hlir.NewMDNode(
		hlir.MDInt(index), nil, hlir.MDString(name),
		hlir.MDInt(space), hlir.MDInt(register), hlir.MDInt(1),
		hlir.MDInt(hlir.KindRawBuffer), hlir.MDInt(0),
		hlir.NewMDNode(hlir.MDInt(1), hlir.MDInt(0)),
	)
}

func cbvMD(index uint32, name string, space, register, size uint32) *hlir.MDNode {
	return hlir.NewMDNode(
		hlir.MDInt(index), nil, hlir.MDString(name),
		hlir.MDInt(space), hlir.MDInt(register), hlir.MDInt(1),
		hlir.MDInt(size),
	)
}

func samplerMD(index uint32, name string, space, register uint32) *hlir.MDNode {
	return hlir.NewMDNode(
		hlir.MDInt(index), nil, hlir.MDString(name),
		hlir.MDInt(space), hlir.MDInt(register), hlir.MDInt(1),
		hlir.MDInt(0),
	)
}

func resourcesMD(srvs, uavs, cbvs, samplers *hlir.MDNode) *hlir.MDNode {
	lists := make([]hlir.Metadata, 4)
	for i, list := range []*hlir.MDNode{srvs, uavs, cbvs, samplers} {
		if list != nil {
			lists[i] = list
		}
	}
	return hlir.NewMDNode(hlir.NewMDNode(lists...))
}

func opTableCall(ty hlir.Type, opcode hlir.OpCode, args ...hlir.Value) *hlir.Call {
	callArgs := append([]hlir.Value{hlir.NewConstInt(uint64(opcode))}, args...)
	return &hlir.Call{Ty: ty, Callee: "dx.op.test", Args: callArgs}
}

// simpleModule wraps blocks into a single-function module with the given
// shader model and optional signature/resources metadata.
func simpleModule(model string, signature, resources *hlir.MDNode, blocks ...*hlir.BasicBlock) *hlir.Module {
	fn := &hlir.Function{Name: "main", Blocks: blocks}
	md := map[string]*hlir.MDNode{
		hlir.MDShaderModel: shaderModelMD(model),
		hlir.MDEntryPoints: entryPointsMD("main", signature),
	}
	if resources != nil {
		md[hlir.MDResources] = resources
	}
	return &hlir.Module{Functions: []*hlir.Function{fn}, NamedMetadata: md}
}

// retBlock returns a block holding the instructions and a void return.
func retBlock(instrs ...hlir.Instruction) *hlir.BasicBlock {
	return &hlir.BasicBlock{Name: "entry", Instrs: instrs, Term: &hlir.Return{}}
}

// lowerModule converts mod against a fresh builder and returns the result,
// the builder, and any structural error; callers check the error.
func lowerModule(mod *hlir.Module) (*Result, *gir.Builder, error) {
	b := gir.NewBuilder()
	result, err := Convert(mod, b)
	return result, b, err
}

// nodeOps collects a node's operations with the given opcode, in order.
func nodeOps(node *gir.CFGNode, opcode gir.Opcode) []gir.Operation {
	var ops []gir.Operation
	for _, op := range node.Operations {
		if op.Op == opcode {
			ops = append(ops, op)
		}
	}
	return ops
}

// decorationsOf collects decoration operand tuples applied to id.
func decorationsOf(b *gir.Builder, id gir.ID) map[gir.Decoration][]uint32 {
	decos := make(map[gir.Decoration][]uint32)
	for _, op := range b.AnnotationInstructions() {
		if op.Op == gir.OpDecorate && gir.ID(op.Arguments[0]) == id {
			decos[gir.Decoration(op.Arguments[1])] = op.Arguments[2:]
		}
	}
	return decos
}

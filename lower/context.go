package lower

import (
	"errors"
	"fmt"

	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
)

// Structural failures that abort lowering.
var (
	ErrNoShaderModel         = errors.New("module has no dx.shaderModel metadata")
	ErrUnknownExecutionModel = errors.New("unknown execution model")
	ErrNoEntryPoint          = errors.New("module has no dx.entryPoints metadata")
	ErrEntryFunctionMissing  = errors.New("entry-point function not found")
)

// Diagnostic records a non-fatal lowering problem. The instruction that
// triggered it was skipped, leaving a hole in the value-id graph that a
// downstream consumer may flag.
type Diagnostic struct {
	Msg string
}

func (d Diagnostic) String() string { return d.Msg }

// Result is the outcome of lowering one entry point. When Diagnostics is
// non-empty the function may contain dangling references; the caller
// decides whether to accept it.
type Result struct {
	Function    *gir.ConvertedFunction
	Diagnostics []Diagnostic
}

// Context carries the lowering state for one entry point: the module
// being lowered, the borrowed builder, the interning tables, the resource
// and stage I/O id tables, and the CFG bookkeeping. A Context is used by
// exactly one goroutine.
type Context struct {
	mod     *hlir.Module
	builder *gir.Builder
	pool    *gir.NodePool

	types  *TypeTable
	values *ValueTable

	srvIndexToID     []gir.ID
	uavIndexToID     []gir.ID
	cbvIndexToID     []gir.ID
	samplerIndexToID []gir.ID
	handleToPtrID    map[hlir.Value]gir.ID

	inputElementIDs  map[uint32]gir.ID
	outputElementIDs map[uint32]gir.ID

	bbMap map[*hlir.BasicBlock]gir.NodeIx

	diags []Diagnostic
}

func newContext(mod *hlir.Module, b *gir.Builder) *Context {
	types := NewTypeTable(b)
	return &Context{
		mod:              mod,
		builder:          b,
		pool:             gir.NewNodePool(),
		types:            types,
		values:           NewValueTable(b, types),
		handleToPtrID:    make(map[hlir.Value]gir.ID),
		inputElementIDs:  make(map[uint32]gir.ID),
		outputElementIDs: make(map[uint32]gir.ID),
		bbMap:            make(map[*hlir.BasicBlock]gir.NodeIx),
	}
}

func (c *Context) diagf(format string, args ...any) {
	c.diags = append(c.diags, Diagnostic{Msg: fmt.Sprintf(format, args...)})
}

// node returns the CFG node at ix.
func (c *Context) node(ix gir.NodeIx) *gir.CFGNode {
	return c.pool.Get(ix)
}

func executionModel(mod *hlir.Module) (gir.ExecutionModel, error) {
	meta := mod.GetNamedMetadata(hlir.MDShaderModel)
	if meta == nil {
		return gir.ExecutionModelMax, ErrNoShaderModel
	}
	node := meta.NodeOperand(0)
	model, ok := node.StringOperand(0)
	if !ok {
		return gir.ExecutionModelMax, ErrNoShaderModel
	}
	switch model {
	case "vs":
		return gir.ExecutionModelVertex, nil
	case "ps":
		return gir.ExecutionModelFragment, nil
	case "hs":
		return gir.ExecutionModelTessellationControl, nil
	case "ds":
		return gir.ExecutionModelTessellationEvaluation, nil
	case "gs":
		return gir.ExecutionModelGeometry, nil
	case "cs":
		return gir.ExecutionModelGLCompute, nil
	default:
		return gir.ExecutionModelMax, fmt.Errorf("%w: %q", ErrUnknownExecutionModel, model)
	}
}

// entryPointNode returns the first dx.entryPoints record.
func entryPointNode(mod *hlir.Module) (*hlir.MDNode, error) {
	meta := mod.GetNamedMetadata(hlir.MDEntryPoints)
	if meta == nil {
		return nil, ErrNoEntryPoint
	}
	node := meta.NodeOperand(0)
	if node == nil {
		return nil, ErrNoEntryPoint
	}
	return node, nil
}

func entryPointName(mod *hlir.Module) (string, error) {
	node, err := entryPointNode(mod)
	if err != nil {
		return "", err
	}
	name, ok := node.StringOperand(1)
	if !ok {
		return "", ErrNoEntryPoint
	}
	return name, nil
}

// signatureNode returns the entry point's signature metadata, or nil when
// the module declares none.
func signatureNode(mod *hlir.Module) *hlir.MDNode {
	node, err := entryPointNode(mod)
	if err != nil {
		return nil
	}
	return node.NodeOperand(2)
}

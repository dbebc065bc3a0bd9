package lower

import (
	"fmt"

	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
)

// Convert lowers the module's entry point into a gir function. The
// builder is borrowed for the duration of the call and must outlive the
// returned function. Structural problems return an error; unsupported
// instructions are skipped and reported in Result.Diagnostics.
func Convert(mod *hlir.Module, b *gir.Builder) (*Result, error) {
	c := newContext(mod, b)

	model, err := executionModel(mod)
	if err != nil {
		return nil, err
	}
	b.SetEntryPoint(model, "main")

	if err := c.emitResources(); err != nil {
		return nil, err
	}
	if err := c.emitStageInputVariables(); err != nil {
		return nil, err
	}
	if err := c.emitStageOutputVariables(); err != nil {
		return nil, err
	}

	name, err := entryPointName(mod)
	if err != nil {
		return nil, err
	}
	fn := mod.GetFunction(name)
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrEntryFunctionMissing, name)
	}
	entryBlock := fn.EntryBlock()
	if entryBlock == nil {
		return nil, fmt.Errorf("%w: %q has no blocks", ErrEntryFunctionMissing, name)
	}

	entry := c.pool.Create(entryBlock.Name + ".entry")
	c.bbMap[entryBlock] = entry

	visitOrder := c.discoverCFG(entryBlock)

	for _, bb := range visitOrder {
		ix := c.bbMap[bb]
		for _, inst := range bb.Instrs {
			c.emitInstruction(ix, inst)
		}
		c.lowerTerminator(ix, bb)
	}

	return &Result{
		Function:    &gir.ConvertedFunction{Pool: c.pool, Entry: entry},
		Diagnostics: c.diags,
	}, nil
}

// discoverCFG walks the block graph breadth-first from entry, allocating
// a CFG node per block and registering successor edges. The returned
// order is the visitation order used for instruction lowering.
func (c *Context) discoverCFG(entry *hlir.BasicBlock) []*hlir.BasicBlock {
	var visitOrder []*hlir.BasicBlock
	toProcess := []*hlir.BasicBlock{entry}
	var processing []*hlir.BasicBlock

	for len(toProcess) > 0 {
		toProcess, processing = processing[:0], toProcess
		for _, block := range processing {
			visitOrder = append(visitOrder, block)
			for _, succ := range block.Successors() {
				if _, seen := c.bbMap[succ]; !seen {
					toProcess = append(toProcess, succ)
					c.bbMap[succ] = c.pool.Create(succ.Name)
				}
				c.pool.AddBranch(c.bbMap[block], c.bbMap[succ])
			}
		}
	}
	return visitOrder
}

func (c *Context) lowerTerminator(ix gir.NodeIx, bb *hlir.BasicBlock) {
	node := c.node(ix)

	switch term := bb.Term.(type) {
	case *hlir.Branch:
		node.Terminator = gir.TermBranch{Target: c.bbMap[term.Target]}

	case *hlir.CondBranch:
		node.Terminator = gir.TermCondition{
			Cond:  c.values.Get(term.Cond),
			True:  c.bbMap[term.True],
			False: c.bbMap[term.False],
		}

	case *hlir.Switch:
		sw := gir.TermSwitch{
			Cond:    c.values.Get(term.Cond),
			Default: c.bbMap[term.Default],
		}
		for _, sc := range term.Cases {
			sw.Cases = append(sw.Cases, gir.TermCase{
				Value:  uint32(sc.Value),
				Target: c.bbMap[sc.Target],
			})
		}
		node.Terminator = sw

	case *hlir.Return:
		ret := gir.TermReturn{}
		if term.Value != nil {
			ret.Value = c.values.Get(term.Value)
		}
		node.Terminator = ret

	case *hlir.Unreachable:
		node.Terminator = gir.TermUnreachable{}

	default:
		c.diagf("unsupported terminator %T in block %q", bb.Term, bb.Name)
	}
}

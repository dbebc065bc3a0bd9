package lower

import (
	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
)

// ValueTable interns gir ids for hlir SSA values. The table is keyed by
// value identity and is idempotent: the same value always maps to the
// same id, so forward references from phis resolve consistently.
type ValueTable struct {
	builder *gir.Builder
	types   *TypeTable
	ids     map[hlir.Value]gir.ID
}

// NewValueTable returns a table over the given builder and type table.
func NewValueTable(b *gir.Builder, types *TypeTable) *ValueTable {
	return &ValueTable{
		builder: b,
		types:   types,
		ids:     make(map[hlir.Value]gir.ID),
	}
}

// Get returns the id for v, materializing constants and undefs eagerly.
func (t *ValueTable) Get(v hlir.Value) gir.ID {
	return t.GetWidth(v, 0)
}

// GetWidth is Get with an integer width override applied to integer
// constants. Integer constants are lowered only at width 32; other widths
// yield the sentinel id 0, which is cached like any other result.
func (t *ValueTable) GetWidth(v hlir.Value, forcedWidth uint32) gir.ID {
	if id, ok := t.ids[v]; ok {
		return id
	}

	var id gir.ID
	switch v := v.(type) {
	case *hlir.Undef:
		id = t.builder.CreateUndefined(t.types.TypeOf(v.Ty))
	case *hlir.ConstFloat:
		id = t.constantFloat(v)
	case *hlir.ConstInt:
		id = t.constantInt(v, forcedWidth)
	default:
		id = t.builder.AllocID()
	}

	t.ids[v] = id
	return id
}

// Bind records a pre-assigned id for v, used when an instruction lowers
// to an existing id (alloca binding to its variable).
func (t *ValueTable) Bind(v hlir.Value, id gir.ID) {
	t.ids[v] = id
}

func (t *ValueTable) constantFloat(c *hlir.ConstFloat) gir.ID {
	ty, ok := c.Ty.(hlir.FloatType)
	if !ok {
		return 0
	}
	switch ty.Bits {
	case 32:
		return t.builder.MakeFloatConstant(float32(c.Value))
	case 64:
		return t.builder.MakeDoubleConstant(c.Value)
	default:
		return 0
	}
}

func (t *ValueTable) constantInt(c *hlir.ConstInt, forcedWidth uint32) gir.ID {
	ty, ok := c.Ty.(hlir.IntType)
	if !ok {
		return 0
	}
	width := ty.Bits
	if forcedWidth != 0 {
		width = forcedWidth
	}
	if width != 32 {
		return 0
	}
	return t.builder.MakeUintConstant(uint32(c.Value))
}

package lower

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
)

// mdUint32 reads integer metadata operand i narrowed to 32 bits.
func mdUint32(node *hlir.MDNode, i int) (uint32, error) {
	raw, ok := node.IntOperand(i)
	if !ok {
		return 0, fmt.Errorf("metadata operand %d is not an integer", i)
	}
	v, err := safecast.Conv[uint32](raw)
	if err != nil {
		return 0, fmt.Errorf("metadata operand %d: %w", i, err)
	}
	return v, nil
}

// resourceEntry is the typed view over the operands shared by every
// resource metadata record: [index, undef placeholder, name, bind space,
// bind register, range size, kind-specific...].
type resourceEntry struct {
	index        uint32
	name         string
	bindSpace    uint32
	bindRegister uint32
	node         *hlir.MDNode
}

func decodeResourceEntry(node *hlir.MDNode) (resourceEntry, error) {
	var entry resourceEntry
	if node == nil {
		return entry, fmt.Errorf("resource metadata entry is not a node")
	}
	var err error
	if entry.index, err = mdUint32(node, 0); err != nil {
		return entry, err
	}
	if entry.bindSpace, err = mdUint32(node, 3); err != nil {
		return entry, err
	}
	if entry.bindRegister, err = mdUint32(node, 4); err != nil {
		return entry, err
	}
	entry.name, _ = node.StringOperand(2)
	entry.node = node
	return entry, nil
}

// imageDimension maps a resource kind to its image dimensionality.
func imageDimension(kind hlir.ResourceKind) gir.Dim {
	switch kind {
	case hlir.KindTexture1D, hlir.KindTexture1DArray:
		return gir.Dim1D
	case hlir.KindTexture2D, hlir.KindTexture2DMS, hlir.KindTexture2DArray, hlir.KindTexture2DMSArray:
		return gir.Dim2D
	case hlir.KindTexture3D:
		return gir.Dim3D
	case hlir.KindTextureCube, hlir.KindTextureCubeArray:
		return gir.DimCube
	case hlir.KindTypedBuffer, hlir.KindStructuredBuffer, hlir.KindRawBuffer:
		return gir.DimBuffer
	default:
		return gir.DimMax
	}
}

// imageArrayed reports whether a resource kind is an arrayed image.
func imageArrayed(kind hlir.ResourceKind) bool {
	switch kind {
	case hlir.KindTexture1DArray, hlir.KindTexture2DArray, hlir.KindTexture2DMSArray, hlir.KindTextureCubeArray:
		return true
	default:
		return false
	}
}

// imageMultisampled reports whether a resource kind is multisampled.
func imageMultisampled(kind hlir.ResourceKind) bool {
	switch kind {
	case hlir.KindTexture2DMS, hlir.KindTexture2DMSArray:
		return true
	default:
		return false
	}
}

func growIDTable(table []gir.ID, index uint32) []gir.ID {
	for uint32(len(table)) <= index {
		table = append(table, 0)
	}
	return table
}

func (c *Context) emitResources() error {
	meta := c.mod.GetNamedMetadata(hlir.MDResources)
	if meta == nil {
		return nil
	}
	lists := meta.NodeOperand(0)
	if lists == nil {
		return nil
	}

	if srvs := lists.NodeOperand(0); srvs != nil {
		if err := c.emitSRVs(srvs); err != nil {
			return err
		}
	}
	if uavs := lists.NodeOperand(1); uavs != nil {
		c.emitUAVs(uavs)
	}
	if cbvs := lists.NodeOperand(2); cbvs != nil {
		if err := c.emitCBVs(cbvs); err != nil {
			return err
		}
	}
	if samplers := lists.NodeOperand(3); samplers != nil {
		if err := c.emitSamplers(samplers); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) emitSRVs(srvs *hlir.MDNode) error {
	b := c.builder
	for i := 0; i < srvs.NumOperands(); i++ {
		entry, err := decodeResourceEntry(srvs.NodeOperand(i))
		if err != nil {
			return fmt.Errorf("srv %d: %w", i, err)
		}
		rawKind, err := mdUint32(entry.node, 6)
		if err != nil {
			return fmt.Errorf("srv %d: %w", i, err)
		}
		kind := hlir.ResourceKind(rawKind)

		tags := entry.node.NodeOperand(8)
		if tags == nil {
			return fmt.Errorf("srv %d: missing tags node", i)
		}

		var sampledType gir.ID
		if tag, _ := tags.IntOperand(0); tag == 0 {
			// Sampled format: component code in the next tag operand.
			component, err := mdUint32(tags, 1)
			if err != nil {
				return fmt.Errorf("srv %d: %w", i, err)
			}
			sampledType = c.types.Synth(hlir.ComponentType(component), 1, 1)
		} else {
			// Structured and raw buffers sample as uint; users bitcast.
			sampledType = b.MakeIntegerType(32, false)
		}

		typeID := b.MakeImageType(sampledType, imageDimension(kind), false,
			imageArrayed(kind), imageMultisampled(kind), 1, gir.ImageFormatUnknown)

		varID := b.CreateVariable(gir.StorageClassUniformConstant, typeID, entry.name)
		b.AddDecoration(varID, gir.DecorationDescriptorSet, entry.bindSpace)
		b.AddDecoration(varID, gir.DecorationBinding, entry.bindRegister)

		c.srvIndexToID = growIDTable(c.srvIndexToID, entry.index)
		c.srvIndexToID[entry.index] = varID
	}
	return nil
}

// emitUAVs is a stub: UAV variables are not part of the minimum surface.
// The table still grows so handle creation indexes safely.
func (c *Context) emitUAVs(uavs *hlir.MDNode) {
	for i := 0; i < uavs.NumOperands(); i++ {
		entry, err := decodeResourceEntry(uavs.NodeOperand(i))
		if err != nil {
			continue
		}
		c.uavIndexToID = growIDTable(c.uavIndexToID, entry.index)
	}
}

func (c *Context) emitCBVs(cbvs *hlir.MDNode) error {
	b := c.builder
	for i := 0; i < cbvs.NumOperands(); i++ {
		entry, err := decodeResourceEntry(cbvs.NodeOperand(i))
		if err != nil {
			return fmt.Errorf("cbv %d: %w", i, err)
		}
		size, err := mdUint32(entry.node, 6)
		if err != nil {
			return fmt.Errorf("cbv %d: %w", i, err)
		}
		vec4Length := (size + 15) / 16

		memberArray := b.MakeArrayType(
			b.MakeVectorType(b.MakeFloatType(32), 4),
			b.MakeUintConstant(vec4Length), 16)
		b.AddDecoration(memberArray, gir.DecorationArrayStride, 16)

		typeID := b.MakeStructType([]gir.ID{memberArray}, entry.name)
		b.AddMemberDecoration(typeID, 0, gir.DecorationOffset, 0)
		b.AddDecoration(typeID, gir.DecorationBlock)

		varID := b.CreateVariable(gir.StorageClassUniform, typeID, entry.name)
		b.AddDecoration(varID, gir.DecorationDescriptorSet, entry.bindSpace)
		b.AddDecoration(varID, gir.DecorationBinding, entry.bindRegister)

		c.cbvIndexToID = growIDTable(c.cbvIndexToID, entry.index)
		c.cbvIndexToID[entry.index] = varID
	}
	return nil
}

func (c *Context) emitSamplers(samplers *hlir.MDNode) error {
	b := c.builder
	for i := 0; i < samplers.NumOperands(); i++ {
		entry, err := decodeResourceEntry(samplers.NodeOperand(i))
		if err != nil {
			return fmt.Errorf("sampler %d: %w", i, err)
		}

		typeID := b.MakeSamplerType()
		varID := b.CreateVariable(gir.StorageClassUniformConstant, typeID, entry.name)
		b.AddDecoration(varID, gir.DecorationDescriptorSet, entry.bindSpace)
		b.AddDecoration(varID, gir.DecorationBinding, entry.bindRegister)

		c.samplerIndexToID = growIDTable(c.samplerIndexToID, entry.index)
		c.samplerIndexToID[entry.index] = varID
	}
	return nil
}

// resourceAt fetches a table slot, diagnosing out-of-range or unbound
// indices instead of panicking.
func (c *Context) resourceAt(table []gir.ID, index uint32, kind string) gir.ID {
	if index >= uint32(len(table)) || table[index] == 0 {
		c.diagf("no %s resource bound at range index %d", kind, index)
		return 0
	}
	return table[index]
}

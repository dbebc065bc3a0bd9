package lower

import (
	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
)

// buildSampledImage combines an image handle with a sampler handle into a
// sampled-image value. Comparison sampling needs a depth-flagged image
// type, so a fresh image type is derived from the handle's recorded one.
func (c *Context) buildSampledImage(ix gir.NodeIx, imageID, samplerID gir.ID, comparison bool) gir.ID {
	b := c.builder
	imageType := c.types.TypeOfID(imageID)
	dim := b.GetTypeDimensionality(imageType)
	arrayed := b.IsArrayedImageType(imageType)
	multisampled := b.IsMultisampledImageType(imageType)
	sampledFormat := b.GetImageComponentType(imageType)

	imageType = b.MakeImageType(sampledFormat, dim, comparison, arrayed, multisampled, 2, gir.ImageFormatUnknown)

	id := b.AllocID()
	c.appendOp(ix, gir.Operation{
		Op:        gir.OpSampledImage,
		ID:        id,
		TypeID:    b.MakeSampledImageType(imageType),
		Arguments: []uint32{uint32(imageID), uint32(samplerID)},
	})
	return id
}

// buildVector assembles elements into a vector of the element type, or
// passes a single element through unchanged.
func (c *Context) buildVector(ix gir.NodeIx, elementType gir.ID, elements []gir.ID) gir.ID {
	if len(elements) == 1 {
		return elements[0]
	}

	b := c.builder
	id := b.AllocID()
	op := gir.Operation{
		Op:     gir.OpCompositeConstruct,
		ID:     id,
		TypeID: b.MakeVectorType(elementType, uint32(len(elements))),
	}
	for _, e := range elements {
		op.Arguments = append(op.Arguments, uint32(e))
	}
	c.appendOp(ix, op)
	return id
}

// emitSample lowers the sampling intrinsic family. Operand schedule:
// (opcode, image handle, sampler handle, coord x4, offset x3, aux...).
func (c *Context) emitSample(opcode hlir.OpCode, ix gir.NodeIx, call *hlir.Call) {
	b := c.builder
	comparison := opcode == hlir.OpSampleCmp || opcode == hlir.OpSampleCmpLevelZero

	imageID := c.handleToPtrID[call.Operand(1)]
	samplerID := c.handleToPtrID[call.Operand(2)]
	combinedID := c.buildSampledImage(ix, imageID, samplerID, comparison)

	imageType := c.types.TypeOfID(imageID)
	dim := b.GetTypeDimensionality(imageType)
	arrayed := b.IsArrayedImageType(imageType)

	var numCoords int
	switch dim {
	case gir.Dim1D, gir.DimBuffer:
		numCoords = 1
	case gir.Dim2D:
		numCoords = 2
	case gir.Dim3D, gir.DimCube:
		numCoords = 3
	default:
		c.diagf("unexpected image dimensionality %d in sample", dim)
		return
	}

	numCoordsFull := numCoords
	if arrayed {
		numCoordsFull++
	}

	coords := make([]gir.ID, numCoordsFull)
	for i := range coords {
		coords[i] = c.values.Get(call.Operand(i + 3))
	}

	var imageOps gir.ImageOperands
	switch opcode {
	case hlir.OpSampleLevel, hlir.OpSampleCmpLevelZero:
		imageOps |= gir.ImageOperandsLod
	case hlir.OpSampleBias:
		imageOps |= gir.ImageOperandsBias
	}

	offsets := make([]gir.ID, numCoords)
	for i := range offsets {
		operand := call.Operand(i + 7)
		if hlir.IsUndef(operand) {
			offsets[i] = b.MakeIntConstant(0)
			continue
		}
		v, ok := hlir.ConstIntValue(operand)
		if !ok {
			c.diagf("sample offset operand %d is not constant", i)
			return
		}
		// A zero offset is a no-op; the offset operand kicks in only
		// when some component actually displaces the sample.
		if v != 0 {
			imageOps |= gir.ImageOperandsConstOffset
		}
		offsets[i] = b.MakeIntConstant(int32(v))
	}

	var drefID gir.ID
	if opcode == hlir.OpSampleCmp {
		drefID = c.values.Get(call.Operand(10))
	}

	auxIndex := 10
	if opcode == hlir.OpSampleCmp {
		auxIndex = 11
	}

	var auxID gir.ID
	switch {
	case opcode == hlir.OpSample || opcode == hlir.OpSampleCmp:
		// Optional clamp: a defined operand requests MinLod.
		if !hlir.IsUndef(call.Operand(auxIndex)) {
			auxID = c.values.Get(call.Operand(auxIndex))
			imageOps |= gir.ImageOperandsMinLod
			b.AddCapability(gir.CapabilityMinLod)
		}
	case opcode != hlir.OpSampleCmpLevelZero:
		auxID = c.values.Get(call.Operand(auxIndex))
	default:
		auxID = b.MakeFloatConstant(0)
	}

	op := gir.Operation{}
	switch opcode {
	case hlir.OpSampleLevel:
		op.Op = gir.OpImageSampleExplicitLod
	case hlir.OpSample, hlir.OpSampleBias:
		op.Op = gir.OpImageSampleImplicitLod
	case hlir.OpSampleCmp:
		op.Op = gir.OpImageSampleDrefImplicitLod
	case hlir.OpSampleCmpLevelZero:
		op.Op = gir.OpImageSampleDrefExplicitLod
	}

	// Comparison sampling returns a scalar; the result splats to a
	// four-vector afterwards so extract-value keeps working.
	var sampledValueID gir.ID
	if comparison {
		sampledValueID = b.AllocID()
		op.ID = sampledValueID
	} else {
		op.ID = c.values.Get(call)
	}

	result, ok := call.Ty.(hlir.StructType)
	if !ok || len(result.Fields) != 5 {
		c.diagf("sample result is not the expected five-member struct")
		return
	}
	// The fifth member is the residency status; as long as nothing
	// extracts it, ignoring it here is fine.
	op.TypeID = c.types.TypeOf(result.Fields[0])
	if !comparison {
		op.TypeID = b.MakeVectorType(op.TypeID, 4)
	}

	op.Arguments = append(op.Arguments, uint32(combinedID))
	op.Arguments = append(op.Arguments, uint32(c.buildVector(ix, b.MakeFloatType(32), coords)))

	if drefID != 0 {
		op.Arguments = append(op.Arguments, uint32(drefID))
	}

	op.Arguments = append(op.Arguments, uint32(imageOps))

	if imageOps&(gir.ImageOperandsBias|gir.ImageOperandsLod) != 0 {
		op.Arguments = append(op.Arguments, uint32(auxID))
	}
	if imageOps&gir.ImageOperandsConstOffset != 0 {
		offsetVec := c.buildVector(ix, b.MakeIntegerType(32, true), offsets)
		op.Arguments = append(op.Arguments, uint32(offsetVec))
	}
	if imageOps&gir.ImageOperandsMinLod != 0 {
		op.Arguments = append(op.Arguments, uint32(auxID))
	}

	c.appendOp(ix, op)

	if comparison {
		c.appendOp(ix, gir.Operation{
			Op:     gir.OpCompositeConstruct,
			ID:     c.values.Get(call),
			TypeID: b.MakeVectorType(b.MakeFloatType(32), 4),
			Arguments: []uint32{
				uint32(sampledValueID), uint32(sampledValueID),
				uint32(sampledValueID), uint32(sampledValueID),
			},
		})
	}
}

package lower

import (
	"fmt"

	"github.com/pixelcluster/dxil-spirv/gir"
	"github.com/pixelcluster/dxil-spirv/hlir"
)

// signatureElement is the typed view over one stage signature record.
// Operand layout: [element id, semantic name, component type, semantic,
// unused, interpolation, rows, cols, semantic index or start row, col].
type signatureElement struct {
	elementID     uint32
	semanticName  string
	componentType hlir.ComponentType
	semantic      hlir.Semantic
	rows          uint32
	cols          uint32
	semanticIndex uint32
}

func decodeSignatureElement(node *hlir.MDNode) (signatureElement, error) {
	var elem signatureElement
	if node == nil {
		return elem, fmt.Errorf("signature element is not a node")
	}
	var err error
	if elem.elementID, err = mdUint32(node, 0); err != nil {
		return elem, err
	}
	elem.semanticName, _ = node.StringOperand(1)
	rawComponent, err := mdUint32(node, 2)
	if err != nil {
		return elem, err
	}
	elem.componentType = hlir.ComponentType(rawComponent)
	rawSemantic, err := mdUint32(node, 3)
	if err != nil {
		return elem, err
	}
	elem.semantic = hlir.Semantic(rawSemantic)
	if elem.rows, err = mdUint32(node, 6); err != nil {
		return elem, err
	}
	if elem.cols, err = mdUint32(node, 7); err != nil {
		return elem, err
	}
	// Optional; Target outputs carry the render-target index here.
	elem.semanticIndex, _ = mdUint32(node, 8)
	return elem, nil
}

// emitBuiltinDecoration decorates id with the built-in matching the
// system-value semantic. Unknown built-ins are silently skipped.
func (c *Context) emitBuiltinDecoration(id gir.ID, semantic hlir.Semantic) {
	switch semantic {
	case hlir.SemanticPosition:
		c.builder.AddDecoration(id, gir.DecorationBuiltIn, uint32(gir.BuiltInPosition))
	default:
	}
}

func (c *Context) emitStageInputVariables() error {
	signature := signatureNode(c.mod)
	if signature == nil {
		return nil
	}
	inputs := signature.NodeOperand(0)
	if inputs == nil {
		return nil
	}

	b := c.builder
	location := uint32(0)

	for i := 0; i < inputs.NumOperands(); i++ {
		elem, err := decodeSignatureElement(inputs.NodeOperand(i))
		if err != nil {
			return fmt.Errorf("input signature element %d: %w", i, err)
		}

		typeID := c.types.Synth(elem.componentType, elem.rows, elem.cols)
		varID := b.CreateVariable(gir.StorageClassInput, typeID, elem.semanticName)
		c.inputElementIDs[elem.elementID] = varID

		if elem.semantic != hlir.SemanticUser {
			c.emitBuiltinDecoration(varID, elem.semantic)
		} else {
			b.AddDecoration(varID, gir.DecorationLocation, location)
			location += elem.rows
		}

		b.AddInterfaceID(varID)
	}
	return nil
}

func (c *Context) emitStageOutputVariables() error {
	signature := signatureNode(c.mod)
	if signature == nil {
		return nil
	}
	outputs := signature.NodeOperand(1)
	if outputs == nil {
		return nil
	}

	b := c.builder
	location := uint32(0)

	for i := 0; i < outputs.NumOperands(); i++ {
		elem, err := decodeSignatureElement(outputs.NodeOperand(i))
		if err != nil {
			return fmt.Errorf("output signature element %d: %w", i, err)
		}

		typeID := c.types.Synth(elem.componentType, elem.rows, elem.cols)
		varID := b.CreateVariable(gir.StorageClassOutput, typeID, elem.semanticName)
		c.outputElementIDs[elem.elementID] = varID

		switch {
		case elem.semantic == hlir.SemanticTarget:
			b.AddDecoration(varID, gir.DecorationLocation, elem.semanticIndex)
		case elem.semantic != hlir.SemanticUser:
			c.emitBuiltinDecoration(varID, elem.semantic)
		default:
			b.AddDecoration(varID, gir.DecorationLocation, location)
			location += elem.rows
		}

		b.AddInterfaceID(varID)
	}
	return nil
}

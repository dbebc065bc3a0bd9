package hlir

// Instruction represents an SSA instruction inside a basic block.
// Instructions are values; ones that produce no result (Store) have Void
// type. The set of kinds is closed: the lowering engine dispatches with an
// exhaustive type switch.
type Instruction interface {
	Value
	instruction()
}

// BinaryOp enumerates two-operand arithmetic and bitwise operators.
type BinaryOp uint8

const (
	OpFAdd BinaryOp = iota
	OpFSub
	OpFMul
	OpFDiv
	OpFRem
	OpAdd
	OpSub
	OpMul
	OpSDiv
	OpUDiv
	OpSRem
	OpURem
	OpShl
	OpLShr
	OpAShr
	OpAnd
	OpOr
	OpXor
)

// Binary represents a two-operand instruction.
type Binary struct {
	Op  BinaryOp
	Ty  Type
	LHS Value
	RHS Value
}

func (b *Binary) Type() Type   { return b.Ty }
func (b *Binary) instruction() {}

// UnaryOp enumerates one-operand operators.
type UnaryOp uint8

const (
	OpFNeg UnaryOp = iota
)

// Unary represents a one-operand instruction.
type Unary struct {
	Op UnaryOp
	Ty Type
	X  Value
}

func (u *Unary) Type() Type   { return u.Ty }
func (u *Unary) instruction() {}

// CastOp enumerates conversion operators.
type CastOp uint8

const (
	OpBitCast CastOp = iota
	OpSExt
	OpZExt
	OpTrunc
	OpFPExt
	OpFPTrunc
	OpFPToUI
	OpFPToSI
	OpUIToFP
	OpSIToFP
)

// Cast represents a conversion to Ty.
type Cast struct {
	Op CastOp
	Ty Type
	X  Value
}

func (c *Cast) Type() Type   { return c.Ty }
func (c *Cast) instruction() {}

// Predicate enumerates comparison predicates. F-prefixed predicates apply
// to floats (O = ordered, U = unordered), I-prefixed to integers.
type Predicate uint8

const (
	PredFCmpFalse Predicate = iota
	PredFCmpOEQ
	PredFCmpOGT
	PredFCmpOGE
	PredFCmpOLT
	PredFCmpOLE
	PredFCmpONE
	PredFCmpUEQ
	PredFCmpUGT
	PredFCmpUGE
	PredFCmpULT
	PredFCmpULE
	PredFCmpUNE
	PredFCmpTrue
	PredICmpEQ
	PredICmpNE
	PredICmpSLT
	PredICmpSLE
	PredICmpSGT
	PredICmpSGE
	PredICmpULT
	PredICmpULE
	PredICmpUGT
	PredICmpUGE
)

// Compare represents a comparison producing a boolean.
type Compare struct {
	Pred Predicate
	LHS  Value
	RHS  Value
}

func (c *Compare) Type() Type   { return Bool }
func (c *Compare) instruction() {}

// Load reads through a pointer.
type Load struct {
	Ty  Type
	Ptr Value
}

func (l *Load) Type() Type   { return l.Ty }
func (l *Load) instruction() {}

// Store writes Val through Ptr. Operand order follows the input IR
// (value first); the emitted operation swaps to (pointer, value).
type Store struct {
	Val Value
	Ptr Value
}

func (s *Store) Type() Type   { return Void }
func (s *Store) instruction() {}

// GEP computes an element pointer from a base pointer and indices.
// Operands[0] is the base; Operands[1] must be constant zero and is dropped
// during lowering; the rest are chain indices.
type GEP struct {
	Ty       Type
	InBounds bool
	Operands []Value
}

func (g *GEP) Type() Type   { return g.Ty }
func (g *GEP) instruction() {}

// ExtractValue pulls a member out of an aggregate by literal indices.
type ExtractValue struct {
	Ty        Type
	Aggregate Value
	Indices   []uint32
}

func (e *ExtractValue) Type() Type   { return e.Ty }
func (e *ExtractValue) instruction() {}

// Alloca reserves function-local storage. Ty is the resulting pointer type;
// ArraySize must be constant 1.
type Alloca struct {
	Ty        PointerType
	ArraySize Value
	Name      string
}

func (a *Alloca) Type() Type   { return a.Ty }
func (a *Alloca) instruction() {}

// Select chooses between two values based on a boolean condition.
type Select struct {
	Ty       Type
	Cond     Value
	TrueVal  Value
	FalseVal Value
}

func (s *Select) Type() Type   { return s.Ty }
func (s *Select) instruction() {}

// PhiIncoming pairs a predecessor block with the value it contributes.
type PhiIncoming struct {
	Block *BasicBlock
	Value Value
}

// Phi merges values flowing in from predecessor blocks.
type Phi struct {
	Ty       Type
	Incoming []PhiIncoming
}

func (p *Phi) Type() Type   { return p.Ty }
func (p *Phi) instruction() {}

// Call invokes a named function. Callees prefixed "dx.op" are op-table
// intrinsics whose first argument is the constant sub-opcode.
type Call struct {
	Ty     Type
	Callee string
	Args   []Value
}

func (c *Call) Type() Type   { return c.Ty }
func (c *Call) instruction() {}

// Operand returns the i'th call argument.
func (c *Call) Operand(i int) Value { return c.Args[i] }

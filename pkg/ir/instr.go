package ir

import (
	"strconv"
	"strings"
)

// Op tags the closed set of instruction kinds.
type Op int

const (
	OpEntry Op = iota
	OpExit
	OpLabel
	OpGoto
	OpBc // two-target conditional branch
	OpBt // jump if condition true
	OpBf // jump if condition false
	OpMove
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNeg
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpCall
)

var opMnemonics = map[Op]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpMod: "mod",
	OpNeg: "neg",
	OpEq:  "eq", OpNe: "ne", OpLt: "lt", OpLe: "le", OpGt: "gt", OpGe: "ge",
}

func (op Op) Mnemonic() string { return opMnemonics[op] }

// Instruction is one entry of a function's instruction list. Identity is
// stable once created; branch and goto targets are resolved by identity,
// never by list position.
type Instruction interface {
	Op() Op
	String() string
}

// InstructionList is the append-only per-function sequence. Appending a
// single instruction and splicing another list's contents in order are the
// only composition primitives.
type InstructionList struct {
	insts []Instruction
}

func (l *InstructionList) Append(in Instruction) {
	l.insts = append(l.insts, in)
}

// AppendList splices another list's contents, preserving order.
func (l *InstructionList) AppendList(other *InstructionList) {
	l.insts = append(l.insts, other.insts...)
}

func (l *InstructionList) Instructions() []Instruction { return l.insts }
func (l *InstructionList) Len() int                    { return len(l.insts) }

// Entry opens a function body.
type Entry struct{}

func (*Entry) Op() Op         { return OpEntry }
func (*Entry) String() string { return "entry" }

// Exit is the single terminator of a function. Ret is nil for void
// functions.
type Exit struct {
	Ret Value
}

func (*Exit) Op() Op { return OpExit }
func (e *Exit) String() string {
	if e.Ret == nil {
		return "exit"
	}
	return "exit " + e.Ret.IRName()
}

// Label is a branch/goto target. It may be referenced by other instructions
// before it is itself appended to the list.
type Label struct {
	ID int
}

func (*Label) Op() Op            { return OpLabel }
func (l *Label) IRName() string  { return "L" + strconv.Itoa(l.ID) }
func (l *Label) String() string  { return l.IRName() + ":" }
func (l *Label) ValueType() Type { return TypeVoid }

// Goto is an unconditional jump.
type Goto struct {
	Target *Label
}

func (*Goto) Op() Op           { return OpGoto }
func (g *Goto) String() string { return "goto " + g.Target.IRName() }

// Branch is a conditional jump in exactly one of two shapes: the two-target
// form (bc) or the single-target form (bt/bf). The constructors are the only
// way to build one, so shape and tag always agree and the unused shape's
// fields stay nil.
type Branch struct {
	op   Op
	Cond Value

	// bc shape only.
	TrueTarget, FalseTarget *Label

	// bt/bf shape only.
	Target *Label
}

// NewCondBranch builds the two-target form: jump to t when the condition is
// true, to f otherwise.
func NewCondBranch(cond Value, t, f *Label) *Branch {
	return &Branch{op: OpBc, Cond: cond, TrueTarget: t, FalseTarget: f}
}

// NewBranchTrue builds the single-target form "jump here if condition true".
func NewBranchTrue(cond Value, target *Label) *Branch {
	return &Branch{op: OpBt, Cond: cond, Target: target}
}

// NewBranchFalse builds the single-target form "jump here if condition
// false".
func NewBranchFalse(cond Value, target *Label) *Branch {
	return &Branch{op: OpBf, Cond: cond, Target: target}
}

func (b *Branch) Op() Op { return b.op }

func (b *Branch) String() string {
	switch b.op {
	case OpBc:
		return "bc " + b.Cond.IRName() + ", " + b.TrueTarget.IRName() + ", " + b.FalseTarget.IRName()
	case OpBt:
		return "bt " + b.Cond.IRName() + ", " + b.Target.IRName()
	default:
		return "bf " + b.Cond.IRName() + ", " + b.Target.IRName()
	}
}

// Move copies Src into Dst. A Move doubles as a value naming its
// destination, so chained assignments can reference it directly.
type Move struct {
	Dst, Src Value
}

func NewMove(dst, src Value) *Move { return &Move{Dst: dst, Src: src} }

func (*Move) Op() Op            { return OpMove }
func (m *Move) String() string  { return "move " + m.Dst.IRName() + ", " + m.Src.IRName() }
func (m *Move) IRName() string  { return m.Dst.IRName() }
func (m *Move) ValueType() Type { return m.Dst.ValueType() }

// Binary applies an arithmetic or relational operator to two operands. The
// instruction is its own result value.
type Binary struct {
	op       Op
	L, R     Value
	Typ      Type
	ResultID int
}

func NewBinary(f *Func, op Op, l, r Value, typ Type) *Binary {
	return &Binary{op: op, L: l, R: r, Typ: typ, ResultID: f.newTempID()}
}

func (b *Binary) Op() Op { return b.op }
func (b *Binary) String() string {
	return b.IRName() + " = " + b.op.Mnemonic() + " " + b.L.IRName() + ", " + b.R.IRName()
}
func (b *Binary) IRName() string  { return "%t" + strconv.Itoa(b.ResultID) }
func (b *Binary) ValueType() Type { return b.Typ }

// Unary applies a one-operand operator; like Binary it doubles as its own
// result value.
type Unary struct {
	op       Op
	Operand  Value
	Typ      Type
	ResultID int
}

func NewUnary(f *Func, op Op, operand Value, typ Type) *Unary {
	return &Unary{op: op, Operand: operand, Typ: typ, ResultID: f.newTempID()}
}

func (u *Unary) Op() Op { return u.op }
func (u *Unary) String() string {
	return u.IRName() + " = " + u.op.Mnemonic() + " " + u.Operand.IRName()
}
func (u *Unary) IRName() string  { return "%t" + strconv.Itoa(u.ResultID) }
func (u *Unary) ValueType() Type { return u.Typ }

// Call invokes Callee with the ordered argument values, typed by the
// callee's declared return type. For non-void callees the instruction is the
// node's result value.
type Call struct {
	Callee   *Func
	Args     []Value
	Typ      Type
	ResultID int
}

func NewCall(f *Func, callee *Func, args []Value) *Call {
	c := &Call{Callee: callee, Args: args, Typ: callee.ReturnType}
	if c.Typ != TypeVoid {
		c.ResultID = f.newTempID()
	} else {
		c.ResultID = -1
	}
	return c
}

func (*Call) Op() Op { return OpCall }
func (c *Call) String() string {
	var sb strings.Builder
	if c.Typ != TypeVoid {
		sb.WriteString(c.IRName())
		sb.WriteString(" = ")
	}
	sb.WriteString("call ")
	sb.WriteString(c.Callee.Name)
	for _, a := range c.Args {
		sb.WriteString(", ")
		sb.WriteString(a.IRName())
	}
	return sb.String()
}
func (c *Call) IRName() string  { return "%t" + strconv.Itoa(c.ResultID) }
func (c *Call) ValueType() Type { return c.Typ }

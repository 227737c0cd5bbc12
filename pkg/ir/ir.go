package ir

import "strconv"

// Type is the translator's small type universe: integers, booleans produced
// by relational operators (kept as integers downstream), and void for
// functions without a return value.
type Type int

const (
	TypeVoid Type = iota
	TypeInt
	TypeBool
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "i32"
	case TypeBool:
		return "i1"
	default:
		return "void"
	}
}

// Value is anything an instruction may reference as an operand: a named
// variable, an interned constant, or an instruction that doubles as its own
// result handle. Values are referenced, never owned, by the instructions
// that use them.
type Value interface {
	IRName() string
	ValueType() Type
}

// Const is an interned integer constant. Program.ConstInt guarantees one
// instance per distinct value within a compilation run.
type Const struct {
	Value int64
}

func (c *Const) IRName() string  { return strconv.FormatInt(c.Value, 10) }
func (c *Const) ValueType() Type { return TypeInt }

// Variable is a named or anonymous local. The ID is unique within its
// function and fixes the IR name.
type Variable struct {
	ID   int
	Name string
	Typ  Type
}

func (v *Variable) IRName() string  { return "%l" + strconv.Itoa(v.ID) }
func (v *Variable) ValueType() Type { return v.Typ }

// LabelAllocator issues label identities for one compilation run. Names are
// pairwise distinct and strictly increasing in allocation order; the counter
// is never reset mid-run. It lives on the translation context rather than in
// package state so concurrent runs in one process stay independent.
type LabelAllocator struct {
	next int
}

// New allocates a label. The label is referenceable immediately, before it
// has been appended to any instruction list (forward reference).
func (a *LabelAllocator) New() *Label {
	l := &Label{ID: a.next}
	a.next++
	return l
}

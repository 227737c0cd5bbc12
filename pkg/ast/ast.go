package ast

import (
	"minic/pkg/ir"
)

// Op is the closed set of AST operator tags the translator dispatches on.
// The producer (parser) is a separate stage; this package only defines the
// node shape it hands over.
type Op int

const (
	CompileUnit Op = iota
	FuncDef
	FuncFormalParams
	FuncCall
	Block
	DeclStmt
	VarDecl
	LeafType
	LeafVarID
	LeafLiteralInt
	Add
	Sub
	Mul
	Div
	Mod
	Neg
	Not
	And
	Or
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Assign
	Return
	If
	While
	Break
	Continue
)

var opNames = map[Op]string{
	CompileUnit:      "compile-unit",
	FuncDef:          "func-def",
	FuncFormalParams: "formal-params",
	FuncCall:         "func-call",
	Block:            "block",
	DeclStmt:         "decl-stmt",
	VarDecl:          "var-decl",
	LeafType:         "type",
	LeafVarID:        "var-id",
	LeafLiteralInt:   "literal-int",
	Add:              "add",
	Sub:              "sub",
	Mul:              "mul",
	Div:              "div",
	Mod:              "mod",
	Neg:              "neg",
	Not:              "not",
	And:              "and",
	Or:               "or",
	Eq:               "eq",
	Ne:               "ne",
	Lt:               "lt",
	Le:               "le",
	Gt:               "gt",
	Ge:               "ge",
	Assign:           "assign",
	Return:           "return",
	If:               "if",
	While:            "while",
	Break:            "break",
	Continue:         "continue",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "unknown"
}

// Node is one AST node. The parsing stage owns the tree; the translator
// decorates Val and Insts in place and never rebuilds nodes.
type Node struct {
	Op   Op
	Sons []*Node

	// Payload for leaves and declarations.
	Name       string
	IntegerVal int64
	Typ        ir.Type
	Line       int

	// Slots written back by the translator.
	Val   ir.Value
	Insts ir.InstructionList

	// Blocks open their own scope unless the enclosing construct already
	// did (function bodies, see irgen).
	NeedScope bool

	// Boolean-context label slots. Only the NOT translator touches these;
	// if/while seed them before visiting a condition and read them back.
	TrueLabel, FalseLabel *ir.Label
}

// NewNode builds an interior node from its ordered children.
func NewNode(op Op, sons ...*Node) *Node {
	n := &Node{Op: op, Sons: sons}
	if op == Block {
		n.NeedScope = true
	}
	return n
}

// Insert appends one more child, preserving order.
func (n *Node) Insert(son *Node) *Node {
	n.Sons = append(n.Sons, son)
	return n
}

func (n *Node) At(line int) *Node {
	n.Line = line
	return n
}

// NewLiteralInt builds an integer literal leaf.
func NewLiteralInt(v int64) *Node {
	return &Node{Op: LeafLiteralInt, IntegerVal: v, Typ: ir.TypeInt}
}

// NewVarID builds an identifier-reference leaf.
func NewVarID(name string) *Node {
	return &Node{Op: LeafVarID, Name: name}
}

// NewType builds a type leaf.
func NewType(typ ir.Type) *Node {
	return &Node{Op: LeafType, Typ: typ}
}

// NewVarDecl builds one declaration: type leaf plus name leaf.
func NewVarDecl(typ ir.Type, name string) *Node {
	return NewNode(VarDecl, NewType(typ), &Node{Op: LeafVarID, Name: name})
}

// NewFuncDef builds a function definition node. The four children are fixed:
// return type, name, formal parameter list, body block.
func NewFuncDef(ret ir.Type, name string, params *Node, body *Node) *Node {
	if params == nil {
		params = NewNode(FuncFormalParams)
	}
	nameNode := &Node{Op: LeafVarID, Name: name}
	return NewNode(FuncDef, NewType(ret), nameNode, params, body)
}

// NewFuncCall builds a call node: callee name leaf plus argument list node.
func NewFuncCall(name string, args ...*Node) *Node {
	argList := NewNode(FuncFormalParams, args...)
	return NewNode(FuncCall, &Node{Op: LeafVarID, Name: name}, argList)
}

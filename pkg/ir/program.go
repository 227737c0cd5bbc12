package ir

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Param records a formal parameter by name and type. Parameter passing is
// not lowered yet; the list exists for arity checking and the dump.
type Param struct {
	Name string
	Typ  Type
}

// Func is one translated function: its metadata plus the instruction list
// handed to the downstream code generator.
type Func struct {
	Name       string
	ReturnType Type
	Params     []Param

	// RetVal is the single pre-allocated return-value slot every return
	// statement moves into. Nil for void functions.
	RetVal *Variable

	// ExitLabel is the shared epilogue target allocated at definition time
	// and appended once, at the very end of the list.
	ExitLabel *Label

	// Stack-layout hints for the backend.
	HasCall     bool
	MaxCallArgs int

	Insts InstructionList

	tempCount int
	varCount  int
}

func (f *Func) newTempID() int {
	id := f.tempCount
	f.tempCount++
	return id
}

// NewVar creates a local variable of the given type. An empty name makes an
// anonymous temporary slot.
func (f *Func) NewVar(typ Type, name string) *Variable {
	v := &Variable{ID: f.varCount, Name: name, Typ: typ}
	f.varCount++
	return v
}

// NoteCallArgs records a call site's argument count for the caller's
// stack-probing metadata.
func (f *Func) NoteCallArgs(n int) {
	f.HasCall = true
	if n > f.MaxCallArgs {
		f.MaxCallArgs = n
	}
}

// Program owns the per-function instruction lists of one compilation unit
// and the global declare-before-use function table.
type Program struct {
	Funcs []*Func

	funcsByName map[string]*Func
	consts      map[int64]*Const
}

func NewProgram() *Program {
	return &Program{
		funcsByName: make(map[string]*Func),
		consts:      make(map[int64]*Const),
	}
}

// NewFunc registers a function. A duplicate name returns nil; the caller
// reports the semantic error.
func (p *Program) NewFunc(name string, ret Type) *Func {
	if _, ok := p.funcsByName[name]; ok {
		return nil
	}
	f := &Func{Name: name, ReturnType: ret}
	p.Funcs = append(p.Funcs, f)
	p.funcsByName[name] = f
	return f
}

// FindFunc resolves a callee by name, nil if undeclared.
func (p *Program) FindFunc(name string) *Func {
	return p.funcsByName[name]
}

// ConstInt interns an integer constant: one Value instance per distinct
// literal within the run.
func (p *Program) ConstInt(v int64) *Const {
	if c, ok := p.consts[v]; ok {
		return c
	}
	c := &Const{Value: v}
	p.consts[v] = c
	return c
}

// Dump renders the canonical textual IR used for diagnostics and golden
// comparison. Branch forms are fixed: "bc cond, Ltrue, Lfalse",
// "bt cond, L", "bf cond, L".
func (p *Program) Dump() string {
	var sb strings.Builder
	for i, f := range p.Funcs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		f.dump(&sb)
	}
	return sb.String()
}

func (f *Func) dump(sb *strings.Builder) {
	sb.WriteString("func ")
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, prm := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(prm.Typ.String())
		if prm.Name != "" {
			sb.WriteByte(' ')
			sb.WriteString(prm.Name)
		}
	}
	sb.WriteString(") ")
	sb.WriteString(f.ReturnType.String())
	sb.WriteString(" {\n")
	for _, in := range f.Insts.Instructions() {
		if in.Op() != OpLabel {
			sb.WriteByte('\t')
		}
		sb.WriteString(in.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n")
}

// Fingerprint hashes the canonical dump, for cheap golden-output checks.
func (p *Program) Fingerprint() uint64 {
	return xxhash.Sum64String(p.Dump())
}

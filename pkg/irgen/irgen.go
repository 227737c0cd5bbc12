// Package irgen lowers a decorated AST into the linear, label-and-branch
// intermediate representation consumed by the backend. Translation is a
// single-threaded recursive walk: children are visited before their parent
// for value-producing nodes, each translator writes its result value and
// instruction list back onto the node, and the parent splices child lists in
// a construct-specific order.
package irgen

import (
	"fmt"

	"minic/pkg/ast"
	"minic/pkg/config"
	"minic/pkg/ir"
	"minic/pkg/util"
)

type scope struct {
	vars   map[string]*ir.Variable
	parent *scope
}

type loopLabels struct {
	entry, body, exit *ir.Label
}

type handler func(*ast.Node) bool

// Context carries all mutable state of one compilation run: the program
// under construction, the scope chain, the current function, the loop
// context stack, and the label allocator.
type Context struct {
	prog        *ir.Program
	cfg         *config.Config
	labels      ir.LabelAllocator
	currentFunc *ir.Func
	scopes      *scope
	loops       []loopLabels
	errs        int

	handlers map[ast.Op]handler
}

func NewContext(cfg *config.Config) *Context {
	ctx := &Context{
		prog: ir.NewProgram(),
		cfg:  cfg,
	}
	ctx.handlers = map[ast.Op]handler{
		ast.LeafLiteralInt: ctx.irLeafLiteralInt,
		ast.LeafVarID:      ctx.irLeafVarID,
		ast.LeafType:       ctx.irLeafType,

		ast.Add: ctx.irAdd,
		ast.Sub: ctx.irSub,
		ast.Mul: ctx.irMul,
		ast.Div: ctx.irDiv,
		ast.Mod: ctx.irMod,
		ast.Neg: ctx.irNeg,

		ast.And: ctx.irAnd,
		ast.Or:  ctx.irOr,
		ast.Not: ctx.irNot,

		ast.Eq: ctx.irEq,
		ast.Ne: ctx.irNe,
		ast.Lt: ctx.irLt,
		ast.Le: ctx.irLe,
		ast.Gt: ctx.irGt,
		ast.Ge: ctx.irGe,

		ast.Assign: ctx.irAssign,
		ast.Return: ctx.irReturn,

		ast.If:       ctx.irIf,
		ast.While:    ctx.irWhile,
		ast.Break:    ctx.irBreak,
		ast.Continue: ctx.irContinue,

		ast.FuncCall:         ctx.irFuncCall,
		ast.FuncDef:          ctx.irFuncDef,
		ast.FuncFormalParams: ctx.irFormalParams,

		ast.DeclStmt: ctx.irDeclStmt,
		ast.VarDecl:  ctx.irVarDecl,

		ast.Block:       ctx.irBlock,
		ast.CompileUnit: ctx.irCompileUnit,
	}
	return ctx
}

// Generate translates a compile unit. On failure no partial program is
// returned: instructions already appended by a failed subtree are poisoned.
func (ctx *Context) Generate(root *ast.Node) (*ir.Program, error) {
	if !ctx.visit(root) || ctx.errs > 0 {
		return nil, fmt.Errorf("translation failed with %d error(s)", max(ctx.errs, 1))
	}
	return ctx.prog, nil
}

// Program exposes the program under construction; tests use it to inspect
// partially-translated functions after an expected failure.
func (ctx *Context) Program() *ir.Program { return ctx.prog }

// visit dispatches a node to its translator. A tag with no registered
// translator is tolerated: it is logged and treated as a successful no-op so
// forward-incompatible input degrades gracefully.
func (ctx *Context) visit(node *ast.Node) bool {
	if node == nil {
		return false
	}
	h, ok := ctx.handlers[node.Op]
	if !ok {
		util.Warn(ctx.cfg, config.WarnUnknownNode, node.Line, "no translator for AST node '%v', skipping", node.Op)
		return true
	}
	return h(node)
}

func (ctx *Context) errorf(line int, format string, args ...any) bool {
	util.Error(line, format, args...)
	ctx.errs++
	return false
}

func (ctx *Context) enterScope() {
	ctx.scopes = &scope{vars: make(map[string]*ir.Variable), parent: ctx.scopes}
}

func (ctx *Context) leaveScope() {
	if ctx.scopes != nil {
		ctx.scopes = ctx.scopes.parent
	}
}

// defineVar creates a typed local in the current scope. Declarations never
// emit instructions.
func (ctx *Context) defineVar(typ ir.Type, name string) *ir.Variable {
	v := ctx.currentFunc.NewVar(typ, name)
	if ctx.scopes != nil && name != "" {
		ctx.scopes.vars[name] = v
	}
	return v
}

func (ctx *Context) findVar(name string) *ir.Variable {
	for s := ctx.scopes; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v
		}
	}
	return nil
}

func (ctx *Context) pushLoop(entry, body, exit *ir.Label) {
	ctx.loops = append(ctx.loops, loopLabels{entry: entry, body: body, exit: exit})
}

func (ctx *Context) popLoop() {
	ctx.loops = ctx.loops[:len(ctx.loops)-1]
}

func (ctx *Context) currentLoop() (loopLabels, bool) {
	if len(ctx.loops) == 0 {
		return loopLabels{}, false
	}
	return ctx.loops[len(ctx.loops)-1], true
}

func (ctx *Context) irCompileUnit(node *ast.Node) bool {
	ctx.currentFunc = nil
	for _, son := range node.Sons {
		if !ctx.visit(son) {
			return false
		}
	}
	return true
}

func (ctx *Context) irFuncDef(node *ast.Node) bool {
	if ctx.currentFunc != nil {
		return ctx.errorf(node.Line, "nested function definitions are not allowed")
	}

	// Fixed child layout: return type, name, formal parameters, body.
	typeNode, nameNode, paramNode, blockNode := node.Sons[0], node.Sons[1], node.Sons[2], node.Sons[3]

	f := ctx.prog.NewFunc(nameNode.Name, typeNode.Typ)
	if f == nil {
		return ctx.errorf(node.Line, "function '%s' is already defined", nameNode.Name)
	}

	ctx.currentFunc = f
	ctx.enterScope()

	f.Insts.Append(&ir.Entry{})

	// The shared epilogue label is allocated now so return statements can
	// target it, but appended only after the whole body.
	f.ExitLabel = ctx.labels.New()

	if typeNode.Typ != ir.TypeVoid {
		f.RetVal = f.NewVar(typeNode.Typ, "")
	}

	if !ctx.irFormalParams(paramNode) {
		return false
	}
	node.Insts.AppendList(&paramNode.Insts)

	// The function already opened its scope.
	blockNode.NeedScope = false
	if !ctx.irBlock(blockNode) {
		return false
	}
	node.Insts.AppendList(&blockNode.Insts)

	f.Insts.AppendList(&node.Insts)
	f.Insts.Append(f.ExitLabel)
	var ret ir.Value
	if f.RetVal != nil {
		ret = f.RetVal
	}
	f.Insts.Append(&ir.Exit{Ret: ret})

	ctx.currentFunc = nil
	ctx.leaveScope()
	return true
}

// irFormalParams records parameter names and types and binds each name in
// the function scope. Parameter-passing IR is not lowered yet, so no binding
// instructions are produced.
func (ctx *Context) irFormalParams(node *ast.Node) bool {
	f := ctx.currentFunc
	if f == nil {
		return ctx.errorf(node.Line, "formal parameters outside a function definition")
	}
	for _, p := range node.Sons {
		if p.Op != ast.VarDecl || len(p.Sons) < 2 {
			return ctx.errorf(p.Line, "malformed formal parameter")
		}
		name, typ := p.Sons[1].Name, p.Sons[0].Typ
		f.Params = append(f.Params, ir.Param{Name: name, Typ: typ})
		p.Val = ctx.defineVar(typ, name)
	}
	return true
}

func (ctx *Context) irBlock(node *ast.Node) bool {
	if node.NeedScope {
		ctx.enterScope()
	}
	for _, son := range node.Sons {
		if !ctx.visit(son) {
			return false
		}
		node.Insts.AppendList(&son.Insts)
	}
	if node.NeedScope {
		ctx.leaveScope()
	}
	return true
}

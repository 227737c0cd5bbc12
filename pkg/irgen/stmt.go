package irgen

import (
	"minic/pkg/ast"
	"minic/pkg/ir"
)

func (ctx *Context) irDeclStmt(node *ast.Node) bool {
	for _, son := range node.Sons {
		if !ctx.irVarDecl(son) {
			return false
		}
	}
	return true
}

// irVarDecl binds a new typed variable in the current scope. Declarations
// never emit instructions.
func (ctx *Context) irVarDecl(node *ast.Node) bool {
	if ctx.currentFunc == nil {
		return ctx.errorf(node.Line, "declaration outside a function")
	}
	typeNode, nameNode := node.Sons[0], node.Sons[1]
	node.Val = ctx.defineVar(typeNode.Typ, nameNode.Name)
	return true
}

func (ctx *Context) irReturn(node *ast.Node) bool {
	f := ctx.currentFunc
	if f == nil {
		return ctx.errorf(node.Line, "'return' outside a function")
	}

	if len(node.Sons) > 0 {
		expr := node.Sons[0]
		if !ctx.visit(expr) {
			return false
		}
		node.Insts.AppendList(&expr.Insts)
		if f.RetVal != nil {
			node.Insts.Append(ir.NewMove(f.RetVal, expr.Val))
			node.Val = expr.Val
		}
	}

	// Every return funnels through the single shared epilogue.
	node.Insts.Append(&ir.Goto{Target: f.ExitLabel})
	return true
}

// irIf always uses the three-label shape, whether or not an else branch is
// present; a missing else just leaves its segment empty. The conditional
// jump targets the condition node's false slot, which a NOT in condition
// position may have swapped.
func (ctx *Context) irIf(node *ast.Node) bool {
	if ctx.currentFunc == nil {
		return ctx.errorf(node.Line, "'if' outside a function")
	}

	trueL := ctx.labels.New()
	falseL := ctx.labels.New()
	endL := ctx.labels.New()

	cond := node.Sons[0]
	cond.TrueLabel, cond.FalseLabel = trueL, falseL
	if !ctx.visit(cond) {
		return false
	}
	node.Insts.AppendList(&cond.Insts)
	node.Insts.Append(ir.NewBranchFalse(cond.Val, cond.FalseLabel))

	node.Insts.Append(trueL)
	then := node.Sons[1]
	if !ctx.visit(then) {
		return false
	}
	node.Insts.AppendList(&then.Insts)
	node.Insts.Append(&ir.Goto{Target: endL})

	node.Insts.Append(falseL)
	if len(node.Sons) > 2 {
		els := node.Sons[2]
		if !ctx.visit(els) {
			return false
		}
		node.Insts.AppendList(&els.Insts)
	}
	node.Insts.Append(&ir.Goto{Target: endL})

	node.Insts.Append(endL)
	return true
}

// irWhile emits: entry label, condition, branch-on-true to the body label,
// then the exit label immediately followed by the body label. Downstream
// consumers depend on this exact physical placement.
func (ctx *Context) irWhile(node *ast.Node) bool {
	if ctx.currentFunc == nil {
		return ctx.errorf(node.Line, "'while' outside a function")
	}

	entryL := ctx.labels.New()
	bodyL := ctx.labels.New()
	exitL := ctx.labels.New()

	ctx.pushLoop(entryL, bodyL, exitL)
	defer ctx.popLoop()

	node.Insts.Append(entryL)

	cond := node.Sons[0]
	cond.TrueLabel, cond.FalseLabel = bodyL, exitL
	if !ctx.visit(cond) {
		return false
	}
	node.Insts.AppendList(&cond.Insts)
	node.Insts.Append(ir.NewBranchTrue(cond.Val, cond.TrueLabel))

	node.Insts.Append(exitL)
	node.Insts.Append(bodyL)

	body := node.Sons[1]
	if !ctx.visit(body) {
		return false
	}
	node.Insts.AppendList(&body.Insts)
	node.Insts.Append(&ir.Goto{Target: entryL})
	return true
}

func (ctx *Context) irBreak(node *ast.Node) bool {
	loop, ok := ctx.currentLoop()
	if !ok {
		return ctx.errorf(node.Line, "'break' statement not inside a loop")
	}
	node.Insts.Append(&ir.Goto{Target: loop.exit})
	return true
}

func (ctx *Context) irContinue(node *ast.Node) bool {
	loop, ok := ctx.currentLoop()
	if !ok {
		return ctx.errorf(node.Line, "'continue' statement not inside a loop")
	}
	node.Insts.Append(&ir.Goto{Target: loop.entry})
	return true
}

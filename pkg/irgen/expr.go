package irgen

import (
	"minic/pkg/ast"
	"minic/pkg/config"
	"minic/pkg/ir"
)

func (ctx *Context) irLeafLiteralInt(node *ast.Node) bool {
	node.Val = ctx.prog.ConstInt(node.IntegerVal)
	return true
}

func (ctx *Context) irLeafVarID(node *ast.Node) bool {
	v := ctx.findVar(node.Name)
	if v == nil {
		return ctx.errorf(node.Line, "undefined variable '%s'", node.Name)
	}
	node.Val = v
	return true
}

// Type leaves carry their payload already; nothing to translate.
func (ctx *Context) irLeafType(node *ast.Node) bool { return true }

func (ctx *Context) irAdd(node *ast.Node) bool { return ctx.irBinaryOp(node, ir.OpAdd, ir.TypeInt) }
func (ctx *Context) irSub(node *ast.Node) bool { return ctx.irBinaryOp(node, ir.OpSub, ir.TypeInt) }
func (ctx *Context) irMul(node *ast.Node) bool { return ctx.irBinaryOp(node, ir.OpMul, ir.TypeInt) }
func (ctx *Context) irDiv(node *ast.Node) bool { return ctx.irBinaryOp(node, ir.OpDiv, ir.TypeInt) }
func (ctx *Context) irMod(node *ast.Node) bool { return ctx.irBinaryOp(node, ir.OpMod, ir.TypeInt) }

func (ctx *Context) irEq(node *ast.Node) bool { return ctx.irBinaryOp(node, ir.OpEq, ir.TypeBool) }
func (ctx *Context) irNe(node *ast.Node) bool { return ctx.irBinaryOp(node, ir.OpNe, ir.TypeBool) }
func (ctx *Context) irLt(node *ast.Node) bool { return ctx.irBinaryOp(node, ir.OpLt, ir.TypeBool) }
func (ctx *Context) irLe(node *ast.Node) bool { return ctx.irBinaryOp(node, ir.OpLe, ir.TypeBool) }
func (ctx *Context) irGt(node *ast.Node) bool { return ctx.irBinaryOp(node, ir.OpGt, ir.TypeBool) }
func (ctx *Context) irGe(node *ast.Node) bool { return ctx.irBinaryOp(node, ir.OpGe, ir.TypeBool) }

// irBinaryOp is the uniform two-operand lowering: left first, then right,
// strictly in source order even for commutative operators; either failure
// aborts before anything is spliced. The new instruction is the node's
// result value.
func (ctx *Context) irBinaryOp(node *ast.Node, op ir.Op, typ ir.Type) bool {
	if ctx.currentFunc == nil {
		return ctx.errorf(node.Line, "expression outside a function")
	}
	left, right := node.Sons[0], node.Sons[1]
	if !ctx.visit(left) {
		return false
	}
	if !ctx.visit(right) {
		return false
	}

	in := ir.NewBinary(ctx.currentFunc, op, left.Val, right.Val, typ)
	node.Insts.AppendList(&left.Insts)
	node.Insts.AppendList(&right.Insts)
	node.Insts.Append(in)
	node.Val = in
	return true
}

func (ctx *Context) irNeg(node *ast.Node) bool {
	if ctx.currentFunc == nil {
		return ctx.errorf(node.Line, "expression outside a function")
	}
	operand := node.Sons[0]
	if !ctx.visit(operand) {
		return false
	}
	in := ir.NewUnary(ctx.currentFunc, ir.OpNeg, operand.Val, ir.TypeInt)
	node.Insts.AppendList(&operand.Insts)
	node.Insts.Append(in)
	node.Val = in
	return true
}

// irAnd lowers && with three labels and a materialized 0/1 result. When the
// left operand is a literal 0 the right operand is not translated at all, so
// none of its side effects reach the emitted list.
func (ctx *Context) irAnd(node *ast.Node) bool {
	f := ctx.currentFunc
	if f == nil {
		return ctx.errorf(node.Line, "expression outside a function")
	}
	left, right := node.Sons[0], node.Sons[1]
	if !ctx.visit(left) {
		return false
	}

	result := f.NewVar(ir.TypeInt, "")
	if c, ok := left.Val.(*ir.Const); ok && c.Value == 0 && ctx.cfg.IsFeatureEnabled(config.FeatFoldConstCond) {
		node.Insts.AppendList(&left.Insts)
		node.Insts.Append(ir.NewMove(result, ctx.prog.ConstInt(0)))
		node.Val = result
		return true
	}

	leftTrue := ctx.labels.New()
	leftFalse := ctx.labels.New()
	end := ctx.labels.New()

	node.Insts.AppendList(&left.Insts)
	node.Insts.Append(ir.NewBranchFalse(left.Val, leftFalse))
	node.Insts.Append(leftTrue)

	if !ctx.visit(right) {
		return false
	}
	node.Insts.AppendList(&right.Insts)
	node.Insts.Append(ir.NewBranchFalse(right.Val, leftFalse))

	node.Insts.Append(ir.NewMove(result, ctx.prog.ConstInt(1)))
	node.Insts.Append(&ir.Goto{Target: end})
	node.Insts.Append(leftFalse)
	node.Insts.Append(ir.NewMove(result, ctx.prog.ConstInt(0)))
	node.Insts.Append(&ir.Goto{Target: end})
	node.Insts.Append(end)

	node.Val = result
	return true
}

// irOr is the mirror of irAnd: a literal non-zero left operand decides the
// result and suppresses the right operand entirely.
func (ctx *Context) irOr(node *ast.Node) bool {
	f := ctx.currentFunc
	if f == nil {
		return ctx.errorf(node.Line, "expression outside a function")
	}
	left, right := node.Sons[0], node.Sons[1]
	if !ctx.visit(left) {
		return false
	}

	result := f.NewVar(ir.TypeInt, "")
	if c, ok := left.Val.(*ir.Const); ok && c.Value != 0 && ctx.cfg.IsFeatureEnabled(config.FeatFoldConstCond) {
		node.Insts.AppendList(&left.Insts)
		node.Insts.Append(ir.NewMove(result, ctx.prog.ConstInt(1)))
		node.Val = result
		return true
	}

	leftTrue := ctx.labels.New()
	leftFalse := ctx.labels.New()
	end := ctx.labels.New()

	node.Insts.AppendList(&left.Insts)
	node.Insts.Append(ir.NewBranchTrue(left.Val, leftTrue))
	node.Insts.Append(leftFalse)

	if !ctx.visit(right) {
		return false
	}
	node.Insts.AppendList(&right.Insts)
	node.Insts.Append(ir.NewBranchTrue(right.Val, leftTrue))

	node.Insts.Append(ir.NewMove(result, ctx.prog.ConstInt(0)))
	node.Insts.Append(&ir.Goto{Target: end})
	node.Insts.Append(leftTrue)
	node.Insts.Append(ir.NewMove(result, ctx.prog.ConstInt(1)))
	node.Insts.Append(&ir.Goto{Target: end})
	node.Insts.Append(end)

	node.Val = result
	return true
}

// irNot emits no instruction of its own: it swaps the node's true/false
// label slots and recurses. The consumer (if/while) seeds the slots before
// visiting the condition and reads them back afterwards, so the swap flips
// which label the conditional jump targets. Outside a direct if/while
// condition the swap has no consumer and NOT has no defined effect; that
// limitation is intentional.
func (ctx *Context) irNot(node *ast.Node) bool {
	node.TrueLabel, node.FalseLabel = node.FalseLabel, node.TrueLabel

	operand := node.Sons[0]
	operand.TrueLabel, operand.FalseLabel = node.TrueLabel, node.FalseLabel
	if !ctx.visit(operand) {
		return false
	}
	node.Insts.AppendList(&operand.Insts)
	node.Val = operand.Val

	// A nested NOT may have swapped again; surface the final slots.
	node.TrueLabel, node.FalseLabel = operand.TrueLabel, operand.FalseLabel
	return true
}

// irAssign visits the target first, then the source, but emits the source's
// instructions before the target's so side effects run in evaluation order.
// The Move doubles as the node's result, which makes chained assignment
// work.
func (ctx *Context) irAssign(node *ast.Node) bool {
	left, right := node.Sons[0], node.Sons[1]
	if !ctx.visit(left) {
		return false
	}
	if !ctx.visit(right) {
		return false
	}

	mov := ir.NewMove(left.Val, right.Val)
	node.Insts.AppendList(&right.Insts)
	node.Insts.AppendList(&left.Insts)
	node.Insts.Append(mov)
	node.Val = mov
	return true
}

func (ctx *Context) irFuncCall(node *ast.Node) bool {
	f := ctx.currentFunc
	if f == nil {
		return ctx.errorf(node.Line, "function call outside a function")
	}

	nameNode, argsNode := node.Sons[0], node.Sons[1]

	// Functions must be declared before use.
	callee := ctx.prog.FindFunc(nameNode.Name)
	if callee == nil {
		return ctx.errorf(nameNode.Line, "call to undeclared function '%s'", nameNode.Name)
	}

	f.NoteCallArgs(len(argsNode.Sons))

	var args []ir.Value
	for _, argNode := range argsNode.Sons {
		if !ctx.visit(argNode) {
			return false
		}
		args = append(args, argNode.Val)
		node.Insts.AppendList(&argNode.Insts)
	}

	if len(args) != len(callee.Params) {
		return ctx.errorf(node.Line, "function '%s' expects %d argument(s), got %d",
			callee.Name, len(callee.Params), len(args))
	}

	call := ir.NewCall(f, callee, args)
	node.Insts.Append(call)
	if callee.ReturnType != ir.TypeVoid {
		node.Val = call
	}
	return true
}

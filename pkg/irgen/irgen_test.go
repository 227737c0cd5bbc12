package irgen_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"minic/pkg/ast"
	"minic/pkg/config"
	"minic/pkg/ir"
	"minic/pkg/irgen"
	"minic/pkg/util"
)

func captureDiag(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	util.SetOutput(&buf)
	t.Cleanup(func() { util.SetOutput(os.Stderr) })
	return &buf
}

func lower(t *testing.T, root *ast.Node) *ir.Program {
	t.Helper()
	prog, err := irgen.NewContext(config.NewConfig()).Generate(root)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return prog
}

func unit(fns ...*ast.Node) *ast.Node { return ast.NewNode(ast.CompileUnit, fns...) }

func mainFn(stmts ...*ast.Node) *ast.Node {
	return ast.NewFuncDef(ir.TypeInt, "main", nil, ast.NewNode(ast.Block, stmts...))
}

func declInt(name string) *ast.Node {
	return ast.NewNode(ast.DeclStmt, ast.NewVarDecl(ir.TypeInt, name))
}

func assign(name string, expr *ast.Node) *ast.Node {
	return ast.NewNode(ast.Assign, ast.NewVarID(name), expr)
}

func kindOf(in ir.Instruction) string {
	switch in.Op() {
	case ir.OpEntry:
		return "entry"
	case ir.OpExit:
		return "exit"
	case ir.OpLabel:
		return "label"
	case ir.OpGoto:
		return "goto"
	case ir.OpBc:
		return "bc"
	case ir.OpBt:
		return "bt"
	case ir.OpBf:
		return "bf"
	case ir.OpMove:
		return "move"
	case ir.OpCall:
		return "call"
	default:
		return in.Op().Mnemonic()
	}
}

func kinds(insts []ir.Instruction) []string {
	out := make([]string, len(insts))
	for i, in := range insts {
		out[i] = kindOf(in)
	}
	return out
}

func funcKinds(f *ir.Func) []string { return kinds(f.Insts.Instructions()) }

func TestIfWithElseShape(t *testing.T) {
	root := unit(mainFn(
		declInt("a"),
		assign("a", ast.NewLiteralInt(1)),
		ast.NewNode(ast.If,
			ast.NewNode(ast.Gt, ast.NewVarID("a"), ast.NewLiteralInt(0)),
			ast.NewNode(ast.Block, assign("a", ast.NewLiteralInt(2))),
			ast.NewNode(ast.Block, assign("a", ast.NewLiteralInt(3)))),
		ast.NewNode(ast.Return, ast.NewVarID("a")),
	))
	prog := lower(t, root)

	f := prog.FindFunc("main")
	want := []string{
		"entry",
		"move", // a = 1
		"gt",
		"bf",
		"label", // true
		"move",
		"goto",
		"label", // false
		"move",
		"goto",
		"label", // end
		"move", // return value
		"goto",
		"label", // shared exit
		"exit",
	}
	if diff := cmp.Diff(want, funcKinds(f)); diff != "" {
		t.Fatalf("if/else shape mismatch (-want +got):\n%s", diff)
	}

	insts := f.Insts.Instructions()
	bf := insts[3].(*ir.Branch)
	if bf.Target != insts[7] {
		t.Error("bf must target the false label")
	}
	if insts[6].(*ir.Goto).Target != insts[10] || insts[9].(*ir.Goto).Target != insts[10] {
		t.Error("both branch arms must jump to the end label")
	}
}

func TestIfWithoutElseKeepsThreeLabelShape(t *testing.T) {
	root := unit(mainFn(
		declInt("a"),
		assign("a", ast.NewLiteralInt(1)),
		ast.NewNode(ast.If,
			ast.NewNode(ast.Gt, ast.NewVarID("a"), ast.NewLiteralInt(0)),
			ast.NewNode(ast.Block, assign("a", ast.NewLiteralInt(2)))),
		ast.NewNode(ast.Return, ast.NewVarID("a")),
	))
	prog := lower(t, root)

	want := []string{
		"entry",
		"move",
		"gt",
		"bf",
		"label", // true
		"move",
		"goto",
		"label", // false, empty segment
		"goto",
		"label", // end
		"move",
		"goto",
		"label",
		"exit",
	}
	if diff := cmp.Diff(want, funcKinds(prog.FindFunc("main"))); diff != "" {
		t.Fatalf("if-without-else shape mismatch (-want +got):\n%s", diff)
	}
}

func calleeF() *ast.Node {
	return ast.NewFuncDef(ir.TypeInt, "f", nil,
		ast.NewNode(ast.Block, ast.NewNode(ast.Return, ast.NewLiteralInt(7))))
}

func TestAndConstantFalseSuppressesCall(t *testing.T) {
	root := unit(calleeF(), mainFn(
		declInt("r"),
		assign("r", ast.NewNode(ast.And, ast.NewLiteralInt(0), ast.NewFuncCall("f"))),
		ast.NewNode(ast.Return, ast.NewVarID("r")),
	))
	prog := lower(t, root)

	f := prog.FindFunc("main")
	var sawResultMove bool
	for _, in := range f.Insts.Instructions() {
		if in.Op() == ir.OpCall {
			t.Fatal("short-circuited call must not appear in the instruction list")
		}
		if mv, ok := in.(*ir.Move); ok {
			if c, ok := mv.Src.(*ir.Const); ok && c.Value == 0 {
				sawResultMove = true
			}
		}
	}
	if !sawResultMove {
		t.Error("result temporary must be set to 0")
	}
}

func TestOrConstantTrueSuppressesCall(t *testing.T) {
	root := unit(calleeF(), mainFn(
		declInt("r"),
		assign("r", ast.NewNode(ast.Or, ast.NewLiteralInt(1), ast.NewFuncCall("f"))),
		ast.NewNode(ast.Return, ast.NewVarID("r")),
	))
	prog := lower(t, root)

	f := prog.FindFunc("main")
	var sawResultMove bool
	for _, in := range f.Insts.Instructions() {
		if in.Op() == ir.OpCall {
			t.Fatal("short-circuited call must not appear in the instruction list")
		}
		if mv, ok := in.(*ir.Move); ok {
			if c, ok := mv.Src.(*ir.Const); ok && c.Value == 1 {
				sawResultMove = true
			}
		}
	}
	if !sawResultMove {
		t.Error("result temporary must be set to 1")
	}
}

func TestAndNonConstantEmitsThreeLabelShape(t *testing.T) {
	andNode := ast.NewNode(ast.And, ast.NewVarID("a"), ast.NewFuncCall("f"))
	root := unit(calleeF(), mainFn(
		declInt("a"),
		declInt("r"),
		assign("a", ast.NewLiteralInt(1)),
		assign("r", andNode),
		ast.NewNode(ast.Return, ast.NewVarID("r")),
	))
	lower(t, root)

	want := []string{
		"bf",    // left false
		"label", // left true
		"call",  // right operand
		"bf",
		"move", // result = 1
		"goto",
		"label", // false
		"move", // result = 0
		"goto",
		"label", // end
	}
	if diff := cmp.Diff(want, kinds(andNode.Insts.Instructions())); diff != "" {
		t.Fatalf("&& lowering mismatch (-want +got):\n%s", diff)
	}
}

func TestFoldDisabledKeepsCall(t *testing.T) {
	cfg := config.NewConfig()
	cfg.ApplyFlag("Fno-fold-const-cond")
	root := unit(calleeF(), mainFn(
		declInt("r"),
		assign("r", ast.NewNode(ast.And, ast.NewLiteralInt(0), ast.NewFuncCall("f"))),
		ast.NewNode(ast.Return, ast.NewVarID("r")),
	))
	prog, err := irgen.NewContext(cfg).Generate(root)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	calls := 0
	for _, in := range prog.FindFunc("main").Insts.Instructions() {
		if in.Op() == ir.OpCall {
			calls++
		}
	}
	if calls != 1 {
		t.Errorf("with folding off the call must stay in the list, got %d call(s)", calls)
	}
}

func TestBreakOutsideLoopFails(t *testing.T) {
	buf := captureDiag(t)
	brk := ast.NewNode(ast.Break).At(12)
	root := unit(mainFn(brk, ast.NewNode(ast.Return, ast.NewLiteralInt(0))))

	if _, err := irgen.NewContext(config.NewConfig()).Generate(root); err == nil {
		t.Fatal("break outside a loop must fail translation")
	}
	if !strings.Contains(buf.String(), "'break' statement not inside a loop") {
		t.Errorf("missing diagnostic, got %q", buf.String())
	}
	if brk.Insts.Len() != 0 {
		t.Error("failed statement must emit zero instructions")
	}
}

func TestContinueOutsideLoopFails(t *testing.T) {
	buf := captureDiag(t)
	cont := ast.NewNode(ast.Continue).At(4)
	root := unit(mainFn(cont, ast.NewNode(ast.Return, ast.NewLiteralInt(0))))

	if _, err := irgen.NewContext(config.NewConfig()).Generate(root); err == nil {
		t.Fatal("continue outside a loop must fail translation")
	}
	if !strings.Contains(buf.String(), "'continue' statement not inside a loop") {
		t.Errorf("missing diagnostic, got %q", buf.String())
	}
	if cont.Insts.Len() != 0 {
		t.Error("failed statement must emit zero instructions")
	}
}

// exitLabelOf returns the label placed right after the branch-on-true of a
// lowered while node, which by construction is its loop exit.
func exitLabelOf(t *testing.T, while *ast.Node) *ir.Label {
	t.Helper()
	insts := while.Insts.Instructions()
	for i, in := range insts {
		if in.Op() == ir.OpBt {
			return insts[i+1].(*ir.Label)
		}
	}
	t.Fatal("no branch-on-true in while lowering")
	return nil
}

func TestBreakTargetsInnermostLoop(t *testing.T) {
	brk := ast.NewNode(ast.Break)
	inner := ast.NewNode(ast.While,
		ast.NewNode(ast.Lt, ast.NewVarID("j"), ast.NewLiteralInt(3)),
		ast.NewNode(ast.Block, brk))
	outer := ast.NewNode(ast.While,
		ast.NewNode(ast.Lt, ast.NewVarID("i"), ast.NewLiteralInt(3)),
		ast.NewNode(ast.Block,
			inner,
			assign("i", ast.NewNode(ast.Add, ast.NewVarID("i"), ast.NewLiteralInt(1)))))
	root := unit(mainFn(
		declInt("i"),
		declInt("j"),
		assign("i", ast.NewLiteralInt(0)),
		assign("j", ast.NewLiteralInt(0)),
		outer,
		ast.NewNode(ast.Return, ast.NewLiteralInt(0)),
	))
	lower(t, root)

	target := brk.Insts.Instructions()[0].(*ir.Goto).Target
	if target != exitLabelOf(t, inner) {
		t.Error("break must jump to the inner loop's exit label")
	}
	if target == exitLabelOf(t, outer) {
		t.Error("break must not jump to the outer loop's exit label")
	}
}

func TestContinueTargetsLoopEntry(t *testing.T) {
	cont := ast.NewNode(ast.Continue)
	loop := ast.NewNode(ast.While,
		ast.NewNode(ast.Lt, ast.NewVarID("i"), ast.NewLiteralInt(3)),
		ast.NewNode(ast.Block, cont))
	root := unit(mainFn(
		declInt("i"),
		assign("i", ast.NewLiteralInt(0)),
		loop,
		ast.NewNode(ast.Return, ast.NewLiteralInt(0)),
	))
	lower(t, root)

	entry := loop.Insts.Instructions()[0].(*ir.Label)
	if cont.Insts.Instructions()[0].(*ir.Goto).Target != entry {
		t.Error("continue must jump to the loop entry label")
	}
}

func TestWhilePlacesExitLabelBeforeBodyLabel(t *testing.T) {
	loop := ast.NewNode(ast.While,
		ast.NewNode(ast.Lt, ast.NewVarID("i"), ast.NewLiteralInt(3)),
		ast.NewNode(ast.Block,
			assign("i", ast.NewNode(ast.Add, ast.NewVarID("i"), ast.NewLiteralInt(1)))))
	root := unit(mainFn(
		declInt("i"),
		assign("i", ast.NewLiteralInt(0)),
		loop,
		ast.NewNode(ast.Return, ast.NewVarID("i")),
	))
	lower(t, root)

	want := []string{
		"label", // entry
		"lt",
		"bt",
		"label", // exit, immediately before the body label
		"label", // body
		"add",
		"move",
		"goto",
	}
	if diff := cmp.Diff(want, kinds(loop.Insts.Instructions())); diff != "" {
		t.Fatalf("while shape mismatch (-want +got):\n%s", diff)
	}

	insts := loop.Insts.Instructions()
	if insts[2].(*ir.Branch).Target != insts[4] {
		t.Error("branch-on-true must target the body label")
	}
	if insts[7].(*ir.Goto).Target != insts[0] {
		t.Error("loop back edge must target the entry label")
	}
}

func twoParamCallee() *ast.Node {
	params := ast.NewNode(ast.FuncFormalParams,
		ast.NewVarDecl(ir.TypeInt, "x"),
		ast.NewVarDecl(ir.TypeInt, "y"))
	body := ast.NewNode(ast.Block,
		ast.NewNode(ast.Return, ast.NewNode(ast.Add, ast.NewVarID("x"), ast.NewVarID("y"))))
	return ast.NewFuncDef(ir.TypeInt, "add", params, body)
}

func TestCallArityMismatchFails(t *testing.T) {
	buf := captureDiag(t)
	root := unit(twoParamCallee(), mainFn(
		ast.NewNode(ast.Return, ast.NewFuncCall("add", ast.NewLiteralInt(1))),
	))

	if _, err := irgen.NewContext(config.NewConfig()).Generate(root); err == nil {
		t.Fatal("arity mismatch must fail translation")
	}
	if !strings.Contains(buf.String(), "expects 2 argument(s), got 1") {
		t.Errorf("missing arity diagnostic, got %q", buf.String())
	}
}

func TestCallArgumentsEvaluateLeftToRight(t *testing.T) {
	call := ast.NewFuncCall("add",
		ast.NewNode(ast.Add, ast.NewLiteralInt(1), ast.NewLiteralInt(2)),
		ast.NewNode(ast.Mul, ast.NewLiteralInt(3), ast.NewLiteralInt(4)))
	root := unit(twoParamCallee(), mainFn(
		ast.NewNode(ast.Return, call),
	))
	lower(t, root)

	want := []string{"add", "mul", "call"}
	if diff := cmp.Diff(want, kinds(call.Insts.Instructions())); diff != "" {
		t.Fatalf("argument order mismatch (-want +got):\n%s", diff)
	}

	in := call.Insts.Instructions()[2].(*ir.Call)
	if in.Args[0] != call.Insts.Instructions()[0].(*ir.Binary) ||
		in.Args[1] != call.Insts.Instructions()[1].(*ir.Binary) {
		t.Error("call operands must be the argument results in order")
	}
}

func TestUndeclaredCalleeFailsWithLine(t *testing.T) {
	buf := captureDiag(t)
	call := ast.NewFuncCall("g")
	call.Sons[0].Line = 7
	root := unit(mainFn(ast.NewNode(ast.Return, call)))

	if _, err := irgen.NewContext(config.NewConfig()).Generate(root); err == nil {
		t.Fatal("undeclared callee must fail translation")
	}
	out := buf.String()
	if !strings.Contains(out, "undeclared function 'g'") || !strings.Contains(out, "line 7") {
		t.Errorf("missing line-numbered diagnostic, got %q", out)
	}
}

func TestCallSiteMetadata(t *testing.T) {
	root := unit(twoParamCallee(), mainFn(
		declInt("r"),
		assign("r", ast.NewFuncCall("add", ast.NewLiteralInt(1), ast.NewLiteralInt(2))),
		ast.NewNode(ast.Return, ast.NewVarID("r")),
	))
	prog := lower(t, root)

	f := prog.FindFunc("main")
	if !f.HasCall {
		t.Error("calling function must be marked as containing a call")
	}
	if f.MaxCallArgs != 2 {
		t.Errorf("MaxCallArgs = %d, want 2", f.MaxCallArgs)
	}
	if callee := prog.FindFunc("add"); callee.HasCall {
		t.Error("callee must not inherit the caller's has-call flag")
	}
}

func TestSingleSharedEpilogue(t *testing.T) {
	root := unit(mainFn(
		declInt("a"),
		assign("a", ast.NewLiteralInt(5)),
		ast.NewNode(ast.If,
			ast.NewNode(ast.Gt, ast.NewVarID("a"), ast.NewLiteralInt(0)),
			ast.NewNode(ast.Block, ast.NewNode(ast.Return, ast.NewLiteralInt(1))),
			ast.NewNode(ast.Block, ast.NewNode(ast.Return, ast.NewLiteralInt(2)))),
		ast.NewNode(ast.Return, ast.NewLiteralInt(3)),
	))
	prog := lower(t, root)

	f := prog.FindFunc("main")
	insts := f.Insts.Instructions()

	exits := 0
	for _, in := range insts {
		if in.Op() == ir.OpExit {
			exits++
		}
	}
	if exits != 1 {
		t.Fatalf("want exactly one exit instruction, got %d", exits)
	}
	if insts[len(insts)-1].Op() != ir.OpExit {
		t.Error("exit must be the last instruction")
	}
	if insts[len(insts)-2] != f.ExitLabel {
		t.Error("the shared exit label must immediately precede the exit")
	}

	// Every return funnels through the epilogue.
	returns := 0
	for _, in := range insts {
		if g, ok := in.(*ir.Goto); ok && g.Target == f.ExitLabel {
			returns++
		}
	}
	if returns != 3 {
		t.Errorf("want 3 jumps to the shared exit label, got %d", returns)
	}
}

func TestAssignmentOrderAndResult(t *testing.T) {
	aDecl := ast.NewVarDecl(ir.TypeInt, "a")
	assignNode := assign("a", ast.NewNode(ast.Add, ast.NewVarID("b"), ast.NewLiteralInt(1)))
	root := unit(mainFn(
		ast.NewNode(ast.DeclStmt, aDecl),
		declInt("b"),
		assignNode,
		ast.NewNode(ast.Return, ast.NewVarID("a")),
	))
	lower(t, root)

	want := []string{"add", "move"}
	if diff := cmp.Diff(want, kinds(assignNode.Insts.Instructions())); diff != "" {
		t.Fatalf("assignment order mismatch (-want +got):\n%s", diff)
	}

	mov, ok := assignNode.Val.(*ir.Move)
	if !ok {
		t.Fatalf("assignment result is %T, want *ir.Move", assignNode.Val)
	}
	if mov.Dst != aDecl.Val {
		t.Error("move destination must be the assigned variable")
	}
	if mov.Src != assignNode.Insts.Instructions()[0].(*ir.Binary) {
		t.Error("move source must be the add instruction's result")
	}
}

func TestDeclarationsEmitNoInstructions(t *testing.T) {
	decl := declInt("a")
	root := unit(mainFn(decl, ast.NewNode(ast.Return, ast.NewLiteralInt(0))))
	lower(t, root)

	if decl.Insts.Len() != 0 {
		t.Error("declarations must not emit instructions")
	}
}

func TestUnknownNodeIsToleratedAndLogged(t *testing.T) {
	buf := captureDiag(t)
	unknown := &ast.Node{Op: ast.Op(99)}
	root := unit(mainFn(unknown, ast.NewNode(ast.Return, ast.NewLiteralInt(0))))

	if _, err := irgen.NewContext(config.NewConfig()).Generate(root); err != nil {
		t.Fatalf("unknown node must not fail translation: %v", err)
	}
	if !strings.Contains(buf.String(), "no translator") {
		t.Errorf("missing diagnostic, got %q", buf.String())
	}
	if unknown.Insts.Len() != 0 {
		t.Error("unknown node must lower to a no-op")
	}
}

func TestUnknownNodeWarningCanBeSuppressed(t *testing.T) {
	buf := captureDiag(t)
	cfg := config.NewConfig()
	cfg.ApplyFlag("Wno-unknown-node")
	root := unit(mainFn(&ast.Node{Op: ast.Op(99)}, ast.NewNode(ast.Return, ast.NewLiteralInt(0))))

	if _, err := irgen.NewContext(cfg).Generate(root); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("suppressed warning still printed: %q", buf.String())
	}
}

func TestNestedFunctionDefinitionRejected(t *testing.T) {
	buf := captureDiag(t)
	nested := ast.NewFuncDef(ir.TypeInt, "inner", nil,
		ast.NewNode(ast.Block, ast.NewNode(ast.Return, ast.NewLiteralInt(0))))
	root := unit(mainFn(nested, ast.NewNode(ast.Return, ast.NewLiteralInt(0))))

	if _, err := irgen.NewContext(config.NewConfig()).Generate(root); err == nil {
		t.Fatal("nested function definition must fail translation")
	}
	if !strings.Contains(buf.String(), "nested function definitions are not allowed") {
		t.Errorf("missing diagnostic, got %q", buf.String())
	}
}

func TestDuplicateFunctionNameRejected(t *testing.T) {
	buf := captureDiag(t)
	root := unit(
		mainFn(ast.NewNode(ast.Return, ast.NewLiteralInt(0))),
		mainFn(ast.NewNode(ast.Return, ast.NewLiteralInt(1))),
	)

	if _, err := irgen.NewContext(config.NewConfig()).Generate(root); err == nil {
		t.Fatal("duplicate function name must fail translation")
	}
	if !strings.Contains(buf.String(), "already defined") {
		t.Errorf("missing diagnostic, got %q", buf.String())
	}
}

func TestUndefinedVariableFails(t *testing.T) {
	buf := captureDiag(t)
	root := unit(mainFn(ast.NewNode(ast.Return, ast.NewVarID("ghost").At(3))))

	if _, err := irgen.NewContext(config.NewConfig()).Generate(root); err == nil {
		t.Fatal("undefined variable must fail translation")
	}
	if !strings.Contains(buf.String(), "undefined variable 'ghost'") {
		t.Errorf("missing diagnostic, got %q", buf.String())
	}
}

func TestNotInConditionSwapsBranchTarget(t *testing.T) {
	ifNode := ast.NewNode(ast.If,
		ast.NewNode(ast.Not,
			ast.NewNode(ast.Gt, ast.NewVarID("a"), ast.NewLiteralInt(0))),
		ast.NewNode(ast.Block, assign("a", ast.NewLiteralInt(1))))
	root := unit(mainFn(
		declInt("a"),
		assign("a", ast.NewLiteralInt(5)),
		ifNode,
		ast.NewNode(ast.Return, ast.NewVarID("a")),
	))
	lower(t, root)

	insts := ifNode.Insts.Instructions()
	var bf *ir.Branch
	var bfIdx int
	for i, in := range insts {
		if in.Op() == ir.OpBf {
			bf, bfIdx = in.(*ir.Branch), i
			break
		}
	}
	if bf == nil {
		t.Fatal("no conditional jump in if lowering")
	}
	// The NOT swapped the slots, so the "jump if false" now lands on the
	// label that opens the then-branch instead of the else label.
	if bf.Target != insts[bfIdx+1] {
		t.Error("negated condition must branch to the swapped (true) label")
	}
}

func TestDoubleNotRestoresBranchTarget(t *testing.T) {
	ifNode := ast.NewNode(ast.If,
		ast.NewNode(ast.Not, ast.NewNode(ast.Not,
			ast.NewNode(ast.Gt, ast.NewVarID("a"), ast.NewLiteralInt(0)))),
		ast.NewNode(ast.Block, assign("a", ast.NewLiteralInt(1))))
	root := unit(mainFn(
		declInt("a"),
		assign("a", ast.NewLiteralInt(5)),
		ifNode,
		ast.NewNode(ast.Return, ast.NewVarID("a")),
	))
	lower(t, root)

	insts := ifNode.Insts.Instructions()
	var bf *ir.Branch
	for _, in := range insts {
		if in.Op() == ir.OpBf {
			bf = in.(*ir.Branch)
			break
		}
	}
	if bf == nil {
		t.Fatal("no conditional jump in if lowering")
	}
	// Find the false label: the one appended after the then-arm's goto.
	var gotoIdx int
	for i, in := range insts {
		if in.Op() == ir.OpGoto {
			gotoIdx = i
			break
		}
	}
	if bf.Target != insts[gotoIdx+1] {
		t.Error("double negation must branch to the original false label")
	}
}

func TestVoidFunctionEpilogue(t *testing.T) {
	ret := ast.NewNode(ast.Return)
	v := ast.NewFuncDef(ir.TypeVoid, "v", nil, ast.NewNode(ast.Block, ret))
	call := ast.NewFuncCall("v")
	root := unit(v, mainFn(
		call,
		ast.NewNode(ast.Return, ast.NewLiteralInt(0)),
	))
	prog := lower(t, root)

	f := prog.FindFunc("v")
	want := []string{"entry", "goto", "label", "exit"}
	if diff := cmp.Diff(want, funcKinds(f)); diff != "" {
		t.Fatalf("void function shape mismatch (-want +got):\n%s", diff)
	}
	if f.RetVal != nil {
		t.Error("void function must not allocate a return-value slot")
	}
	if ret.Val != nil {
		t.Error("bare return must not carry a result value")
	}
	if call.Val != nil {
		t.Error("void call must not carry a result value")
	}

	insts := f.Insts.Instructions()
	if got := insts[len(insts)-1].String(); got != "exit" {
		t.Errorf("void exit = %q, want \"exit\"", got)
	}
}

func TestScopedShadowing(t *testing.T) {
	// The inner block declares its own 'a'; the assignment inside must bind
	// to it, and the one after the block to the outer 'a'.
	outerDecl := ast.NewVarDecl(ir.TypeInt, "a")
	innerDecl := ast.NewVarDecl(ir.TypeInt, "a")
	innerAssign := assign("a", ast.NewLiteralInt(2))
	outerAssign := assign("a", ast.NewLiteralInt(3))
	root := unit(mainFn(
		ast.NewNode(ast.DeclStmt, outerDecl),
		ast.NewNode(ast.Block,
			ast.NewNode(ast.DeclStmt, innerDecl),
			innerAssign),
		outerAssign,
		ast.NewNode(ast.Return, ast.NewVarID("a")),
	))
	lower(t, root)

	if innerAssign.Val.(*ir.Move).Dst != innerDecl.Val {
		t.Error("inner assignment must bind to the shadowing variable")
	}
	if outerAssign.Val.(*ir.Move).Dst != outerDecl.Val {
		t.Error("outer assignment must bind to the outer variable")
	}
}

func TestGenerateDumpGolden(t *testing.T) {
	root := unit(mainFn(
		declInt("a"),
		assign("a", ast.NewNode(ast.Add, ast.NewLiteralInt(2), ast.NewLiteralInt(3))),
		ast.NewNode(ast.Return, ast.NewVarID("a")),
	))
	prog := lower(t, root)

	want := "func main() i32 {\n" +
		"\tentry\n" +
		"\t%t0 = add 2, 3\n" +
		"\tmove %l1, %t0\n" +
		"\tmove %l0, %l1\n" +
		"\tgoto L0\n" +
		"L0:\n" +
		"\texit %l0\n" +
		"}\n"
	if diff := cmp.Diff(want, prog.Dump()); diff != "" {
		t.Fatalf("dump mismatch (-want +got):\n%s", diff)
	}

	again := lower(t, unit(mainFn(
		declInt("a"),
		assign("a", ast.NewNode(ast.Add, ast.NewLiteralInt(2), ast.NewLiteralInt(3))),
		ast.NewNode(ast.Return, ast.NewVarID("a")),
	)))
	if prog.Fingerprint() != again.Fingerprint() {
		t.Error("identical programs must share a fingerprint")
	}
}

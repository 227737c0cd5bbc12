package main

import (
	"minic/pkg/ast"
	"minic/pkg/ir"
)

type sample struct {
	desc  string
	build func() *ast.Node
}

var samples = map[string]sample{
	"arith": {"arithmetic and assignment", buildArith},
	"logic": {"if/else with short-circuit operators", buildLogic},
	"loops": {"nested while loops with break and continue", buildLoops},
	"calls": {"function definitions and calls", buildCalls},
}

// int main() { int a; int b; a = 2 + 3 * 4; b = a - 1; return a + b; }
func buildArith() *ast.Node {
	body := ast.NewNode(ast.Block,
		ast.NewNode(ast.DeclStmt, ast.NewVarDecl(ir.TypeInt, "a")),
		ast.NewNode(ast.DeclStmt, ast.NewVarDecl(ir.TypeInt, "b")),
		ast.NewNode(ast.Assign,
			ast.NewVarID("a"),
			ast.NewNode(ast.Add,
				ast.NewLiteralInt(2),
				ast.NewNode(ast.Mul, ast.NewLiteralInt(3), ast.NewLiteralInt(4)))),
		ast.NewNode(ast.Assign,
			ast.NewVarID("b"),
			ast.NewNode(ast.Sub, ast.NewVarID("a"), ast.NewLiteralInt(1))),
		ast.NewNode(ast.Return,
			ast.NewNode(ast.Add, ast.NewVarID("a"), ast.NewVarID("b"))),
	)
	return ast.NewNode(ast.CompileUnit,
		ast.NewFuncDef(ir.TypeInt, "main", nil, body))
}

// int main() { int a; a = 5; if (a > 3 && a < 10) { a = 1; } else { a = 0; } return a || 0; }
func buildLogic() *ast.Node {
	cond := ast.NewNode(ast.And,
		ast.NewNode(ast.Gt, ast.NewVarID("a"), ast.NewLiteralInt(3)),
		ast.NewNode(ast.Lt, ast.NewVarID("a"), ast.NewLiteralInt(10)))
	body := ast.NewNode(ast.Block,
		ast.NewNode(ast.DeclStmt, ast.NewVarDecl(ir.TypeInt, "a")),
		ast.NewNode(ast.Assign, ast.NewVarID("a"), ast.NewLiteralInt(5)),
		ast.NewNode(ast.If, cond,
			ast.NewNode(ast.Block,
				ast.NewNode(ast.Assign, ast.NewVarID("a"), ast.NewLiteralInt(1))),
			ast.NewNode(ast.Block,
				ast.NewNode(ast.Assign, ast.NewVarID("a"), ast.NewLiteralInt(0)))),
		ast.NewNode(ast.Return,
			ast.NewNode(ast.Or, ast.NewVarID("a"), ast.NewLiteralInt(0))),
	)
	return ast.NewNode(ast.CompileUnit,
		ast.NewFuncDef(ir.TypeInt, "main", nil, body))
}

// int main() {
//   int i; int j; int s;
//   i = 0; s = 0;
//   while (i < 10) {
//     j = 0;
//     while (j < 10) {
//       j = j + 1;
//       if (j == 5) { break; }
//       s = s + j;
//     }
//     i = i + 1;
//     if (i == 3) { continue; }
//     s = s + i;
//   }
//   return s;
// }
func buildLoops() *ast.Node {
	inner := ast.NewNode(ast.While,
		ast.NewNode(ast.Lt, ast.NewVarID("j"), ast.NewLiteralInt(10)),
		ast.NewNode(ast.Block,
			ast.NewNode(ast.Assign, ast.NewVarID("j"),
				ast.NewNode(ast.Add, ast.NewVarID("j"), ast.NewLiteralInt(1))),
			ast.NewNode(ast.If,
				ast.NewNode(ast.Eq, ast.NewVarID("j"), ast.NewLiteralInt(5)),
				ast.NewNode(ast.Block, ast.NewNode(ast.Break))),
			ast.NewNode(ast.Assign, ast.NewVarID("s"),
				ast.NewNode(ast.Add, ast.NewVarID("s"), ast.NewVarID("j")))))
	outer := ast.NewNode(ast.While,
		ast.NewNode(ast.Lt, ast.NewVarID("i"), ast.NewLiteralInt(10)),
		ast.NewNode(ast.Block,
			ast.NewNode(ast.Assign, ast.NewVarID("j"), ast.NewLiteralInt(0)),
			inner,
			ast.NewNode(ast.Assign, ast.NewVarID("i"),
				ast.NewNode(ast.Add, ast.NewVarID("i"), ast.NewLiteralInt(1))),
			ast.NewNode(ast.If,
				ast.NewNode(ast.Eq, ast.NewVarID("i"), ast.NewLiteralInt(3)),
				ast.NewNode(ast.Block, ast.NewNode(ast.Continue))),
			ast.NewNode(ast.Assign, ast.NewVarID("s"),
				ast.NewNode(ast.Add, ast.NewVarID("s"), ast.NewVarID("i")))))
	body := ast.NewNode(ast.Block,
		ast.NewNode(ast.DeclStmt, ast.NewVarDecl(ir.TypeInt, "i")),
		ast.NewNode(ast.DeclStmt, ast.NewVarDecl(ir.TypeInt, "j")),
		ast.NewNode(ast.DeclStmt, ast.NewVarDecl(ir.TypeInt, "s")),
		ast.NewNode(ast.Assign, ast.NewVarID("i"), ast.NewLiteralInt(0)),
		ast.NewNode(ast.Assign, ast.NewVarID("s"), ast.NewLiteralInt(0)),
		outer,
		ast.NewNode(ast.Return, ast.NewVarID("s")),
	)
	return ast.NewNode(ast.CompileUnit,
		ast.NewFuncDef(ir.TypeInt, "main", nil, body))
}

// int add(int x, int y) { return x + y; }
// int main() { int r; r = add(3, add(1, 2)); return r; }
func buildCalls() *ast.Node {
	addBody := ast.NewNode(ast.Block,
		ast.NewNode(ast.Return,
			ast.NewNode(ast.Add, ast.NewVarID("x"), ast.NewVarID("y"))),
	)
	addParams := ast.NewNode(ast.FuncFormalParams,
		ast.NewVarDecl(ir.TypeInt, "x"),
		ast.NewVarDecl(ir.TypeInt, "y"))
	mainBody := ast.NewNode(ast.Block,
		ast.NewNode(ast.DeclStmt, ast.NewVarDecl(ir.TypeInt, "r")),
		ast.NewNode(ast.Assign, ast.NewVarID("r"),
			ast.NewFuncCall("add",
				ast.NewLiteralInt(3),
				ast.NewFuncCall("add", ast.NewLiteralInt(1), ast.NewLiteralInt(2)))),
		ast.NewNode(ast.Return, ast.NewVarID("r")),
	)
	return ast.NewNode(ast.CompileUnit,
		ast.NewFuncDef(ir.TypeInt, "add", addParams, addBody),
		ast.NewFuncDef(ir.TypeInt, "main", nil, mainBody))
}

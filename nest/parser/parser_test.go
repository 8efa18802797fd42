package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/SandwichEater577/Nes/internal/value"
	"github.com/SandwichEater577/Nes/nest/ast"
	"github.com/SandwichEater577/Nes/nest/parser"
)

func valueCmp() cmp.Option {
	return cmp.Comparer(func(a, b value.Value) bool { return a.String() == b.String() && a.Kind() == b.Kind() })
}

func TestParseLet(t *testing.T) {
	prog, err := parser.Parse(`let x = 1 + 2;`)
	require.NoError(t, err)
	want := []ast.Stmt{
		ast.Let{Name: "x", Value: ast.Binary{
			X:  ast.Lit{Value: value.Int(1)},
			Op: ast.Add,
			Y:  ast.Lit{Value: value.Int(2)},
		}},
	}
	if diff := cmp.Diff(want, prog.Stmts, valueCmp()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAssignVsExprStmt(t *testing.T) {
	prog, err := parser.Parse(`x = 5; foo();`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)
	assign, ok := prog.Stmts[0].(ast.Assign)
	require.True(t, ok)
	require.Equal(t, "x", assign.Name)
	exprStmt, ok := prog.Stmts[1].(ast.ExprStmt)
	require.True(t, ok)
	call, ok := exprStmt.X.(ast.Call)
	require.True(t, ok)
	require.Equal(t, "foo", call.Name)
}

func TestParseIfElseIf(t *testing.T) {
	prog, err := parser.Parse(`if a { } else if b { } else { }`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	top, ok := prog.Stmts[0].(ast.If)
	require.True(t, ok)
	require.Len(t, top.Else, 1)
	nested, ok := top.Else[0].(ast.If)
	require.True(t, ok)
	require.NotNil(t, nested.Else)
}

func TestParseForRange(t *testing.T) {
	prog, err := parser.Parse(`for i in 0..3 { println(i); }`)
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	f, ok := prog.Stmts[0].(ast.For)
	require.True(t, ok)
	require.Equal(t, "i", f.Var)
}

func TestParseFnDefAndReturn(t *testing.T) {
	prog, err := parser.Parse(`fn add(a, b) { return a + b; }`)
	require.NoError(t, err)
	fn, ok := prog.Stmts[0].(ast.FnDef)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, fn.Params)
	ret, ok := fn.Body[0].(ast.Return)
	require.True(t, ok)
	require.NotNil(t, ret.Value)
}

func TestParsePrecedence(t *testing.T) {
	prog, err := parser.Parse(`x = 1 + 2 * 3;`)
	require.NoError(t, err)
	assign := prog.Stmts[0].(ast.Assign)
	bin := assign.Value.(ast.Binary)
	require.Equal(t, ast.Add, bin.Op)
	rhs := bin.Y.(ast.Binary)
	require.Equal(t, ast.Mul, rhs.Op)
}

func TestParseErrors(t *testing.T) {
	_, err := parser.Parse(`let x = ;`)
	require.Error(t, err)

	_, err = parser.Parse(`fn f( { }`)
	require.Error(t, err)

	_, err = parser.Parse(`if x { `)
	require.Error(t, err)
}

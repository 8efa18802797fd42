package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SandwichEater577/Nes/nest/interp"
	"github.com/SandwichEater577/Nes/nest/parser"
)

func runNest(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	var out bytes.Buffer
	it := interp.New(&out, strings.NewReader(""))
	require.NoError(t, it.Run(prog))
	return out.String()
}

func TestFactorialRecursion(t *testing.T) {
	src := `fn fact(n) { if n <= 1 { return 1; } return n * fact(n - 1); } println(fact(5));`
	assert.Equal(t, "120\n", runNest(t, src))
}

func TestStringConcatLoop(t *testing.T) {
	src := `let s = "a"; for i in 0..3 { s = s + "b"; } println(s);`
	assert.Equal(t, "abbb\n", runNest(t, src))
}

func TestForRangeAscendingExclusive(t *testing.T) {
	src := `for i in 1..4 { print(i); }`
	assert.Equal(t, "123", runNest(t, src))
}

func TestForRangeDescending(t *testing.T) {
	src := `for i in 4..1 { print(i); }`
	assert.Equal(t, "321", runNest(t, src))
}

func TestWhileAndBreakContinue(t *testing.T) {
	src := `let i = 0; while i < 10 { i = i + 1; if i == 3 { continue; } if i == 6 { break; } print(i); }`
	assert.Equal(t, "1245", runNest(t, src))
}

func TestShortCircuitAndOr(t *testing.T) {
	src := `let a = 0 && 5; let b = 3 || 9; println(a); println(b);`
	assert.Equal(t, "0\n3\n", runNest(t, src))
}

func TestEqNeByDisplayString(t *testing.T) {
	src := `println(1 == "1"); println(1 == true);`
	assert.Equal(t, "true\nfalse\n", runNest(t, src))
}

func TestDivisionByZero(t *testing.T) {
	_, err := parser.Parse(`println(1 / 0);`)
	require.NoError(t, err)
	prog, _ := parser.Parse(`println(1 / 0);`)
	it := interp.New(&bytes.Buffer{}, strings.NewReader(""))
	err = it.Run(prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestUndefinedFunction(t *testing.T) {
	prog, _ := parser.Parse(`bogus();`)
	it := interp.New(&bytes.Buffer{}, strings.NewReader(""))
	err := it.Run(prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined function")
}

func TestArityMismatch(t *testing.T) {
	prog, _ := parser.Parse(`fn f(a) { return a; } f(1, 2);`)
	it := interp.New(&bytes.Buffer{}, strings.NewReader(""))
	err := it.Run(prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 1 args, got 2")
}

func TestScopeDepthRestoredAfterBlocks(t *testing.T) {
	src := `let x = 1; if true { let y = 2; } for i in 0..2 { let z = 3; } println(x);`
	assert.Equal(t, "1\n", runNest(t, src))
}

func TestBuiltinsArithmeticAndType(t *testing.T) {
	src := `println(type(1)); println(type(1.5)); println(type("a")); println(type(true)); ` +
		`println(abs(-3)); println(sqrt(9.0)); println(min(2, 5)); println(max(2, 5)); println(pow(2, 3));`
	assert.Equal(t, "int\nfloat\nstr\nbool\n3\n3\n2\n5\n8\n", runNest(t, src))
}

func TestMinMaxAlwaysReturnFloat(t *testing.T) {
	src := `println(type(min(2, 5))); println(type(max(2, 5)));`
	assert.Equal(t, "float\nfloat\n", runNest(t, src))
}

func TestAbsRejectsNonNumber(t *testing.T) {
	prog, _ := parser.Parse(`abs(true);`)
	it := interp.New(&bytes.Buffer{}, strings.NewReader(""))
	err := it.Run(prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abs() requires a number")
}

func TestIntFromNone(t *testing.T) {
	src := `fn give() { } println(int(give()));`
	assert.Equal(t, "0\n", runNest(t, src))
}

func TestIntFromStringRejectsTrailingGarbage(t *testing.T) {
	prog, _ := parser.Parse(`int("42abc");`)
	it := interp.New(&bytes.Buffer{}, strings.NewReader(""))
	err := it.Run(prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse")
}

func TestInputWithPromptWritesNoNewline(t *testing.T) {
	prog, err := parser.Parse(`println(input("Enter name: "));`)
	require.NoError(t, err)
	var out bytes.Buffer
	it := interp.New(&out, strings.NewReader("  bob  \n"))
	require.NoError(t, it.Run(prog))
	assert.Equal(t, "Enter name: bob\n", out.String())
}

package expand_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SandwichEater577/Nes/nesc/expand"
)

func TestVarsResolvesFromVarTable(t *testing.T) {
	got := expand.Vars("hello $name!", map[string]string{"name": "world"})
	assert.Equal(t, "hello world!", got)
}

func TestVarsFallsBackToEnv(t *testing.T) {
	t.Setenv("NES_EXPAND_TEST_VAR", "envval")
	got := expand.Vars("x=$NES_EXPAND_TEST_VAR", map[string]string{})
	assert.Equal(t, "x=envval", got)
}

func TestVarsPrefersVarTableOverEnv(t *testing.T) {
	t.Setenv("NES_EXPAND_TEST_VAR", "envval")
	got := expand.Vars("x=$NES_EXPAND_TEST_VAR", map[string]string{"NES_EXPAND_TEST_VAR": "shellval"})
	assert.Equal(t, "x=shellval", got)
}

func TestVarsLiteralFallbackWhenUnresolved(t *testing.T) {
	_, ok := os.LookupEnv("NES_EXPAND_TEST_UNSET")
	assert.False(t, ok)
	got := expand.Vars("x=$NES_EXPAND_TEST_UNSET", map[string]string{})
	assert.Equal(t, "x=$NES_EXPAND_TEST_UNSET", got)
}

func TestVarsDollarWithoutIdentIsLiteral(t *testing.T) {
	got := expand.Vars("price: $ 5", map[string]string{})
	assert.Equal(t, "price: $ 5", got)
}

func TestVarsTrailingDollar(t *testing.T) {
	got := expand.Vars("abc$", map[string]string{})
	assert.Equal(t, "abc$", got)
}

func TestVarsIdempotentWhenNoNestedVars(t *testing.T) {
	vars := map[string]string{"name": "world"}
	once := expand.Vars("hi $name", vars)
	twice := expand.Vars(once, vars)
	assert.Equal(t, once, twice)
}

func TestVarsMultipleOccurrences(t *testing.T) {
	got := expand.Vars("$a-$b-$a", map[string]string{"a": "1", "b": "2"})
	assert.Equal(t, "1-2-1", got)
}

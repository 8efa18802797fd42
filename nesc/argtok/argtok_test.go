package argtok_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SandwichEater577/Nes/nesc/argtok"
)

func TestSplitPlainWords(t *testing.T) {
	assert.Equal(t, []string{"echo", "hello", "world"}, argtok.Split("echo hello world"))
}

func TestSplitDoubleQuotedArg(t *testing.T) {
	assert.Equal(t, []string{"echo", "hello world", "foo"}, argtok.Split(`echo "hello world" foo`))
}

func TestSplitSingleQuotedArg(t *testing.T) {
	assert.Equal(t, []string{"echo", "a b c"}, argtok.Split(`echo 'a b c'`))
}

func TestSplitEmptyQuotedArgDropped(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, argtok.Split(`a '' b`))
}

func TestSplitUnterminatedQuoteFoldsRest(t *testing.T) {
	assert.Equal(t, []string{"echo", "abc def"}, argtok.Split(`echo "abc def`))
}

func TestSplitTabNotASeparator(t *testing.T) {
	assert.Equal(t, []string{"a\tb"}, argtok.Split("a\tb"))
}

func TestSplitMultipleSpacesCollapse(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, argtok.Split("a   b"))
}

func TestSplitLeadingTrailingSpaces(t *testing.T) {
	assert.Equal(t, []string{"a"}, argtok.Split("  a  "))
}

func TestSplitEmptyLine(t *testing.T) {
	assert.Empty(t, argtok.Split(""))
}

func TestSplitPreservesNonSpaceNonQuoteOrder(t *testing.T) {
	in := `let x='foo bar' y="baz"`
	got := argtok.Split(in)
	var joined string
	for _, a := range got {
		joined += a
	}
	assert.Equal(t, "letx=foo bary=baz", joined)
}

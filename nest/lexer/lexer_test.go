package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SandwichEater577/Nes/nest/lexer"
	"github.com/SandwichEater577/Nes/nest/token"
)

func kinds(t []token.Token) []token.Kind {
	out := make([]token.Kind, len(t))
	for i, tok := range t {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeBasics(t *testing.T) {
	toks, err := lexer.Tokenize(`let x = 1 + 2;`)
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.Let, token.Ident, token.Eq, token.IntLit, token.Plus, token.IntLit, token.Semi, token.EOF,
	}, kinds(toks))
}

func TestTokenizeRangeNotSwallowedByFloat(t *testing.T) {
	toks, err := lexer.Tokenize(`0..10`)
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.IntLit, token.DotDot, token.IntLit, token.EOF}, kinds(toks))
	assert.Equal(t, int64(0), toks[0].IntVal)
	assert.Equal(t, int64(10), toks[2].IntVal)
}

func TestTokenizeFloat(t *testing.T) {
	toks, err := lexer.Tokenize(`3.5`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.FloatLit, toks[0].Kind)
	assert.Equal(t, 3.5, toks[0].FloatVal)
}

func TestTokenizeString(t *testing.T) {
	toks, err := lexer.Tokenize(`"a\nb"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "a\nb", toks[0].StrVal)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := lexer.Tokenize(`"abc`)
	assert.Error(t, err)
}

func TestTokenizeKeywordsAndBooleans(t *testing.T) {
	toks, err := lexer.Tokenize(`if true else false`)
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.If, token.BoolLit, token.Else, token.BoolLit, token.EOF}, kinds(toks))
	assert.True(t, toks[1].BoolVal)
	assert.False(t, toks[3].BoolVal)
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	toks, err := lexer.Tokenize(`a == b != c && d || e <= f >= g`)
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.Ident, token.EqEq, token.Ident, token.BangEq, token.Ident, token.AmpAmp,
		token.Ident, token.PipePipe, token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident, token.EOF,
	}, kinds(toks))
}

func TestTokenizeComment(t *testing.T) {
	toks, err := lexer.Tokenize("let x = 1; # comment\nlet y = 2;")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.Let, token.Ident, token.Eq, token.IntLit, token.Semi,
		token.Let, token.Ident, token.Eq, token.IntLit, token.Semi, token.EOF,
	}, kinds(toks))
}

func TestTokenizeUnexpectedChar(t *testing.T) {
	_, err := lexer.Tokenize(`@`)
	assert.Error(t, err)
}

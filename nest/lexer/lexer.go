// Package lexer turns NesT source text into a token stream.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/SandwichEater577/Nes/nest/token"
)

// Error reports a lexical failure at a source line.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

func errf(line int, format string, args ...any) error {
	return &Error{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Tokenize lexes src into a token stream terminated by an EOF token.
func Tokenize(src string) ([]token.Token, error) {
	b := []byte(src)
	toks := make([]token.Token, 0, len(b)/4+1)
	i, n := 0, len(b)
	line := 1

	for i < n {
		c := b[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '\n':
			line++
			i++
		case c == '#':
			for i < n && b[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < n && b[i+1] == '/':
			for i < n && b[i] != '\n' {
				i++
			}
		case c == '(':
			toks = append(toks, token.Token{Kind: token.LParen, Line: line})
			i++
		case c == ')':
			toks = append(toks, token.Token{Kind: token.RParen, Line: line})
			i++
		case c == '{':
			toks = append(toks, token.Token{Kind: token.LBrace, Line: line})
			i++
		case c == '}':
			toks = append(toks, token.Token{Kind: token.RBrace, Line: line})
			i++
		case c == ',':
			toks = append(toks, token.Token{Kind: token.Comma, Line: line})
			i++
		case c == ';':
			toks = append(toks, token.Token{Kind: token.Semi, Line: line})
			i++
		case c == '+':
			toks = append(toks, token.Token{Kind: token.Plus, Line: line})
			i++
		case c == '-':
			toks = append(toks, token.Token{Kind: token.Minus, Line: line})
			i++
		case c == '*':
			toks = append(toks, token.Token{Kind: token.Star, Line: line})
			i++
		case c == '/':
			toks = append(toks, token.Token{Kind: token.Slash, Line: line})
			i++
		case c == '%':
			toks = append(toks, token.Token{Kind: token.Percent, Line: line})
			i++
		case c == '.' && i+1 < n && b[i+1] == '.':
			toks = append(toks, token.Token{Kind: token.DotDot, Line: line})
			i += 2
		case c == '=' && i+1 < n && b[i+1] == '=':
			toks = append(toks, token.Token{Kind: token.EqEq, Line: line})
			i += 2
		case c == '=':
			toks = append(toks, token.Token{Kind: token.Eq, Line: line})
			i++
		case c == '!' && i+1 < n && b[i+1] == '=':
			toks = append(toks, token.Token{Kind: token.BangEq, Line: line})
			i += 2
		case c == '!':
			toks = append(toks, token.Token{Kind: token.Bang, Line: line})
			i++
		case c == '<' && i+1 < n && b[i+1] == '=':
			toks = append(toks, token.Token{Kind: token.LtEq, Line: line})
			i += 2
		case c == '<':
			toks = append(toks, token.Token{Kind: token.Lt, Line: line})
			i++
		case c == '>' && i+1 < n && b[i+1] == '=':
			toks = append(toks, token.Token{Kind: token.GtEq, Line: line})
			i += 2
		case c == '>':
			toks = append(toks, token.Token{Kind: token.Gt, Line: line})
			i++
		case c == '&' && i+1 < n && b[i+1] == '&':
			toks = append(toks, token.Token{Kind: token.AmpAmp, Line: line})
			i += 2
		case c == '|' && i+1 < n && b[i+1] == '|':
			toks = append(toks, token.Token{Kind: token.PipePipe, Line: line})
			i += 2
		case c == '"':
			tok, newI, newLine, err := lexString(b, i, line)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i, line = newI, newLine
		case c >= '0' && c <= '9':
			tok, newI, err := lexNumber(b, i, line)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = newI
		case isAlpha(c):
			tok, newI := lexIdent(b, i, line)
			toks = append(toks, tok)
			i = newI
		default:
			return nil, errf(line, "unexpected char %q", c)
		}
	}
	toks = append(toks, token.Token{Kind: token.EOF, Line: line})
	return toks, nil
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNum(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}

func lexString(b []byte, i, line int) (token.Token, int, int, error) {
	start := i
	i++ // opening quote
	var s []byte
	for i < len(b) && b[i] != '"' {
		if b[i] == '\n' {
			line++
		}
		if b[i] == '\\' && i+1 < len(b) {
			i++
			switch b[i] {
			case 'n':
				s = append(s, '\n')
			case 't':
				s = append(s, '\t')
			case '\\':
				s = append(s, '\\')
			case '"':
				s = append(s, '"')
			default:
				s = append(s, '\\', b[i])
			}
		} else {
			s = append(s, b[i])
		}
		i++
	}
	if i >= len(b) {
		return token.Token{}, 0, 0, errf(line, "unterminated string starting at byte %d", start)
	}
	i++ // closing quote
	return token.Token{Kind: token.StrLit, StrVal: string(s), Line: line}, i, line, nil
}

func lexNumber(b []byte, i, line int) (token.Token, int, error) {
	start := i
	isFloat := false
	for i < len(b) && (isDigit(b[i]) || b[i] == '.') {
		if b[i] == '.' {
			if i+1 < len(b) && b[i+1] == '.' {
				break // ".." operator, not part of the number
			}
			isFloat = true
		}
		i++
	}
	text := string(b[start:i])
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, 0, errf(line, "bad float literal %q", text)
		}
		return token.Token{Kind: token.FloatLit, FloatVal: f, Line: line}, i, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{}, 0, errf(line, "bad int literal %q", text)
	}
	return token.Token{Kind: token.IntLit, IntVal: n, Line: line}, i, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func lexIdent(b []byte, i, line int) (token.Token, int) {
	start := i
	for i < len(b) && isAlphaNum(b[i]) {
		i++
	}
	word := string(b[start:i])
	switch word {
	case "true":
		return token.Token{Kind: token.BoolLit, BoolVal: true, Line: line}, i
	case "false":
		return token.Token{Kind: token.BoolLit, BoolVal: false, Line: line}, i
	}
	if kind, ok := token.Keywords[word]; ok {
		return token.Token{Kind: kind, Line: line}, i
	}
	return token.Token{Kind: token.Ident, StrVal: word, Line: line}, i
}

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTypes(src string) []TokenType {
	l := New(src)
	var out []TokenType
	for {
		tok := l.NextToken()
		out = append(out, tok.Type)
		if tok.Type == EOF {
			break
		}
	}
	return out
}

func TestTransposeAfterIdentifier(t *testing.T) {
	l := New("A'")
	tok := l.NextToken()
	require.Equal(t, IDENT, tok.Type)
	tok = l.NextToken()
	assert.Equal(t, TRANSPOSE, tok.Type)
}

func TestTransposeAfterClosingBracket(t *testing.T) {
	types := collectTypes("[1,2]'")
	want := []TokenType{LBRACKET, NUMBER, COMMA, NUMBER, RBRACKET, TRANSPOSE, EOF}
	require.Equal(t, len(want), len(types))
	for i, w := range want {
		assert.Equal(t, w, types[i])
	}
}

func TestSingleQuoteStartsStringAtExpressionStart(t *testing.T) {
	l := New("'hello'")
	tok := l.NextToken()
	require.Equal(t, STRING, tok.Type)
	assert.Equal(t, "hello", tok.Literal)
	assert.False(t, tok.Double)
}

func TestSingleQuoteStartsStringAfterOperator(t *testing.T) {
	l := New("x + 'hi'")
	_ = l.NextToken() // IDENT x
	_ = l.NextToken() // PLUS
	tok := l.NextToken()
	require.Equal(t, STRING, tok.Type)
	assert.Equal(t, "hi", tok.Literal)
}

func TestDoubleQuotedStringTagged(t *testing.T) {
	l := New(`"hi"`)
	tok := l.NextToken()
	require.Equal(t, STRING, tok.Type)
	assert.True(t, tok.Double)
	assert.Equal(t, "hi", tok.Literal)
}

func TestTransposeAfterEndKeyword(t *testing.T) {
	l := New("end'")
	tok := l.NextToken()
	require.Equal(t, END, tok.Type)
	tok = l.NextToken()
	assert.Equal(t, TRANSPOSE, tok.Type)
}

func TestDotTranspose(t *testing.T) {
	l := New("A.'")
	_ = l.NextToken() // IDENT
	tok := l.NextToken()
	assert.Equal(t, DOTTRANSPOSE, tok.Type)
}

func TestImaginaryNumberSuffixes(t *testing.T) {
	for _, src := range []string{"3i", "3j", "3I", "3J"} {
		l := New(src)
		tok := l.NextToken()
		assert.Equal(t, IMAGNUMBER, tok.Type, src)
	}
}

func TestNumberWithExponent(t *testing.T) {
	l := New("1.5e10")
	tok := l.NextToken()
	require.Equal(t, NUMBER, tok.Type)
	assert.Equal(t, "1.5e10", tok.Literal)
}

func TestNumberExponentSignNoDigitsFallsBack(t *testing.T) {
	// "1e" with no following digit or sign+digit is not consumed as an
	// exponent; only the leading digit is a NUMBER and `e` starts a new
	// identifier token.
	types := collectTypes("1e")
	assert.Equal(t, []TokenType{NUMBER, IDENT, EOF}, types)
}

func TestCommentSkipped(t *testing.T) {
	l := New("1 % a comment\n2")
	tok := l.NextToken()
	assert.Equal(t, NUMBER, tok.Type)
	tok = l.NextToken()
	assert.Equal(t, NEWLINE, tok.Type)
	tok = l.NextToken()
	assert.Equal(t, NUMBER, tok.Type)
	assert.Equal(t, "2", tok.Literal)
}

func TestKeywordsAndBooleanIdentifiers(t *testing.T) {
	types := collectTypes("if elseif else endif end true false")
	want := []TokenType{IF, ELSEIF, ELSE, ENDIF, END, IDENT, IDENT, EOF}
	require.Equal(t, len(want), len(types))
	for i, w := range want {
		assert.Equal(t, w, types[i])
	}
}

func TestCompoundAssignmentOperators(t *testing.T) {
	types := collectTypes("+= -= *= /= \\= ^= **= .*= ./= .\\= .^= .**= &= |=")
	want := []TokenType{
		PLUSEQ, MINUSEQ, STAREQ, SLASHEQ, BACKSLASHEQ, CARETEQ, STARSTAREQ,
		DOTSTAREQ, DOTSLASHEQ, DOTBACKSLASHEQ, DOTCARETEQ, DOTSTARSTAREQ,
		AMPEQ, PIPEEQ, EOF,
	}
	require.Equal(t, len(want), len(types))
	for i, w := range want {
		assert.Equal(t, w, types[i])
	}
}

func TestBOMStripped(t *testing.T) {
	l := New("\xef\xbb\xbf42")
	tok := l.NextToken()
	require.Equal(t, NUMBER, tok.Type)
	assert.Equal(t, "42", tok.Literal)
}

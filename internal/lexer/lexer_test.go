package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brewinlang/interpreter/internal/lexer"
)

func tokenTypes(t *testing.T, src string) []lexer.TokenType {
	t.Helper()
	l := lexer.New(src)
	var types []lexer.TokenType
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		types = append(types, tok.Type)
		if tok.Type == lexer.EOF {
			return types
		}
	}
}

func TestLexerTokenizesKeywordsAndIdents(t *testing.T) {
	types := tokenTypes(t, "func main if else for return raise try catchers catch")
	require.Equal(t, []lexer.TokenType{
		lexer.FUNC, lexer.IDENT, lexer.IF, lexer.ELSE, lexer.FOR, lexer.RETURN,
		lexer.RAISE, lexer.TRY, lexer.CATCHERS, lexer.CATCH, lexer.EOF,
	}, types)
}

func TestLexerTwoCharOperators(t *testing.T) {
	types := tokenTypes(t, "== != <= >= && ||")
	require.Equal(t, []lexer.TokenType{
		lexer.EQ, lexer.NEQ, lexer.LEQ, lexer.GEQ, lexer.AND, lexer.OR, lexer.EOF,
	}, types)
}

func TestLexerSingleCharOperatorsDoNotGreedilyConsume(t *testing.T) {
	types := tokenTypes(t, "= < > !")
	require.Equal(t, []lexer.TokenType{
		lexer.ASSIGN, lexer.LT, lexer.GT, lexer.BANG, lexer.EOF,
	}, types)
}

func TestLexerStringEscapes(t *testing.T) {
	l := lexer.New(`"a\nb\"c"`)
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, lexer.STRING, tok.Type)
	require.Equal(t, "a\nb\"c", tok.Literal)
}

func TestLexerUnterminatedStringIsError(t *testing.T) {
	l := lexer.New(`"unterminated`)
	_, err := l.Next()
	require.Error(t, err)
}

func TestLexerSkipsLineComments(t *testing.T) {
	types := tokenTypes(t, "var // a comment\nx")
	require.Equal(t, []lexer.TokenType{lexer.VAR, lexer.IDENT, lexer.EOF}, types)
}

func TestLexerTracksLineAndColumn(t *testing.T) {
	l := lexer.New("x\ny")
	first, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, 1, first.Line)

	second, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, 2, second.Line)
	require.Equal(t, 1, second.Column)
}

func TestLexerUnexpectedCharacterIsError(t *testing.T) {
	l := lexer.New("@")
	_, err := l.Next()
	require.Error(t, err)
}

package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeIntegersAndWords(t *testing.T) {
	toks, err := Tokenize("1 2 add")
	require.Equal(t, Success, err)
	assert.Equal(t, []Token{intToken(1), intToken(2), wordToken("add")}, toks)
}

func TestTokenizeComment(t *testing.T) {
	toks, err := Tokenize("1 (this is dropped) 2")
	require.Equal(t, Success, err)
	assert.Equal(t, []Token{intToken(1), intToken(2)}, toks)
}

func TestTokenizeEscape(t *testing.T) {
	toks, err := Tokenize(`a\(b`)
	require.Equal(t, Success, err)
	assert.Equal(t, []Token{wordToken("a(b")}, toks)
}

func TestTokenizeStringReversedWithLength(t *testing.T) {
	toks, err := Tokenize(`"AB"`)
	require.Equal(t, Success, err)
	assert.Equal(t, []Token{
		intToken(int64('B')),
		intToken(int64('A')),
		intToken(2),
	}, toks)
}

func TestTokenizeEmptyString(t *testing.T) {
	toks, err := Tokenize(`""`)
	require.Equal(t, Success, err)
	assert.Equal(t, []Token{intToken(0)}, toks)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize(`"unterminated`)
	assert.Equal(t, EndOfLine, err)
}

func TestTokenizeWhitespaceOnly(t *testing.T) {
	toks, err := Tokenize("   ")
	require.Equal(t, Success, err)
	assert.Empty(t, toks)
}

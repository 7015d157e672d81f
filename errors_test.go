package tint

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Wrap_LexError(t *testing.T) {
	src := "x = 1\ny = @\nz = 3"
	_, err := Tokenize(src)
	require.Error(t, err)

	msg := WrapErrorWithSource(err, src).Error()
	assert.Contains(t, msg, "LEXICAL ERROR at 2:5")
	assert.Contains(t, msg, "   1 | x = 1")
	assert.Contains(t, msg, "   2 | y = @")
	assert.Contains(t, msg, "   3 | z = 3")
	assert.Contains(t, msg, "|     ^", "caret under column 5")
}

func Test_Wrap_ParseError(t *testing.T) {
	src := "x = 1\ny = )"
	_, err := Parse(src)
	require.Error(t, err)

	msg := WrapErrorWithName(err, "main.t", src).Error()
	assert.Contains(t, msg, "PARSE ERROR in main.t at 2:5")
	assert.Contains(t, msg, "unexpected token: )")
}

func Test_Wrap_RuntimeError(t *testing.T) {
	src := "a = 5\nb = a / 0"
	_, err := Eval(src)
	require.Error(t, err)

	msg := WrapErrorWithSource(err, src).Error()
	assert.Contains(t, msg, "RUNTIME ERROR at 2:7")
	assert.Contains(t, msg, "division by zero")
	assert.Contains(t, msg, "   2 | b = a / 0")
}

func Test_Wrap_CaretAlignment(t *testing.T) {
	src := "abc = @"
	_, err := Tokenize(src)
	require.Error(t, err)

	msg := WrapErrorWithSource(err, src).Error()
	caretLine := ""
	for _, line := range strings.Split(msg, "\n") {
		if strings.Contains(line, "^") {
			caretLine = line
		}
	}
	require.NotEmpty(t, caretLine)
	assert.Equal(t, "     | "+strings.Repeat(" ", 6)+"^", caretLine)
}

func Test_Wrap_ForeignErrorsPassThrough(t *testing.T) {
	plain := errors.New("disk on fire")
	assert.Same(t, plain, WrapErrorWithSource(plain, "x = 1"))
}

func Test_Wrap_ClampsOutOfRangePositions(t *testing.T) {
	err := &RuntimeError{Line: 99, Col: 99, Msg: "boom"}
	msg := WrapErrorWithSource(err, "x").Error()
	assert.Contains(t, msg, "boom")
	assert.Contains(t, msg, "   1 | x")
}

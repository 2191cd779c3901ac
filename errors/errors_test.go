package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/araddon/sqlparse/errors"
)

func TestErrors(t *testing.T) {
	t.Run("Is", func(t *testing.T) {
		coded := errors.New(errors.ErrUncoded, "uncoded error")
		unexpected := errors.UnexpectedToken("DROP", 4, "TABLE", "EOF")

		tests := []struct {
			err    error
			target errors.Code
			exp    bool
		}{
			{err: coded, target: errors.ErrUncoded, exp: true},
			{err: coded, target: errors.ErrUnexpectedToken, exp: false},
			{err: unexpected, target: errors.ErrUnexpectedToken, exp: true},
			{err: unexpected, target: errors.ErrExpectedExpression, exp: false},
			{err: errors.Wrap(unexpected, "with message"), target: errors.ErrUnexpectedToken, exp: true},
			{err: fmt.Errorf("plain"), target: errors.ErrUncoded, exp: false},
		}

		for i, test := range tests {
			t.Run(fmt.Sprintf("test-%d", i), func(t *testing.T) {
				assert.Equal(t, test.exp, errors.Is(test.err, test.target))
			})
		}
	})

	t.Run("As", func(t *testing.T) {
		err := errors.Wrap(errors.NewParseError(errors.ErrInvalidCharacter, "a\nbc{", 4), "lexing")
		var pe *errors.ParseError
		assert.True(t, errors.As(err, &pe))
		assert.Equal(t, 4, pe.Pos)
		assert.Equal(t, 2, pe.Line)
		assert.Equal(t, 3, pe.Column)
	})

	t.Run("Message", func(t *testing.T) {
		err := errors.UnexpectedToken("CREATE TABLE", 12, "table name", "EOF")
		assert.Equal(t, "1:13: expected table name, found 'EOF'", err.Error())
	})
}

func TestLineColumn(t *testing.T) {
	tests := []struct {
		input     string
		pos       int
		line, col int
	}{
		{"SELECT", 0, 1, 1},
		{"SELECT a", 7, 1, 8},
		{"SELECT\n  a", 9, 2, 3},
		{"SELECT 'é' x", 11, 1, 11},
		{"abc", 99, 1, 4},
	}
	for _, tt := range tests {
		line, col := errors.LineColumn(tt.input, tt.pos)
		assert.Equal(t, tt.line, line, tt.input)
		assert.Equal(t, tt.col, col, tt.input)
	}
}

// Package errors wraps pkg/errors and adds error codes plus the positional
// ParseError returned by the lexer and parsers.
package errors

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Code is an error code which can be used to check against a given error. For
// example, see the Is() method.
type Code string

const (
	ErrUncoded Code = "Uncoded"

	// Lexer failures.
	ErrInvalidCharacter    Code = "InvalidCharacter"
	ErrUnterminatedLiteral Code = "UnterminatedLiteral"

	// Dispatch and grammar failures.
	ErrUnsupportedStatement Code = "UnsupportedStatement"
	ErrUnexpectedToken      Code = "UnexpectedToken"

	// Expression grammar failures.
	ErrExpectedExpression    Code = "ExpectedExpression"
	ErrUnbalancedParentheses Code = "UnbalancedParentheses"
	ErrUnknownOperator       Code = "UnknownOperator"
)

func New(code Code, message string) error {
	return errors.WithStack(codedError{
		Code:    code,
		Message: message,
	})
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func Cause(err error) error {
	return errors.Cause(err)
}

func Errorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Is reports whether err, or any error it wraps, carries the code target.
// Both coded errors made by New and *ParseError values match.
func Is(err error, target Code) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code == target
	}
	return errors.Is(err, codedError{Code: target})
}

func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// codedError is the fundamental type used by this package to provide coded
// errors.
type codedError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (ce codedError) Error() string {
	return ce.Message
}

func (ce codedError) Is(err error) bool {
	if e, ok := err.(codedError); ok && ce.Code == e.Code {
		return true
	}
	return false
}

// ParseError is the failure returned by every lexing and parsing function. Pos
// is the byte offset into the original input; Line and Column are 1-based and
// derived from it (Column counts runes).
type ParseError struct {
	Code     Code
	Pos      int
	Line     int
	Column   int
	Expected string
	Found    string
}

// NewParseError builds a ParseError for the given position of input.
func NewParseError(code Code, input string, pos int) *ParseError {
	line, col := LineColumn(input, pos)
	return &ParseError{Code: code, Pos: pos, Line: line, Column: col}
}

// UnexpectedToken builds the ParseError for a grammar rule that wanted
// expected and saw found.
func UnexpectedToken(input string, pos int, expected, found string) *ParseError {
	pe := NewParseError(ErrUnexpectedToken, input, pos)
	pe.Expected = expected
	pe.Found = found
	return pe
}

func (e *ParseError) Error() string {
	switch e.Code {
	case ErrUnexpectedToken:
		return fmt.Sprintf("%d:%d: expected %s, found '%s'", e.Line, e.Column, e.Expected, e.Found)
	case ErrInvalidCharacter:
		return fmt.Sprintf("%d:%d: invalid character '%s'", e.Line, e.Column, e.Found)
	case ErrUnterminatedLiteral:
		return fmt.Sprintf("%d:%d: unterminated %s", e.Line, e.Column, e.Expected)
	case ErrUnsupportedStatement:
		return fmt.Sprintf("%d:%d: unsupported statement starting at '%s'", e.Line, e.Column, e.Found)
	case ErrExpectedExpression:
		return fmt.Sprintf("%d:%d: expected expression, found '%s'", e.Line, e.Column, e.Found)
	case ErrUnbalancedParentheses:
		return fmt.Sprintf("%d:%d: unbalanced parentheses, found '%s'", e.Line, e.Column, e.Found)
	case ErrUnknownOperator:
		return fmt.Sprintf("%d:%d: unknown operator '%s'", e.Line, e.Column, e.Found)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Code)
}

// LineColumn converts a byte offset of input into a 1-based line and column.
// Offsets past the end of input report the position just after the last byte.
func LineColumn(input string, pos int) (line, col int) {
	if pos > len(input) {
		pos = len(input)
	}
	if pos < 0 {
		pos = 0
	}
	line, col = 1, 1
	lineStart := 0
	for i := 0; i < pos; i++ {
		if input[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = utf8.RuneCountInString(input[lineStart:pos]) + 1
	return line, col
}

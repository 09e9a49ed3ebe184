package asm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedSymbol means an address instruction names a symbol the
	// table does not know. The builder binds every symbol it sees, so this
	// only happens when the table and the parsed lines come from different
	// programs.
	ErrUnresolvedSymbol = errors.New("unresolved symbol")
	ErrValueOutOfRange  = errors.New("value out of range")
	ErrInvalidMnemonic  = errors.New("invalid mnemonic")
)

// Error carries the source position and offending token of a failed
// translation. Line is 1-based; zero means the position is unknown.
type Error struct {
	Line  int
	Token string
	Err   error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v '%s' on line %d", e.Err, e.Token, e.Line)
	}
	return fmt.Sprintf("%v '%s'", e.Err, e.Token)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// atLine stamps a line number onto err if it is an *Error without one.
func atLine(err error, lineNo int) error {
	var e *Error
	if errors.As(err, &e) && e.Line == 0 {
		return &Error{Line: lineNo, Token: e.Token, Err: e.Err}
	}
	return err
}

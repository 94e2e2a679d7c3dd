package morse

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyToken indicates a table entry without a token.
	ErrEmptyToken = errors.New("empty token")
	// ErrInvalidCode indicates a code which is empty or contains
	// characters other than '.' and '-'.
	ErrInvalidCode = errors.New("invalid code")
)

// DuplicateCodeError reports two tokens sharing the same code.
type DuplicateCodeError struct {
	Code   string
	Tokens [2]string
}

// Error implements error.
func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("code %q shared by %q and %q", e.Code, e.Tokens[0], e.Tokens[1])
}

// DuplicateTokenError reports a token listed more than once.
type DuplicateTokenError struct {
	Token string
}

// Error implements error.
func (e *DuplicateTokenError) Error() string {
	return fmt.Sprintf("duplicate token %q", e.Token)
}

// UnencodableError reports plain text which has no Morse representation.
type UnencodableError struct {
	Char rune
	Word string
}

// Error implements error.
func (e *UnencodableError) Error() string {
	return fmt.Sprintf("unencodable character %q in %q", e.Char, e.Word)
}

package morse

import (
	"fmt"
	"strings"
)

// InvalidTokenPolicy decides what happens to a token absent from the table.
type InvalidTokenPolicy int

// Invalid token policies.
const (
	// AbortOnInvalid stops decoding and returns the original input.
	AbortOnInvalid InvalidTokenPolicy = iota
	// DropInvalid skips the token and keeps decoding.
	DropInvalid
)

// EmptyResultPolicy decides what a decode producing no text returns.
type EmptyResultPolicy int

// Empty result policies.
const (
	// EmptyAsInput returns the original input.
	EmptyAsInput EmptyResultPolicy = iota
	// EmptyAsEmpty returns the empty string.
	EmptyAsEmpty
)

// String implements fmt.Stringer.
func (p InvalidTokenPolicy) String() string {
	switch p {
	case AbortOnInvalid:
		return "abort"
	case DropInvalid:
		return "drop"
	}
	return fmt.Sprintf("InvalidTokenPolicy(%d)", int(p))
}

// String implements fmt.Stringer.
func (p EmptyResultPolicy) String() string {
	switch p {
	case EmptyAsInput:
		return "input"
	case EmptyAsEmpty:
		return "empty"
	}
	return fmt.Sprintf("EmptyResultPolicy(%d)", int(p))
}

// ParseInvalidTokenPolicy parses "abort" or "drop".
func ParseInvalidTokenPolicy(s string) (InvalidTokenPolicy, error) {
	switch strings.ToLower(s) {
	case "abort", "":
		return AbortOnInvalid, nil
	case "drop":
		return DropInvalid, nil
	}
	return AbortOnInvalid, fmt.Errorf("unknown invalid token policy %q", s)
}

// ParseEmptyResultPolicy parses "input" or "empty".
func ParseEmptyResultPolicy(s string) (EmptyResultPolicy, error) {
	switch strings.ToLower(s) {
	case "input", "":
		return EmptyAsInput, nil
	case "empty":
		return EmptyAsEmpty, nil
	}
	return EmptyAsInput, fmt.Errorf("unknown empty result policy %q", s)
}

// Decoder converts raw Morse strings to plain text. The zero value uses
// the default table with AbortOnInvalid and EmptyAsInput.
type Decoder struct {
	Table        *Table
	InvalidToken InvalidTokenPolicy
	EmptyResult  EmptyResultPolicy
}

// NewDecoder creates a Decoder using the default table.
func NewDecoder() *Decoder {
	return &Decoder{Table: DefaultTable()}
}

// Decipher converts input to plain text. Input without any dot or dash is
// returned unchanged. Decipher never fails: whatever cannot be decoded
// according to the policies comes back as the original input.
func (d *Decoder) Decipher(input string) string {
	if !HasSymbols(input) {
		return input
	}
	table := d.Table
	if table == nil {
		table = defaultTable
	}

	var out strings.Builder
	word := make([]byte, 0, 8)
	spaces := 0
	// the trailing marker flushes the last token.
	scan := input + string(Marker)
	for i := 0; i < len(scan); i++ {
		ch := scan[i]
		if ch != Marker {
			spaces = 0
			word = append(word, ch)
			continue
		}
		spaces++
		if spaces == 2 {
			out.WriteByte(Marker)
			spaces = 0
			continue
		}
		if len(word) == 0 {
			// nothing pending, e.g. leading or a third consecutive marker.
			continue
		}
		token, ok := table.Decode(string(word))
		word = word[:0]
		if ok {
			out.WriteString(token)
			continue
		}
		if d.InvalidToken == AbortOnInvalid {
			return input
		}
	}

	if out.Len() == 0 && d.EmptyResult == EmptyAsInput {
		return input
	}
	return out.String()
}

var defaultDecoder = Decoder{}

// Decipher decodes input with the default decoder.
func Decipher(input string) string {
	return defaultDecoder.Decipher(input)
}

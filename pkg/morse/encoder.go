package morse

import (
	"strings"
	"unicode"
)

// Encoder converts plain text to raw Morse strings.
type Encoder struct {
	Table *Table
}

// NewEncoder creates an Encoder using the default table.
func NewEncoder() *Encoder {
	return &Encoder{Table: DefaultTable()}
}

// Encode transliterates text character by character. Letters are
// upper-cased, tokens are separated by one marker and words by two.
// Multi-letter tokens (AA, AE, OE) are never produced.
func (e *Encoder) Encode(text string) (string, error) {
	table := e.Table
	if table == nil {
		table = defaultTable
	}
	var out strings.Builder
	for n, word := range strings.Fields(text) {
		if n > 0 {
			out.WriteString("  ")
		}
		for i, ch := range word {
			code, ok := table.Encode(string(unicode.ToUpper(ch)))
			if !ok {
				return "", &UnencodableError{Char: ch, Word: word}
			}
			if i > 0 {
				out.WriteByte(Marker)
			}
			out.WriteString(code)
		}
	}
	return out.String(), nil
}

// Encode encodes text with the default table.
func Encode(text string) (string, error) {
	return (&Encoder{}).Encode(text)
}

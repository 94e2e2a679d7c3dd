package morse

import "strings"

// Symbols used in raw Morse strings.
const (
	Dot    byte = '.'
	Dash   byte = '-'
	Marker byte = ' '
)

// Entry maps one plain text token to its code.
type Entry struct {
	Token string
	Code  string
}

// Table is an immutable bidirectional mapping between tokens and codes.
type Table struct {
	entries []Entry
	byToken map[string]string
	byCode  map[string]string
}

// DefaultEntries is the fixed alphabet: letters, the AA/AE/OE ligatures,
// digits and punctuation.
var DefaultEntries = []Entry{
	{"A", ".-"},
	{"B", "-..."},
	{"C", "-.-."},
	{"D", "-.."},
	{"E", "."},
	{"F", "..-."},
	{"G", "--."},
	{"H", "...."},
	{"I", ".."},
	{"J", ".---"},
	{"K", "-.-"},
	{"L", ".-.."},
	{"M", "--"},
	{"N", "-."},
	{"O", "---"},
	{"P", ".--."},
	{"Q", "--.-"},
	{"R", ".-."},
	{"S", "..."},
	{"T", "-"},
	{"U", "..-"},
	{"V", "...-"},
	{"W", ".--"},
	{"X", "-..-"},
	{"Y", "-.--"},
	{"Z", "--.."},
	{"AA", ".--.-"},
	{"AE", ".-.-"},
	{"OE", "---."},
	{"1", ".----"},
	{"2", "..---"},
	{"3", "...--"},
	{"4", "....-"},
	{"5", "....."},
	{"6", "-...."},
	{"7", "--..."},
	{"8", "---.."},
	{"9", "----."},
	{"0", "-----"},
	{",", "--..--"},
	{".", ".-.-.-"},
	{"?", "..--.."},
	{"/", "-..-."},
	{"-", "-....-"},
	{"(", "-.--."},
	{")", "-.--.-"},
}

var defaultTable = MustNewTable(DefaultEntries)

// DefaultTable returns the table built from DefaultEntries.
func DefaultTable() *Table {
	return defaultTable
}

// NewTable builds a Table and rejects entries breaking the one-to-one
// mapping between tokens and codes.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byToken: make(map[string]string, len(entries)),
		byCode:  make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if e.Token == "" {
			return nil, ErrEmptyToken
		}
		if !IsCode(e.Code) {
			return nil, ErrInvalidCode
		}
		if _, exists := t.byToken[e.Token]; exists {
			return nil, &DuplicateTokenError{Token: e.Token}
		}
		if token, exists := t.byCode[e.Code]; exists {
			return nil, &DuplicateCodeError{Code: e.Code, Tokens: [2]string{token, e.Token}}
		}
		t.byToken[e.Token] = e.Code
		t.byCode[e.Code] = e.Token
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// MustNewTable is NewTable that panics on error.
func MustNewTable(entries []Entry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Encode looks up the code of a token.
func (t *Table) Encode(token string) (string, bool) {
	code, ok := t.byToken[token]
	return code, ok
}

// Decode looks up the token of a code.
func (t *Table) Decode(code string) (string, bool) {
	token, ok := t.byCode[code]
	return token, ok
}

// Entries returns a copy of all entries in their original order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// IsCode reports whether s is a non-empty string of dots and dashes.
func IsCode(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != Dot && s[i] != Dash {
			return false
		}
	}
	return true
}

// HasSymbols reports whether s contains at least one dot or dash.
func HasSymbols(s string) bool {
	return strings.IndexByte(s, Dot) >= 0 || strings.IndexByte(s, Dash) >= 0
}

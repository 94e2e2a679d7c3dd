package morse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecipher(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "empty", input: "", expect: ""},
		{name: "plain text", input: "xyz", expect: "xyz"},
		{name: "spaces only", input: "   ", expect: "   "},
		{name: "word", input: ".... . .-.. .-.. ---", expect: "HELLO"},
		{name: "word break", input: ".... .  .-.. .-.. ---", expect: "HE LLO"},
		{name: "leading marker", input: " .-", expect: "A"},
		{name: "trailing marker", input: ".- ", expect: "A "},
		{name: "three markers", input: ".-   -", expect: "A T"},
		{name: "ligature", input: ".--.- .-.- ---.", expect: "AAAEOE"},
		{name: "punctuation", input: "..--.. -.--. -.--.-", expect: "?()"},
		{name: "invalid aborts", input: ".... ........ .", expect: ".... ........ ."},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, Decipher(tc.input))
		})
	}
}

func TestDecipherRoundTrip(t *testing.T) {
	for _, e := range DefaultTable().Entries() {
		require.Equal(t, e.Token, Decipher(e.Code), e.Code)
	}
}

func TestDecipherPolicies(t *testing.T) {
	testCases := []struct {
		name    string
		invalid InvalidTokenPolicy
		empty   EmptyResultPolicy
		input   string
		expect  string
	}{
		{
			name:    "drop keeps valid tokens",
			invalid: DropInvalid,
			input:   ".... ........ .",
			expect:  "HE",
		},
		{
			name:    "drop everything returns input",
			invalid: DropInvalid,
			empty:   EmptyAsInput,
			input:   "........ ---.---",
			expect:  "........ ---.---",
		},
		{
			name:    "drop everything returns empty",
			invalid: DropInvalid,
			empty:   EmptyAsEmpty,
			input:   "........ ---.---",
			expect:  "",
		},
		{
			name:    "word break survives dropped token",
			invalid: DropInvalid,
			empty:   EmptyAsEmpty,
			input:   "........  -",
			expect:  " T",
		},
		{
			name:    "abort ignores empty policy",
			invalid: AbortOnInvalid,
			empty:   EmptyAsEmpty,
			input:   "........",
			expect:  "........",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := &Decoder{Table: DefaultTable(), InvalidToken: tc.invalid, EmptyResult: tc.empty}
			require.Equal(t, tc.expect, d.Decipher(tc.input))
		})
	}
}

func TestDecipherCustomTable(t *testing.T) {
	d := &Decoder{Table: MustNewTable([]Entry{{"SOS", "...---..."}})}
	require.Equal(t, "SOS", d.Decipher("...---..."))
	require.Equal(t, ".-", d.Decipher(".-"))
}

func TestParsePolicies(t *testing.T) {
	p, err := ParseInvalidTokenPolicy("Drop")
	require.NoError(t, err)
	require.Equal(t, DropInvalid, p)
	require.Equal(t, "drop", p.String())
	_, err = ParseInvalidTokenPolicy("retry")
	require.Error(t, err)

	e, err := ParseEmptyResultPolicy("empty")
	require.NoError(t, err)
	require.Equal(t, EmptyAsEmpty, e)
	require.Equal(t, "empty", e.String())
	e, err = ParseEmptyResultPolicy("")
	require.NoError(t, err)
	require.Equal(t, EmptyAsInput, e)
	_, err = ParseEmptyResultPolicy("nil")
	require.Error(t, err)
}

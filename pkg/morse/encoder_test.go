package morse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	out, err := Encode("hello  world")
	require.NoError(t, err)
	require.Equal(t, ".... . .-.. .-.. ---  .-- --- .-. .-.. -..", out)
	require.Equal(t, "HELLO WORLD", Decipher(out))

	out, err = Encode("SOS?")
	require.NoError(t, err)
	require.Equal(t, "... --- ... ..--..", out)

	out, err = Encode("   ")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestEncodeUnencodable(t *testing.T) {
	_, err := Encode("hi there!")
	require.Equal(t, &UnencodableError{Char: '!', Word: "there!"}, err)
}

package device

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeypadKey(t *testing.T) {
	k := NewKeypad()
	a, b := k.Button(Primary), k.Button(Secondary)
	require.NoError(t, k.Key(".- "))
	require.Equal(t, 3, k.Pending())

	var got [][2]bool
	for k.Pending() > 0 {
		got = append(got, [2]bool{a.IsPressed(), b.IsPressed()})
	}
	require.Equal(t, [][2]bool{{true, false}, {false, true}, {true, true}}, got)
	require.False(t, a.IsPressed())
	require.False(t, b.IsPressed())
}

func TestKeypadKeyRejectsInvalid(t *testing.T) {
	k := NewKeypad()
	require.Error(t, k.Key(".x-"))
	require.Zero(t, k.Pending())
}

func TestKeypadWasPressed(t *testing.T) {
	k := NewKeypad()
	a, b := k.Button(Primary), k.Button(Secondary)
	require.False(t, a.WasPressed())
	k.Push(true, false)
	k.Push(true, false)
	require.True(t, a.WasPressed())
	require.False(t, a.WasPressed())
	require.False(t, b.WasPressed())

	k.Flush()
	require.Zero(t, k.Pending())
	require.False(t, a.IsPressed())
}

func TestEither(t *testing.T) {
	k1, k2 := NewKeypad(), NewKeypad()
	b := Either(k1.Button(Primary), k2.Button(Primary))
	k1.Push(false, false)
	k2.Push(true, false)
	require.True(t, b.IsPressed())
	require.Equal(t, 0, k1.Pending(), "both read")
	require.False(t, b.IsPressed())

	k1.Push(true, false)
	require.True(t, b.WasPressed())
	require.False(t, b.WasPressed())
}

package radio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, Settings{Channel: 25, Power: 7}.Validate())
	require.NoError(t, Settings{Channel: 0, Power: 1}.Validate())
	require.Error(t, Settings{Channel: 256, Power: 7}.Validate())
	require.Error(t, Settings{Channel: -1, Power: 7}.Validate())
	require.Error(t, Settings{Channel: 1, Power: 0}.Validate())
	require.Error(t, Settings{Channel: 1, Power: 8}.Validate())
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	a, b, c := hub.Join(0), hub.Join(0), hub.Join(0)
	require.Equal(t, ErrNotConfigured, a.Send(".-"))

	require.NoError(t, a.Configure(Settings{Channel: 25, Power: 7}))
	require.NoError(t, b.Configure(Settings{Channel: 25, Power: 7}))
	require.NoError(t, c.Configure(Settings{Channel: 3, Power: 7}))
	require.Error(t, c.Configure(Settings{Channel: 300, Power: 7}))

	require.NoError(t, a.Send(".-"))
	_, ok := a.Receive()
	require.False(t, ok, "no self echo")
	_, ok = c.Receive()
	require.False(t, ok, "other channel")
	payload, ok := b.Receive()
	require.True(t, ok)
	require.Equal(t, ".-", payload)
	_, ok = b.Receive()
	require.False(t, ok)
}

func TestHubQueueDropsWhenFull(t *testing.T) {
	hub := NewHub()
	tx, rx := hub.Join(0), hub.Join(2)
	s := Settings{Channel: 1, Power: 1}
	require.NoError(t, tx.Configure(s))
	require.NoError(t, rx.Configure(s))
	for _, p := range []string{"1", "", "2", "3"} {
		require.NoError(t, tx.Send(p))
	}
	var got []string
	for {
		p, ok := rx.Receive()
		if !ok {
			break
		}
		got = append(got, p)
	}
	require.Equal(t, []string{"1", "2"}, got)
	require.Equal(t, 1, rx.rx.Dropped())
}

func TestEndpointClose(t *testing.T) {
	hub := NewHub()
	a, b := hub.Join(0), hub.Join(0)
	s := Settings{Channel: 1, Power: 1}
	require.NoError(t, a.Configure(s))
	require.NoError(t, b.Configure(s))
	require.NoError(t, b.Close())
	require.Equal(t, ErrClosed, b.Send("."))
	require.Equal(t, ErrClosed, b.Configure(s))
	require.NoError(t, a.Send("."))
	_, ok := b.Receive()
	require.False(t, ok)
}

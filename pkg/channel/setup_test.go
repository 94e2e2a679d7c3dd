package channel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/morsetooth/pkg/device"
	"github.com/robotalks/morsetooth/pkg/radio"
)

// script replays presses, one per WasPressed hit.
type script struct {
	presses []byte
}

type scriptButton struct {
	s   *script
	key byte
}

func (b *scriptButton) IsPressed() bool { return false }

func (b *scriptButton) WasPressed() bool {
	if len(b.s.presses) > 0 && b.s.presses[0] == b.key {
		b.s.presses = b.s.presses[1:]
		return true
	}
	return false
}

type recordDisplay struct {
	rendered []string
}

func (d *recordDisplay) Render(text string, opts device.RenderOptions) {
	d.rendered = append(d.rendered, text)
}
func (d *recordDisplay) Clear()       { d.rendered = append(d.rendered, "<clear>") }
func (d *recordDisplay) IsIdle() bool { return true }

func newSetup(presses string) (*Setup, *recordDisplay) {
	s := &script{presses: []byte(presses)}
	d := &recordDisplay{}
	return &Setup{
		Primary:      &scriptButton{s: s, key: 'A'},
		Secondary:    &scriptButton{s: s, key: 'B'},
		Display:      d,
		Default:      DefaultChannel,
		PollInterval: time.Millisecond,
	}, d
}

func TestReadChannel(t *testing.T) {
	testCases := []struct {
		name     string
		bits     int
		presses  string
		expect   int
		rendered []string
	}{
		{
			name:     "default",
			presses:  "A",
			expect:   DefaultChannel,
			rendered: []string{Prompt},
		},
		{
			name:     "binary",
			presses:  "BBABAB",
			expect:   21,
			rendered: []string{Prompt, "<clear>", "1", "0", "1", "0", "1"},
		},
		{
			name:     "three bits",
			bits:     3,
			presses:  "BAAB",
			expect:   1,
			rendered: []string{Prompt, "<clear>", "0", "0", "1"},
		},
		{
			name:     "seven bits max",
			bits:     MaxBits,
			presses:  "BBBBBBBB",
			expect:   127,
			rendered: []string{Prompt, "<clear>", "1", "1", "1", "1", "1", "1", "1"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, d := newSetup(tc.presses)
			s.Bits = tc.bits
			channel, err := s.Read(context.Background())
			require.NoError(t, err)
			require.Equal(t, tc.expect, channel)
			require.Equal(t, tc.rendered, d.rendered)
		})
	}
}

func TestReadCanceled(t *testing.T) {
	s, _ := newSetup("B")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := s.Read(ctx)
	require.Equal(t, context.DeadlineExceeded, err)
}

func TestApply(t *testing.T) {
	hub := radio.NewHub()
	r, peer := hub.Join(0), hub.Join(0)
	s, d := newSetup("BAAAAB")
	settings, err := s.Apply(context.Background(), r, 7)
	require.NoError(t, err)
	require.Equal(t, radio.Settings{Channel: 1, Power: 7}, settings)
	require.Equal(t, "1", d.rendered[len(d.rendered)-1])
	require.Equal(t, "<clear>", d.rendered[len(d.rendered)-2])

	require.NoError(t, peer.Configure(settings))
	require.NoError(t, r.Send("."))
	payload, ok := peer.Receive()
	require.True(t, ok)
	require.Equal(t, ".", payload)

	s, _ = newSetup("A")
	s.Default = 300
	_, err = s.Apply(context.Background(), r, 7)
	require.Error(t, err)
}

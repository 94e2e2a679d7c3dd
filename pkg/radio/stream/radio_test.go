package stream

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/morsetooth/pkg/radio"
)

func receiveWithin(t *testing.T, r *Radio, d time.Duration) string {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if payload, ok := r.Receive(); ok {
			return payload
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("nothing received")
	return ""
}

func TestRadioOverPipe(t *testing.T) {
	connA, connB := net.Pipe()
	a, b := New(connA, 0), New(connB, 0)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 2)
	go func() { errCh <- a.Run(ctx) }()
	go func() { errCh <- b.Run(ctx) }()

	require.Equal(t, radio.ErrNotConfigured, a.Send(".-"))
	require.Error(t, a.Configure(radio.Settings{Channel: 25, Power: 9}))
	require.NoError(t, a.Configure(radio.Settings{Channel: 25, Power: 7}))
	require.NoError(t, b.Configure(radio.Settings{Channel: 25, Power: 7}))
	require.NoError(t, a.Send(".... .."))
	require.Equal(t, ".... ..", receiveWithin(t, b, time.Second))
	require.NoError(t, b.Send("-"))
	require.Equal(t, "-", receiveWithin(t, a, time.Second))

	cancel()
	require.Equal(t, context.Canceled, <-errCh)
	require.Equal(t, context.Canceled, <-errCh)
}

// timeoutPort behaves like a serial port with a read timeout: a nil chunk
// is an empty read reported as io.EOF.
type timeoutPort struct {
	chunks [][]byte
	closed chan struct{}
}

func (p *timeoutPort) Read(b []byte) (int, error) {
	if len(p.chunks) == 0 {
		<-p.closed
		return 0, io.ErrClosedPipe
	}
	chunk := p.chunks[0]
	if chunk == nil {
		p.chunks = p.chunks[1:]
		return 0, io.EOF
	}
	n := copy(b, chunk)
	if n < len(chunk) {
		p.chunks[0] = chunk[n:]
	} else {
		p.chunks = p.chunks[1:]
	}
	return n, nil
}

func (p *timeoutPort) Write(b []byte) (int, error) { return len(b), nil }
func (p *timeoutPort) Close() error                { close(p.closed); return nil }

func TestRadioSurvivesReadTimeouts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, 0).WritePacket([]byte("D.-")))
	pkt := buf.Bytes()
	port := &timeoutPort{
		chunks: [][]byte{nil, pkt[:2], nil, nil, pkt[2:]},
		closed: make(chan struct{}),
	}
	r := New(&idlePort{ReadWriteCloser: port}, 0)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()

	require.Equal(t, ".-", receiveWithin(t, r, time.Second))
	cancel()
	require.Equal(t, context.Canceled, <-errCh)
}

func TestSerialConfigFromURL(t *testing.T) {
	conf, err := SerialConfigFromURL("serial:///dev/ttyUSB0?baud=9600&read-timeout=50ms")
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyUSB0", conf.Name)
	require.Equal(t, 9600, conf.Baud)
	require.Equal(t, 50*time.Millisecond, conf.ReadTimeout)

	conf, err = SerialConfigFromURL("serial://COM3")
	require.NoError(t, err)
	require.Equal(t, "COM3", conf.Name)
	require.Equal(t, DefaultBaud, conf.Baud)

	for _, bad := range []string{"mqtt://host", "serial://", "serial:///dev/x?baud=fast", "serial:///dev/x?read-timeout=soon"} {
		_, err = SerialConfigFromURL(bad)
		require.Error(t, err, bad)
	}
}

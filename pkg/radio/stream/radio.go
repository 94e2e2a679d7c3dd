// Package stream implements a radio over a byte stream to a radio modem,
// typically a serial port.
//
// Each packet is prefixed by 4-byte (little-endian) length and starts with
// a kind byte:
//
//	'D' payload...          data heard or to be transmitted
//	'C' channel power       tune the modem
package stream

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/golang/glog"

	fx "github.com/robotalks/morsetooth/pkg/framework"
	"github.com/robotalks/morsetooth/pkg/radio"
)

// Packet kinds
const (
	KindData   byte = 'D'
	KindConfig byte = 'C'
)

// MaxPacketSize bounds a single packet read from the stream.
const MaxPacketSize = 1024

// Radio implements radio.Radio over an io.ReadWriter.
type Radio struct {
	Conn io.ReadWriter

	rx         *radio.RxQueue
	sendLock   sync.Mutex
	lock       sync.Mutex
	configured bool
}

// New creates a Radio over conn.
func New(conn io.ReadWriter, queueLength int) *Radio {
	return &Radio{Conn: conn, rx: radio.NewRxQueue(queueLength)}
}

// Receive implements radio.Radio.
func (r *Radio) Receive() (string, bool) {
	return r.rx.Get()
}

// Dropped implements radio.DropCounter.
func (r *Radio) Dropped() int {
	return r.rx.Dropped()
}

// Send implements radio.Radio.
func (r *Radio) Send(payload string) error {
	r.lock.Lock()
	configured := r.configured
	r.lock.Unlock()
	if !configured {
		return radio.ErrNotConfigured
	}
	return r.WritePacket(append([]byte{KindData}, payload...))
}

// Configure implements radio.Radio.
func (r *Radio) Configure(s radio.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := r.WritePacket([]byte{KindConfig, byte(s.Channel), byte(s.Power)}); err != nil {
		return err
	}
	r.lock.Lock()
	r.configured = true
	r.lock.Unlock()
	glog.Infof("modem tuned to channel %d power %d", s.Channel, s.Power)
	return nil
}

// ReadPacket reads one length-prefixed packet.
func (r *Radio) ReadPacket() ([]byte, error) {
	var size uint32
	if err := binary.Read(r.Conn, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if size > MaxPacketSize {
		return nil, fmt.Errorf("packet size %d exceeds %d", size, MaxPacketSize)
	}
	pkt := make([]byte, size)
	_, err := io.ReadFull(r.Conn, pkt)
	return pkt, err
}

// WritePacket writes one length-prefixed packet.
func (r *Radio) WritePacket(pkt []byte) error {
	r.sendLock.Lock()
	defer r.sendLock.Unlock()
	if err := binary.Write(r.Conn, binary.LittleEndian, uint32(len(pkt))); err != nil {
		return err
	}
	_, err := r.Conn.Write(pkt)
	return err
}

// AddToLoop implements LoopAdder.
func (r *Radio) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(r)
}

// Run implements Runnable. It reads packets until ctx is done or the
// stream fails.
func (r *Radio) Run(ctx context.Context) error {
	if closer, ok := r.Conn.(io.Closer); ok {
		return fx.RunWithContextCloser(ctx, closer, r.readLoop)
	}
	return r.readLoop()
}

func (r *Radio) readLoop() error {
	for {
		pkt, err := r.ReadPacket()
		if err != nil {
			return err
		}
		if len(pkt) == 0 || pkt[0] != KindData {
			continue
		}
		glog.V(2).Infof("RCV %q", pkt[1:])
		r.rx.Put(string(pkt[1:]))
	}
}

package stream

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/tarm/serial"
)

// DefaultBaud is used when the URL has no baud parameter.
const DefaultBaud = 115200

// SerialConfigFromURL parses serial:///dev/ttyUSB0?baud=115200.
func SerialConfigFromURL(rawURL string) (*serial.Config, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "serial" {
		return nil, fmt.Errorf("not a serial URL: %q", rawURL)
	}
	name := u.Path
	if u.Host != "" {
		name = u.Host + u.Path
	}
	if name == "" {
		return nil, fmt.Errorf("serial device missing in %q", rawURL)
	}
	conf := &serial.Config{Name: name, Baud: DefaultBaud}
	if val := u.Query().Get("baud"); val != "" {
		if conf.Baud, err = strconv.Atoi(val); err != nil || conf.Baud <= 0 {
			return nil, fmt.Errorf("invalid baud %q", val)
		}
	}
	if val := u.Query().Get("read-timeout"); val != "" {
		if conf.ReadTimeout, err = time.ParseDuration(val); err != nil {
			return nil, fmt.Errorf("invalid read-timeout %q", val)
		}
	}
	return conf, nil
}

// OpenSerial opens the serial port described by rawURL.
func OpenSerial(rawURL string, queueLength int) (*Radio, error) {
	conf, err := SerialConfigFromURL(rawURL)
	if err != nil {
		return nil, err
	}
	port, err := serial.OpenPort(conf)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v", conf.Name, err)
	}
	if conf.ReadTimeout > 0 {
		return New(&idlePort{ReadWriteCloser: port}, queueLength), nil
	}
	return New(port, queueLength), nil
}

// idlePort hides the empty reads of a port with a read timeout: the port
// reports io.EOF when nothing arrived in time, which only means idle.
type idlePort struct {
	io.ReadWriteCloser
}

func (p *idlePort) Read(b []byte) (int, error) {
	for {
		n, err := p.ReadWriteCloser.Read(b)
		if n == 0 && (err == nil || err == io.EOF) && len(b) > 0 {
			continue
		}
		return n, err
	}
}

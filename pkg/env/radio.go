// Package env sets up the environment of a station: its identity and
// the radio it talks through.
package env

import (
	"flag"
	"fmt"
	"net/url"
	"os"

	"github.com/robotalks/morsetooth/pkg/radio"
	"github.com/robotalks/morsetooth/pkg/radio/mqtt"
	"github.com/robotalks/morsetooth/pkg/radio/stream"
)

// RadioConfig selects and configures the radio backend.
type RadioConfig struct {
	// URL selects the backend by scheme:
	//   loop://                      in-process hub
	//   mqtt://host:port/prefix/     MQTT broker
	//   serial:///dev/ttyUSB0?baud=N serial radio modem
	URL string `yaml:"url"`
	// Unit identifies this station on shared media.
	Unit string `yaml:"unit"`
	// QueueLength is the receive buffer size.
	QueueLength int `yaml:"queue_length"`
}

var defaultRadioConfig = RadioConfig{
	URL:         "loop://",
	QueueLength: radio.DefaultQueueLength,
}

func init() {
	if val := os.Getenv("MORSETOOTH_RADIO_URL"); val != "" {
		defaultRadioConfig.URL = val
	}
	if val := os.Getenv("MORSETOOTH_UNIT"); val != "" {
		defaultRadioConfig.Unit = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultRadioConfig.URL, "radio", defaultRadioConfig.URL, "Radio URL (loop://, mqtt://host:port/prefix/, serial:///dev/tty?baud=N)")
	flag.StringVar(&defaultRadioConfig.Unit, "unit", defaultRadioConfig.Unit, "Unit ID, derived from machine ID if empty")
	flag.IntVar(&defaultRadioConfig.QueueLength, "rx-queue", defaultRadioConfig.QueueLength, "Radio receive queue length")
}

// Default gets default config.
func Default() *RadioConfig {
	return &defaultRadioConfig
}

// NewRadioConfig creates a RadioConfig with defaults.
func NewRadioConfig() *RadioConfig {
	conf := defaultRadioConfig
	return &conf
}

// UnitOrDefault returns Unit, or UnitID when empty.
func (c *RadioConfig) UnitOrDefault() string {
	if c.Unit != "" {
		return c.Unit
	}
	return UnitID()
}

// Open creates the radio. hub is used by loop:// and may be nil otherwise.
// MQTT radios are connected before returning.
func (c *RadioConfig) Open(hub *radio.Hub) (radio.Radio, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid radio URL: %v", err)
	}
	switch u.Scheme {
	case "loop":
		if hub == nil {
			return nil, fmt.Errorf("loop radio requires a hub")
		}
		return hub.Join(c.QueueLength), nil
	case "mqtt", "mqtts":
		r, err := mqtt.New(c.URL, c.UnitOrDefault(), c.QueueLength)
		if err != nil {
			return nil, err
		}
		if err = r.Connect(); err != nil {
			return nil, fmt.Errorf("connect %s: %v", u.Host, err)
		}
		return r, nil
	case "serial":
		return stream.OpenSerial(c.URL, c.QueueLength)
	}
	return nil, fmt.Errorf("unknown radio URL scheme: %q", u.Scheme)
}

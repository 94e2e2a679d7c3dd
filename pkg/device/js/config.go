package js

import (
	"flag"
	"fmt"

	"github.com/golang/glog"
)

// Config defines the joystick used as keys.
type Config struct {
	Enabled     bool `yaml:"enabled"`
	DeviceIndex int  `yaml:"device"`
	Primary     int  `yaml:"primary"`
	Secondary   int  `yaml:"secondary"`
}

var defaultConfig = Config{
	DeviceIndex: -1,
	Primary:     0,
	Secondary:   1,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&defaultConfig.Enabled, "joystick", defaultConfig.Enabled, "Use joystick buttons as keys.")
	flag.IntVar(&defaultConfig.DeviceIndex, "joystick-device", defaultConfig.DeviceIndex, "Device index, -1 for auto detection.")
	flag.IntVar(&defaultConfig.Primary, "joystick-primary", defaultConfig.Primary, "Button number of the primary key.")
	flag.IntVar(&defaultConfig.Secondary, "joystick-secondary", defaultConfig.Secondary, "Button number of the secondary key.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Open opens the joystick.
func (c *Config) Open() (*Buttons, error) {
	var dev Device
	var err error
	if c.DeviceIndex >= 0 {
		dev, err = Open(c.DeviceIndex)
	} else {
		dev, err = Detect(0)
	}
	if err != nil {
		return nil, err
	}
	if dev == nil {
		return nil, fmt.Errorf("no joystick detected")
	}
	if n := dev.ButtonCount(); c.Primary >= n || c.Secondary >= n {
		dev.Close()
		return nil, fmt.Errorf("joystick %q has %d buttons", dev.Name(), n)
	}
	glog.Infof("joystick %d %q opened", dev.Index(), dev.Name())
	return NewButtons(dev), nil
}

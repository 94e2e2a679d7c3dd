package station

import (
	"flag"
	"fmt"
	"io/ioutil"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/morsetooth/pkg/channel"
	"github.com/robotalks/morsetooth/pkg/device"
	"github.com/robotalks/morsetooth/pkg/device/js"
	"github.com/robotalks/morsetooth/pkg/env"
	fx "github.com/robotalks/morsetooth/pkg/framework"
	"github.com/robotalks/morsetooth/pkg/morse"
	"github.com/robotalks/morsetooth/pkg/radio"
)

// DefaultSeparator is appended to every received message before it is
// shown. It is made of visible characters so the display is not idle
// between two messages.
const DefaultSeparator = "_:_"

// ChannelConfig configures the channel setup at start.
type ChannelConfig struct {
	Bits    int `yaml:"bits"`
	Default int `yaml:"default"`
	Power   int `yaml:"power"`
}

// DecoderConfig selects the decoder policies by name.
type DecoderConfig struct {
	InvalidToken string `yaml:"invalid_token"`
	EmptyResult  string `yaml:"empty_result"`
}

// Config defines the configurations of a station.
type Config struct {
	Tick         time.Duration   `yaml:"tick"`
	ScrollDelay  time.Duration   `yaml:"scroll_delay"`
	BreakHold    int             `yaml:"break_hold"`
	Separator    string          `yaml:"separator"`
	UseLights    bool            `yaml:"lights"`
	UseMusic     bool            `yaml:"music"`
	ReceivedTune string          `yaml:"received_tune"`
	SentTune     string          `yaml:"sent_tune"`
	Channel      ChannelConfig   `yaml:"channel"`
	Decoder      DecoderConfig   `yaml:"decoder"`
	Radio        env.RadioConfig `yaml:"radio"`
	Joystick     js.Config       `yaml:"joystick"`
}

var (
	defaultConfig = Config{
		Tick:         fx.DefaultInterval,
		ScrollDelay:  DefaultScrollDelay,
		BreakHold:    DefaultBreakHold,
		Separator:    DefaultSeparator,
		UseLights:    true,
		UseMusic:     true,
		ReceivedTune: device.TuneJumpUp,
		SentTune:     device.TuneJumpDown,
		Channel: ChannelConfig{
			Bits:    channel.DefaultBits,
			Default: channel.DefaultChannel,
			Power:   radio.MaxPower,
		},
		Decoder: DecoderConfig{
			InvalidToken: morse.AbortOnInvalid.String(),
			EmptyResult:  morse.EmptyAsInput.String(),
		},
	}
	configFile string
)

// SetupFlags sets command line flags.
func SetupFlags() {
	env.SetupFlags()
	js.SetupFlags()
	flag.StringVar(&configFile, "config", configFile, "YAML config file overlaid on flags")
	flag.DurationVar(&defaultConfig.Tick, "tick", defaultConfig.Tick, "Tick interval")
	flag.DurationVar(&defaultConfig.ScrollDelay, "scroll-delay", defaultConfig.ScrollDelay, "Scroll delay per display column")
	flag.IntVar(&defaultConfig.BreakHold, "break-hold", defaultConfig.BreakHold, "Ticks the buttons are ignored after a word break")
	flag.StringVar(&defaultConfig.Separator, "separator", defaultConfig.Separator, "Appended to received messages")
	flag.BoolVar(&defaultConfig.UseLights, "lights", defaultConfig.UseLights, "Drive the lamp")
	flag.BoolVar(&defaultConfig.UseMusic, "music", defaultConfig.UseMusic, "Play tunes")
	flag.IntVar(&defaultConfig.Channel.Bits, "channel-bits", defaultConfig.Channel.Bits, "Binary digits entered for the channel")
	flag.IntVar(&defaultConfig.Channel.Default, "channel", defaultConfig.Channel.Default, "Default channel")
	flag.IntVar(&defaultConfig.Channel.Power, "power", defaultConfig.Channel.Power, "Transmit power")
	flag.StringVar(&defaultConfig.Decoder.InvalidToken, "invalid-token", defaultConfig.Decoder.InvalidToken, "Undecodable token policy: abort or drop")
	flag.StringVar(&defaultConfig.Decoder.EmptyResult, "empty-result", defaultConfig.Decoder.EmptyResult, "Empty decode result policy: input or empty")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults, including the radio and
// joystick configs.
func NewConfig() *Config {
	conf := defaultConfig
	conf.Radio = *env.Default()
	conf.Joystick = *js.Default()
	return &conf
}

// ConfigFile returns the value of -config.
func ConfigFile() string {
	return configFile
}

// Load overlays YAML content. Keys absent in data keep their values.
func (c *Config) Load(data []byte) error {
	return yaml.Unmarshal(data, c)
}

// LoadFile overlays a YAML file.
func (c *Config) LoadFile(fn string) error {
	data, err := ioutil.ReadFile(fn)
	if err != nil {
		return err
	}
	if err = c.Load(data); err != nil {
		return fmt.Errorf("%s: %v", fn, err)
	}
	return nil
}

// Validate checks the config.
func (c *Config) Validate() error {
	var errs fx.AggregatedError
	if c.Tick <= 0 {
		errs.Add(fmt.Errorf("tick must be positive"))
	}
	if c.ScrollDelay <= 0 {
		errs.Add(fmt.Errorf("scroll delay must be positive"))
	}
	if c.BreakHold < 0 {
		errs.Add(fmt.Errorf("break hold must not be negative"))
	}
	if c.Channel.Bits < 1 || c.Channel.Bits > channel.MaxBits {
		errs.Add(fmt.Errorf("channel bits %d out of range [1, %d]", c.Channel.Bits, channel.MaxBits))
	}
	errs.Add(radio.Settings{Channel: c.Channel.Default, Power: c.Channel.Power}.Validate())
	_, err := c.NewDecoder()
	errs.Add(err)
	return errs.Aggregate()
}

// NewDecoder creates the decoder with the configured policies.
func (c *Config) NewDecoder() (*morse.Decoder, error) {
	d := morse.NewDecoder()
	var err error
	if d.InvalidToken, err = morse.ParseInvalidTokenPolicy(c.Decoder.InvalidToken); err != nil {
		return nil, err
	}
	if d.EmptyResult, err = morse.ParseEmptyResultPolicy(c.Decoder.EmptyResult); err != nil {
		return nil, err
	}
	return d, nil
}

// NewChannelSetup creates the channel setup on the peripherals.
func (c *Config) NewChannelSetup(p *Peripherals) *channel.Setup {
	return &channel.Setup{
		Primary:     p.Primary,
		Secondary:   p.Secondary,
		Display:     p.Display,
		Bits:        c.Channel.Bits,
		Default:     c.Channel.Default,
		ScrollDelay: c.ScrollDelay,
	}
}

// NewController creates a controller using the config. The lamp and the
// player are left out when disabled.
func (c *Config) NewController(r radio.Radio, p *Peripherals) (*Controller, error) {
	d, err := c.NewDecoder()
	if err != nil {
		return nil, err
	}
	ctl := NewController(r, p)
	ctl.Decoder = d
	ctl.Separator = c.Separator
	ctl.ScrollDelay = c.ScrollDelay
	ctl.BreakHold = c.BreakHold
	ctl.ReceivedTune = c.ReceivedTune
	ctl.SentTune = c.SentTune
	ctl.Unit = c.Radio.UnitOrDefault()
	if !c.UseLights {
		ctl.Light = nil
	}
	if !c.UseMusic {
		ctl.Player = nil
	}
	return ctl, nil
}

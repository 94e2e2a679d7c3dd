// Package sh provides an interactive console acting as the buttons and
// the display of a simulated station.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/morsetooth/pkg/device"
	"github.com/robotalks/morsetooth/pkg/morse"
	"github.com/robotalks/morsetooth/pkg/radio"
	"github.com/robotalks/morsetooth/pkg/session"
	"github.com/robotalks/morsetooth/pkg/station"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell   *ishell.Shell
	Keypad  *device.Keypad
	Encoder *morse.Encoder
	Decoder *morse.Decoder
	Station *station.Controller
	// Injector sends payloads as if from another station, only
	// available on loop radios.
	Injector radio.Radio
}

const (
	shellKey = "$shell"
	prompt   = "morse > "

	// WordBreak separates words in Morse arguments.
	WordBreak = "/"
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&DotCmd,
		&DashCmd,
		&BreakCmd,
		&KeyCmd,
		&SendCmd,
		&EncodeCmd,
		&DecodeCmd,
		&StatusCmd,
		&InjectCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print status in JSON.")
}

// New creates a new shell driving keypad.
func New(keypad *device.Keypad) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:   ishell.New(),
		Keypad:  keypad,
		Encoder: morse.NewEncoder(),
		Decoder: morse.NewDecoder(),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// Attach makes the console report the station and decode with the
// station's decoder policies.
func (s *Shell) Attach(ctl *station.Controller) *Shell {
	s.Station = ctl
	if ctl.Decoder != nil {
		s.Decoder = ctl.Decoder
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustHaveStation wraps command func requires a running station.
func MustHaveStation(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Station == nil {
			c.Err(fmt.Errorf("station not started"))
			return
		}
		fn(c)
	}
}

// ParseMorse joins command arguments into a raw Morse string. A WordBreak
// argument separates words and '_' stands for a single marker.
func ParseMorse(args []string) string {
	raw := " " + strings.Join(args, " ") + " "
	raw = strings.Replace(raw, " "+WordBreak+" ", "  ", -1)
	raw = strings.Replace(raw[1:len(raw)-1], "_", " ", -1)
	return raw
}

// ShowRender prints what the display renders, as device.ScrollDisplay
// OnRender.
func (s *Shell) ShowRender(text string, opts device.RenderOptions) {
	if text == "" {
		return
	}
	s.printf("[display] %s\n", text)
}

// Key queues raw Morse as key presses, one symbol per tick.
func (s *Shell) Key(raw string) error {
	return s.Keypad.Key(raw)
}

// Send keys the Morse of text followed by the send gesture.
func (s *Shell) Send(text string) (string, error) {
	code, err := s.Encoder.Encode(text)
	if err != nil {
		return "", err
	}
	return code, s.Keypad.Key(code + strings.Repeat(string(morse.Marker), session.SendMarkers))
}

// Inject delivers raw Morse to the station as if another station sent it.
func (s *Shell) Inject(raw string) error {
	if s.Injector == nil {
		return fmt.Errorf("inject is only available on loop radio")
	}
	if !morse.HasSymbols(raw) || strings.Trim(raw, ".- ") != "" {
		return fmt.Errorf("not Morse: %q", raw)
	}
	return s.Injector.Send(raw)
}

// Status formats the station status.
func (s *Shell) Status() (string, error) {
	status := s.Station.Status()
	if s.OutputJSON {
		out, err := json.Marshal(&status)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	return status.String(), nil
}

// Run runs commands from args, or the interactive shell.
func (s *Shell) Run(args ...string) error {
	if len(args) > 0 {
		return s.Shell.Process(args...)
	}
	if s.Interactive {
		s.Shell.Run()
		return nil
	}
	return fmt.Errorf("command expected")
}

func (s *Shell) printf(format string, args ...interface{}) {
	if s.Shell != nil {
		s.Shell.Printf(format, args...)
		return
	}
	glog.Infof(format, args...)
}

func pushN(c *ishell.Context, primary, secondary bool) {
	n := 1
	if len(c.Args) > 0 {
		val, err := strconv.Atoi(c.Args[0])
		if err != nil || val < 1 {
			c.Err(fmt.Errorf("invalid COUNT: %q", c.Args[0]))
			return
		}
		n = val
	}
	keypad := ShellFrom(c).Keypad
	for i := 0; i < n; i++ {
		keypad.Push(primary, secondary)
	}
}

var (
	// DotCmd presses the primary button.
	DotCmd = ishell.Cmd{
		Name:    "dot",
		Aliases: []string{".", "a"},
		Help:    "[COUNT]",
		Func: func(c *ishell.Context) {
			pushN(c, true, false)
		},
	}

	// DashCmd presses the secondary button.
	DashCmd = ishell.Cmd{
		Name:    "dash",
		Aliases: []string{"-", "b"},
		Help:    "[COUNT]",
		Func: func(c *ishell.Context) {
			pushN(c, false, true)
		},
	}

	// BreakCmd presses both buttons.
	BreakCmd = ishell.Cmd{
		Name:    "break",
		Aliases: []string{"_", "ab"},
		Help:    "[COUNT], 3 in a row sends the message",
		Func: func(c *ishell.Context) {
			pushN(c, true, true)
		},
	}

	// KeyCmd keys raw Morse.
	KeyCmd = ishell.Cmd{
		Name:    "key",
		Aliases: []string{"k"},
		Help:    "MORSE, e.g. key .... .. / - .... . .-. . ___",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).Key(ParseMorse(c.Args)); err != nil {
				c.Err(err)
			}
		},
	}

	// SendCmd keys plain text and sends it.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "TEXT",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("TEXT required"))
				return
			}
			code, err := ShellFrom(c).Send(strings.Join(c.Args, " "))
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("keying %q\n", code)
		},
	}

	// EncodeCmd prints the Morse of text.
	EncodeCmd = ishell.Cmd{
		Name:    "encode",
		Aliases: []string{"enc"},
		Help:    "TEXT",
		Func: func(c *ishell.Context) {
			code, err := ShellFrom(c).Encoder.Encode(strings.Join(c.Args, " "))
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("%q\n", code)
		},
	}

	// DecodeCmd prints the text of Morse.
	DecodeCmd = ishell.Cmd{
		Name:    "decode",
		Aliases: []string{"dec"},
		Help:    "MORSE",
		Func: func(c *ishell.Context) {
			c.Println(ShellFrom(c).Decoder.Decipher(ParseMorse(c.Args)))
		},
	}

	// StatusCmd prints the station status.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "",
		Func: MustHaveStation(func(c *ishell.Context) {
			out, err := ShellFrom(c).Status()
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(out)
		}),
	}

	// InjectCmd delivers Morse from a virtual peer.
	InjectCmd = ishell.Cmd{
		Name:    "inject",
		Aliases: []string{"in"},
		Help:    "MORSE",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).Inject(ParseMorse(c.Args)); err != nil {
				c.Err(err)
			}
		},
	}
)

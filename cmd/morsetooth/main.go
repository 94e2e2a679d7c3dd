package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/morsetooth/pkg/cli/sh"
	"github.com/robotalks/morsetooth/pkg/device"
	"github.com/robotalks/morsetooth/pkg/device/js"
	fx "github.com/robotalks/morsetooth/pkg/framework"
	"github.com/robotalks/morsetooth/pkg/radio"
	"github.com/robotalks/morsetooth/pkg/station"
)

func init() {
	station.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := station.NewConfig()
	if fn := station.ConfigFile(); fn != "" {
		if err := conf.LoadFile(fn); err != nil {
			glog.Exitln(err)
		}
	}
	if err := conf.Validate(); err != nil {
		glog.Exitln(err)
	}

	hub := radio.NewHub()
	r, err := conf.Radio.Open(hub)
	if err != nil {
		glog.Exitf("open radio %s: %v", conf.Radio.URL, err)
	}

	keypad := device.NewKeypad()
	display := device.NewScrollDisplay()
	p := &station.Peripherals{
		Primary:   keypad.Button(device.Primary),
		Secondary: keypad.Button(device.Secondary),
		Display:   display,
		Light:     &device.LogPin{Name: "lamp"},
		Player:    &device.LogPlayer{},
	}
	var joystick *js.Buttons
	if conf.Joystick.Enabled {
		if joystick, err = conf.Joystick.Open(); err != nil {
			glog.Exitln(err)
		}
		p.Primary = device.Either(p.Primary, joystick.Button(conf.Joystick.Primary))
		p.Secondary = device.Either(p.Secondary, joystick.Button(conf.Joystick.Secondary))
	}
	ctl, err := conf.NewController(r, p)
	if err != nil {
		glog.Exitln(err)
	}

	shell := sh.New(keypad).Attach(ctl)
	display.OnRender = shell.ShowRender
	var peer *radio.Endpoint
	if _, ok := r.(*radio.Endpoint); ok {
		peer = hub.Join(0)
		shell.Injector = peer
	}

	args := flag.Args()
	if len(args) > 0 {
		// unattended, take the default channel.
		keypad.Push(true, false)
	}

	runner := fx.NewRunner().HandleSignals()
	ctx, cancel := context.WithCancel(runner.Context)
	defer cancel()
	runner.Context = ctx
	started := make(chan struct{})
	if joystick != nil {
		runner.Go(joystick)
	}
	runner.Go(fx.NamedRun("station", fx.RunnableFunc(func(ctx context.Context) error {
		settings, err := conf.NewChannelSetup(p).Apply(ctx, r, conf.Channel.Power)
		if err != nil {
			return err
		}
		if peer != nil {
			if err = peer.Configure(settings); err != nil {
				return err
			}
		}
		keypad.Flush()
		if joystick != nil {
			joystick.Flush()
		}
		ctl.SetChannel(settings.Channel)
		close(started)

		loop := fx.NewLoop()
		loop.Interval = conf.Tick
		loop.Add(ctl)
		if adder, ok := r.(fx.LoopAdder); ok {
			loop.Add(adder)
		}
		return loop.Run(ctx)
	})))

	go func() {
		if len(args) > 0 {
			select {
			case <-started:
			case <-ctx.Done():
				return
			}
			if err := shell.Run(args...); err != nil {
				glog.Errorln(err)
			}
			return
		}
		if err := shell.Run(); err != nil {
			glog.Errorln(err)
		}
		cancel()
	}()

	if err := runner.Wait(); err != nil {
		glog.Exitln(err)
	}
}

package main

import (
	"context"
	"flag"
	"os"

	"github.com/golang/glog"

	fx "github.com/robotalks/morsetooth/pkg/framework"
	"github.com/robotalks/morsetooth/pkg/morse"
	"github.com/robotalks/morsetooth/pkg/msgs"
	"github.com/robotalks/morsetooth/pkg/radio/mqtt"
)

var (
	mqttURL      = "mqtt://localhost:1883/morse/"
	channel      = -1
	invalidToken = morse.DropInvalid.String()
)

func init() {
	if val := os.Getenv("MORSETOOTH_RADIO_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.IntVar(&channel, "channel", channel, "Only show this channel, -1 for all.")
	flag.StringVar(&invalidToken, "invalid-token", invalidToken, "Undecodable token policy: abort or drop.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	decoder := morse.NewDecoder()
	policy, err := morse.ParseInvalidTokenPolicy(invalidToken)
	if err != nil {
		glog.Exitln(err)
	}
	decoder.InvalidToken = policy

	m, err := mqtt.NewMonitor(mqttURL)
	if err != nil {
		glog.Exitln(err)
	}
	m.OnPayload = func(ch int, unit, payload string) {
		if channel >= 0 && ch != channel {
			return
		}
		glog.Infof("ch %d %s: %q => %s", ch, unit, payload, decoder.Decipher(payload))
	}
	m.OnStatus = func(unit string, status *msgs.StationStatus) {
		if status == nil {
			glog.Infof("%s: offline", unit)
			return
		}
		if channel >= 0 && int(status.Channel) != channel {
			return
		}
		glog.Infof("%s: %s", unit, status.String())
	}
	if err = m.Connect(); err != nil {
		glog.Exitln(err)
	}

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NamedRun("monitor", fx.RunnableFunc(func(ctx context.Context) error {
		<-ctx.Done()
		m.Close()
		return ctx.Err()
	})))
	if err = runner.Wait(); err != nil {
		glog.Exitln(err)
	}
}

package mqtt

import (
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/morsetooth/pkg/msgs"
)

// PayloadHandler is invoked for every payload heard on any channel.
type PayloadHandler func(channel int, unit, payload string)

// StatusHandler is invoked for every status event. status is nil when a
// unit went offline.
type StatusHandler func(unit string, status *msgs.StationStatus)

// Monitor listens to all channels and status events without transmitting.
type Monitor struct {
	TopicPrefix string
	Client      paho.Client
	OnPayload   PayloadHandler
	OnStatus    StatusHandler
}

// NewMonitor creates a Monitor.
func NewMonitor(brokerURL string) (*Monitor, error) {
	opts, prefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	m := &Monitor{TopicPrefix: prefix}
	opts.SetOnConnectHandler(func(c paho.Client) {
		glog.Info("connected")
		c.Subscribe(prefix+"#", 0, func(_ paho.Client, msg paho.Message) {
			m.dispatch(msg.Topic(), msg.Payload())
		})
	})
	m.Client = paho.NewClient(opts)
	return m, nil
}

// Connect connects to the broker, subscribing once connected.
func (m *Monitor) Connect() error {
	token := m.Client.Connect()
	token.Wait()
	return token.Error()
}

// Close implements io.Closer.
func (m *Monitor) Close() error {
	m.Client.Disconnect(250)
	return nil
}

func (m *Monitor) dispatch(topic string, payload []byte) {
	if !strings.HasPrefix(topic, m.TopicPrefix) {
		return
	}
	topic = topic[len(m.TopicPrefix):]
	if channel, unit, ok := ParseChannelTopic(topic); ok {
		if h := m.OnPayload; h != nil {
			h(channel, unit, string(payload))
		}
		return
	}
	if strings.HasPrefix(topic, "status/") {
		unit := strings.TrimPrefix(topic, "status/")
		var status *msgs.StationStatus
		if len(payload) > 0 {
			var err error
			if status, err = msgs.DecodeStationStatus(payload); err != nil {
				glog.Warningf("%s: bad status: %v", topic, err)
				return
			}
		}
		if h := m.OnStatus; h != nil {
			h(unit, status)
		}
	}
}

package mqtt

import (
	"context"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	fx "github.com/robotalks/morsetooth/pkg/framework"
	"github.com/robotalks/morsetooth/pkg/msgs"
	"github.com/robotalks/morsetooth/pkg/radio"
)

// DefaultConnectTimeout bounds Connect.
const DefaultConnectTimeout = 5 * time.Second

// Radio implements radio.Radio using MQTT.
type Radio struct {
	Unit        string
	TopicPrefix string
	Client      paho.Client

	rx         *radio.RxQueue
	lock       sync.Mutex
	settings   radio.Settings
	configured bool
	subscribed string
}

// New creates a Radio for unit. The client is not connected until Connect.
func New(brokerURL, unit string, queueLength int) (*Radio, error) {
	opts, prefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	if opts.ClientID == "" {
		opts.SetClientID("morsetooth:" + unit)
	}
	r := &Radio{
		Unit:        unit,
		TopicPrefix: prefix,
		rx:          radio.NewRxQueue(queueLength),
	}
	opts.SetBinaryWill(prefix+StatusTopic(unit), nil, 1, true)
	opts.SetOnConnectHandler(r.onConnected)
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		glog.Warningf("connection lost: %v", err)
	})
	r.Client = paho.NewClient(opts)
	return r, nil
}

// Connect connects to the broker.
func (r *Radio) Connect() error {
	token := r.Client.Connect()
	if !token.WaitTimeout(DefaultConnectTimeout) {
		return context.DeadlineExceeded
	}
	return token.Error()
}

// Receive implements radio.Radio.
func (r *Radio) Receive() (string, bool) {
	return r.rx.Get()
}

// Dropped implements radio.DropCounter.
func (r *Radio) Dropped() int {
	return r.rx.Dropped()
}

// Send implements radio.Radio. It does not wait for the broker.
func (r *Radio) Send(payload string) error {
	r.lock.Lock()
	settings, configured := r.settings, r.configured
	r.lock.Unlock()
	if !configured {
		return radio.ErrNotConfigured
	}
	topic := r.TopicPrefix + ChannelTopic(settings.Channel, r.Unit)
	glog.V(2).Infof("PUB %q %q", topic, payload)
	token := r.Client.Publish(topic, 0, false, []byte(payload))
	go func() {
		if token.Wait(); token.Error() != nil {
			glog.Errorf("publish %q error: %v", topic, token.Error())
		}
	}()
	return nil
}

// Configure implements radio.Radio. Power has no meaning on a broker and
// is only recorded.
func (r *Radio) Configure(s radio.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.lock.Lock()
	prev := r.subscribed
	r.settings, r.configured = s, true
	r.subscribed = ChannelFilter(s.Channel)
	r.lock.Unlock()
	if prev != "" && prev != ChannelFilter(s.Channel) {
		r.rx.Reset()
		if r.Client.IsConnected() {
			r.Client.Unsubscribe(r.TopicPrefix + prev)
		}
	}
	glog.Infof("tuned to channel %d power %d", s.Channel, s.Power)
	if r.Client.IsConnected() {
		return r.subscribe()
	}
	return nil
}

// ReportStatus publishes a retained status event.
func (r *Radio) ReportStatus(ctx context.Context, status *msgs.StationStatus) error {
	data, err := status.Encode()
	if err != nil {
		return err
	}
	token := r.Client.Publish(r.TopicPrefix+StatusTopic(r.Unit), 1, true, data)
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if token.WaitTimeout(time.Second) {
		return token.Error()
	}
	return nil
}

// AddToLoop implements LoopAdder.
func (r *Radio) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(r)
}

// Run implements Runnable. It disconnects when ctx is done.
func (r *Radio) Run(ctx context.Context) error {
	<-ctx.Done()
	r.Close()
	return ctx.Err()
}

// Close implements io.Closer.
func (r *Radio) Close() error {
	if r.Client.IsConnected() {
		r.Client.Publish(r.TopicPrefix+StatusTopic(r.Unit), 1, true, []byte(nil)).WaitTimeout(time.Second)
	}
	r.Client.Disconnect(250)
	return nil
}

func (r *Radio) onConnected(paho.Client) {
	glog.Info("connected")
	r.lock.Lock()
	configured := r.configured
	r.lock.Unlock()
	if configured {
		if err := r.subscribe(); err != nil {
			glog.Errorf("subscribe error: %v", err)
		}
	}
}

func (r *Radio) subscribe() error {
	r.lock.Lock()
	filter := r.subscribed
	r.lock.Unlock()
	glog.V(2).Infof("SUB %q", r.TopicPrefix+filter)
	token := r.Client.Subscribe(r.TopicPrefix+filter, 0, func(_ paho.Client, msg paho.Message) {
		r.deliver(msg.Topic(), msg.Payload())
	})
	token.WaitTimeout(DefaultConnectTimeout)
	return token.Error()
}

// deliver queues a payload unless it is our own or from another channel.
func (r *Radio) deliver(topic string, payload []byte) {
	if len(topic) < len(r.TopicPrefix) || topic[:len(r.TopicPrefix)] != r.TopicPrefix {
		return
	}
	channel, unit, ok := ParseChannelTopic(topic[len(r.TopicPrefix):])
	if !ok || unit == r.Unit {
		return
	}
	r.lock.Lock()
	tuned := r.configured && r.settings.Channel == channel
	r.lock.Unlock()
	if !tuned {
		return
	}
	glog.V(2).Infof("RCV %q", topic)
	r.rx.Put(string(payload))
}

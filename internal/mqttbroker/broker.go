// Package mqttbroker wraps github.com/eclipse/paho.mqtt.golang (the
// teacher's MQTT dependency) behind the small contract the dispatch loop
// needs: connect, multi-subscribe on every (re)connect, and hand each
// inbound message's topic/payload/receive-time to a callback.
package mqttbroker

import (
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/yafiyogi/yy-mqtt-bridge/internal/logging"
)

// ReconnectBackoff is the fixed delay between reconnect attempts, per
// spec §5/original_source mqtt_client.cpp — deliberately not exponential.
const ReconnectBackoff = 15 * time.Second

const defaultKeepAlive = 60 * time.Second

// Config is the mqtt section of the configuration file.
type Config struct {
	Host     string
	Port     int
	ClientId string
}

// MessageFunc receives one inbound message: its topic, raw payload, and a
// millisecond-resolution receive timestamp.
type MessageFunc func(topic string, payload []byte, timestampMs int64)

// Broker owns the MQTT connection and subscription set.
type Broker struct {
	client        mqtt.Client
	subscriptions []string
	onMessage     MessageFunc
	log           logging.Logger
	stopped       bool
	reconnectTmr  *time.Timer
}

// New builds a Broker. Connect must be called to actually dial the broker.
func New(cfg Config, subscriptions []string, onMessage MessageFunc, log logging.Logger) *Broker {
	b := &Broker{subscriptions: subscriptions, onMessage: onMessage, log: log}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Host + ":" + strconv.Itoa(cfg.Port))
	opts.SetClientID(cfg.ClientId)
	// MQTT v5, per spec §6. paho.mqtt.golang's v5 support is limited to
	// protocol-version negotiation; it does not implement the full v5
	// feature set (reason strings, user properties, etc.) — see
	// DESIGN.md.
	opts.SetProtocolVersion(5)
	opts.SetKeepAlive(defaultKeepAlive)
	opts.SetAutoReconnect(false) // the bridge drives its own fixed-backoff reconnect.
	opts.SetCleanSession(true)
	opts.SetDefaultPublishHandler(b.handleMessage)
	opts.OnConnect = b.onConnect
	opts.OnConnectionLost = b.onConnectionLost

	b.client = mqtt.NewClient(opts)
	return b
}

// Connect dials the broker once. On failure the caller decides whether to
// retry (Start wires the fixed-backoff retry for the long-running case).
func (b *Broker) Connect() error {
	token := b.client.Connect()
	token.Wait()
	return token.Error()
}

// Start connects and keeps retrying at ReconnectBackoff on failure, logging
// at Info level per spec §7, until Stop is called.
func (b *Broker) Start() {
	for !b.stopped {
		if err := b.Connect(); err != nil {
			if b.log != nil {
				b.log.Infof("mqtt: connect failed: %v, retrying in %s", err, ReconnectBackoff)
			}
			time.Sleep(ReconnectBackoff)
			continue
		}
		return
	}
}

// Stop disconnects cleanly and prevents further reconnect attempts.
func (b *Broker) Stop() {
	b.stopped = true
	if b.reconnectTmr != nil {
		b.reconnectTmr.Stop()
	}
	if b.client != nil && b.client.IsConnected() {
		b.client.Disconnect(250)
	}
}

func (b *Broker) onConnect(client mqtt.Client) {
	if b.log != nil {
		b.log.Info("mqtt: connected")
	}
	filters := make(map[string]byte, len(b.subscriptions))
	for _, s := range b.subscriptions {
		filters[s] = 0
	}
	if len(filters) == 0 {
		return
	}
	token := client.SubscribeMultiple(filters, b.handleMessage)
	token.Wait()
	if err := token.Error(); err != nil && b.log != nil {
		b.log.Warnf("mqtt: subscribe failed: %v", err)
	}
}

func (b *Broker) onConnectionLost(_ mqtt.Client, err error) {
	if b.log != nil {
		b.log.Warnf("mqtt: connection lost: %v", err)
	}
	if b.stopped {
		return
	}
	b.reconnectTmr = time.AfterFunc(ReconnectBackoff, func() {
		if !b.stopped {
			b.Start()
		}
	})
}

func (b *Broker) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	if b.onMessage == nil {
		return
	}
	b.onMessage(msg.Topic(), msg.Payload(), time.Now().UnixMilli())
}

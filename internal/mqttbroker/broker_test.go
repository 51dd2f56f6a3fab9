package mqttbroker

import (
	"testing"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 0 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

var _ mqtt.Message = (*fakeMessage)(nil)

func TestHandleMessageInvokesCallbackWithTopicAndPayload(t *testing.T) {
	var gotTopic string
	var gotPayload []byte
	b := New(Config{Host: "localhost", Port: 1883, ClientId: "bridge"}, nil,
		func(topic string, payload []byte, _ int64) {
			gotTopic = topic
			gotPayload = payload
		}, nil)

	b.handleMessage(nil, &fakeMessage{topic: "a/b", payload: []byte("payload")})

	assert.Equal(t, "a/b", gotTopic)
	assert.Equal(t, []byte("payload"), gotPayload)
}

func TestHandleMessageNilCallbackIsNoop(t *testing.T) {
	b := New(Config{Host: "localhost", Port: 1883, ClientId: "bridge"}, nil, nil, nil)
	assert.NotPanics(t, func() {
		b.handleMessage(nil, &fakeMessage{topic: "a", payload: nil})
	})
}

func TestStopWithoutConnectIsSafe(t *testing.T) {
	b := New(Config{Host: "localhost", Port: 1883, ClientId: "bridge"}, nil, nil, nil)
	require.NotNil(t, b.client)
	assert.NotPanics(t, func() { b.Stop() })
	assert.True(t, b.stopped)
}

func TestReconnectBackoffIsFixedFifteenSeconds(t *testing.T) {
	assert.Equal(t, "15s", ReconnectBackoff.String())
}

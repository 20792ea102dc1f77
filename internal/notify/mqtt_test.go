package notify

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doneToken struct {
	err error
}

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t doneToken) Error() error { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// recordingClient embeds mqtt.Client so only Publish needs an implementation.
type recordingClient struct {
	mqtt.Client
	sent []published
	err  error
}

func (c *recordingClient) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	c.sent = append(c.sent, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return doneToken{err: c.err}
}

func TestMQTTNotifierPublishesJSON(t *testing.T) {
	client := &recordingClient{}
	n := NewMQTTNotifierWithClient(client, "planner/changes")

	at := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	n.Notify(context.Background(), Change{
		Kind:     KindCreated,
		Resource: ResourceRecurringEvent,
		ID:       "abc",
		At:       at,
	})

	require.Len(t, client.sent, 1)
	assert.Equal(t, "planner/changes", client.sent[0].topic)
	assert.Equal(t, byte(publishQoS), client.sent[0].qos)

	var got Change
	require.NoError(t, json.Unmarshal(client.sent[0].payload, &got))
	assert.Equal(t, KindCreated, got.Kind)
	assert.Equal(t, ResourceRecurringEvent, got.Resource)
	assert.Equal(t, "abc", got.ID)
	assert.True(t, got.At.Equal(at))
}

func TestMQTTNotifierSwallowsPublishErrors(t *testing.T) {
	client := &recordingClient{err: errors.New("broker gone")}
	n := NewMQTTNotifierWithClient(client, "planner/changes")

	assert.NotPanics(t, func() {
		n.Notify(context.Background(), Change{Kind: KindDeleted, Resource: ResourceEvent, ID: "x"})
	})
	assert.Len(t, client.sent, 1)
}

func TestMQTTBroker(t *testing.T) {
	broker := os.Getenv("TEST_MQTT_BROKER_URL")
	if broker == "" {
		t.Skip("TEST_MQTT_BROKER_URL not set, skipping MQTT broker test")
	}

	n, err := NewMQTTNotifier(broker, "planner-test", "planner/test")
	require.NoError(t, err)
	defer n.Close()

	n.Notify(context.Background(), Change{Kind: KindUpdated, Resource: ResourceGroup, ID: "g1", At: time.Now()})
}

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	publishQoS     = 1
	publishTimeout = 5 * time.Second
	disconnectWait = 250
)

// MQTTNotifier publishes changes as JSON on a single topic.
type MQTTNotifier struct {
	client mqtt.Client
	topic  string
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// NewMQTTNotifier connects to brokerURL and publishes on topic.
func NewMQTTNotifier(brokerURL, clientID, topic string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Info().Str("broker", brokerURL).Str("topic", topic).Msg("MQTT notifier initialized")
	return NewMQTTNotifierWithClient(client, topic), nil
}

// NewMQTTNotifierWithClient wraps an already connected client.
func NewMQTTNotifierWithClient(client mqtt.Client, topic string) *MQTTNotifier {
	return &MQTTNotifier{client: client, topic: topic}
}

func (n *MQTTNotifier) Notify(ctx context.Context, change Change) {
	payload, err := json.Marshal(change)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode change")
		return
	}

	token := n.client.Publish(n.topic, publishQoS, false, payload)
	timeout := publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	if !token.WaitTimeout(timeout) {
		log.Error().Str("topic", n.topic).Msg("timed out publishing change")
		return
	}
	if err := token.Error(); err != nil {
		log.Error().Err(err).
			Str("topic", n.topic).
			Str("resource", change.Resource).
			Str("id", change.ID).
			Msg("failed to publish change")
	}
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(disconnectWait)
	log.Info().Msg("MQTT notifier disconnected")
}

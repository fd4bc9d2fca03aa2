// Package mqtt publishes next-prayer updates to an MQTT broker for displays
// and other devices that cannot hold a websocket open.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
)

const disconnectQuiesce = 250 // ms

// Connect dials the broker and waits for the first connection.
func Connect(brokerURL, clientID string) (paho.Client, error) {
	opts := paho.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.OnConnect = func(paho.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Warn().Err(err).Str("broker", brokerURL).Msg("MQTT connection lost")
	}

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return client, nil
}

// Disconnect closes the client, giving in-flight work a short grace period.
func Disconnect(client paho.Client) {
	if client == nil {
		return
	}
	client.Disconnect(disconnectQuiesce)
	log.Info().Msg("MQTT client disconnected")
}

type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// NextPrayerPublisher sends a retained message when the upcoming prayer
// changes, and otherwise at most once per Every.
type NextPrayerPublisher struct {
	client publisher
	topic  string
	every  time.Duration
	now    func() time.Time

	mu       sync.Mutex
	lastKey  string
	lastSent time.Time
}

func NewNextPrayerPublisher(client publisher, topic string, every time.Duration) *NextPrayerPublisher {
	if every <= 0 {
		every = time.Minute
	}
	return &NextPrayerPublisher{client: client, topic: topic, every: every, now: time.Now}
}

func (p *NextPrayerPublisher) Name() string { return "mqtt" }

func (p *NextPrayerPublisher) Publish(ctx context.Context, msg model.NextPrayer) error {
	key := msg.Name + "@" + msg.At.Format(time.RFC3339)
	now := p.now()
	if !p.due(key, now, msg.TimeUp) {
		return nil
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, 1, true, data)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("publish to %s: %w", p.topic, ctx.Err())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}

	p.mu.Lock()
	p.lastKey = key
	p.lastSent = now
	p.mu.Unlock()
	return nil
}

func (p *NextPrayerPublisher) due(key string, now time.Time, timeUp bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return timeUp || key != p.lastKey || now.Sub(p.lastSent) >= p.every
}

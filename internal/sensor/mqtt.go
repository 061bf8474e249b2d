package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTSource caches the newest reading published on a topic by a sensor
// gateway. Read returns that cached value.
type MQTTSource struct {
	client mqtt.Client
	topic  string

	mu     sync.RWMutex
	latest *Reading
	maxAge time.Duration
}

// NewMQTTSource connects to brokerURL and subscribes to topic. Readings older
// than maxAge are treated as missing; zero disables the check.
func NewMQTTSource(brokerURL, topic string, maxAge time.Duration) (*MQTTSource, error) {
	s := &MQTTSource{topic: topic, maxAge: maxAge}

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("caktus-api-" + fmt.Sprint(time.Now().UnixNano())).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(c mqtt.Client) {
			// resubscribe after every (re)connect
			token := c.Subscribe(topic, 0, func(_ mqtt.Client, m mqtt.Message) {
				s.handle(m.Payload())
			})
			if token.Wait() && token.Error() != nil {
				log.Printf("MQTT_SUBSCRIBE_FAILED topic=%s err=%v", topic, token.Error())
			}
		})

	s.client = mqtt.NewClient(opts)
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt broker: %w", token.Error())
	}

	log.Printf("MQTT source subscribed to %s", topic)
	return s, nil
}

func (s *MQTTSource) handle(payload []byte) {
	var r Reading
	if err := json.Unmarshal(payload, &r); err != nil {
		log.Printf("MQTT_BAD_PAYLOAD topic=%s err=%v", s.topic, err)
		return
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}

	s.mu.Lock()
	s.latest = &r
	s.mu.Unlock()
}

func (s *MQTTSource) Read(ctx context.Context, deviceID string) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return Reading{}, ErrNoReading
	}
	if s.maxAge > 0 && time.Since(s.latest.Timestamp) > s.maxAge {
		return Reading{}, ErrNoReading
	}

	r := *s.latest
	if r.DeviceID == "" {
		r.DeviceID = deviceID
	}
	return r, nil
}

func (s *MQTTSource) Close() {
	if s.client != nil {
		s.client.Disconnect(250)
	}
}

// Publisher sends readings to a topic; used by the sensor bridge.
type Publisher struct {
	client mqtt.Client
	topic  string
}

func NewPublisher(brokerURL, topic, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().AddBroker(brokerURL).SetClientID(clientID)
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt broker: %w", token.Error())
	}
	return &Publisher{client: c, topic: topic}, nil
}

func (p *Publisher) Publish(r Reading) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

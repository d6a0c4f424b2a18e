package mqtt

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

type fakeToken struct {
	err      error
	complete bool
}

func (t *fakeToken) Wait() bool                     { return t.complete }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.complete }
func (t *fakeToken) Error() error                   { return t.err }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if t.complete {
		close(ch)
	}
	return ch
}

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// fakeClient records publishes; unused paho.Client methods panic through the nil embed.
type fakeClient struct {
	paho.Client
	mu         sync.Mutex
	messages   []published
	connectErr error
	publishErr error
	stalled    bool
}

func (c *fakeClient) Connect() paho.Token {
	return &fakeToken{err: c.connectErr, complete: true}
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload any) paho.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, published{topic: topic, qos: qos, retained: retained, payload: payload.([]byte)})
	return &fakeToken{err: c.publishErr, complete: !c.stalled}
}

func (c *fakeClient) IsConnected() bool { return true }

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{name: "defaults", config: NewConfig()},
		{name: "empty broker", config: NewConfig().WithBroker("", 1883), wantErr: true},
		{name: "bad port", config: NewConfig().WithBroker("mqtt", 70000), wantErr: true},
		{name: "empty client id", config: NewConfig().WithClientID(""), wantErr: true},
		{name: "bad qos", config: NewConfig().WithQoS(3, false), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_URL(t *testing.T) {
	if got := NewConfig().WithBroker("broker.local", 8883).URL(); got != "tcp://broker.local:8883" {
		t.Errorf("URL() = %q", got)
	}
}

func TestPublisher_Publish(t *testing.T) {
	client := &fakeClient{}
	publisher := newPublisher(client, NewConfig().WithTopicPrefix("/owm/").WithQoS(1, true))

	body := map[string]any{"name": "London", "temp": 12.5}
	if err := publisher.Publish("weather/current/london-gb", body); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(client.messages) != 1 {
		t.Fatalf("published %d messages, want 1", len(client.messages))
	}
	got := client.messages[0]
	if got.topic != "owm/weather/current/london-gb" {
		t.Errorf("topic = %q", got.topic)
	}
	if got.qos != 1 || !got.retained {
		t.Errorf("qos = %d retained = %v, want 1 true", got.qos, got.retained)
	}
	var decoded map[string]any
	if err := json.Unmarshal(got.payload, &decoded); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if decoded["name"] != "London" {
		t.Errorf("payload name = %v", decoded["name"])
	}
}

func TestPublisher_PublishErrors(t *testing.T) {
	t.Run("broker error", func(t *testing.T) {
		client := &fakeClient{publishErr: errors.New("not connected")}
		if err := newPublisher(client, NewConfig()).Publish("t", 1); err == nil {
			t.Error("Expected error from broker")
		}
	})

	t.Run("timeout", func(t *testing.T) {
		client := &fakeClient{stalled: true}
		err := newPublisher(client, NewConfig()).Publish("t", 1)
		if !errors.Is(err, ErrPublishTimeout) {
			t.Errorf("error = %v, want ErrPublishTimeout", err)
		}
	})

	t.Run("unencodable body", func(t *testing.T) {
		client := &fakeClient{}
		if err := newPublisher(client, NewConfig()).Publish("t", make(chan int)); err == nil {
			t.Error("Expected JSON error")
		}
		if len(client.messages) != 0 {
			t.Error("nothing should be published")
		}
	})
}

func TestPublisher_Connect(t *testing.T) {
	if err := newPublisher(&fakeClient{}, NewConfig()).Connect(); err != nil {
		t.Errorf("Connect() error = %v", err)
	}
	if err := newPublisher(&fakeClient{connectErr: errors.New("refused")}, NewConfig()).Connect(); err == nil {
		t.Error("Expected connect error")
	}
}

func TestPublisher_Topic(t *testing.T) {
	tests := []struct {
		prefix string
		topic  string
		want   string
	}{
		{prefix: "", topic: "weather/current/oslo", want: "weather/current/oslo"},
		{prefix: "owm", topic: "/weather/current/oslo", want: "owm/weather/current/oslo"},
		{prefix: "site/owm/", topic: "weather", want: "site/owm/weather"},
	}

	for _, tt := range tests {
		p := newPublisher(&fakeClient{}, NewConfig().WithTopicPrefix(tt.prefix))
		if got := p.Topic(tt.topic); got != tt.want {
			t.Errorf("Topic(%q) with prefix %q = %q, want %q", tt.topic, tt.prefix, got, tt.want)
		}
	}
}

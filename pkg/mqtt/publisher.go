package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-owm/pkg/log"
	"go-owm/pkg/msg"
)

var ErrPublishTimeout = errors.New("mqtt publish timed out")

// Publisher sends JSON messages to an MQTT broker
type Publisher struct {
	client paho.Client
	config *Config
}

// NewPublisher builds a publisher with auto reconnect. Call Connect before publishing.
func NewPublisher(config *Config) (*Publisher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(config.URL())
	opts.SetClientID(config.ClientID)
	opts.SetUsername(config.Username)
	opts.SetPassword(config.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(config.ConnectTimeout)
	opts.OnConnect = func(paho.Client) {
		log.Info(msg.GetMessage("weather.mqtt-connected", config.URL()))
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Warn(msg.GetMessage("weather.mqtt-connection-lost", err), zap.Error(err))
	}

	paho.ERROR = brokerLogger{level: zap.ErrorLevel}
	paho.CRITICAL = brokerLogger{level: zap.ErrorLevel}
	paho.WARN = brokerLogger{level: zap.WarnLevel}

	return newPublisher(paho.NewClient(opts), config), nil
}

func newPublisher(client paho.Client, config *Config) *Publisher {
	return &Publisher{client: client, config: config}
}

// Connect blocks until the first connection succeeds or fails.
func (p *Publisher) Connect() error {
	token := p.client.Connect()
	if !token.WaitTimeout(p.config.ConnectTimeout) {
		return fmt.Errorf("mqtt connect to %s timed out", p.config.URL())
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect to %s: %w", p.config.URL(), err)
	}
	return nil
}

// Publish encodes body as JSON and publishes it under the configured topic prefix.
func (p *Publisher) Publish(topic string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to serialize message body to JSON: %w", err)
	}

	fullTopic := p.Topic(topic)
	token := p.client.Publish(fullTopic, p.config.QoS, p.config.Retained, payload)
	if !token.WaitTimeout(p.config.PublishTimeout) {
		return fmt.Errorf("%w: %s", ErrPublishTimeout, fullTopic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", fullTopic, err)
	}

	log.Debug("MQTT message published", zap.String("topic", fullTopic), zap.Int("bytes", len(payload)))
	return nil
}

// Topic joins the prefix and topic with a single "/".
func (p *Publisher) Topic(topic string) string {
	topic = strings.Trim(topic, "/")
	prefix := strings.Trim(p.config.TopicPrefix, "/")
	if prefix == "" {
		return topic
	}
	return prefix + "/" + topic
}

func (p *Publisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Disconnect waits up to 250ms for in-flight messages.
func (p *Publisher) Disconnect() {
	p.client.Disconnect(250)
}

// brokerLogger routes paho's internal logs to zap
type brokerLogger struct {
	level zapcore.Level
}

func (l brokerLogger) Println(v ...any) {
	l.print(fmt.Sprint(v...))
}

func (l brokerLogger) Printf(format string, v ...any) {
	l.print(fmt.Sprintf(format, v...))
}

func (l brokerLogger) print(message string) {
	if l.level >= zapcore.ErrorLevel {
		log.Error(message, zap.String("module", "mqtt"))
		return
	}
	log.Warn(message, zap.String("module", "mqtt"))
}

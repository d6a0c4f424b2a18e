package mqtt

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the broker connection and publish settings
type Config struct {
	Broker         string
	Port           int
	ClientID       string
	Username       string
	Password       string
	TopicPrefix    string
	QoS            byte
	Retained       bool
	ConnectTimeout time.Duration
	PublishTimeout time.Duration
}

// NewConfig returns a config for a local broker with QoS 1.
func NewConfig() *Config {
	return &Config{
		Broker:         "localhost",
		Port:           1883,
		ClientID:       "go-owm",
		QoS:            1,
		ConnectTimeout: 10 * time.Second,
		PublishTimeout: 5 * time.Second,
	}
}

func (c *Config) WithBroker(broker string, port int) *Config {
	c.Broker = broker
	c.Port = port
	return c
}

func (c *Config) WithCredentials(username, password string) *Config {
	c.Username = username
	c.Password = password
	return c
}

func (c *Config) WithClientID(clientID string) *Config {
	c.ClientID = clientID
	return c
}

func (c *Config) WithTopicPrefix(prefix string) *Config {
	c.TopicPrefix = prefix
	return c
}

func (c *Config) WithQoS(qos byte, retained bool) *Config {
	c.QoS = qos
	c.Retained = retained
	return c
}

// URL is the broker address in the tcp://host:port form paho expects.
func (c *Config) URL() string {
	return fmt.Sprintf("tcp://%s:%d", c.Broker, c.Port)
}

func (c *Config) Validate() error {
	if c.Broker == "" {
		return errors.New("mqtt broker cannot be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("mqtt port must be between 1 and 65535, got %d", c.Port)
	}
	if c.ClientID == "" {
		return errors.New("mqtt client id cannot be empty")
	}
	if c.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1 or 2, got %d", c.QoS)
	}
	return nil
}

package queue

// Publisher pushes a JSON encoded body to a topic. Topics are "/" separated,
// e.g. "weather/current/london-gb".
type Publisher interface {
	Publish(topic string, body any) error
}

package eventbus

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amirasaad/finlabs/pkg/eventbus"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Factories maps event type names to constructors used to decode payloads
// read back from Redis or Kafka.
type Factories map[string]func() eventbus.Event

func encode(event eventbus.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	env, err := json.Marshal(envelope{Type: event.Type(), Payload: data})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return env, nil
}

func (f Factories) decode(raw []byte) (eventbus.Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	constructor, ok := f[env.Type]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", env.Type)
	}
	evt := constructor()
	if err := json.Unmarshal(env.Payload, evt); err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %w", env.Type, err)
	}
	return evt, nil
}

// topicNameFor turns "account.transaction.posted" into
// "<prefix>.account.transaction.posted".
func topicNameFor(prefix, eventType string) string {
	return strings.TrimSuffix(prefix, ".") + "." + strings.ToLower(eventType)
}

func dlqNameFor(name string) string {
	return name + ".dlq"
}

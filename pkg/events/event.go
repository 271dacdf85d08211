package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the keuzehulp
const (
	TypeSessionReset     = "session.reset"
	TypeChatRelayed      = "chat.relayed"
	TypeChatRecommended  = "chat.recommended"
	TypeUpstreamFailed   = "chat.upstream_failed"
	TypeLoginSucceeded   = "auth.login_succeeded"
	TypeLoginFailed      = "auth.login_failed"
	TypeQuestionnaireEnd = "ask.completed"
)

// Event defines the contract for all system events.
type Event interface {
	// EventID returns a unique id, used for de-duplication downstream.
	EventID() string

	// EventType returns the unique code for this event (e.g., "session.reset").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// New stamps an event with a fresh id and the current time
func New(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string {
	return e.ID
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Marshal encodes any Event as the JSON envelope used on the wire
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{
		ID:         e.EventID(),
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	})
}

// Unmarshal decodes the JSON envelope
func Unmarshal(data []byte) (BaseEvent, error) {
	var e BaseEvent
	err := json.Unmarshal(data, &e)
	return e, err
}

package ws

import "encoding/json"

// MessageType constants for the quiz update protocol.
const (
	// Client -> Server
	TypePing = "ping"

	// Server -> Client
	TypeHello          = "hello"
	TypeQuestionsAdded = "questions_added"
	TypePong           = "pong"
	TypeError          = "error"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// HelloPayload is sent once after the upgrade.
type HelloPayload struct {
	ConnectionID string `json:"connection_id"`
	Total        int64  `json:"total"`
}

// QuestionsAddedPayload announces a committed upload.
type QuestionsAddedPayload struct {
	Filename      string `json:"filename"`
	QuestionCount int    `json:"question_count"`
	Total         int64  `json:"total"`
}

// ErrorPayload describes a protocol error.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewMessage marshals payload into a typed message.
func NewMessage(msgType string, payload interface{}) (Message, error) {
	msg := Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	msg.Payload = raw
	return msg, nil
}

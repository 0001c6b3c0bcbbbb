package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// client -> server
	MessageTypeSelect  MessageType = "select"
	MessageTypeMove    MessageType = "move"
	MessageTypePromote MessageType = "promote"
	MessageTypeReset   MessageType = "reset"

	// server -> client
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrMalformedPayload is returned for payloads missing a required square.
var ErrMalformedPayload = errors.New("malformed payload")

// Squares are pointers so an absent field is not read as a8.
type SelectPayload struct {
	Square *model.Position `json:"square"`
}

func (p SelectPayload) Validate() error {
	if p.Square == nil {
		return fmt.Errorf("%w: square is required", ErrMalformedPayload)
	}
	return nil
}

type MovePayload struct {
	From *model.Position `json:"from"`
	To   *model.Position `json:"to"`
}

func (p MovePayload) Validate() error {
	if p.From == nil || p.To == nil {
		return fmt.Errorf("%w: from and to are required", ErrMalformedPayload)
	}
	return nil
}

type PromotePayload struct {
	Piece model.PieceType `json:"piece"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage wraps payload in an envelope of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

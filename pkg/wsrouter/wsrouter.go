package wsrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrUnknownType is returned by ServeMessage for message types without a
// registered handler, so the caller can skip them without tearing down the
// connection.
var ErrUnknownType = errors.New("unknown message type")

// DecodeError marks a payload that failed to unmarshal into the handler's
// input type. Handlers are never invoked with a malformed payload.
type DecodeError struct {
	MessageType string
	Err         error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q payload: %s", e.MessageType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type HandlerFunc[C any] func(ctx context.Context, conn C, payload json.RawMessage) error

type Middleware[C any] func(next HandlerFunc[C]) HandlerFunc[C]

type WSRouter[C any] struct {
	routes      map[string]HandlerFunc[C]
	middlewares []Middleware[C]
}

func New[C any]() *WSRouter[C] {
	return &WSRouter[C]{routes: make(map[string]HandlerFunc[C])}
}

func (r *WSRouter[C]) Use(mw Middleware[C]) {
	r.middlewares = append(r.middlewares, mw)
}

func (r *WSRouter[C]) Handle(messageType string, handler HandlerFunc[C]) {
	r.routes[messageType] = handler
}

// Handle registers a handler with a typed payload. The payload is decoded
// before the handler runs; a type mismatch yields a *DecodeError and the
// handler is not called.
func Handle[C any, T any](r *WSRouter[C], messageType string, handler func(ctx context.Context, conn C, input T) error) {
	r.Handle(messageType, func(ctx context.Context, conn C, payload json.RawMessage) error {
		var input T
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &input); err != nil {
				return &DecodeError{MessageType: messageType, Err: err}
			}
		}
		return handler(ctx, conn, input)
	})
}

func (r *WSRouter[C]) ServeMessage(ctx context.Context, conn C, data []byte) error {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		return &DecodeError{Err: err}
	}

	handler, exists := r.routes[msg.Type]
	if !exists {
		return fmt.Errorf("%q: %w", msg.Type, ErrUnknownType)
	}

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}

	ctx = context.WithValue(ctx, messageTypeKey, msg.Type)

	return handler(ctx, conn, msg.Payload)
}

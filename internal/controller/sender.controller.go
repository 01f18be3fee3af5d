package controller

import (
	"context"

	"github.com/MrfksIv/morf-stream/internal/repository/connection"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// broadcast fans output out to every conn in the snapshot. A failing
// recipient is dropped by its own Send; the rest still get the message.
func (c *controller) broadcast(ctx context.Context, conns []*connection.Conn, output *Output) {
	for _, conn := range conns {
		if err := conn.Send(output); err != nil {
			c.logger.WarnContext(ctx, "failed to send to connection", "message_type", output.Type, "error", err)
		}
	}
}

package controller

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/MrfksIv/morf-stream/internal/repository/connection"
	"github.com/MrfksIv/morf-stream/pkg/ctxlogger"
	"github.com/MrfksIv/morf-stream/pkg/wsrouter"
)

func (c *controller) wsRequestIdWSMw() wsrouter.Middleware[*connection.Conn] {
	return func(next wsrouter.HandlerFunc[*connection.Conn]) wsrouter.HandlerFunc[*connection.Conn] {
		return func(ctx context.Context, conn *connection.Conn, payload json.RawMessage) error {
			ctx = ctxlogger.AppendCtx(ctx, slog.String("ws_request_id", c.generateTimeBasedId()))
			return next(ctx, conn, payload)
		}
	}
}

func (c *controller) loggerWSMw() wsrouter.Middleware[*connection.Conn] {
	return func(next wsrouter.HandlerFunc[*connection.Conn]) wsrouter.HandlerFunc[*connection.Conn] {
		return func(ctx context.Context, conn *connection.Conn, payload json.RawMessage) error {
			ctx = ctxlogger.AppendCtx(ctx, slog.String("message_type", wsrouter.GetMessageTypeFromCtx(ctx)))
			c.logger.InfoContext(ctx, "websocket message received", "payload", payload)

			start := time.Now()

			err := next(ctx, conn, payload)

			c.logger.InfoContext(ctx, "websocket message handled",
				"processing_time_us", time.Since(start).Microseconds(),
			)

			return err
		}
	}
}

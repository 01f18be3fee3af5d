package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/MrfksIv/morf-stream/internal/repository/connection"
	"github.com/MrfksIv/morf-stream/internal/service"
	"github.com/MrfksIv/morf-stream/pkg/ctxlogger"
	"github.com/MrfksIv/morf-stream/pkg/wsrouter"
)

func (c *controller) serveWS(w http.ResponseWriter, r *http.Request) {
	participantId := uuid.NewString()
	ctx := ctxlogger.AppendCtx(r.Context(), slog.String("participant_id", participantId))

	wsConn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to upgrade to websocket", "error", err)
		return
	}

	conn := connection.NewConn(wsConn, c.sendQueueSize)
	defer conn.Close()

	connectResp, err := c.roomService.ConnectParticipant(ctx, &service.ConnectParticipantParams{
		ParticipantId: participantId,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to connect participant", "error", err)
		return
	}
	defer c.disconnect(ctx, participantId)

	// late-joiner catch-up: only "which video", never "at what time". The
	// frame is enqueued before the conn is admitted to the broadcast set, so
	// a concurrent video change cannot be delivered ahead of it.
	if connectResp.CurrentVideoUrl != "" {
		if err := conn.Send(&Output{
			Type:    "sync_video_change",
			Payload: connectResp.CurrentVideoUrl,
		}); err != nil {
			c.logger.WarnContext(ctx, "failed to send catch-up", "error", err)
			return
		}
	}

	if err := c.roomService.AdmitConn(ctx, &service.AdmitConnParams{
		Conn:          conn,
		ParticipantId: participantId,
	}); err != nil {
		c.logger.WarnContext(ctx, "failed to admit connection", "error", err)
		return
	}

	ctx = context.WithValue(ctx, participantIdCtxKey, participantId)

	c.serveConn(ctx, conn)
}

// serveConn reads messages until the connection drops. A bad message never
// tears the connection down; only read errors do.
func (c *controller) serveConn(ctx context.Context, conn *connection.Conn) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			c.logger.InfoContext(ctx, "connection closed", "error", err)
			return
		}

		if err := c.wsmux.ServeMessage(ctx, conn, data); err != nil {
			var decodeErr *wsrouter.DecodeError
			switch {
			case errors.Is(err, wsrouter.ErrUnknownType):
				c.logger.DebugContext(ctx, "ignoring unknown message type", "error", err)
			case errors.As(err, &decodeErr):
				c.logger.WarnContext(ctx, "rejected malformed payload", "error", err)
			default:
				c.logger.WarnContext(ctx, "failed to handle message", "error", err)
			}
		}
	}
}

func (c *controller) disconnect(ctx context.Context, participantId string) {
	disconnectResp, err := c.roomService.DisconnectParticipant(ctx, &service.DisconnectParticipantParams{
		ParticipantId: participantId,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to disconnect participant", "error", err)
		return
	}

	if disconnectResp.RosterChanged {
		c.broadcast(ctx, disconnectResp.Conns, &Output{
			Type:    "update_user_list",
			Payload: disconnectResp.Roster,
		})
	}
}

func (c *controller) handleJoinUser(ctx context.Context, _ *connection.Conn, name string) error {
	participantId := c.getParticipantIdFromCtx(ctx)

	if err := c.validate.Var(name, "required,max=64"); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	joinUserResp, err := c.roomService.JoinUser(ctx, &service.JoinUserParams{
		SenderId:    participantId,
		DisplayName: name,
	})
	if err != nil {
		return fmt.Errorf("failed to join user: %w", err)
	}

	c.broadcast(ctx, joinUserResp.Conns, &Output{
		Type:    "update_user_list",
		Payload: joinUserResp.Roster,
	})

	return nil
}

func (c *controller) handleChangeVideo(ctx context.Context, _ *connection.Conn, videoUrl string) error {
	participantId := c.getParticipantIdFromCtx(ctx)

	if err := c.validate.Var(videoUrl, "required,max=2048"); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	changeVideoResp, err := c.roomService.ChangeVideo(ctx, &service.ChangeVideoParams{
		SenderId: participantId,
		VideoUrl: videoUrl,
	})
	if err != nil {
		return fmt.Errorf("failed to change video: %w", err)
	}

	c.broadcast(ctx, changeVideoResp.Conns, &Output{
		Type:    "sync_video_change",
		Payload: videoUrl,
	})

	return nil
}

func (c *controller) handlePlay(ctx context.Context, _ *connection.Conn, currentTime float64) error {
	participantId := c.getParticipantIdFromCtx(ctx)

	playResp, err := c.roomService.Play(ctx, &service.PlayParams{
		SenderId:    participantId,
		CurrentTime: currentTime,
	})
	if err != nil {
		return fmt.Errorf("failed to play: %w", err)
	}

	c.broadcast(ctx, playResp.Conns, &Output{
		Type:    "sync_play",
		Payload: currentTime,
	})

	return nil
}

func (c *controller) handlePause(ctx context.Context, _ *connection.Conn, _ struct{}) error {
	participantId := c.getParticipantIdFromCtx(ctx)

	pauseResp, err := c.roomService.Pause(ctx, &service.PauseParams{
		SenderId: participantId,
	})
	if err != nil {
		return fmt.Errorf("failed to pause: %w", err)
	}

	c.broadcast(ctx, pauseResp.Conns, &Output{
		Type: "sync_pause",
	})

	return nil
}

func (c *controller) handleSeek(ctx context.Context, _ *connection.Conn, currentTime float64) error {
	participantId := c.getParticipantIdFromCtx(ctx)

	seekResp, err := c.roomService.Seek(ctx, &service.SeekParams{
		SenderId:    participantId,
		CurrentTime: currentTime,
	})
	if err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}

	c.broadcast(ctx, seekResp.Conns, &Output{
		Type:    "sync_seek",
		Payload: currentTime,
	})

	return nil
}

func (c *controller) handleSubtitleOffset(ctx context.Context, _ *connection.Conn, offset float64) error {
	participantId := c.getParticipantIdFromCtx(ctx)

	subtitleOffsetResp, err := c.roomService.SubtitleOffset(ctx, &service.SubtitleOffsetParams{
		SenderId: participantId,
		Offset:   offset,
	})
	if err != nil {
		return fmt.Errorf("failed to offset subtitles: %w", err)
	}

	c.broadcast(ctx, subtitleOffsetResp.Conns, &Output{
		Type:    "sync_subtitle_offset",
		Payload: offset,
	})

	return nil
}

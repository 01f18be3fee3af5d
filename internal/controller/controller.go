package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/MrfksIv/morf-stream/internal/repository/connection"
	"github.com/MrfksIv/morf-stream/internal/service"
	"github.com/MrfksIv/morf-stream/pkg/validator"
	"github.com/MrfksIv/morf-stream/pkg/wsrouter"
)

type iRoomService interface {
	ConnectParticipant(context.Context, *service.ConnectParticipantParams) (service.ConnectParticipantResponse, error)
	AdmitConn(context.Context, *service.AdmitConnParams) error
	DisconnectParticipant(context.Context, *service.DisconnectParticipantParams) (service.DisconnectParticipantResponse, error)
	JoinUser(context.Context, *service.JoinUserParams) (service.JoinUserResponse, error)
	ChangeVideo(context.Context, *service.ChangeVideoParams) (service.ChangeVideoResponse, error)
	Play(context.Context, *service.PlayParams) (service.PlayResponse, error)
	Pause(context.Context, *service.PauseParams) (service.PauseResponse, error)
	Seek(context.Context, *service.SeekParams) (service.SeekResponse, error)
	SubtitleOffset(context.Context, *service.SubtitleOffsetParams) (service.SubtitleOffsetResponse, error)
	ListVideos(context.Context) ([]service.VideoDescriptor, error)
}

type Config struct {
	StaticDir     string
	SendQueueSize int
}

type controller struct {
	roomService   iRoomService
	upgrader      websocket.Upgrader
	validate      *validator.Validator
	logger        *slog.Logger
	wsmux         *wsrouter.WSRouter[*connection.Conn]
	staticDir     string
	sendQueueSize int
}

func NewController(roomService iRoomService, cfg *Config, logger *slog.Logger) *controller {
	c := &controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		roomService:   roomService,
		validate:      validator.NewValidator(),
		logger:        logger,
		staticDir:     cfg.StaticDir,
		sendQueueSize: cfg.SendQueueSize,
	}
	c.wsmux = c.getWSRouter()

	return c
}

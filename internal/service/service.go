package service

import (
	"context"

	"github.com/MrfksIv/morf-stream/internal/repository/connection"
	"github.com/MrfksIv/morf-stream/internal/repository/participant"
	"github.com/MrfksIv/morf-stream/internal/repository/videostorage/s3"
)

type iParticipantRepo interface {
	Add(participantId string) error
	SetDisplayName(participantId, displayName string) error
	Remove(participantId string) (participant.Participant, error)
	DisplayNames() []string
}

type iConnRepo interface {
	Add(conn *connection.Conn, participantId string) error
	RemoveByParticipantId(participantId string) (*connection.Conn, error)
	GetConns() []*connection.Conn
	GetConnsExcept(participantId string) []*connection.Conn
}

type iSessionRepo interface {
	Current() string
	SetCurrent(videoUrl string)
}

type iVideoStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]s3.Object, error)
	HeadObject(ctx context.Context, key string) (s3.ObjectInfo, error)
}

// CatalogCache is optional; a nil cache disables catalog caching.
type CatalogCache interface {
	GetCatalog(ctx context.Context, prefix string) ([]byte, error)
	SetCatalog(ctx context.Context, prefix string, payload []byte) error
}

type service struct {
	participantRepo iParticipantRepo
	connRepo        iConnRepo
	sessionRepo     iSessionRepo
	videoStorage    iVideoStorage
	catalogCache    CatalogCache
	publicUrlBase   string
	videoPrefix     string
	subtitlePrefix  string
}

type Config struct {
	PublicUrlBase  string
	VideoPrefix    string
	SubtitlePrefix string
}

func New(participantRepo iParticipantRepo, connRepo iConnRepo, sessionRepo iSessionRepo, videoStorage iVideoStorage, catalogCache CatalogCache, cfg *Config) *service {
	return &service{
		participantRepo: participantRepo,
		connRepo:        connRepo,
		sessionRepo:     sessionRepo,
		videoStorage:    videoStorage,
		catalogCache:    catalogCache,
		publicUrlBase:   cfg.PublicUrlBase,
		videoPrefix:     cfg.VideoPrefix,
		subtitlePrefix:  cfg.SubtitlePrefix,
	}
}

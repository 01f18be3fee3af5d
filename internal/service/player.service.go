package service

import (
	"context"

	"github.com/MrfksIv/morf-stream/internal/repository/connection"
)

type ChangeVideoParams struct {
	SenderId string
	VideoUrl string
}

type ChangeVideoResponse struct {
	Conns []*connection.Conn
}

// ChangeVideo replaces the session's current video. Last write wins; the
// server does not check that the url refers to an existing resource.
func (s service) ChangeVideo(ctx context.Context, params *ChangeVideoParams) (ChangeVideoResponse, error) {
	s.sessionRepo.SetCurrent(params.VideoUrl)

	return ChangeVideoResponse{
		Conns: s.connRepo.GetConnsExcept(params.SenderId),
	}, nil
}

type PlayParams struct {
	SenderId    string
	CurrentTime float64
}

type PlayResponse struct {
	Conns []*connection.Conn
}

func (s service) Play(ctx context.Context, params *PlayParams) (PlayResponse, error) {
	return PlayResponse{
		Conns: s.connRepo.GetConnsExcept(params.SenderId),
	}, nil
}

type PauseParams struct {
	SenderId string
}

type PauseResponse struct {
	Conns []*connection.Conn
}

func (s service) Pause(ctx context.Context, params *PauseParams) (PauseResponse, error) {
	return PauseResponse{
		Conns: s.connRepo.GetConnsExcept(params.SenderId),
	}, nil
}

type SeekParams struct {
	SenderId    string
	CurrentTime float64
}

type SeekResponse struct {
	Conns []*connection.Conn
}

func (s service) Seek(ctx context.Context, params *SeekParams) (SeekResponse, error) {
	return SeekResponse{
		Conns: s.connRepo.GetConnsExcept(params.SenderId),
	}, nil
}

type SubtitleOffsetParams struct {
	SenderId string
	Offset   float64
}

type SubtitleOffsetResponse struct {
	Conns []*connection.Conn
}

func (s service) SubtitleOffset(ctx context.Context, params *SubtitleOffsetParams) (SubtitleOffsetResponse, error) {
	return SubtitleOffsetResponse{
		Conns: s.connRepo.GetConnsExcept(params.SenderId),
	}, nil
}

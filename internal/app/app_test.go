package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrfksIv/morf-stream/internal/repository/connection"
	"github.com/MrfksIv/morf-stream/internal/repository/connection/inmemory"
	participantInmemory "github.com/MrfksIv/morf-stream/internal/repository/participant/inmemory"
	sessionInmemory "github.com/MrfksIv/morf-stream/internal/repository/session/inmemory"
	"github.com/MrfksIv/morf-stream/internal/service"
)

type idleWsConn struct{}

func (idleWsConn) ReadMessage() (int, []byte, error) { select {} }
func (idleWsConn) WriteJSON(any) error               { return nil }
func (idleWsConn) Close() error                      { return nil }

func TestWatchSession(t *testing.T) {
	slog.SetLogLoggerLevel(slog.LevelDebug)
	participantRepo := participantInmemory.NewRepo()
	connRepo := inmemory.NewRepo()
	sessionRepo := sessionInmemory.NewRepo()
	roomService := service.New(participantRepo, connRepo, sessionRepo, nil, nil, &service.Config{
		PublicUrlBase:  "http://localhost:9000/media",
		VideoPrefix:    "movies/",
		SubtitlePrefix: "subtitles/",
	})

	ctx := context.Background()

	// participant 1 connects
	conn1 := connection.NewConn(idleWsConn{}, 4)
	defer conn1.Close()
	connectResp, err := roomService.ConnectParticipant(ctx, &service.ConnectParticipantParams{
		ParticipantId: "p1",
	})
	require.NoError(t, err)
	assert.Empty(t, connectResp.CurrentVideoUrl, "no video selected yet")
	err = roomService.AdmitConn(ctx, &service.AdmitConnParams{Conn: conn1, ParticipantId: "p1"})
	require.NoError(t, err)

	joinResp, err := roomService.JoinUser(ctx, &service.JoinUserParams{
		SenderId:    "p1",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, joinResp.Roster)
	assert.Equal(t, len(joinResp.Conns), 1, "roster must target 1 conn")
	t.Log("participant 1 joined")

	// participant 2 connects
	conn2 := connection.NewConn(idleWsConn{}, 4)
	defer conn2.Close()
	_, err = roomService.ConnectParticipant(ctx, &service.ConnectParticipantParams{
		ParticipantId: "p2",
	})
	require.NoError(t, err)
	err = roomService.AdmitConn(ctx, &service.AdmitConnParams{Conn: conn2, ParticipantId: "p2"})
	require.NoError(t, err)

	joinResp, err = roomService.JoinUser(ctx, &service.JoinUserParams{
		SenderId:    "p2",
		DisplayName: "Bob",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, joinResp.Roster)
	assert.Equal(t, len(joinResp.Conns), 2, "roster must target 2 conns")
	t.Log("participant 2 joined")

	// participant 1 changes the video
	changeResp, err := roomService.ChangeVideo(ctx, &service.ChangeVideoParams{
		SenderId: "p1",
		VideoUrl: "http://localhost:9000/media/movies/interstellar.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, []*connection.Conn{conn2}, changeResp.Conns, "sender must not receive its own change")
	t.Log("video changed")

	// playback relays exclude their sender
	playResp, err := roomService.Play(ctx, &service.PlayParams{SenderId: "p2", CurrentTime: 42})
	require.NoError(t, err)
	assert.Equal(t, []*connection.Conn{conn1}, playResp.Conns)

	seekResp, err := roomService.Seek(ctx, &service.SeekParams{SenderId: "p1", CurrentTime: 120})
	require.NoError(t, err)
	assert.Equal(t, []*connection.Conn{conn2}, seekResp.Conns)

	// late joiner catches up on the current video
	conn3 := connection.NewConn(idleWsConn{}, 4)
	defer conn3.Close()
	connectResp, err = roomService.ConnectParticipant(ctx, &service.ConnectParticipantParams{
		ParticipantId: "p3",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/media/movies/interstellar.mp4", connectResp.CurrentVideoUrl)
	err = roomService.AdmitConn(ctx, &service.AdmitConnParams{Conn: conn3, ParticipantId: "p3"})
	require.NoError(t, err)
	t.Log("late joiner caught up")

	// participant 2 disconnects
	disconnectResp, err := roomService.DisconnectParticipant(ctx, &service.DisconnectParticipantParams{
		ParticipantId: "p2",
	})
	require.NoError(t, err)
	assert.True(t, disconnectResp.RosterChanged)
	assert.Equal(t, []string{"Alice"}, disconnectResp.Roster)
	assert.Equal(t, len(disconnectResp.Conns), 2, "conn1 and conn3 remain")
	t.Log("participant 2 disconnected")

	// the never-identified late joiner leaves silently
	disconnectResp, err = roomService.DisconnectParticipant(ctx, &service.DisconnectParticipantParams{
		ParticipantId: "p3",
	})
	require.NoError(t, err)
	assert.False(t, disconnectResp.RosterChanged, "unidentified departure is invisible")
}

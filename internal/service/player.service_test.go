package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrfksIv/morf-stream/internal/repository/connection"
)

func TestChangeVideo(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	connA := connect(t, s, "a")
	connB := connect(t, s, "b")
	connC := connect(t, s, "c")

	resp, err := s.ChangeVideo(ctx, &ChangeVideoParams{
		SenderId: "a",
		VideoUrl: "http://localhost:9000/media/movies/a.mp4",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []*connection.Conn{connB, connC}, resp.Conns)
	assert.NotContains(t, resp.Conns, connA)

	// last write wins, no validation of the url itself
	resp, err = s.ChangeVideo(ctx, &ChangeVideoParams{
		SenderId: "b",
		VideoUrl: "not-a-real-url",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []*connection.Conn{connA, connC}, resp.Conns)

	catchUp, err := s.ConnectParticipant(ctx, &ConnectParticipantParams{ParticipantId: "d"})
	require.NoError(t, err)
	assert.Equal(t, "not-a-real-url", catchUp.CurrentVideoUrl)
}

func TestPlaybackRelays(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	connA := connect(t, s, "a")
	connB := connect(t, s, "b")

	t.Run("play", func(t *testing.T) {
		resp, err := s.Play(ctx, &PlayParams{SenderId: "a", CurrentTime: 12.5})
		require.NoError(t, err)
		assert.Equal(t, []*connection.Conn{connB}, resp.Conns)
	})

	t.Run("pause", func(t *testing.T) {
		resp, err := s.Pause(ctx, &PauseParams{SenderId: "b"})
		require.NoError(t, err)
		assert.Equal(t, []*connection.Conn{connA}, resp.Conns)
	})

	t.Run("seek", func(t *testing.T) {
		resp, err := s.Seek(ctx, &SeekParams{SenderId: "a", CurrentTime: 0})
		require.NoError(t, err)
		assert.Equal(t, []*connection.Conn{connB}, resp.Conns)
	})

	t.Run("subtitle offset", func(t *testing.T) {
		resp, err := s.SubtitleOffset(ctx, &SubtitleOffsetParams{SenderId: "a", Offset: -1.5})
		require.NoError(t, err)
		assert.Equal(t, []*connection.Conn{connB}, resp.Conns)
	})

	t.Run("relay from unknown sender still reaches everyone", func(t *testing.T) {
		resp, err := s.Play(ctx, &PlayParams{SenderId: "ghost", CurrentTime: 1})
		require.NoError(t, err)
		assert.ElementsMatch(t, []*connection.Conn{connA, connB}, resp.Conns)
	})
}

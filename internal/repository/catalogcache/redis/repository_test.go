package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, exp time.Duration) (*repo, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})

	return NewRepo(rc, exp), s
}

func TestCatalogCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss on empty cache", func(t *testing.T) {
		r, _ := newTestRepo(t, time.Minute)

		_, err := r.GetCatalog(ctx, "movies/")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("roundtrip", func(t *testing.T) {
		r, _ := newTestRepo(t, time.Minute)

		payload := []byte(`[{"filename":"a.mp4"}]`)
		require.NoError(t, r.SetCatalog(ctx, "movies/", payload))

		got, err := r.GetCatalog(ctx, "movies/")
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("prefixes are cached independently", func(t *testing.T) {
		r, _ := newTestRepo(t, time.Minute)

		require.NoError(t, r.SetCatalog(ctx, "movies/", []byte("a")))

		_, err := r.GetCatalog(ctx, "shows/")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("entry expires", func(t *testing.T) {
		r, s := newTestRepo(t, time.Minute)

		require.NoError(t, r.SetCatalog(ctx, "movies/", []byte("a")))
		s.FastForward(2 * time.Minute)

		_, err := r.GetCatalog(ctx, "movies/")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}

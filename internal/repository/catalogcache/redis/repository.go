package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

type repo struct {
	rc  *redis.Client
	exp time.Duration
}

func NewRepo(rc *redis.Client, exp time.Duration) *repo {
	return &repo{
		rc:  rc,
		exp: exp,
	}
}

func (r repo) getCatalogKey(prefix string) string {
	return "catalog:" + prefix
}

func (r repo) GetCatalog(ctx context.Context, prefix string) ([]byte, error) {
	payload, err := r.rc.Get(ctx, r.getCatalogKey(prefix)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}

		return nil, err
	}

	return payload, nil
}

func (r repo) SetCatalog(ctx context.Context, prefix string, payload []byte) error {
	return r.rc.Set(ctx, r.getCatalogKey(prefix), payload, r.exp).Err()
}

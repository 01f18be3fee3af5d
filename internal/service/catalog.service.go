package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MrfksIv/morf-stream/internal/repository/videostorage/s3"
)

const headConcurrency = 8

type VideoDescriptor struct {
	Filename    string  `json:"filename"`
	Url         string  `json:"url"`
	Title       string  `json:"title"`
	Size        int64   `json:"size"`
	SubtitleUrl *string `json:"subtitleUrl"`
}

// ListVideos lists the video objects under the configured prefix and
// resolves a title and an optional sibling subtitle for each. Responses are
// served from the catalog cache when one is wired.
func (s service) ListVideos(ctx context.Context) ([]VideoDescriptor, error) {
	if s.catalogCache != nil {
		if payload, err := s.catalogCache.GetCatalog(ctx, s.videoPrefix); err == nil {
			var videos []VideoDescriptor
			if err := json.Unmarshal(payload, &videos); err == nil {
				return videos, nil
			}
		}
	}

	objects, err := s.videoStorage.ListObjects(ctx, s.videoPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	videoObjects := make([]s3.Object, 0, len(objects))
	for _, obj := range objects {
		if isVideoFile(obj.Key) {
			videoObjects = append(videoObjects, obj)
		}
	}

	videos := make([]VideoDescriptor, len(videoObjects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(headConcurrency)
	for i, obj := range videoObjects {
		g.Go(func() error {
			info, err := s.videoStorage.HeadObject(gctx, obj.Key)
			if err != nil {
				return fmt.Errorf("failed to head object %q: %w", obj.Key, err)
			}

			title := info.Metadata["title"]
			if title == "" {
				title = obj.Key
			}

			videos[i] = VideoDescriptor{
				Filename:    obj.Key,
				Url:         s.publicUrlBase + "/" + obj.Key,
				Title:       title,
				Size:        obj.Size,
				SubtitleUrl: s.findMatchingSubtitle(gctx, obj.Key),
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.catalogCache != nil {
		if payload, err := json.Marshal(videos); err == nil {
			// a failed cache write never fails the request
			_ = s.catalogCache.SetCatalog(ctx, s.videoPrefix, payload)
		}
	}

	return videos, nil
}

func isVideoFile(key string) bool {
	return strings.HasSuffix(key, ".mp4") || strings.HasSuffix(key, ".mkv")
}

func (s service) findMatchingSubtitle(ctx context.Context, key string) *string {
	base := path.Base(key)
	base = strings.TrimSuffix(base, path.Ext(base))

	subtitleKey := s.subtitlePrefix + base + ".vtt"
	if _, err := s.videoStorage.HeadObject(ctx, subtitleKey); err != nil {
		return nil
	}

	subtitleUrl := s.publicUrlBase + "/" + subtitleKey

	return &subtitleUrl
}

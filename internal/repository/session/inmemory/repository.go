package inmemory

import "sync"

// repo holds the single process-wide playback session: which video is
// currently selected. Updates are total replacements and the value is lost
// on restart.
type repo struct {
	currentVideoUrl string
	mu              sync.RWMutex
}

func NewRepo() *repo {
	return &repo{}
}

func (r *repo) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.currentVideoUrl
}

func (r *repo) SetCurrent(videoUrl string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.currentVideoUrl = videoUrl
}

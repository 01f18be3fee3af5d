package inmemory

import (
	"sync"

	"github.com/MrfksIv/morf-stream/internal/repository/participant"
)

type repo struct {
	participants map[string]*participant.Participant
	// insertion order, so roster snapshots are stable
	order []string
	mu    sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		participants: make(map[string]*participant.Participant),
	}
}

func (r *repo) Add(participantId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.participants[participantId]; ok {
		return participant.ErrAlreadyExists
	}

	r.participants[participantId] = &participant.Participant{Id: participantId}
	r.order = append(r.order, participantId)

	return nil
}

// SetDisplayName identifies a participant. Idempotent: calling again
// overwrites the name.
func (r *repo) SetDisplayName(participantId, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[participantId]
	if !ok {
		return participant.ErrNotFound
	}

	p.DisplayName = displayName
	p.Identified = true

	return nil
}

func (r *repo) Remove(participantId string) (participant.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[participantId]
	if !ok {
		return participant.Participant{}, participant.ErrNotFound
	}

	delete(r.participants, participantId)
	for i, id := range r.order {
		if id == participantId {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return *p, nil
}

// DisplayNames returns the names of identified participants in join order.
func (r *repo) DisplayNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if p := r.participants[id]; p != nil && p.Identified {
			names = append(names, p.DisplayName)
		}
	}

	return names
}

package inmemory

import (
	"sync"

	"github.com/MrfksIv/morf-stream/internal/repository/connection"
)

type repo struct {
	connList map[*connection.Conn]string
	idList   map[string]*connection.Conn
	mu       sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		connList: make(map[*connection.Conn]string),
		idList:   make(map[string]*connection.Conn),
	}
}

func (r *repo) Add(conn *connection.Conn, participantId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.connList[conn] != "" || r.idList[participantId] != nil {
		return connection.ErrAlreadyExists
	}

	r.connList[conn] = participantId
	r.idList[participantId] = conn

	return nil
}

func (r *repo) RemoveByParticipantId(participantId string) (*connection.Conn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.idList[participantId]
	if !ok {
		return nil, connection.ErrNotFound
	}

	delete(r.connList, conn)
	delete(r.idList, participantId)

	return conn, nil
}

func (r *repo) RemoveByConn(conn *connection.Conn) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	participantId, ok := r.connList[conn]
	if !ok {
		return "", connection.ErrNotFound
	}

	delete(r.connList, conn)
	delete(r.idList, participantId)

	return participantId, nil
}

func (r *repo) GetConn(participantId string) (*connection.Conn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.idList[participantId]
	if !ok {
		return nil, connection.ErrNotFound
	}

	return conn, nil
}

func (r *repo) GetParticipantId(conn *connection.Conn) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	participantId, ok := r.connList[conn]
	if !ok {
		return "", connection.ErrNotFound
	}

	return participantId, nil
}

// GetConns snapshots every live connection under the same lock that guards
// Add and Remove, so a broadcast never races a concurrent removal.
func (r *repo) GetConns() []*connection.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*connection.Conn, 0, len(r.connList))
	for conn := range r.connList {
		conns = append(conns, conn)
	}

	return conns
}

// GetConnsExcept snapshots every live connection except the sender's own.
func (r *repo) GetConnsExcept(participantId string) []*connection.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*connection.Conn, 0, len(r.connList))
	for conn, id := range r.connList {
		if id != participantId {
			conns = append(conns, conn)
		}
	}

	return conns
}

// Package memory хранит сообщения в памяти процесса, при перезапуске они теряются.
package memory

import (
	"context"
	"sort"
	"sync"

	"bitbucket.org/sotavant/skill-protocol/internal/store"
)

type Store struct {
	mu         sync.Mutex
	lastID     int64
	recipients map[string]string
	messages   map[int64]store.Message
	inbox      map[string][]int64
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		recipients: make(map[string]string),
		messages:   make(map[int64]store.Message),
		inbox:      make(map[string][]int64),
	}
}

// AddRecipient регистрирует username как имя пользователя userID.
func (s *Store) AddRecipient(username, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipients[username] = userID
}

func (s *Store) FindRecipient(_ context.Context, username string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.recipients[username]
	if !ok {
		return "", store.ErrNotFound
	}
	return id, nil
}

// ListMessages возвращает сообщения userID, начиная с самого старого.
func (s *Store) ListMessages(_ context.Context, userID string) ([]store.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.inbox[userID]
	out := make([]store.Message, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.messages[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func (s *Store) GetMessage(_ context.Context, id int64) (*store.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &msg, nil
}

// SaveMessage сохраняет msg для userID и присваивает ему новый ID.
func (s *Store) SaveMessage(_ context.Context, userID string, msg store.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	msg.ID = s.lastID
	s.messages[msg.ID] = msg
	s.inbox[userID] = append(s.inbox[userID], msg.ID)
	return nil
}

package memory

import (
	"context"
	"sync"

	"github.com/mcoot/batepapo/internal/model"
	"github.com/mcoot/batepapo/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	participants []model.Participant
	nameIndex    map[string]int
	messages     []model.Message
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		nameIndex: make(map[string]int),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Participant operations

func (s *Storage) InsertParticipant(ctx context.Context, participant model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nameIndex[participant.Name]; ok {
		return model.ErrNameTaken
	}
	s.nameIndex[participant.Name] = len(s.participants)
	s.participants = append(s.participants, participant)
	return nil
}

func (s *Storage) GetParticipant(ctx context.Context, name string) (*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrParticipantNotFound
	}
	participant := s.participants[idx]
	return &participant, nil
}

func (s *Storage) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Participant, len(s.participants))
	copy(result, s.participants)
	return result, nil
}

// Message operations

func (s *Storage) InsertMessage(ctx context.Context, message model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

func (s *Storage) ListMessages(ctx context.Context, query model.HistoryQuery) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.SelectHistory(s.messages, query), nil
}

// MessageCount returns the number of stored messages of every type
func (s *Storage) MessageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Close is a no-op for in-memory storage
func (s *Storage) Close() error {
	return nil
}

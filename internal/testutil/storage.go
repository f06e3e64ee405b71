package testutil

import (
	"context"

	"github.com/mcoot/batepapo/internal/model"
	"github.com/mcoot/batepapo/internal/storage"
)

// Operation names accepted by FailingStorage
const (
	OpInsertParticipant = "InsertParticipant"
	OpGetParticipant    = "GetParticipant"
	OpListParticipants  = "ListParticipants"
	OpInsertMessage     = "InsertMessage"
	OpListMessages      = "ListMessages"
)

// FailingStorage wraps a Storage and returns the configured error for an
// operation instead of delegating. Use it to simulate an unreachable store.
type FailingStorage struct {
	storage.Storage
	Failures map[string]error
}

// NewFailingStorage wraps inner with no failures configured
func NewFailingStorage(inner storage.Storage) *FailingStorage {
	return &FailingStorage{Storage: inner, Failures: make(map[string]error)}
}

// Fail makes op return err from now on
func (f *FailingStorage) Fail(op string, err error) {
	f.Failures[op] = err
}

func (f *FailingStorage) InsertParticipant(ctx context.Context, participant model.Participant) error {
	if err := f.Failures[OpInsertParticipant]; err != nil {
		return err
	}
	return f.Storage.InsertParticipant(ctx, participant)
}

func (f *FailingStorage) GetParticipant(ctx context.Context, name string) (*model.Participant, error) {
	if err := f.Failures[OpGetParticipant]; err != nil {
		return nil, err
	}
	return f.Storage.GetParticipant(ctx, name)
}

func (f *FailingStorage) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	if err := f.Failures[OpListParticipants]; err != nil {
		return nil, err
	}
	return f.Storage.ListParticipants(ctx)
}

func (f *FailingStorage) InsertMessage(ctx context.Context, message model.Message) error {
	if err := f.Failures[OpInsertMessage]; err != nil {
		return err
	}
	return f.Storage.InsertMessage(ctx, message)
}

func (f *FailingStorage) ListMessages(ctx context.Context, query model.HistoryQuery) ([]model.Message, error) {
	if err := f.Failures[OpListMessages]; err != nil {
		return nil, err
	}
	return f.Storage.ListMessages(ctx, query)
}

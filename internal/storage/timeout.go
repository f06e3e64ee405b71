package storage

import (
	"context"
	"time"

	"github.com/mcoot/batepapo/internal/model"
)

// WithTimeout bounds every store call by d. A zero or negative d returns
// store unchanged.
func WithTimeout(store Storage, d time.Duration) Storage {
	if d <= 0 {
		return store
	}
	return &timeoutStorage{store: store, timeout: d}
}

type timeoutStorage struct {
	store   Storage
	timeout time.Duration
}

func (t *timeoutStorage) InsertParticipant(ctx context.Context, participant model.Participant) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.store.InsertParticipant(ctx, participant)
}

func (t *timeoutStorage) GetParticipant(ctx context.Context, name string) (*model.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.store.GetParticipant(ctx, name)
}

func (t *timeoutStorage) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.store.ListParticipants(ctx)
}

func (t *timeoutStorage) InsertMessage(ctx context.Context, message model.Message) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.store.InsertMessage(ctx, message)
}

func (t *timeoutStorage) ListMessages(ctx context.Context, query model.HistoryQuery) ([]model.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.store.ListMessages(ctx, query)
}

func (t *timeoutStorage) Close() error {
	return t.store.Close()
}

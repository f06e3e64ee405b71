package storage

import (
	"context"

	"github.com/mcoot/batepapo/internal/model"
)

// Storage defines the interface for data persistence.
// Implementations must reject a second participant with the same name by
// returning model.ErrNameTaken, so uniqueness holds under concurrent writes.
type Storage interface {
	// Participant operations
	InsertParticipant(ctx context.Context, participant model.Participant) error
	GetParticipant(ctx context.Context, name string) (*model.Participant, error)
	ListParticipants(ctx context.Context) ([]model.Participant, error)

	// Message operations
	InsertMessage(ctx context.Context, message model.Message) error
	ListMessages(ctx context.Context, query model.HistoryQuery) ([]model.Message, error)

	// Close releases the underlying connection
	Close() error
}

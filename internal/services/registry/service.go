// Package registry owns participant identity and presence.
package registry

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/batepapo/internal/dependencies/clock"
	"github.com/mcoot/batepapo/internal/model"
	"github.com/mcoot/batepapo/internal/storage"
	"github.com/mcoot/batepapo/internal/validation"
)

// Service registers participants and announces their arrival
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new registry Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Register creates a participant named name and posts its join status message.
//
// The participant and the status message are two separate writes. If the
// second fails the participant remains without its join message and the
// failure is returned as a *model.StoreError.
func (s *Service) Register(ctx context.Context, name string) error {
	if err := validation.Check(validation.ParticipantSchema{Name: name}); err != nil {
		return err
	}

	_, err := s.storage.GetParticipant(ctx, name)
	if err == nil {
		return model.ErrNameTaken
	}
	if !errors.Is(err, model.ErrParticipantNotFound) {
		return s.storeFailure("find participant", name, err)
	}

	now := s.clock.Now()

	// The store enforces uniqueness too, covering concurrent registrations
	if err := s.storage.InsertParticipant(ctx, model.NewParticipant(name, now)); err != nil {
		if errors.Is(err, model.ErrNameTaken) {
			return model.ErrNameTaken
		}
		return s.storeFailure("insert participant", name, err)
	}

	if err := s.storage.InsertMessage(ctx, model.NewJoinMessage(name, now)); err != nil {
		return s.storeFailure("insert join message", name, err)
	}

	s.logger.Info("participant registered",
		slog.String("name", name),
	)

	return nil
}

// List returns every registered participant
func (s *Service) List(ctx context.Context) ([]model.Participant, error) {
	participants, err := s.storage.ListParticipants(ctx)
	if err != nil {
		s.logger.Error("failed to list participants",
			slog.String("error", err.Error()),
		)
		return nil, model.NewStoreError("list participants", err)
	}
	return participants, nil
}

func (s *Service) storeFailure(op, name string, err error) error {
	s.logger.Error("failed to register participant",
		slog.String("op", op),
		slog.String("name", name),
		slog.String("error", err.Error()),
	)
	return model.NewStoreError(op, err)
}

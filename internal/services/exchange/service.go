// Package exchange owns message creation and history retrieval.
package exchange

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mcoot/batepapo/internal/dependencies/clock"
	"github.com/mcoot/batepapo/internal/model"
	"github.com/mcoot/batepapo/internal/storage"
	"github.com/mcoot/batepapo/internal/validation"
)

// Service posts messages and serves filtered history
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new exchange Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Post stores a message from a registered participant.
// typ must be "message" or "private_message"; "status" is reserved for
// join notices emitted by the registry.
func (s *Service) Post(ctx context.Context, from, to, text, typ string) error {
	schema := validation.MessageSchema{From: from, To: to, Text: text, Type: typ}
	if err := validation.Check(schema); err != nil {
		return err
	}

	if _, err := s.storage.GetParticipant(ctx, from); err != nil {
		if errors.Is(err, model.ErrParticipantNotFound) {
			return model.ErrNotRegistered
		}
		return s.storeFailure("find sender", err)
	}

	message := model.Message{
		From: from,
		To:   to,
		Text: text,
		Type: model.MessageType(typ),
		Time: model.FormatTime(s.clock.Now()),
	}
	if err := s.storage.InsertMessage(ctx, message); err != nil {
		return s.storeFailure("insert message", err)
	}

	s.logger.Info("message posted",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("type", typ),
	)

	return nil
}

// History returns the messages visible to viewer, newest first.
// A nil limit returns every visible message; otherwise it must be a
// positive integer.
func (s *Service) History(ctx context.Context, viewer string, limit *string) ([]model.Message, error) {
	n, err := ParseLimit(limit)
	if err != nil {
		return nil, err
	}

	messages, err := s.storage.ListMessages(ctx, model.HistoryQuery{Viewer: viewer, Limit: n})
	if err != nil {
		return nil, s.storeFailure("list messages", err)
	}
	return messages, nil
}

// ParseLimit converts a raw limit into a message cap; nil means no cap (0).
// Anything that is not a positive integer within the int range is rejected.
func ParseLimit(raw *string) (int, error) {
	if raw == nil {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil || n <= 0 {
		return 0, model.NewValidationError(model.InvalidLimitMessage)
	}
	return n, nil
}

func (s *Service) storeFailure(op string, err error) error {
	s.logger.Error("message store failure",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	return model.NewStoreError(op, err)
}

package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/batepapo/internal/model"
	"github.com/mcoot/batepapo/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Participant operations

func (s *Storage) InsertParticipant(ctx context.Context, participant model.Participant) error {
	data, err := json.Marshal(participant)
	if err != nil {
		return err
	}

	// HSETNX makes the name check and the write a single operation
	created, err := s.client.HSetNX(ctx, participantsKey(), participant.Name, data).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrNameTaken
	}
	return nil
}

func (s *Storage) GetParticipant(ctx context.Context, name string) (*model.Participant, error) {
	data, err := s.client.HGet(ctx, participantsKey(), name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrParticipantNotFound
		}
		return nil, err
	}

	var participant model.Participant
	if err := json.Unmarshal(data, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

func (s *Storage) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	values, err := s.client.HVals(ctx, participantsKey()).Result()
	if err != nil {
		return nil, err
	}

	participants := make([]model.Participant, 0, len(values))
	for _, val := range values {
		var participant model.Participant
		if err := json.Unmarshal([]byte(val), &participant); err != nil {
			continue // Skip invalid data
		}
		participants = append(participants, participant)
	}
	return participants, nil
}

// Message operations

func (s *Storage) InsertMessage(ctx context.Context, message model.Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, messagesKey(), data).Err()
}

func (s *Storage) ListMessages(ctx context.Context, query model.HistoryQuery) ([]model.Message, error) {
	values, err := s.client.LRange(ctx, messagesKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	messages := make([]model.Message, 0, len(values))
	for _, val := range values {
		var message model.Message
		if err := json.Unmarshal([]byte(val), &message); err != nil {
			continue // Skip invalid data
		}
		messages = append(messages, message)
	}

	return storage.SelectHistory(messages, query), nil
}

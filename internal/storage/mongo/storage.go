// Package mongo stores participants and messages as documents in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mcoot/batepapo/internal/model"
	"github.com/mcoot/batepapo/internal/storage"
)

// Collection names
const (
	participantsCollection = "participants"
	messagesCollection     = "messages"
)

// Storage is a MongoDB-backed implementation of the storage interface
type Storage struct {
	client       *mongo.Client
	participants *mongo.Collection
	messages     *mongo.Collection
	cfg          Config
}

// New connects to MongoDB and ensures the unique index on participant names
func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := newWithClient(client, cfg)
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return s, nil
}

func newWithClient(client *mongo.Client, cfg Config) *Storage {
	db := client.Database(cfg.Database)
	return &Storage{
		client:       client,
		participants: db.Collection(participantsCollection),
		messages:     db.Collection(messagesCollection),
		cfg:          cfg,
	}
}

// ensureIndexes makes the store itself reject duplicate names
func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.participants.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Close disconnects the client
func (s *Storage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ConnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Participant operations

func (s *Storage) InsertParticipant(ctx context.Context, participant model.Participant) error {
	_, err := s.participants.InsertOne(ctx, participant)
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrNameTaken
	}
	return err
}

func (s *Storage) GetParticipant(ctx context.Context, name string) (*model.Participant, error) {
	var participant model.Participant
	err := s.participants.FindOne(ctx, bson.M{"name": name}).Decode(&participant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrParticipantNotFound
		}
		return nil, err
	}
	return &participant, nil
}

func (s *Storage) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	cursor, err := s.participants.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	participants := []model.Participant{}
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// Message operations

func (s *Storage) InsertMessage(ctx context.Context, message model.Message) error {
	_, err := s.messages.InsertOne(ctx, message)
	return err
}

func (s *Storage) ListMessages(ctx context.Context, query model.HistoryQuery) ([]model.Message, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "time", Value: -1},
		{Key: "_id", Value: -1}, // newest insert first among equal times
	})
	if query.Limit > 0 {
		opts.SetLimit(int64(query.Limit))
	}

	cursor, err := s.messages.Find(ctx, historyFilter(query.Viewer), opts)
	if err != nil {
		return nil, err
	}

	messages := []model.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// historyFilter mirrors model.Message.VisibleTo as a query document
func historyFilter(viewer string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"from": viewer},
		bson.M{"to": viewer},
		bson.M{"to": model.Broadcast},
		bson.M{"type": model.MessageTypeMessage},
	}}
}

package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore keeps each record kind in its own MongoDB collection
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	log    zerolog.Logger
}

// ConnectMongo dials MongoDB and verifies the connection
func ConnectMongo(ctx context.Context, uri, database string, log zerolog.Logger) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	store := NewMongoStore(client.Database(database), log)
	store.client = client
	return store, nil
}

// NewMongoStore wraps an existing database handle
func NewMongoStore(db *mongo.Database, log zerolog.Logger) *MongoStore {
	return &MongoStore{
		db:  db,
		log: log.With().Str("store", "mongo").Str("database", db.Name()).Logger(),
	}
}

// NewID returns a new ObjectID in hex form
func (s *MongoStore) NewID() string {
	return primitive.NewObjectID().Hex()
}

// Insert stores a new document; doc must carry the id in its _id field
func (s *MongoStore) Insert(ctx context.Context, collection, id string, doc interface{}) error {
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return err
	}
	s.log.Debug().Str("collection", collection).Str("id", id).Msg("Document inserted")
	return nil
}

// FindAll decodes every document of a collection into out
func (s *MongoStore) FindAll(ctx context.Context, collection string, out interface{}) error {
	return s.find(ctx, collection, bson.D{}, options.Find(), out)
}

// FindByID decodes one document into out
func (s *MongoStore) FindByID(ctx context.Context, collection, id string, out interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// FindBy decodes the documents whose field equals value
func (s *MongoStore) FindBy(ctx context.Context, collection, field, value string, out interface{}) error {
	return s.find(ctx, collection, bson.D{{Key: field, Value: value}}, options.Find(), out)
}

// Search decodes up to limit documents whose field contains term, ignoring case
func (s *MongoStore) Search(ctx context.Context, collection, field, term string, limit int, out interface{}) error {
	filter := bson.D{{Key: field, Value: primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}}}
	return s.find(ctx, collection, filter, options.Find().SetLimit(int64(limit)), out)
}

// Replace overwrites a stored document
func (s *MongoStore) Replace(ctx context.Context, collection, id string, doc interface{}) error {
	result, err := s.db.Collection(collection).ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects the client when this store owns it
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) find(ctx context.Context, collection string, filter bson.D, opts *options.FindOptions, out interface{}) error {
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shapeshed/shapeshed-backend/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	UsersCollection       = "users"
	ClassesCollection     = "classes"
	InstructorsCollection = "instructors"
)

// Mongo owns the single client shared by every repository.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Users returns the users collection handle.
func (m *Mongo) Users() *mongo.Collection { return m.DB.Collection(UsersCollection) }

// Classes returns the classes collection handle.
func (m *Mongo) Classes() *mongo.Collection { return m.DB.Collection(ClassesCollection) }

// Instructors returns the instructors collection handle.
func (m *Mongo) Instructors() *mongo.Collection { return m.DB.Collection(InstructorsCollection) }

// NewMongo creates the client and pings the primary once.
//
// The client is returned even when the ping fails: the driver connects lazily,
// so the caller may log the error and keep serving, letting each request fail
// on its own until the cluster becomes reachable.
func NewMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(cfg.DatabaseURI()).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetAppName("shapeshed-backend").
		// Nested documents inside free-form fields decode as maps so they
		// serialise back to JSON objects.
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	m := &Mongo{Client: client, DB: client.Database(cfg.DBName)}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return m, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info().
		Str("database", cfg.DBName).
		Msg("MongoDB connected")

	return m, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

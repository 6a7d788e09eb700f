// Package mongo is the MongoDB storage backend. Collection and field names
// match the documents the service has always written.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/oksasatya/skillswap-api/internal/domain/repository"
)

const (
	usersCollection    = "users"
	requestsCollection = "swapRequests"
	messagesCollection = "requestMessages"
	defaultDBName      = "skill-swap"
)

// Mongo holds the client and the three collections.
type Mongo struct {
	client   *mongodriver.Client
	db       *mongodriver.Database
	users    *mongodriver.Collection
	requests *mongodriver.Collection
	messages *mongodriver.Collection
}

// New connects, pings the primary and ensures indexes.
func New(ctx context.Context, uri string) (*Mongo, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(uri))
	m := &Mongo{
		client:   cli,
		db:       db,
		users:    db.Collection(usersCollection),
		requests: db.Collection(requestsCollection),
		messages: db.Collection(messagesCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}
	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Repositories exposes the backend through the repository contracts.
func (m *Mongo) Repositories() repository.Store {
	return repository.Store{
		Users:    &UserRepository{col: m.users},
		Requests: &SwapRequestRepository{col: m.requests},
		Messages: &MessageRepository{col: m.messages},
		Close:    func() { _ = m.Close(context.Background()) },
	}
}

// ensureIndexes creates:
//   - users: unique emailLower, createdAt desc for listing
//   - swapRequests: fromUserId, toUserId
//   - requestMessages: requestId + createdAt asc
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	if _, err := m.users.Indexes().CreateMany(ctx, []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "emailLower", Value: 1}},
			Options: options.Index().SetName("email_lower_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
	}); err != nil {
		return fmt.Errorf("mongo ensure user indexes: %w", err)
	}

	if _, err := m.requests.Indexes().CreateMany(ctx, []mongodriver.IndexModel{
		{Keys: bson.D{{Key: "fromUserId", Value: 1}}, Options: options.Index().SetName("from_user")},
		{Keys: bson.D{{Key: "toUserId", Value: 1}}, Options: options.Index().SetName("to_user")},
	}); err != nil {
		return fmt.Errorf("mongo ensure request indexes: %w", err)
	}

	if _, err := m.messages.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "requestId", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("request_created_asc"),
	}); err != nil {
		return fmt.Errorf("mongo ensure message indexes: %w", err)
	}
	return nil
}

// databaseFromURI extracts the database name from the URI path.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}

// objectID parses a hex id; malformed ids report ok=false.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

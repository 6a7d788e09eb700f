package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	"github.com/oksasatya/skillswap-api/internal/domain/repository"
)

type messageDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RequestID primitive.ObjectID `bson:"requestId"`
	SenderID  primitive.ObjectID `bson:"senderId"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type MessageRepository struct {
	col *mongodriver.Collection
}

func (r *MessageRepository) Create(ctx context.Context, m *entity.Message) error {
	const op = "storage/mongo/messages.Create"

	reqID, ok := objectID(m.RequestID)
	if !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	sender, ok := objectID(m.SenderID)
	if !ok {
		return fmt.Errorf("%s: sender: %w", op, repository.ErrInvalidID)
	}

	res, err := r.col.InsertOne(ctx, messageDoc{
		RequestID: reqID,
		SenderID:  sender,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("%s: inserted id type", op)
	}
	m.ID = oid.Hex()
	return nil
}

func (r *MessageRepository) ListByRequest(ctx context.Context, requestID string) ([]entity.Message, error) {
	const op = "storage/mongo/messages.ListByRequest"

	reqID, ok := objectID(requestID)
	if !ok {
		return []entity.Message{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.D{{Key: "requestId", Value: reqID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	out := make([]entity.Message, 0)
	for cur.Next(ctx) {
		var doc messageDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		out = append(out, entity.Message{
			ID:        doc.ID.Hex(),
			RequestID: doc.RequestID.Hex(),
			SenderID:  doc.SenderID.Hex(),
			Text:      doc.Text,
			CreatedAt: doc.CreatedAt.UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}
	return out, nil
}

var _ repository.MessageRepository = (*MessageRepository)(nil)

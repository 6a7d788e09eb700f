package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	"github.com/oksasatya/skillswap-api/internal/domain/repository"
)

type swapRequestDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FromUserID primitive.ObjectID `bson:"fromUserId"`
	ToUserID   primitive.ObjectID `bson:"toUserId"`
	Message    string             `bson:"message"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d swapRequestDoc) entity() entity.SwapRequest {
	return entity.SwapRequest{
		ID:         d.ID.Hex(),
		FromUserID: d.FromUserID.Hex(),
		ToUserID:   d.ToUserID.Hex(),
		Message:    d.Message,
		Status:     entity.RequestStatus(d.Status),
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

type SwapRequestRepository struct {
	col *mongodriver.Collection
}

func (r *SwapRequestRepository) Create(ctx context.Context, req *entity.SwapRequest) error {
	const op = "storage/mongo/requests.Create"

	from, ok := objectID(req.FromUserID)
	if !ok {
		return fmt.Errorf("%s: from: %w", op, repository.ErrInvalidID)
	}
	to, ok := objectID(req.ToUserID)
	if !ok {
		return fmt.Errorf("%s: to: %w", op, repository.ErrInvalidID)
	}

	res, err := r.col.InsertOne(ctx, swapRequestDoc{
		FromUserID: from,
		ToUserID:   to,
		Message:    req.Message,
		Status:     string(req.Status),
		CreatedAt:  req.CreatedAt,
		UpdatedAt:  req.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("%s: inserted id type", op)
	}
	req.ID = oid.Hex()
	return nil
}

func (r *SwapRequestRepository) GetByID(ctx context.Context, id string) (*entity.SwapRequest, error) {
	const op = "storage/mongo/requests.GetByID"

	oid, ok := objectID(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	var doc swapRequestDoc
	if err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := doc.entity()
	return &out, nil
}

func (r *SwapRequestRepository) UpdateStatus(ctx context.Context, id string, status entity.RequestStatus, updatedAt time.Time) (*entity.SwapRequest, error) {
	const op = "storage/mongo/requests.UpdateStatus"

	oid, ok := objectID(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	var doc swapRequestDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: string(status)},
			{Key: "updatedAt", Value: updatedAt},
		}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := doc.entity()
	return &out, nil
}

func (r *SwapRequestRepository) ListByParticipant(ctx context.Context, userID string) ([]entity.SwapRequest, error) {
	const op = "storage/mongo/requests.ListByParticipant"

	uid, ok := objectID(userID)
	if !ok {
		return []entity.SwapRequest{}, nil
	}

	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "fromUserId", Value: uid}},
		bson.D{{Key: "toUserId", Value: uid}},
	}}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	out := make([]entity.SwapRequest, 0)
	for cur.Next(ctx) {
		var doc swapRequestDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		out = append(out, doc.entity())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}
	return out, nil
}

var _ repository.SwapRequestRepository = (*SwapRequestRepository)(nil)

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

type profileDoc struct {
	Bio            string `bson:"bio"`
	SkillsOffering string `bson:"skillsOffering"`
	SkillsSeeking  string `bson:"skillsSeeking"`
	Availability   string `bson:"availability"`
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	EmailLower   string             `bson:"emailLower"`
	Name         string             `bson:"name"`
	PasswordHash string             `bson:"passwordHash"`
	Profile      profileDoc         `bson:"profile"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func toUserDoc(u *entity.User) userDoc {
	return userDoc{
		Email:        u.Email,
		EmailLower:   u.EmailLower,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Profile: profileDoc{
			Bio:            u.Profile.Bio,
			SkillsOffering: u.Profile.SkillsOffering,
			SkillsSeeking:  u.Profile.SkillsSeeking,
			Availability:   u.Profile.Availability,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDoc) entity() entity.User {
	return entity.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		EmailLower:   d.EmailLower,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Profile: entity.Profile{
			Bio:            d.Profile.Bio,
			SkillsOffering: d.Profile.SkillsOffering,
			SkillsSeeking:  d.Profile.SkillsSeeking,
			Availability:   d.Profile.Availability,
		},
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type UserRepository struct {
	col *mongodriver.Collection
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	const op = "storage/mongo/users.Create"

	res, err := r.col.InsertOne(ctx, toUserDoc(u))
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrDuplicateEmail)
		}
		return fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("%s: inserted id type", op)
	}
	u.ID = oid.Hex()
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, op string, filter bson.D) (*entity.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u := doc.entity()
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	const op = "storage/mongo/users.GetByID"

	oid, ok := objectID(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrInvalidID)
	}
	return r.findOne(ctx, op, bson.D{{Key: "_id", Value: oid}})
}

func (r *UserRepository) GetByEmail(ctx context.Context, emailLower string) (*entity.User, error) {
	return r.findOne(ctx, "storage/mongo/users.GetByEmail", bson.D{{Key: "emailLower", Value: emailLower}})
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	const op = "storage/mongo/users.GetByIDs"

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := objectID(id); ok {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []entity.User{}, nil
	}

	return r.find(ctx, op, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}}, nil)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	const op = "storage/mongo/users.Update"

	oid, ok := objectID(u.ID)
	if !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrInvalidID)
	}

	doc := toUserDoc(u)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, doc)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrDuplicateEmail)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) ListExcept(ctx context.Context, id string) ([]entity.User, error) {
	const op = "storage/mongo/users.ListExcept"

	filter := bson.D{}
	if oid, ok := objectID(id); ok {
		filter = bson.D{{Key: "_id", Value: bson.D{{Key: "$ne", Value: oid}}}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, op, filter, opts)
}

func (r *UserRepository) find(ctx context.Context, op string, filter bson.D, opts *options.FindOptions) ([]entity.User, error) {
	var cur *mongodriver.Cursor
	var err error
	if opts != nil {
		cur, err = r.col.Find(ctx, filter, opts)
	} else {
		cur, err = r.col.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	out := make([]entity.User, 0)
	for cur.Next(ctx) {
		var doc userDoc
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

var _ repository.UserRepository = (*UserRepository)(nil)

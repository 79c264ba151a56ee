package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepo interface {
	Enqueue(ctx context.Context, item *ReviewItem) error
	GetByID(ctx context.Context, id string) (*ReviewItem, error)
	ListPending(ctx context.Context, limit int) ([]*ReviewItem, error)
	Resolve(ctx context.Context, id string, reviewerID uint64, status string) error
	CountPending(ctx context.Context) (int64, error)
}

type reviewRepoImpl struct {
	col *mongo.Collection
}

func NewReviewRepo(db *mongo.Database) ReviewRepo {
	return &reviewRepoImpl{
		col: db.Collection("review_queue"),
	}
}

func (s *reviewRepoImpl) Enqueue(ctx context.Context, item *ReviewItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	if item.Status == "" {
		item.Status = ReviewStatusPending
	}
	_, err := s.col.InsertOne(ctx, item)
	return err
}

// GetByID fetches one item; a missing document yields (nil, nil).
func (s *reviewRepoImpl) GetByID(ctx context.Context, id string) (*ReviewItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var item ReviewItem
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListPending returns the oldest unresolved items first so the queue
// drains in arrival order.
func (s *reviewRepoImpl) ListPending(ctx context.Context, limit int) ([]*ReviewItem, error) {
	if limit <= 0 {
		limit = 20
	}

	filter := bson.M{"status": ReviewStatusPending}

	findOptions := options.Find().
		SetSort(bson.D{
			{Key: "created_at", Value: 1},
			{Key: "_id", Value: 1},
		}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	items := make([]*ReviewItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *reviewRepoImpl) Resolve(ctx context.Context, id string, reviewerID uint64, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"status":      status,
		"reviewer_id": reviewerID,
		"reviewed_at": time.Now(),
	}}
	_, err = s.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (s *reviewRepoImpl) CountPending(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"status": ReviewStatusPending})
}

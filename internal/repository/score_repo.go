package repository

import (
	"context"

	"codequiz/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ScoreRepo interface {
	Create(ctx context.Context, score *model.Score) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]model.Score, error)
	TopScores(ctx context.Context, category string, limit int) ([]model.Score, error)
}

type scoreRepo struct {
	collection *mongo.Collection
}

func NewScoreRepo(db *mongo.Database) ScoreRepo {
	return &scoreRepo{
		collection: db.Collection("scores"),
	}
}

func (r *scoreRepo) Create(ctx context.Context, score *model.Score) error {
	if score.ID.IsZero() {
		score.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, score)
	return err
}

// ListByUser returns the user's scores, newest first
func (r *scoreRepo) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]model.Score, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []model.Score
	if err = cursor.All(ctx, &scores); err != nil {
		return nil, err
	}

	return scores, nil
}

// TopScores returns the highest raw scores, optionally filtered by category
func (r *scoreRepo) TopScores(ctx context.Context, category string, limit int) ([]model.Score, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().
		SetSort(bson.M{"score": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []model.Score
	if err = cursor.All(ctx, &scores); err != nil {
		return nil, err
	}

	return scores, nil
}

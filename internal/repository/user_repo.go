package repository

import (
	"context"

	"codequiz/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// ApplyScore folds one accepted quiz score into the user's rolling
	// aggregates as a single update command, so concurrent submissions
	// cannot lose increments. Returns false when no user matched.
	ApplyScore(ctx context.Context, id primitive.ObjectID, score int) (bool, error)
}

type userRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{
		collection: db.Collection("users"),
	}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, user)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	var user model.User
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) ApplyScore(ctx context.Context, id primitive.ObjectID, score int) (bool, error) {
	// Update-with-pipeline: increment and recompute the average in one
	// atomic document update, never read-modify-write.
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			"quizzesCompleted": bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$quizzesCompleted", 0}}, 1}},
			"totalScore":       bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$totalScore", 0}}, score}},
		}}},
		bson.D{{Key: "$set", Value: bson.M{
			"averageScore": bson.M{"$round": bson.A{
				bson.M{"$divide": bson.A{"$totalScore", "$quizzesCompleted"}},
				0,
			}},
		}}},
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

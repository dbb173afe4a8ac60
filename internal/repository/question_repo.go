package repository

import (
	"context"

	"codequiz/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// QuestionFilter narrows question sampling. Subject matches either the
// category or the question text, case-insensitively.
type QuestionFilter struct {
	Category   string
	Difficulty string
	Subject    string
}

func (f QuestionFilter) match() bson.M {
	match := bson.M{}
	if f.Category != "" {
		match["category"] = f.Category
	}
	if f.Difficulty != "" {
		match["difficulty"] = f.Difficulty
	}
	if f.Subject != "" {
		re := primitive.Regex{Pattern: f.Subject, Options: "i"}
		match["$or"] = bson.A{
			bson.M{"category": re},
			bson.M{"question": re},
		}
	}
	return match
}

type QuestionRepo interface {
	Create(ctx context.Context, question *model.Question) error
	CreateMany(ctx context.Context, questions []model.Question) (int, error)
	Sample(ctx context.Context, filter QuestionFilter, n int) ([]model.Question, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) Create(ctx context.Context, question *model.Question) error {
	if question.ID.IsZero() {
		question.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, question)
	return err
}

func (r *questionRepo) CreateMany(ctx context.Context, questions []model.Question) (int, error) {
	docs := make([]interface{}, len(questions))
	for i := range questions {
		if questions[i].ID.IsZero() {
			questions[i].ID = primitive.NewObjectID()
		}
		docs[i] = questions[i]
	}

	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// Sample returns up to n random matching questions using a $sample
// aggregation. Fewer than n documents may come back when the collection
// is small.
func (r *questionRepo) Sample(ctx context.Context, filter QuestionFilter, n int) ([]model.Question, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter.match()}},
		bson.D{{Key: "$sample", Value: bson.M{"size": n}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}

	return questions, nil
}

func (r *questionRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (r *questionRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

package repository

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestQuestionFilterMatch(t *testing.T) {
	tests := []struct {
		name   string
		filter QuestionFilter
		want   bson.M
	}{
		{
			"empty filter matches everything",
			QuestionFilter{},
			bson.M{},
		},
		{
			"category only",
			QuestionFilter{Category: "Python"},
			bson.M{"category": "Python"},
		},
		{
			"category and difficulty",
			QuestionFilter{Category: "Python", Difficulty: "Medium"},
			bson.M{"category": "Python", "difficulty": "Medium"},
		},
		{
			"subject matches category or question text",
			QuestionFilter{Subject: "sorting"},
			bson.M{"$or": bson.A{
				bson.M{"category": primitive.Regex{Pattern: "sorting", Options: "i"}},
				bson.M{"question": primitive.Regex{Pattern: "sorting", Options: "i"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.match(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("match() = %v, want %v", got, tt.want)
			}
		})
	}
}

package service

import (
	"context"
	"sort"

	"codequiz/internal/model"
	"codequiz/internal/repository"
)

// staticCategories are always offered alongside whatever the question
// bank currently holds, since external sources can serve them too.
var staticCategories = []string{
	"General Programming",
	"JavaScript",
	"Python",
	"Java",
	"React",
	"Node.js",
	"SQL",
	"HTML/CSS",
}

// QuestionService serves question-bank reads
type QuestionService struct {
	questions repository.QuestionRepo
}

// NewQuestionService creates a new question service
func NewQuestionService(questions repository.QuestionRepo) *QuestionService {
	return &QuestionService{questions: questions}
}

// Random returns up to count random questions matching the filter
func (s *QuestionService) Random(ctx context.Context, filter repository.QuestionFilter, count int) ([]model.Question, error) {
	if count <= 0 {
		count = 10
	}
	return s.questions.Sample(ctx, filter, count)
}

// Categories returns the stored categories merged with the static list,
// deduplicated and sorted. Store failures degrade to the static list.
func (s *QuestionService) Categories(ctx context.Context) []string {
	merged := make(map[string]bool, len(staticCategories))
	for _, c := range staticCategories {
		merged[c] = true
	}

	if stored, err := s.questions.DistinctCategories(ctx); err == nil {
		for _, c := range stored {
			merged[c] = true
		}
	}

	categories := make([]string, 0, len(merged))
	for c := range merged {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

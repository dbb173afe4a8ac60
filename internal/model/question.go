package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizFormat defines the shape of generated quiz questions
type QuizFormat string

const (
	FormatMCQ             QuizFormat = "MCQ"
	FormatTrueFalse       QuizFormat = "True-False"
	FormatMultipleCorrect QuizFormat = "Multiple Correct"
)

// AnswerLabels is the fixed label order of the answers sub-document
var AnswerLabels = []string{"answer_a", "answer_b", "answer_c", "answer_d"}

// Question is a stored question-bank record
type Question struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Question      string            `json:"question" bson:"question"`
	Answers       map[string]string `json:"answers" bson:"answers"`
	CorrectAnswer string            `json:"correct_answer" bson:"correct_answer"` // label key into Answers
	Category      string            `json:"category" bson:"category"`
	Difficulty    string            `json:"difficulty" bson:"difficulty"`
	CreatedAt     time.Time         `json:"createdAt" bson:"createdAt,omitempty"`
}

// Options returns the non-empty answer texts in label order
func (q *Question) Options() []string {
	opts := make([]string, 0, len(AnswerLabels))
	for _, label := range AnswerLabels {
		if text := q.Answers[label]; text != "" {
			opts = append(opts, text)
		}
	}
	return opts
}

// CorrectText returns the text of the designated correct answer.
// Falls back to the first option when the label does not resolve.
func (q *Question) CorrectText() string {
	if text := q.Answers[q.CorrectAnswer]; text != "" {
		return text
	}
	if opts := q.Options(); len(opts) > 0 {
		return opts[0]
	}
	return ""
}

// GeneratedQuestion is the canonical question shape returned to clients,
// regardless of which source produced it. Never persisted.
type GeneratedQuestion struct {
	ID             int      `json:"id"`
	QuestionText   string   `json:"question_text"`
	Options        []string `json:"options"`
	CorrectAnswers []string `json:"correct_answers"`
	Explanation    string   `json:"explanation"`
}

// ScoringRule defines per-question point values
type ScoringRule struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// QuizRequest is the request body for quiz generation
type QuizRequest struct {
	Subject           string     `json:"subject"`
	NumberOfQuestions int        `json:"number_of_questions"`
	TimeLimitMinutes  int        `json:"time_limit_minutes"`
	Format            QuizFormat `json:"format"`
	Difficulty        string     `json:"difficulty"`
}

// ApplyDefaults fills the documented default values for omitted fields
func (r *QuizRequest) ApplyDefaults() {
	if r.NumberOfQuestions <= 0 {
		r.NumberOfQuestions = 10
	}
	if r.TimeLimitMinutes <= 0 {
		r.TimeLimitMinutes = 10
	}
	if r.Format == "" {
		r.Format = FormatMCQ
	}
	if r.Difficulty == "" {
		r.Difficulty = "medium"
	}
}

// QuizResponse is the generated quiz returned to the client
type QuizResponse struct {
	TimeLimitMinutes int                 `json:"time_limit_minutes"`
	Scoring          ScoringRule         `json:"scoring"`
	Questions        []GeneratedQuestion `json:"questions"`
}

package service

import (
	"context"

	"codequiz/internal/model"
)

// SourceItem is the pre-normalization question shape every source is
// reduced to before format shaping. Corrects may hold more than one
// answer when the source supplies several.
type SourceItem struct {
	Text        string
	Options     []string
	Corrects    []string
	Explanation string
}

// FromRecord reduces a stored question-bank record to a SourceItem
func FromRecord(q *model.Question) SourceItem {
	return SourceItem{
		Text:     q.Question,
		Options:  q.Options(),
		Corrects: []string{q.CorrectText()},
	}
}

// ExternalSource fetches raw questions from a third-party question API.
// ok=false signals the source is unavailable; the caller moves on to
// the next source and never sees the reason.
type ExternalSource interface {
	Fetch(ctx context.Context, n int, category, difficulty string) ([]SourceItem, bool)
}

// GeneratorSource produces questions on demand, typically via an LLM
type GeneratorSource interface {
	Generate(ctx context.Context, n int, category, difficulty string, format model.QuizFormat) ([]SourceItem, bool)
}

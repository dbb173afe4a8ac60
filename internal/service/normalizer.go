package service

import (
	"fmt"
	"math/rand"
	"strings"

	"codequiz/internal/model"
)

const (
	maxOptions       = 4
	mergePerQuestion = 3 // options taken from each side of a merged pair
)

// Normalizer shapes SourceItems into canonical GeneratedQuestions for a
// given format. Pure except for the injected randomness, which drives
// the True-False polarity flip and Multiple-Correct pairing.
type Normalizer struct {
	rng *rand.Rand
}

func NewNormalizer(rng *rand.Rand) *Normalizer {
	return &Normalizer{rng: rng}
}

// MCQ builds a single-correct multiple-choice question. ok=false means
// the item is unusable and should be skipped, not that the batch failed.
func (n *Normalizer) MCQ(item SourceItem) (model.GeneratedQuestion, bool) {
	correct := firstNonEmpty(item.Corrects)
	if item.Text == "" || correct == "" || len(item.Options) < 2 {
		return model.GeneratedQuestion{}, false
	}

	options := capAt(item.Options, maxOptions)
	if !contains(options, correct) {
		// The designated correct text did not survive truncation.
		return model.GeneratedQuestion{}, false
	}

	explanation := item.Explanation
	if explanation == "" {
		explanation = fmt.Sprintf("Correct answer: %s.", correct)
	}

	return model.GeneratedQuestion{
		QuestionText:   item.Text,
		Options:        options,
		CorrectAnswers: []string{correct},
		Explanation:    explanation,
	}, true
}

// TrueFalse derives a true/false statement by appending either the
// correct answer or, on a coin flip, a wrong one to the question stem.
func (n *Normalizer) TrueFalse(item SourceItem) (model.GeneratedQuestion, bool) {
	correct := firstNonEmpty(item.Corrects)
	if item.Text == "" || correct == "" || len(item.Options) < 2 {
		return model.GeneratedQuestion{}, false
	}

	stem := strings.TrimSuffix(strings.TrimSpace(item.Text), "?")
	makeFalse := n.rng.Float64() < 0.5

	appended := correct
	if makeFalse {
		wrongs := make([]string, 0, len(item.Options))
		for _, opt := range item.Options {
			if opt != correct {
				wrongs = append(wrongs, opt)
			}
		}
		if len(wrongs) == 0 {
			// No wrong alternative to build a false statement from.
			return model.GeneratedQuestion{}, false
		}
		appended = wrongs[n.rng.Intn(len(wrongs))]
	}

	answer := "True"
	verdict := "true"
	if makeFalse {
		answer = "False"
		verdict = "false"
	}

	return model.GeneratedQuestion{
		QuestionText:   stem + " — " + appended,
		Options:        []string{"True", "False"},
		CorrectAnswers: []string{answer},
		Explanation:    fmt.Sprintf("This statement is %s based on the original correct answer (%s).", verdict, correct),
	}, true
}

// MultipleCorrect merges the option pools of two distinct source items
// to force at least two correct answers. When the merged pool is too
// small the pair is unusable and the caller retries with another partner.
func (n *Normalizer) MultipleCorrect(a, b SourceItem) (model.GeneratedQuestion, bool) {
	if a.Text == "" {
		return model.GeneratedQuestion{}, false
	}

	candidates := dedupe(append(capAt(a.Options, mergePerQuestion), capAt(b.Options, mergePerQuestion)...))
	if len(candidates) < 2 {
		return model.GeneratedQuestion{}, false
	}

	options := capAt(candidates, maxOptions)

	corrects := make([]string, 0, 2)
	if c := firstNonEmpty(a.Corrects); contains(options, c) {
		corrects = append(corrects, c)
	}
	if c := firstNonEmpty(b.Corrects); contains(options, c) && !contains(corrects, c) {
		corrects = append(corrects, c)
	}
	// Top up with surviving options until at least two corrects exist.
	for _, opt := range options {
		if len(corrects) >= 2 {
			break
		}
		if !contains(corrects, opt) {
			corrects = append(corrects, opt)
		}
	}

	return model.GeneratedQuestion{
		QuestionText:   a.Text + " (Select all that apply)",
		Options:        options,
		CorrectAnswers: corrects,
		Explanation:    fmt.Sprintf("Correct answers: %s.", strings.Join(corrects, ", ")),
	}, true
}

// Batch normalizes a whole source batch for the requested format.
// Unusable items are skipped; the result may be shorter than the input.
func (n *Normalizer) Batch(items []SourceItem, format model.QuizFormat) []model.GeneratedQuestion {
	out := make([]model.GeneratedQuestion, 0, len(items))

	for i, item := range items {
		switch format {
		case model.FormatTrueFalse:
			if q, ok := n.TrueFalse(item); ok {
				out = append(out, q)
			}
		case model.FormatMultipleCorrect:
			if q, ok := n.multiCorrectFromBatch(items, i); ok {
				out = append(out, q)
			}
		default:
			if q, ok := n.MCQ(item); ok {
				out = append(out, q)
			}
		}
	}

	return out
}

// multiCorrectFromBatch builds a Multiple-Correct question for items[i].
// Items that already carry two or more valid corrects (LLM output) are
// used directly; otherwise a random partner is merged in, retrying a
// few partners before giving up on the item.
func (n *Normalizer) multiCorrectFromBatch(items []SourceItem, i int) (model.GeneratedQuestion, bool) {
	if q, ok := n.fromMultiCorrect(items[i]); ok {
		return q, true
	}
	if len(items) < 2 {
		return model.GeneratedQuestion{}, false
	}

	for attempt := 0; attempt < 3; attempt++ {
		j := n.rng.Intn(len(items))
		if j == i {
			continue
		}
		if q, ok := n.MultipleCorrect(items[i], items[j]); ok {
			return q, true
		}
	}
	return model.GeneratedQuestion{}, false
}

// fromMultiCorrect accepts an item that already has multiple correct
// answers, keeping only corrects that survive the option cap.
func (n *Normalizer) fromMultiCorrect(item SourceItem) (model.GeneratedQuestion, bool) {
	if item.Text == "" || len(item.Corrects) < 2 {
		return model.GeneratedQuestion{}, false
	}

	options := capAt(dedupe(item.Options), maxOptions)
	corrects := make([]string, 0, len(item.Corrects))
	for _, c := range item.Corrects {
		if contains(options, c) && !contains(corrects, c) {
			corrects = append(corrects, c)
		}
	}
	if len(corrects) < 2 {
		return model.GeneratedQuestion{}, false
	}

	explanation := item.Explanation
	if explanation == "" {
		explanation = fmt.Sprintf("Correct answers: %s.", strings.Join(corrects, ", "))
	}

	return model.GeneratedQuestion{
		QuestionText:   item.Text,
		Options:        options,
		CorrectAnswers: corrects,
		Explanation:    explanation,
	}, true
}

func capAt(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func contains(s []string, v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

func dedupe(s []string) []string {
	seen := make(map[string]bool, len(s))
	out := make([]string, 0, len(s))
	for _, v := range s {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func firstNonEmpty(s []string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}

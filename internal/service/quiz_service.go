package service

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"codequiz/internal/model"
	"codequiz/internal/repository"
)

const (
	minSampleSize    = 50
	sampleFactor     = 6 // over-sampling survives per-item drops during shaping
	localSampleLimit = 5 * time.Second
)

// QuizService assembles quizzes from prioritized question sources:
// local pool first, then the external question API, then the LLM.
type QuizService struct {
	questions repository.QuestionRepo
	external  ExternalSource
	generator GeneratorSource
	seed      func() int64
}

// NewQuizService creates a new quiz service
func NewQuizService(questions repository.QuestionRepo, external ExternalSource, generator GeneratorSource) *QuizService {
	return &QuizService{
		questions: questions,
		external:  external,
		generator: generator,
		seed:      func() int64 { return time.Now().UnixNano() },
	}
}

// SetSeed overrides the randomness seed source. Tests use this to make
// shaping deterministic.
func (s *QuizService) SetSeed(seed func() int64) {
	s.seed = seed
}

// Generate builds a quiz of exactly the requested size, or fails with
// ErrInsufficientQuestions when every source falls short. A later
// source is consulted only after an earlier one failed to reach count.
func (s *QuizService) Generate(ctx context.Context, req *model.QuizRequest) (*model.QuizResponse, error) {
	req.ApplyDefaults()
	count := req.NumberOfQuestions

	rng := rand.New(rand.NewSource(s.seed()))
	norm := NewNormalizer(rng)

	questions := s.fromLocalPool(ctx, rng, norm, req)

	if questions == nil {
		log.Println("[Quiz] insufficient local questions, trying external source")
		if items, ok := s.external.Fetch(ctx, count, req.Subject, req.Difficulty); ok {
			if shaped := norm.Batch(items, req.Format); len(shaped) >= count {
				questions = shaped[:count]
			}
		}
	}

	if questions == nil {
		log.Println("[Quiz] external source fell short, trying LLM generator")
		if items, ok := s.generator.Generate(ctx, count, req.Subject, req.Difficulty, req.Format); ok {
			if shaped := norm.Batch(items, req.Format); len(shaped) >= count {
				questions = shaped[:count]
			}
		}
	}

	if questions == nil {
		return nil, model.ErrInsufficientQuestions
	}

	// 1-based sequential ids over the final selection, source-independent.
	for i := range questions {
		questions[i].ID = i + 1
	}

	return &model.QuizResponse{
		TimeLimitMinutes: req.TimeLimitMinutes,
		Scoring:          model.ScoringRule{Correct: 1, Incorrect: 0},
		Questions:        questions,
	}, nil
}

// fromLocalPool samples the question bank with over-sampling and builds
// questions by picking random pool indexes without replacement. nil
// means the local source could not reach count.
func (s *QuizService) fromLocalPool(ctx context.Context, rng *rand.Rand, norm *Normalizer, req *model.QuizRequest) []model.GeneratedQuestion {
	count := req.NumberOfQuestions
	sampleSize := max(minSampleSize, sampleFactor*count)

	filter := repository.QuestionFilter{
		Difficulty: storeDifficulty(req.Difficulty),
		Subject:    req.Subject,
	}

	sampleCtx, cancel := context.WithTimeout(ctx, localSampleLimit)
	defer cancel()

	pool, err := s.questions.Sample(sampleCtx, filter, sampleSize)
	if err != nil {
		log.Printf("[Quiz] local pool unavailable: %v", err)
		return nil
	}
	if len(pool) < count {
		return nil
	}

	out := make([]model.GeneratedQuestion, 0, count)
	used := make(map[int]bool, len(pool))

	for len(out) < count && len(used) < len(pool) {
		idx := rng.Intn(len(pool))
		if used[idx] {
			continue
		}
		used[idx] = true
		item := FromRecord(&pool[idx])

		switch req.Format {
		case model.FormatTrueFalse:
			if q, ok := norm.TrueFalse(item); ok {
				out = append(out, q)
			}
		case model.FormatMultipleCorrect:
			if q, ok := s.pairFromPool(rng, norm, pool, idx, item); ok {
				out = append(out, q)
			}
		default:
			if q, ok := norm.MCQ(item); ok {
				out = append(out, q)
			}
		}
	}

	if len(out) < count {
		return nil
	}
	return out
}

// pairFromPool merges the primary item with a random distinct pool
// partner, retrying a few partners when the merged pool is too small
func (s *QuizService) pairFromPool(rng *rand.Rand, norm *Normalizer, pool []model.Question, idx int, item SourceItem) (model.GeneratedQuestion, bool) {
	if len(pool) < 2 {
		return model.GeneratedQuestion{}, false
	}

	for attempt := 0; attempt < 3; attempt++ {
		otherIdx := rng.Intn(len(pool))
		if otherIdx == idx {
			continue
		}
		if q, ok := norm.MultipleCorrect(item, FromRecord(&pool[otherIdx])); ok {
			return q, true
		}
	}
	return model.GeneratedQuestion{}, false
}

// storeDifficulty maps the request vocabulary ("medium") onto the
// question bank's stored form ("Medium")
func storeDifficulty(d string) string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(d[:1]) + strings.ToLower(d[1:])
}

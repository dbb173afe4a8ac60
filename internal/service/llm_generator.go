package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"codequiz/internal/config"
	"codequiz/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

const llmSystemPrompt = "You are a helpful assistant that generates educational quiz questions. Always return valid JSON format."

// LLMGenerator produces quiz questions via an OpenAI-compatible chat
// completion API. It is the last-resort question source.
type LLMGenerator struct {
	cfg *config.LLMConfig
	api *openai.Client
}

// NewLLMGenerator creates a new LLM generator. When no API key is
// configured the generator reports itself unavailable on every call.
func NewLLMGenerator(cfg *config.LLMConfig) *LLMGenerator {
	g := &LLMGenerator{cfg: cfg}
	if cfg.IsEnabled() {
		apiCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			apiCfg.BaseURL = cfg.BaseURL
		}
		g.api = openai.NewClientWithConfig(apiCfg)
	} else {
		log.Println("Warning: OPENAI_API_KEY not set, LLM question source disabled")
	}
	return g
}

// llmQuestion mirrors the JSON items the model is asked to produce.
// Alternate field names cover common model drift.
type llmQuestion struct {
	QuestionText   string   `json:"question_text"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswers []string `json:"correct_answers"`
	CorrectAnswer  string   `json:"correct_answer"`
	Explanation    string   `json:"explanation"`
}

// Generate asks the model for exactly n questions and maps the parsed
// array into SourceItems. ok=false on empty or unparsable completions;
// failures are logged, never returned.
func (g *LLMGenerator) Generate(ctx context.Context, n int, category, difficulty string, format model.QuizFormat) ([]SourceItem, bool) {
	if g.api == nil {
		log.Println("[LLM] not configured, skipping")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.cfg.TimeoutMS)*time.Millisecond)
	defer cancel()

	resp, err := g.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llmSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildQuizPrompt(n, category, difficulty, format)},
		},
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
	})
	if err != nil {
		log.Printf("[LLM] completion failed: %v", err)
		return nil, false
	}
	if len(resp.Choices) == 0 {
		log.Println("[LLM] completion returned no choices")
		return nil, false
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)
	if content == "" {
		log.Println("[LLM] empty completion")
		return nil, false
	}

	var questions []llmQuestion
	if err := json.Unmarshal([]byte(content), &questions); err != nil {
		log.Printf("[LLM] failed to parse completion as JSON array: %v", err)
		return nil, false
	}
	if len(questions) == 0 {
		log.Println("[LLM] completion parsed to an empty array")
		return nil, false
	}

	items := make([]SourceItem, 0, len(questions))
	for _, q := range questions {
		text := q.QuestionText
		if text == "" {
			text = q.Question
		}
		corrects := q.CorrectAnswers
		if len(corrects) == 0 && q.CorrectAnswer != "" {
			corrects = []string{q.CorrectAnswer}
		}
		items = append(items, SourceItem{
			Text:        text,
			Options:     q.Options,
			Corrects:    corrects,
			Explanation: q.Explanation,
		})
	}

	log.Printf("[LLM] generated %d questions", len(items))
	return items, true
}

// buildQuizPrompt assembles the natural-language instruction for the model
func buildQuizPrompt(n int, category, difficulty string, format model.QuizFormat) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate %d %s quiz questions", n, format)
	if category != "" && category != "Any Category" {
		fmt.Fprintf(&sb, " about %s", category)
	}
	fmt.Fprintf(&sb, " with %s difficulty level. ", difficulty)

	switch format {
	case model.FormatTrueFalse:
		sb.WriteString("Each question should be a statement that is either True or False. ")
	case model.FormatMultipleCorrect:
		sb.WriteString("Each question should have 4 options with multiple correct answers. ")
	default:
		sb.WriteString("Each question should have exactly 4 multiple choice options (A, B, C, D) with one correct answer. ")
	}

	sb.WriteString(`Return the questions in JSON format as an array. Each question object should have:
- question_text: the question text
- options: array of answer options
- correct_answers: array of correct answer(s)
- explanation: brief explanation

Example format:
[
  {
    "question_text": "What is JavaScript?",
    "options": ["A programming language", "A database", "A framework", "An operating system"],
    "correct_answers": ["A programming language"],
    "explanation": "JavaScript is a high-level programming language used for web development."
  }
]

Return only valid JSON, no additional text.`)

	return sb.String()
}

// stripCodeFence removes a surrounding markdown code fence, with or
// without a language tag, from a completion.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

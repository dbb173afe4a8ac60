package service

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"codequiz/internal/config"
)

// quizAPICategories maps internal category vocabulary to QuizAPI.io
// categories. Anything unmapped falls back to the generic "Code".
var quizAPICategories = map[string]string{
	"Computer Science":    "Code",
	"Engineering":         "Code",
	"Linux":               "Linux",
	"JavaScript":          "Code",
	"Python":              "Code",
	"Java":                "Code",
	"React":               "Code",
	"Node.js":             "Code",
	"SQL":                 "SQL",
	"HTML/CSS":            "Code",
	"DevOps":              "DevOps",
	"General Programming": "Code",
}

// quizAPIAnswerLabels is the fixed label order of the QuizAPI.io answers
// object, which carries up to six sparse answer slots.
var quizAPIAnswerLabels = []string{"answer_a", "answer_b", "answer_c", "answer_d", "answer_e", "answer_f"}

// QuizAPIClient wraps the QuizAPI.io question service
type QuizAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewQuizAPIClient creates a new QuizAPI.io client
func NewQuizAPIClient(cfg *config.Config) *QuizAPIClient {
	if cfg.QuizAPIKey == "" {
		log.Println("Warning: QUIZAPI_KEY not set, external question source disabled")
	}

	return &QuizAPIClient{
		baseURL: cfg.QuizAPIBase,
		apiKey:  cfg.QuizAPIKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// quizAPIQuestion mirrors the QuizAPI.io question payload
type quizAPIQuestion struct {
	ID             int                `json:"id"`
	Question       string             `json:"question"`
	Answers        map[string]*string `json:"answers"`
	CorrectAnswers map[string]string  `json:"correct_answers"`
	Explanation    string             `json:"explanation"`
	Category       string             `json:"category"`
	Difficulty     string             `json:"difficulty"`
}

// Fetch issues one GET to QuizAPI.io and reduces the result to
// SourceItems. ok=false on any failure; the reason is logged here and
// never surfaced to the caller.
func (c *QuizAPIClient) Fetch(ctx context.Context, n int, category, difficulty string) ([]SourceItem, bool) {
	if c.apiKey == "" {
		log.Println("[QuizAPI] no API key configured, skipping")
		return nil, false
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("limit", strconv.Itoa(n))

	switch strings.ToLower(difficulty) {
	case "easy", "medium", "hard":
		params.Set("difficulty", strings.ToLower(difficulty))
	}

	if category != "" && category != "Any Category" {
		mapped, ok := quizAPICategories[category]
		if !ok {
			mapped = "Code"
		}
		params.Set("category", mapped)
	}

	reqURL := c.baseURL + "/questions?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Printf("[QuizAPI] failed to build request: %v", err)
		return nil, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[QuizAPI] request failed: %v", err)
		return nil, false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[QuizAPI] failed to read response: %v", err)
		return nil, false
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[QuizAPI] error %d: %s", resp.StatusCode, string(body))
		return nil, false
	}

	var questions []quizAPIQuestion
	if err := json.Unmarshal(body, &questions); err != nil {
		log.Printf("[QuizAPI] failed to parse response: %v", err)
		return nil, false
	}
	if len(questions) == 0 {
		log.Println("[QuizAPI] empty result")
		return nil, false
	}

	items := make([]SourceItem, 0, len(questions))
	for _, q := range questions {
		items = append(items, convertQuizAPIQuestion(q))
	}

	log.Printf("[QuizAPI] fetched %d questions", len(items))
	return items, true
}

// convertQuizAPIQuestion flattens the sparse answers object and its
// parallel correct-flag map into option and correct lists, in label order.
func convertQuizAPIQuestion(q quizAPIQuestion) SourceItem {
	item := SourceItem{
		Text:        q.Question,
		Explanation: q.Explanation,
	}

	for _, label := range quizAPIAnswerLabels {
		text := q.Answers[label]
		if text == nil || *text == "" {
			continue
		}
		item.Options = append(item.Options, *text)
		if q.CorrectAnswers[label+"_correct"] == "true" {
			item.Corrects = append(item.Corrects, *text)
		}
	}

	return item
}

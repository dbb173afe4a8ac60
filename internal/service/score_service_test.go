package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"codequiz/internal/cache"
	"codequiz/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeScoreRepo struct {
	mu      sync.Mutex
	scores  []model.Score
	top     []model.Score
	listErr error
	topErr  error
}

func (f *fakeScoreRepo) Create(_ context.Context, score *model.Score) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if score.ID.IsZero() {
		score.ID = primitive.NewObjectID()
	}
	f.scores = append(f.scores, *score)
	return nil
}

func (f *fakeScoreRepo) ListByUser(_ context.Context, userID primitive.ObjectID, limit int) ([]model.Score, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Score
	for _, s := range f.scores {
		if s.UserID != nil && *s.UserID == userID && len(out) < limit {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScoreRepo) TopScores(_ context.Context, category string, limit int) ([]model.Score, error) {
	if f.topErr != nil {
		return nil, f.topErr
	}
	if limit > len(f.top) {
		limit = len(f.top)
	}
	return f.top[:limit], nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[primitive.ObjectID]*model.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrInvalidID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[oid], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ApplyScore(_ context.Context, id primitive.ObjectID, score int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.QuizzesCompleted++
	u.TotalScore += score
	u.AverageScore = u.TotalScore / u.QuizzesCompleted
	return true, nil
}

type fakeLeaderboard struct {
	mu        sync.Mutex
	recorded  []cache.LeaderboardEntry
	entries   []cache.LeaderboardEntry
	recordErr error
	getErr    error
}

func (f *fakeLeaderboard) Record(_ context.Context, entry cache.LeaderboardEntry) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, entry)
	return nil
}

func (f *fakeLeaderboard) GetTop(_ context.Context, category string, limit int) ([]cache.LeaderboardEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return f.entries[:limit], nil
}

func intPtr(n int) *int { return &n }

func TestSubmitValidation(t *testing.T) {
	svc := NewScoreService(&fakeScoreRepo{}, newFakeUserRepo(), nil)

	tests := []struct {
		name string
		req  *model.SubmitScoreRequest
		want error
	}{
		{"missing name", &model.SubmitScoreRequest{Score: intPtr(5)}, model.ErrValidation},
		{"missing score", &model.SubmitScoreRequest{Name: "Ada"}, model.ErrValidation},
		{"bad user id", &model.SubmitScoreRequest{Name: "Ada", Score: intPtr(5), UserID: "nope"}, model.ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Submit(context.Background(), tt.req); !errors.Is(err, tt.want) {
				t.Errorf("Submit error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSubmitZeroScoreIsValid(t *testing.T) {
	svc := NewScoreService(&fakeScoreRepo{}, newFakeUserRepo(), nil)

	score, err := svc.Submit(context.Background(), &model.SubmitScoreRequest{
		Name:           "Ada",
		Score:          intPtr(0),
		TotalQuestions: 10,
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if score.Percentage != 0 {
		t.Errorf("percentage = %d, want 0", score.Percentage)
	}
}

func TestSubmitPercentage(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{7, 10, 70},
		{1, 3, 33},
		{2, 3, 67},
		{10, 10, 100},
		{5, 0, 0}, // zero-total guard
	}

	for _, tt := range tests {
		svc := NewScoreService(&fakeScoreRepo{}, newFakeUserRepo(), nil)
		score, err := svc.Submit(context.Background(), &model.SubmitScoreRequest{
			Name:           "Ada",
			Score:          intPtr(tt.score),
			TotalQuestions: tt.total,
		})
		if err != nil {
			t.Fatalf("Submit(%d/%d) returned error: %v", tt.score, tt.total, err)
		}
		if score.Percentage != tt.want {
			t.Errorf("percentage(%d/%d) = %d, want %d", tt.score, tt.total, score.Percentage, tt.want)
		}
	}
}

func TestSubmitUpdatesUserAggregates(t *testing.T) {
	user := &model.User{Name: "Ada", Email: "ada@example.com"}
	users := newFakeUserRepo(user)
	svc := NewScoreService(&fakeScoreRepo{}, users, nil)

	for _, s := range []int{8, 6} {
		_, err := svc.Submit(context.Background(), &model.SubmitScoreRequest{
			Name:           "Ada",
			Score:          intPtr(s),
			TotalQuestions: 10,
			UserID:         user.ID.Hex(),
		})
		if err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
	}

	if user.QuizzesCompleted != 2 || user.TotalScore != 14 {
		t.Errorf("aggregates = %d quizzes / %d total, want 2 / 14", user.QuizzesCompleted, user.TotalScore)
	}
	if user.AverageScore != 7 {
		t.Errorf("average = %d, want 7", user.AverageScore)
	}
}

func TestSubmitUnknownUserStillSaves(t *testing.T) {
	scores := &fakeScoreRepo{}
	svc := NewScoreService(scores, newFakeUserRepo(), nil)

	// A valid but unregistered user ID degrades to an anonymous save.
	_, err := svc.Submit(context.Background(), &model.SubmitScoreRequest{
		Name:           "Drifter",
		Score:          intPtr(5),
		TotalQuestions: 10,
		UserID:         primitive.NewObjectID().Hex(),
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(scores.scores) != 1 {
		t.Errorf("saved %d scores, want 1", len(scores.scores))
	}
}

func TestSubmitConcurrentAggregates(t *testing.T) {
	user := &model.User{Name: "Ada", Email: "ada@example.com"}
	users := newFakeUserRepo(user)
	svc := NewScoreService(&fakeScoreRepo{}, users, nil)

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(context.Background(), &model.SubmitScoreRequest{
				Name:           "Ada",
				Score:          intPtr(1),
				TotalQuestions: 10,
				UserID:         user.ID.Hex(),
			})
			if err != nil {
				t.Errorf("Submit returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if user.QuizzesCompleted != n {
		t.Errorf("quizzesCompleted = %d, want %d (lost update)", user.QuizzesCompleted, n)
	}
	if user.TotalScore != n {
		t.Errorf("totalScore = %d, want %d", user.TotalScore, n)
	}
}

func TestSubmitRecordsLeaderboard(t *testing.T) {
	board := &fakeLeaderboard{}
	svc := NewScoreService(&fakeScoreRepo{}, newFakeUserRepo(), board)

	_, err := svc.Submit(context.Background(), &model.SubmitScoreRequest{
		Name:           "Ada",
		Score:          intPtr(9),
		TotalQuestions: 10,
		Category:       "Python",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(board.recorded) != 1 {
		t.Fatalf("recorded %d entries, want 1", len(board.recorded))
	}
	if e := board.recorded[0]; e.Name != "Ada" || e.Score != 9 || e.Category != "Python" {
		t.Errorf("recorded entry = %+v", e)
	}
}

func TestSubmitSurvivesLeaderboardFailure(t *testing.T) {
	board := &fakeLeaderboard{recordErr: errors.New("redis down")}
	svc := NewScoreService(&fakeScoreRepo{}, newFakeUserRepo(), board)

	if _, err := svc.Submit(context.Background(), &model.SubmitScoreRequest{
		Name:  "Ada",
		Score: intPtr(9),
	}); err != nil {
		t.Fatalf("leaderboard failure should not fail submission: %v", err)
	}
}

func TestUserScoresInvalidID(t *testing.T) {
	svc := NewScoreService(&fakeScoreRepo{}, newFakeUserRepo(), nil)
	if _, err := svc.UserScores(context.Background(), "not-hex"); !errors.Is(err, model.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestLeaderboardServedFromCache(t *testing.T) {
	board := &fakeLeaderboard{entries: []cache.LeaderboardEntry{
		{ScoreID: "a", Name: "Ada", Score: 10, Rank: 1},
	}}
	scores := &fakeScoreRepo{topErr: errors.New("store should not be hit")}
	svc := NewScoreService(scores, newFakeUserRepo(), board)

	entries, err := svc.Leaderboard(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Ada" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestLeaderboardFallsBackToStore(t *testing.T) {
	board := &fakeLeaderboard{getErr: errors.New("redis down")}
	scores := &fakeScoreRepo{top: []model.Score{
		{ID: primitive.NewObjectID(), Name: "Ada", Score: 10, Percentage: 100},
		{ID: primitive.NewObjectID(), Name: "Bob", Score: 7, Percentage: 70},
	}}
	svc := NewScoreService(scores, newFakeUserRepo(), board)

	entries, err := svc.Leaderboard(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("Leaderboard returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("ranks = %d, %d", entries[0].Rank, entries[1].Rank)
	}
	if entries[0].Name != "Ada" {
		t.Errorf("top entry = %+v", entries[0])
	}
}

func TestStats(t *testing.T) {
	user := &model.User{Name: "Ada", Email: "ada@example.com", QuizzesCompleted: 2, TotalScore: 15, AverageScore: 8}
	users := newFakeUserRepo(user)
	scores := &fakeScoreRepo{}
	svc := NewScoreService(scores, users, nil)

	for _, p := range []int{80, 70} {
		scores.scores = append(scores.scores, model.Score{
			ID:         primitive.NewObjectID(),
			UserID:     &user.ID,
			Percentage: p,
		})
	}

	stats, err := svc.Stats(context.Background(), user.ID.Hex())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.QuizzesCompleted != 2 || stats.TotalScore != 15 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.OverallPercentage != 75 {
		t.Errorf("overall percentage = %d, want 75", stats.OverallPercentage)
	}
}

func TestStatsUnknownUser(t *testing.T) {
	svc := NewScoreService(&fakeScoreRepo{}, newFakeUserRepo(), nil)
	_, err := svc.Stats(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

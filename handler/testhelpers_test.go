package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("isodate", utils.ValidateISODate)
	}
}

const testUserID = "user-123"

// testNow is a Thursday; the Monday-start week around it runs
// 2025-10-06 through 2025-10-12.
var testNow = time.Date(2025, 10, 9, 15, 4, 5, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// stubAuth injects the authenticated user the way the JWT middleware would.
func stubAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

type fakeFactSource struct {
	facts []*model.CompletionFact
	err   error
}

func (f *fakeFactSource) inRange(userID string, start, end time.Time) []*model.CompletionFact {
	var out []*model.CompletionFact
	for _, fc := range f.facts {
		if fc.UserID != userID || fc.CompletedAt.Before(start) || fc.CompletedAt.After(end) {
			continue
		}
		out = append(out, fc)
	}
	return out
}

func (f *fakeFactSource) FactsInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.CompletionFact, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.inRange(userID, start, end), nil
}

func (f *fakeFactSource) CountInRange(ctx context.Context, userID string, start, end time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.inRange(userID, start, end)), nil
}

func (f *fakeFactSource) DailyCounts(ctx context.Context, userID string, start, end time.Time) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[string]int)
	for _, fc := range f.inRange(userID, start, end) {
		counts[fc.CompletedAt.Format("2006-01-02")]++
	}
	return counts, nil
}

type fakeGroupDirectory struct{}

func (f *fakeGroupDirectory) GroupsByUser(ctx context.Context, userID string) (map[string]model.Group, error) {
	return map[string]model.Group{}, nil
}

func (f *fakeGroupDirectory) CountByUser(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

type fakeTaskDirectory struct {
	total, completed, overdue, highPriority int
}

func (f *fakeTaskDirectory) CountAll(ctx context.Context, userID string) (int, error) {
	return f.total, nil
}

func (f *fakeTaskDirectory) CountCompleted(ctx context.Context, userID string) (int, error) {
	return f.completed, nil
}

func (f *fakeTaskDirectory) CountOverdue(ctx context.Context, userID string, now time.Time) (int, error) {
	return f.overdue, nil
}

func (f *fakeTaskDirectory) CountHighPriorityPending(ctx context.Context, userID string) (int, error) {
	return f.highPriority, nil
}

type fakeSnapshotStore struct {
	snapshots map[string]*model.UserStatsSnapshot
	err       error
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{snapshots: make(map[string]*model.UserStatsSnapshot)}
}

func (f *fakeSnapshotStore) GetSnapshot(ctx context.Context, userID string) (*model.UserStatsSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	snapshot, ok := f.snapshots[userID]
	if !ok {
		return nil, nil
	}
	clone := *snapshot
	return &clone, nil
}

func (f *fakeSnapshotStore) UpsertSnapshot(ctx context.Context, snapshot *model.UserStatsSnapshot) error {
	if f.err != nil {
		return f.err
	}
	clone := *snapshot
	f.snapshots[snapshot.UserID] = &clone
	return nil
}

func (f *fakeSnapshotStore) AllSnapshots(ctx context.Context) ([]*model.UserStatsSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.UserStatsSnapshot
	for _, snapshot := range f.snapshots {
		clone := *snapshot
		out = append(out, &clone)
	}
	return out, nil
}

// testEnv bundles the analytics plumbing over in-memory fakes.
type testEnv struct {
	source *fakeFactSource
	tasks  *fakeTaskDirectory
	store  *fakeSnapshotStore

	resolver     *usecase.WeekResolver
	agg          *usecase.Aggregator
	streaks      *usecase.StreakCalculator
	trends       *usecase.TrendAnalyzer
	insights     *usecase.RecommendationEngine
	materializer *usecase.Materializer
	leaderboard  *usecase.LeaderboardService
	scoreCfg     usecase.ScoreConfig
}

func newTestEnv(facts ...*model.CompletionFact) *testEnv {
	clock := fixedClock{now: testNow}
	source := &fakeFactSource{facts: facts}
	tasks := &fakeTaskDirectory{}
	groups := &fakeGroupDirectory{}
	store := newFakeSnapshotStore()

	resolver := usecase.NewWeekResolver(clock, usecase.DefaultWeekConfig())
	agg := usecase.NewAggregator(source, groups)
	streaks := usecase.NewStreakCalculator(source, clock, usecase.DefaultStreakConfig())
	scoreCfg := usecase.DefaultScoreConfig()

	return &testEnv{
		source:       source,
		tasks:        tasks,
		store:        store,
		resolver:     resolver,
		agg:          agg,
		streaks:      streaks,
		trends:       usecase.NewTrendAnalyzer(resolver, source),
		insights:     usecase.NewRecommendationEngine(resolver, agg, source, store),
		materializer: usecase.NewMaterializer(clock, source, tasks, groups, store, resolver, streaks, usecase.NewScorer(scoreCfg)),
		leaderboard:  usecase.NewLeaderboardService(store),
		scoreCfg:     scoreCfg,
	}
}

func (env *testEnv) reviewHandler() *ReviewHandler {
	return NewReviewHandler(env.resolver, env.agg, env.trends, env.insights, env.streaks, env.store, env.scoreCfg)
}

func completionAt(at time.Time, priority model.Priority) *model.CompletionFact {
	return &model.CompletionFact{
		TaskID:      "task-" + at.Format("20060102T150405"),
		UserID:      testUserID,
		Priority:    priority,
		CompletedAt: at,
	}
}

// envelope mirrors the response wrapper with raw data for per-test decoding.
type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Errors  []utils.FieldError `json:"errors"`
}

func doRequest(t *testing.T, router *gin.Engine, method, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode response envelope: %v\nbody: %s", err, w.Body.String())
	}
	return w, env
}

func newRouter(userID string, register func(*gin.RouterGroup)) *gin.Engine {
	router := gin.New()
	api := router.Group("/api")
	api.Use(stubAuth(userID))
	register(api)
	return router
}

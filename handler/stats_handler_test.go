package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"main/model"

	"github.com/gin-gonic/gin"
)

func statsRouter(env *testEnv, userID string) *gin.Engine {
	h := NewStatsHandler(env.store, env.materializer, nil)
	return newRouter(userID, func(api *gin.RouterGroup) {
		api.GET("/stats", h.GetUserStats)
		api.POST("/stats/update", h.UpdateUserStats)
	})
}

type statsPayload struct {
	Stats *model.UserStatsSnapshot `json:"stats"`
}

func TestGetUserStatsMaterializesOnFirstRequest(t *testing.T) {
	env := newTestEnv(
		completionAt(time.Date(2025, 10, 9, 9, 0, 0, 0, time.UTC), model.PriorityHigh),
	)
	env.tasks.total = 5
	env.tasks.completed = 2
	router := statsRouter(env, testUserID)

	w, body := doRequest(t, router, http.MethodGet, "/api/stats")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var payload statsPayload
	if err := json.Unmarshal(body.Data, &payload); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if payload.Stats == nil {
		t.Fatal("Expected a materialized snapshot")
	}
	if payload.Stats.TotalTasks != 5 || payload.Stats.CompletedTasks != 2 {
		t.Errorf("Unexpected task counts: %+v", payload.Stats)
	}
	if payload.Stats.WeeklyCompleted != 1 {
		t.Errorf("Expected 1 weekly completion, got %d", payload.Stats.WeeklyCompleted)
	}

	// The snapshot must now be persisted for subsequent reads.
	if env.store.snapshots[testUserID] == nil {
		t.Error("Expected the first request to persist a snapshot")
	}
}

func TestGetUserStatsReturnsExistingSnapshot(t *testing.T) {
	env := newTestEnv()
	env.store.snapshots[testUserID] = &model.UserStatsSnapshot{
		UserID:            testUserID,
		ProductivityScore: 77.5,
	}
	router := statsRouter(env, testUserID)

	w, body := doRequest(t, router, http.MethodGet, "/api/stats")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var payload statsPayload
	if err := json.Unmarshal(body.Data, &payload); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if payload.Stats.ProductivityScore != 77.5 {
		t.Errorf("Expected the stored snapshot, got %+v", payload.Stats)
	}
}

func TestUpdateUserStatsRecomputes(t *testing.T) {
	env := newTestEnv(
		completionAt(time.Date(2025, 10, 9, 9, 0, 0, 0, time.UTC), model.PriorityHigh),
	)
	env.store.snapshots[testUserID] = &model.UserStatsSnapshot{
		UserID:            testUserID,
		ProductivityScore: 1.0, // stale
	}
	router := statsRouter(env, testUserID)

	w, body := doRequest(t, router, http.MethodPost, "/api/stats/update")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body.Message != "Stats updated" {
		t.Errorf("Expected update confirmation, got %q", body.Message)
	}
	var payload statsPayload
	if err := json.Unmarshal(body.Data, &payload); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if payload.Stats.ProductivityScore == 1.0 {
		t.Error("Expected the stale score to be recomputed")
	}
	if !payload.Stats.LastUpdated.Equal(testNow) {
		t.Errorf("Expected LastUpdated %v, got %v", testNow, payload.Stats.LastUpdated)
	}
}

func TestUpdateUserStatsUnauthorized(t *testing.T) {
	router := statsRouter(newTestEnv(), "")

	w, _ := doRequest(t, router, http.MethodPost, "/api/stats/update")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", w.Code)
	}
}

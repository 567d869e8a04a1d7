package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/prediction-league/models"
)

type stubGamificationService struct {
	result *models.GamificationResult
	badges []models.BadgeResult
	stats  *models.UserStats
	err    error
}

func (s *stubGamificationService) GetGamificationData(ctx context.Context, userID int) (*models.GamificationResult, error) {
	return s.result, s.err
}

func (s *stubGamificationService) GetBadges(ctx context.Context, userID int) ([]models.BadgeResult, error) {
	return s.badges, s.err
}

func (s *stubGamificationService) GetUserStats(ctx context.Context, userID int) (*models.UserStats, error) {
	return s.stats, s.err
}

func newGamificationRouter(svc *stubGamificationService) *chi.Mux {
	h := NewGamificationHandler(svc)
	router := chi.NewRouter()
	router.Get("/users/{id}/gamification", h.GetGamificationData)
	router.Get("/users/{id}/badges", h.GetBadges)
	return router
}

func TestGetGamificationData_ResponseShape(t *testing.T) {
	svc := &stubGamificationService{
		result: &models.GamificationResult{
			PowerScore:   50,
			RankTier:     models.TierGold,
			RankProgress: 0,
			Skills:       models.SkillRadar{Accuracy: 60, Consistency: 70, Volume: 25, ExactScore: 20, Timing: 10},
			Streak: models.StreakInfo{
				Current:     4,
				Best:        3,
				LastResults: []models.PredictionResult{models.ResultHit, models.ResultMiss},
			},
			SeasonComparison: models.SeasonComparison{
				CurrentSeason: models.SeasonSummary{Name: "2024/25", Accuracy: 60, ExactScores: 6, TotalPredictions: 30, Points: 24},
			},
		},
	}
	router := newGamificationRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users/7/gamification", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	for _, field := range []string{"powerScore", "rankTier", "rankProgress", "skills", "streak", "seasonComparison"} {
		if _, ok := body[field]; !ok {
			t.Errorf("response missing %q field", field)
		}
	}

	// previousSeason must serialize as an explicit null, not be omitted.
	var comparison map[string]json.RawMessage
	if err := json.Unmarshal(body["seasonComparison"], &comparison); err != nil {
		t.Fatalf("seasonComparison is not an object: %v", err)
	}
	raw, ok := comparison["previousSeason"]
	if !ok {
		t.Fatal("seasonComparison missing previousSeason key")
	}
	if string(raw) != "null" {
		t.Errorf("previousSeason = %s, want null", raw)
	}
}

func TestGetGamificationData_InvalidUserID(t *testing.T) {
	router := newGamificationRouter(&stubGamificationService{})

	req := httptest.NewRequest(http.MethodGet, "/users/abc/gamification", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetBadges_Envelope(t *testing.T) {
	svc := &stubGamificationService{
		badges: []models.BadgeResult{
			{ID: "sharpshooter", Name: "Sharpshooter", Earned: true, Progress: 100},
		},
	}
	router := newGamificationRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users/7/badges", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Badges []models.BadgeResult `json:"badges"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(body.Badges) != 1 || body.Badges[0].ID != "sharpshooter" {
		t.Errorf("badges = %+v, want single sharpshooter entry", body.Badges)
	}
}

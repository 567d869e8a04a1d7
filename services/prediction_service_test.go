package services

import (
	"testing"

	"github.com/Dosada05/prediction-league/models"
)

func TestScorePrediction(t *testing.T) {
	tests := []struct {
		name           string
		predHome       int
		predAway       int
		homeScore      int
		awayScore      int
		wantPoints     int
		wantWonExact   bool
		wantWonOutcome bool
	}{
		{"exact scoreline", 2, 1, 2, 1, 3, true, false},
		{"exact draw", 1, 1, 1, 1, 3, true, false},
		{"right winner wrong score", 3, 0, 1, 0, 1, false, true},
		{"right draw wrong score", 0, 0, 2, 2, 1, false, true},
		{"wrong winner", 0, 2, 2, 0, 0, false, false},
		{"predicted draw got winner", 1, 1, 2, 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Prediction{HomeGoals: tt.predHome, AwayGoals: tt.predAway}
			points, wonExact, wonOutcome := scorePrediction(p, tt.homeScore, tt.awayScore)
			if points != tt.wantPoints {
				t.Errorf("points = %d, want %d", points, tt.wantPoints)
			}
			if wonExact != tt.wantWonExact {
				t.Errorf("wonExact = %v, want %v", wonExact, tt.wantWonExact)
			}
			if wonOutcome != tt.wantWonOutcome {
				t.Errorf("wonOutcome = %v, want %v", wonOutcome, tt.wantWonOutcome)
			}
		})
	}
}

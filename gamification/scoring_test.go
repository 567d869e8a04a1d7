package gamification

import (
	"testing"

	"github.com/Dosada05/prediction-league/models"
)

func TestAccuracy_NoSettledPredictions(t *testing.T) {
	if got := Accuracy(0, 0, 0); got != 0 {
		t.Errorf("accuracy with zero settled = %d, want 0", got)
	}
}

func TestAccuracy_Rounds(t *testing.T) {
	// 30 of 50 correct.
	if got := Accuracy(10, 20, 50); got != 60 {
		t.Errorf("accuracy = %d, want 60", got)
	}
}

func TestExactScoreRate_NoSettledPredictions(t *testing.T) {
	if got := ExactScoreRate(0, 0); got != 0 {
		t.Errorf("exact score rate with zero settled = %v, want 0", got)
	}
}

func TestPowerScore_WeightedBlend(t *testing.T) {
	// 21 + 5 + 7.5 + 4 + 12 = 49.5, rounds up to 50.
	cfg := DefaultConfig()
	bestRank := 2
	got := cfg.PowerScore(PowerScoreInputs{
		Accuracy:       60,
		ExactScoreRate: 0.2,
		SettledCount:   50,
		CurrentStreak:  4,
		BestRank:       &bestRank,
	})
	if got != 50 {
		t.Errorf("power score = %d, want 50", got)
	}

	tier, _ := cfg.TierFor(got)
	if tier != models.TierGold {
		t.Errorf("tier for 50 = %s, want gold", tier)
	}
}

func TestPowerScore_ComponentsSaturate(t *testing.T) {
	cfg := DefaultConfig()
	bestRank := 1
	got := cfg.PowerScore(PowerScoreInputs{
		Accuracy:       100,
		ExactScoreRate: 2.0, // over-saturated rate must cap at 100
		SettledCount:   5000,
		CurrentStreak:  40,
		BestRank:       &bestRank,
	})
	if got != 100 {
		t.Errorf("fully saturated power score = %d, want 100", got)
	}
}

func TestPowerScore_NoData(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.PowerScore(PowerScoreInputs{}); got != 0 {
		t.Errorf("power score with no inputs = %d, want 0", got)
	}
}

func TestRankScore_Steps(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		rank int
		want float64
	}{
		{1, 100},
		{2, 80},
		{5, 20},
		{6, 0},
		{9, 0},
	}
	for _, c := range cases {
		rank := c.rank
		if got := cfg.RankScore(&rank); got != c.want {
			t.Errorf("rank score for rank %d = %v, want %v", c.rank, got, c.want)
		}
	}
	if got := cfg.RankScore(nil); got != 0 {
		t.Errorf("rank score for unknown rank = %v, want 0", got)
	}
}

func TestTierFor_Floors(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		score        int
		wantTier     models.RankTier
		wantProgress int
	}{
		{0, models.TierBronze, 0},
		{15, models.TierBronze, 50},
		{30, models.TierSilver, 0},
		{50, models.TierGold, 0},
		{60, models.TierGold, 50},
		{70, models.TierPlatinum, 0},
		{84, models.TierPlatinum, 93},
		{85, models.TierDiamond, 100}, // top tier saturates even at its floor
		{100, models.TierDiamond, 100},
	}
	for _, c := range cases {
		tier, progress := cfg.TierFor(c.score)
		if tier != c.wantTier || progress != c.wantProgress {
			t.Errorf("TierFor(%d) = %s/%d, want %s/%d", c.score, tier, progress, c.wantTier, c.wantProgress)
		}
	}
}

func TestRadar_ZeroSettled(t *testing.T) {
	cfg := DefaultConfig()
	radar := cfg.Radar(RadarInputs{})
	if radar.Timing != 0 || radar.Volume != 0 || radar.Accuracy != 0 || radar.ExactScore != 0 {
		t.Errorf("radar with no data has non-zero computed axes: %+v", radar)
	}
	if radar.Consistency != 70 {
		t.Errorf("consistency = %d, want 70 (placeholder variance)", radar.Consistency)
	}
}

func TestRadar_Axes(t *testing.T) {
	cfg := DefaultConfig()
	radar := cfg.Radar(RadarInputs{
		Accuracy:       60,
		ExactScoreRate: 0.2,
		SettledCount:   50,
		EarlyBirdCount: 10,
	})
	if radar.Accuracy != 60 {
		t.Errorf("accuracy axis = %d, want 60", radar.Accuracy)
	}
	if radar.Volume != 25 {
		t.Errorf("volume axis = %d, want 25 (50 of 200)", radar.Volume)
	}
	if radar.ExactScore != 20 {
		t.Errorf("exact score axis = %d, want 20", radar.ExactScore)
	}
	if radar.Timing != 20 {
		t.Errorf("timing axis = %d, want 20", radar.Timing)
	}
}

package gamification

import "testing"

func TestComputeMaxStreak_LongestRunInMiddle(t *testing.T) {
	got := ComputeMaxStreak([]int{1, 2, 0, 3, 4, 5, 0, 1})
	if got != 3 {
		t.Errorf("max streak = %d, want 3", got)
	}
}

func TestComputeMaxStreak_Empty(t *testing.T) {
	if got := ComputeMaxStreak(nil); got != 0 {
		t.Errorf("max streak of empty history = %d, want 0", got)
	}
}

func TestComputeMaxStreak_AllMisses(t *testing.T) {
	if got := ComputeMaxStreak([]int{0, 0, 0}); got != 0 {
		t.Errorf("max streak of all misses = %d, want 0", got)
	}
}

func TestComputeMaxStreak_UnbrokenRun(t *testing.T) {
	if got := ComputeMaxStreak([]int{1, 3, 1, 1}); got != 4 {
		t.Errorf("max streak = %d, want 4", got)
	}
}

func TestCurrentStreak_StopsAtFirstMiss(t *testing.T) {
	// Newest first: two hits, then a miss ends the run regardless of older hits.
	got := CurrentStreak([]int{2, 3, 0, 5, 1})
	if got != 2 {
		t.Errorf("current streak = %d, want 2", got)
	}
}

func TestCurrentStreak_LeadingMiss(t *testing.T) {
	if got := CurrentStreak([]int{0, 5, 3}); got != 0 {
		t.Errorf("current streak after fresh miss = %d, want 0", got)
	}
}

func TestCurrentStreak_Empty(t *testing.T) {
	if got := CurrentStreak(nil); got != 0 {
		t.Errorf("current streak of empty history = %d, want 0", got)
	}
}

func TestLastResults_CapsAndMaps(t *testing.T) {
	points := []int{3, 0, 1, 1, 0, 3, 1, 0, 1, 3, 1, 1}
	results := LastResults(points, 10)
	if len(results) != 10 {
		t.Fatalf("got %d results, want 10", len(results))
	}
	if results[0] != "hit" || results[1] != "miss" {
		t.Errorf("unexpected head: %v", results[:2])
	}
}

func TestLastResults_ShortHistory(t *testing.T) {
	results := LastResults([]int{0, 3}, 10)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0] != "miss" || results[1] != "hit" {
		t.Errorf("unexpected results: %v", results)
	}
}

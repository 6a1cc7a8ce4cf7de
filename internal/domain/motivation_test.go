package domain_test

import (
	"testing"

	"hydration/internal/domain"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		want       domain.Tier
	}{
		{"zero", 0, domain.TierLow},
		{"just below started", 29.9, domain.TierLow},
		{"at started", 30, domain.TierStarted},
		{"just below midway", 49.9, domain.TierStarted},
		{"at midway", 50, domain.TierMidway},
		{"just below near-goal", 79.9, domain.TierMidway},
		{"at near-goal", 80, domain.TierNearGoal},
		{"just below goal", 99.9, domain.TierNearGoal},
		{"at goal", 100, domain.TierGoalMet},
		{"at goal float", 100.0, domain.TierGoalMet},
		{"just above goal", 100.1, domain.TierExcess},
		{"at critical boundary", 150, domain.TierExcess},
		{"just above critical boundary", 150.1, domain.TierCriticalExcess},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tier, msg := domain.Classify(tc.percentage)
			if tier != tc.want {
				t.Errorf("Classify(%v) tier = %v; want %v", tc.percentage, tier, tc.want)
			}
			if msg == "" {
				t.Errorf("Classify(%v) returned empty message", tc.percentage)
			}
		})
	}
}

func TestMotivationMessageMatchesClassify(t *testing.T) {
	for _, p := range []float64{0, 45, 62.5, 100, 120, 200} {
		_, want := domain.Classify(p)
		if got := domain.MotivationMessage(p); got != want {
			t.Errorf("MotivationMessage(%v) = %q; want %q", p, got, want)
		}
	}
}

func TestNewDailyEntry(t *testing.T) {
	e := domain.NewDailyEntry("2026-03-07", 8, 5)
	if e.Percentage != 62.5 {
		t.Errorf("Percentage = %v; want 62.5", e.Percentage)
	}
	_, want := domain.Classify(62.5)
	if e.Motivation != want {
		t.Errorf("Motivation = %q; want %q", e.Motivation, want)
	}
	if e.Date != "2026-03-07" || e.Goal != 8 || e.GlassesDrunk != 5 {
		t.Errorf("unexpected entry: %+v", e)
	}
}

// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

import (
	"math"
	"testing"
)

func TestTierForCount(t *testing.T) {
	tests := []struct {
		count int
		want  UserTier
	}{
		{0, TierColdStart},
		{4, TierColdStart},
		{5, TierGrowing},
		{19, TierGrowing},
		{20, TierEstablished},
		{500, TierEstablished},
	}
	for _, tt := range tests {
		if got := TierForCount(tt.count); got != tt.want {
			t.Errorf("TierForCount(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestWeightsForTierSumToOne(t *testing.T) {
	for _, tier := range []UserTier{TierColdStart, TierGrowing, TierEstablished} {
		w := WeightsForTier(tier)
		if math.Abs(w.Content+w.Collab-1.0) > floatTolerance {
			t.Errorf("tier %v weights sum to %f, want 1.0", tier, w.Content+w.Collab)
		}
	}
}

func TestWeightsForTierContentLeansColdStart(t *testing.T) {
	cold := WeightsForTier(TierColdStart)
	established := WeightsForTier(TierEstablished)
	if cold.Content <= established.Content {
		t.Errorf("cold-start content weight %f should exceed established %f",
			cold.Content, established.Content)
	}
}

func TestTierString(t *testing.T) {
	tests := []struct {
		tier UserTier
		want string
	}{
		{TierColdStart, "cold_start"},
		{TierGrowing, "growing"},
		{TierEstablished, "established"},
		{UserTier(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Errorf("UserTier(%d).String() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}

func TestWeightExplanationNonEmpty(t *testing.T) {
	for _, tier := range []UserTier{TierColdStart, TierGrowing, TierEstablished} {
		if WeightExplanation(tier) == "" {
			t.Errorf("tier %v has no explanation text", tier)
		}
	}
}

// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

// UserTier buckets users by rating history depth. Sparse histories lean on
// the content model; deep histories lean on collaborative filtering.
type UserTier int

const (
	// TierColdStart covers users with fewer than 5 ratings.
	TierColdStart UserTier = iota
	// TierGrowing covers users with 5 to 19 ratings.
	TierGrowing
	// TierEstablished covers users with 20 or more ratings.
	TierEstablished
)

// String returns the tier name for logging and API output.
func (t UserTier) String() string {
	switch t {
	case TierColdStart:
		return "cold_start"
	case TierGrowing:
		return "growing"
	case TierEstablished:
		return "established"
	default:
		return "unknown"
	}
}

// Weights holds the blend coefficients for the two models. Content and
// Collab always sum to 1.
type Weights struct {
	Content float64 `json:"content"`
	Collab  float64 `json:"collaborative"`
}

// TierForCount maps a user's rating count to their tier.
func TierForCount(ratingCount int) UserTier {
	switch {
	case ratingCount < 5:
		return TierColdStart
	case ratingCount < 20:
		return TierGrowing
	default:
		return TierEstablished
	}
}

// WeightsForTier returns the blend weights used for a tier when dynamic
// weighting is enabled.
func WeightsForTier(tier UserTier) Weights {
	switch tier {
	case TierColdStart:
		return Weights{Content: 0.8, Collab: 0.2}
	case TierGrowing:
		return Weights{Content: 0.6, Collab: 0.4}
	default:
		return Weights{Content: 0.4, Collab: 0.6}
	}
}

// WeightExplanation returns a short user-facing reason for the chosen
// weights.
func WeightExplanation(tier UserTier) string {
	switch tier {
	case TierColdStart:
		return "few ratings on record, favoring genre similarity"
	case TierGrowing:
		return "growing rating history, balanced blend"
	default:
		return "established rating history, favoring similar users"
	}
}

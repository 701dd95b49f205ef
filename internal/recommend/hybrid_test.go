// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

import (
	"math"
	"reflect"
	"testing"
)

// hybridFixture builds a blender over a five-movie catalog where user 1 has
// rated two movies and three users supply collaborative signal.
func hybridFixture(cfg Config) *HybridModel {
	movies := []Movie{
		{MovieID: 1, Title: "A", Genres: "Action"},
		{MovieID: 2, Title: "B", Genres: "Action"},
		{MovieID: 3, Title: "C", Genres: "Comedy"},
		{MovieID: 4, Title: "D", Genres: "Action|Comedy"},
		{MovieID: 5, Title: "E", Genres: "Drama"},
	}
	ratings := []Rating{
		{UserID: 1, MovieID: 1, Rating: 5},
		{UserID: 1, MovieID: 3, Rating: 2},
		{UserID: 2, MovieID: 1, Rating: 5},
		{UserID: 2, MovieID: 2, Rating: 4},
		{UserID: 2, MovieID: 4, Rating: 4},
		{UserID: 2, MovieID: 5, Rating: 3},
		{UserID: 3, MovieID: 1, Rating: 4},
		{UserID: 3, MovieID: 2, Rating: 5},
		{UserID: 3, MovieID: 5, Rating: 2},
	}
	content := NewContentModel(movies)
	collab := NewCollaborativeModel(ratings, movies, cfg.Neighbors)
	return NewHybridModel(content, collab, cfg)
}

func TestHybridNoDuplicatesAndBounded(t *testing.T) {
	model := hybridFixture(DefaultConfig())

	result := model.Recommend(1, "A", 5)
	if len(result.Items) > 5 {
		t.Errorf("got %d items, want at most 5", len(result.Items))
	}
	seen := make(map[int]bool)
	for _, item := range result.Items {
		if seen[item.MovieID] {
			t.Errorf("duplicate movie ID %d in hybrid output", item.MovieID)
		}
		seen[item.MovieID] = true
	}
}

func TestHybridIdempotent(t *testing.T) {
	model := hybridFixture(DefaultConfig())

	first := model.Recommend(1, "A", 5)
	second := model.Recommend(1, "A", 5)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different output")
	}
}

func TestHybridScoresNonIncreasing(t *testing.T) {
	model := hybridFixture(DefaultConfig())

	result := model.Recommend(1, "A", 5)
	for i := 1; i < len(result.Items); i++ {
		if result.Items[i].HybridScore > result.Items[i-1].HybridScore+floatTolerance {
			t.Errorf("hybrid score increased at rank %d: %f > %f",
				i, result.Items[i].HybridScore, result.Items[i-1].HybridScore)
		}
	}
}

func TestHybridDenseRanks(t *testing.T) {
	model := hybridFixture(DefaultConfig())

	result := model.Recommend(1, "A", 5)
	for i, item := range result.Items {
		if item.Rank != i {
			t.Errorf("item %d has rank %d, want dense 0-based ranks", i, item.Rank)
		}
	}
}

func TestHybridRankDecayScoring(t *testing.T) {
	model := hybridFixture(DefaultConfig())

	result := model.Recommend(1, "A", 5)
	if result.ContentOutcome != OutcomeOK {
		t.Fatalf("content outcome = %v, want %v", result.ContentOutcome, OutcomeOK)
	}

	// The top content row ("B", identical genre) enters with content_score
	// (5-0)/5 = 1.0 regardless of its raw cosine similarity.
	var found bool
	for _, item := range result.Items {
		if item.Title == "B" && item.ContentScore > 0 {
			found = true
			if math.Abs(item.ContentScore-1.0) > floatTolerance {
				t.Errorf("top content row score = %f, want 1.0", item.ContentScore)
			}
		}
	}
	if !found {
		t.Errorf("top content recommendation missing from hybrid output")
	}
}

func TestHybridFixedWeights(t *testing.T) {
	cfg := DefaultConfig()
	model := hybridFixture(cfg)

	result := model.Recommend(1, "A", 5)
	if result.Weights.Content != 0.6 || result.Weights.Collab != 0.4 {
		t.Errorf("weights = %+v, want fixed 0.6/0.4", result.Weights)
	}
	for _, item := range result.Items {
		want := 0.6*item.ContentScore + 0.4*item.CollabScore
		if math.Abs(item.HybridScore-want) > floatTolerance {
			t.Errorf("movie %d hybrid score = %f, want %f", item.MovieID, item.HybridScore, want)
		}
	}
}

func TestHybridDynamicWeightsByTier(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DynamicWeights = true
	model := hybridFixture(cfg)

	// User 1 has 2 ratings, below the cold-start threshold.
	result := model.Recommend(1, "A", 5)
	if result.Tier != TierColdStart {
		t.Errorf("tier = %v, want %v", result.Tier, TierColdStart)
	}
	if result.Weights.Content != 0.8 || result.Weights.Collab != 0.2 {
		t.Errorf("cold-start weights = %+v, want 0.8/0.2", result.Weights)
	}
}

func TestHybridWithoutReferenceMovie(t *testing.T) {
	model := hybridFixture(DefaultConfig())

	result := model.Recommend(1, "", 5)
	if result.ContentOutcome != OutcomeOK {
		t.Errorf("content outcome = %v, want %v when no reference given", result.ContentOutcome, OutcomeOK)
	}
	for _, item := range result.Items {
		if item.Source != SourceCollaborative {
			t.Errorf("movie %d source = %v, want collaborative-only output", item.MovieID, item.Source)
		}
		if item.ContentScore != 0 {
			t.Errorf("movie %d has content score %f without a reference movie", item.MovieID, item.ContentScore)
		}
	}
}

func TestHybridUnknownTitleDegrades(t *testing.T) {
	model := hybridFixture(DefaultConfig())

	result := model.Recommend(1, "Nonexistent", 5)
	if result.ContentOutcome != OutcomeTitleNotFound {
		t.Errorf("content outcome = %v, want %v", result.ContentOutcome, OutcomeTitleNotFound)
	}
	if result.CollabOutcome != OutcomeOK {
		t.Errorf("collaborative outcome = %v, want %v", result.CollabOutcome, OutcomeOK)
	}
	if len(result.Items) == 0 {
		t.Errorf("collaborative side should still produce items")
	}
}

func TestHybridUnknownUserDegrades(t *testing.T) {
	model := hybridFixture(DefaultConfig())

	result := model.Recommend(999, "A", 5)
	if result.CollabOutcome != OutcomeUserNotFound {
		t.Errorf("collaborative outcome = %v, want %v", result.CollabOutcome, OutcomeUserNotFound)
	}
	if len(result.Items) == 0 {
		t.Errorf("content side should still produce items")
	}
	for _, item := range result.Items {
		if item.Source != SourceContent {
			t.Errorf("movie %d source = %v, want content-only output", item.MovieID, item.Source)
		}
	}
}

func TestHybridBothSourcesEmpty(t *testing.T) {
	model := hybridFixture(DefaultConfig())

	result := model.Recommend(999, "Nonexistent", 5)
	if len(result.Items) != 0 {
		t.Errorf("got %d items with both sources empty, want 0", len(result.Items))
	}
	if result.ContentOutcome != OutcomeTitleNotFound {
		t.Errorf("content outcome = %v, want %v", result.ContentOutcome, OutcomeTitleNotFound)
	}
	if result.CollabOutcome != OutcomeUserNotFound {
		t.Errorf("collaborative outcome = %v, want %v", result.CollabOutcome, OutcomeUserNotFound)
	}
}

func TestHybridFewerCandidatesThanTopN(t *testing.T) {
	movies := []Movie{
		{MovieID: 1, Title: "A", Genres: "Action"},
		{MovieID: 2, Title: "B", Genres: "Action"},
		{MovieID: 3, Title: "C", Genres: "Comedy"},
	}
	ratings := []Rating{
		{UserID: 1, MovieID: 1, Rating: 5},
		{UserID: 2, MovieID: 1, Rating: 5},
		{UserID: 2, MovieID: 2, Rating: 4},
	}
	cfg := DefaultConfig()
	content := NewContentModel(movies)
	collab := NewCollaborativeModel(ratings, movies, cfg.Neighbors)
	model := NewHybridModel(content, collab, cfg)

	result := model.Recommend(1, "A", 5)
	if len(result.Items) != 2 {
		t.Errorf("got %d items, want exactly 2 unique candidates, never padded", len(result.Items))
	}
}

func TestHybridContentFirstOnTies(t *testing.T) {
	// Equal weights make the top row of each source carry the same hybrid
	// score, so the sort must resolve a genuine cross-source tie.
	movies := []Movie{
		{MovieID: 1, Title: "A", Genres: "Action"},
		{MovieID: 2, Title: "B", Genres: "Action"},
		{MovieID: 3, Title: "C", Genres: "Comedy"},
		{MovieID: 4, Title: "D", Genres: "Comedy"},
	}
	ratings := []Rating{
		{UserID: 1, MovieID: 1, Rating: 5},
		{UserID: 2, MovieID: 1, Rating: 5},
		{UserID: 2, MovieID: 3, Rating: 4},
		{UserID: 2, MovieID: 4, Rating: 3},
	}
	cfg := DefaultConfig()
	cfg.ContentWeight = 0.5
	cfg.CollabWeight = 0.5
	content := NewContentModel(movies)
	collab := NewCollaborativeModel(ratings, movies, cfg.Neighbors)
	model := NewHybridModel(content, collab, cfg)

	// Content's top row for "A" is B; collaborative's top row for user 1 is
	// C. Both get decay 1.0, so their hybrid scores are equal.
	result := model.Recommend(1, "A", 2)
	if len(result.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(result.Items))
	}
	if result.Items[0].HybridScore != result.Items[1].HybridScore {
		t.Fatalf("scores %v and %v are not tied; fixture no longer exercises a tie",
			result.Items[0].HybridScore, result.Items[1].HybridScore)
	}
	if result.Items[0].Title != "B" || result.Items[0].Source != SourceContent {
		t.Errorf("tied winner = %q from %q, want content row %q",
			result.Items[0].Title, result.Items[0].Source, "B")
	}
	if result.Items[1].Title != "C" || result.Items[1].Source != SourceCollaborative {
		t.Errorf("tied runner-up = %q from %q, want collaborative row %q",
			result.Items[1].Title, result.Items[1].Source, "C")
	}
}

func TestHybridContentOrderWithoutCollabSignal(t *testing.T) {
	model := hybridFixture(DefaultConfig())

	// Request without a user so every collaborative score is zero and the
	// content ordering alone decides the list.
	result := model.Recommend(999, "A", 3)
	if len(result.Items) == 0 {
		t.Fatalf("expected content-only items")
	}
	if result.Items[0].Title != "B" {
		t.Errorf("first item = %q, want the strongest content match %q", result.Items[0].Title, "B")
	}
}

func TestHybridReasonPerSource(t *testing.T) {
	model := hybridFixture(DefaultConfig())

	result := model.Recommend(1, "A", 5)
	if len(result.Items) == 0 {
		t.Fatalf("expected items")
	}
	for _, item := range result.Items {
		switch item.Source {
		case SourceContent:
			if item.Reason != "shares genres with A" {
				t.Errorf("content reason = %q", item.Reason)
			}
		case SourceCollaborative:
			if item.Reason != "rated highly by users with similar taste" {
				t.Errorf("collaborative reason = %q", item.Reason)
			}
		default:
			t.Errorf("unexpected source %q", item.Source)
		}
	}
}

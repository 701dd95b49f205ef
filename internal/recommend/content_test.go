// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func testMovies() []Movie {
	return []Movie{
		{MovieID: 1, Title: "A", Genres: "Action"},
		{MovieID: 2, Title: "B", Genres: "Action"},
		{MovieID: 3, Title: "C", Genres: "Comedy"},
	}
}

func TestContentModelSelfSimilarity(t *testing.T) {
	model := NewContentModel(testMovies())

	for _, title := range []string{"A", "B", "C"} {
		if got := model.Similarity(title, title); math.Abs(got-1.0) > floatTolerance {
			t.Errorf("Similarity(%q, %q) = %f, want 1.0", title, title, got)
		}
	}
}

func TestContentModelSymmetry(t *testing.T) {
	model := NewContentModel(testMovies())

	titles := []string{"A", "B", "C"}
	for _, a := range titles {
		for _, b := range titles {
			ab := model.Similarity(a, b)
			ba := model.Similarity(b, a)
			if math.Abs(ab-ba) > floatTolerance {
				t.Errorf("Similarity(%q, %q) = %f but Similarity(%q, %q) = %f", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestContentModelSharedGenreRanksFirst(t *testing.T) {
	model := NewContentModel(testMovies())

	recs, outcome := model.Recommend("A", 2)
	if outcome != OutcomeOK {
		t.Fatalf("outcome = %v, want %v", outcome, OutcomeOK)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].Title != "B" {
		t.Errorf("first recommendation = %q, want %q (shares the Action tag)", recs[0].Title, "B")
	}
	if recs[1].Title != "C" {
		t.Errorf("second recommendation = %q, want %q", recs[1].Title, "C")
	}
	if recs[0].Similarity < recs[1].Similarity {
		t.Errorf("similarities not non-increasing: %f then %f", recs[0].Similarity, recs[1].Similarity)
	}
}

func TestContentModelExcludesSelf(t *testing.T) {
	model := NewContentModel(testMovies())

	recs, _ := model.Recommend("A", 10)
	for _, rec := range recs {
		if rec.Title == "A" {
			t.Errorf("recommendation list includes the reference movie itself")
		}
	}
	if len(recs) != 2 {
		t.Errorf("got %d recommendations, want min(n, movieCount-1) = 2", len(recs))
	}
}

func TestContentModelUnknownTitle(t *testing.T) {
	model := NewContentModel(testMovies())

	recs, outcome := model.Recommend("Nonexistent", 5)
	if outcome != OutcomeTitleNotFound {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeTitleNotFound)
	}
	if len(recs) != 0 {
		t.Errorf("got %d recommendations for unknown title, want 0", len(recs))
	}
}

func TestContentModelSimilarityAbsentTitle(t *testing.T) {
	model := NewContentModel(testMovies())

	tests := []struct {
		name   string
		a, b   string
		want   float64
		within float64
	}{
		{"both absent", "X", "Y", 0.0, floatTolerance},
		{"first absent", "X", "A", 0.0, floatTolerance},
		{"second absent", "A", "Y", 0.0, floatTolerance},
		{"disjoint genres", "A", "C", 0.0, floatTolerance},
		{"identical genres", "A", "B", 1.0, floatTolerance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.Similarity(tt.a, tt.b); math.Abs(got-tt.want) > tt.within {
				t.Errorf("Similarity(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestContentModelDuplicateTitleFirstWins(t *testing.T) {
	movies := []Movie{
		{MovieID: 1, Title: "Solaris", Genres: "Sci-Fi|Drama"},
		{MovieID: 2, Title: "Solaris", Genres: "Comedy"},
		{MovieID: 3, Title: "Stalker", Genres: "Sci-Fi|Drama"},
	}
	model := NewContentModel(movies)

	// The 1972 row loads first, so the lookup must resolve to it.
	if got := model.Similarity("Solaris", "Stalker"); math.Abs(got-1.0) > floatTolerance {
		t.Errorf("Similarity resolved to the wrong duplicate row: got %f, want 1.0", got)
	}
}

func TestContentModelMultiTagGenres(t *testing.T) {
	movies := []Movie{
		{MovieID: 1, Title: "A", Genres: "Action|Sci-Fi"},
		{MovieID: 2, Title: "B", Genres: "Action|Sci-Fi"},
		{MovieID: 3, Title: "C", Genres: "Action|Comedy"},
		{MovieID: 4, Title: "D", Genres: "Documentary"},
	}
	model := NewContentModel(movies)

	recs, outcome := model.Recommend("A", 3)
	if outcome != OutcomeOK {
		t.Fatalf("outcome = %v, want %v", outcome, OutcomeOK)
	}
	if recs[0].Title != "B" {
		t.Errorf("first = %q, want %q (identical tag set)", recs[0].Title, "B")
	}
	if recs[1].Title != "C" {
		t.Errorf("second = %q, want %q (shares one tag)", recs[1].Title, "C")
	}
	if recs[2].Title != "D" {
		t.Errorf("third = %q, want %q (disjoint tags)", recs[2].Title, "D")
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Similarity > recs[i-1].Similarity+floatTolerance {
			t.Errorf("similarity increased at rank %d: %f > %f", i, recs[i].Similarity, recs[i-1].Similarity)
		}
	}
}

func TestContentModelNoGenresListed(t *testing.T) {
	movies := []Movie{
		{MovieID: 1, Title: "A", Genres: "Action"},
		{MovieID: 2, Title: "B", Genres: "(no genres listed)"},
		{MovieID: 3, Title: "C", Genres: "(no genres listed)"},
	}
	model := NewContentModel(movies)

	if got := model.Similarity("B", "B"); math.Abs(got-1.0) > floatTolerance {
		t.Errorf("self similarity of untagged movie = %f, want 1.0", got)
	}
	if got := model.Similarity("A", "B"); math.Abs(got) > 0.5 {
		t.Errorf("Similarity(A, B) = %f, want near 0 for disjoint vocabularies", got)
	}
}

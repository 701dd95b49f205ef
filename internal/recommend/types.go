// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

import (
	"strings"
)

// Movie is one row of the movie table. Immutable after load.
type Movie struct {
	// MovieID is the unique movie identifier.
	MovieID int `json:"movie_id"`

	// Title is the display title, e.g. "Toy Story (1995)".
	Title string `json:"title"`

	// Genres is the raw genre string, pipe-delimited on input
	// ("Adventure|Animation|Children").
	Genres string `json:"genres"`
}

// GenreTokens returns the normalized genre terms used for feature
// extraction: the pipe delimiter is replaced with whitespace, then lowercase
// alphanumeric runs of at least two characters are extracted.
func (m Movie) GenreTokens() []string {
	return tokenize(strings.ReplaceAll(m.Genres, "|", " "))
}

// Rating is one row of the rating table. Immutable after load.
type Rating struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Rating  float64 `json:"rating"`
}

// Tag is one row of the tag table. Loaded for completeness; the core does
// not consume tags.
type Tag struct {
	UserID  int    `json:"user_id"`
	MovieID int    `json:"movie_id"`
	Tag     string `json:"tag"`
}

// Source identifies which model produced a recommendation row.
type Source string

const (
	// SourceContent marks rows from the content similarity model.
	SourceContent Source = "content"

	// SourceCollaborative marks rows from the collaborative model.
	SourceCollaborative Source = "collaborative"
)

// Outcome classifies the result of a recommendation operation. Expected
// misses are reported here instead of through errors so callers can
// distinguish "empty because not found" from "empty because nothing
// qualified".
type Outcome int

const (
	// OutcomeOK means the operation completed normally; the result list
	// may still be empty when nothing qualified and no lookup failed.
	OutcomeOK Outcome = iota

	// OutcomeTitleNotFound means the reference movie title is not in the
	// movie table.
	OutcomeTitleNotFound

	// OutcomeUserNotFound means the user ID has no row in the user-movie
	// matrix.
	OutcomeUserNotFound

	// OutcomeNoCandidates means the lookup succeeded but no movie
	// qualified, including the degenerate case where the neighbor
	// similarity weight sum is zero.
	OutcomeNoCandidates
)

// String returns the wire name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeTitleNotFound:
		return "title_not_found"
	case OutcomeUserNotFound:
		return "user_not_found"
	case OutcomeNoCandidates:
		return "no_candidates"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the outcome as its string name.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.String() + `"`), nil
}

// ContentRecommendation is one row of a content model result.
type ContentRecommendation struct {
	MovieID    int     `json:"movie_id"`
	Title      string  `json:"title"`
	Genres     string  `json:"genres"`
	Similarity float64 `json:"similarity_score"`
}

// CollaborativeRecommendation is one row of a collaborative model result.
type CollaborativeRecommendation struct {
	MovieID         int     `json:"movie_id"`
	Title           string  `json:"title"`
	Genres          string  `json:"genres"`
	PredictedRating float64 `json:"predicted_rating"`
}

// Recommendation is one row of a hybrid result. Created fresh per request,
// never persisted.
type Recommendation struct {
	// Rank is the dense 0-based position in the final list.
	Rank int `json:"rank"`

	MovieID int    `json:"movie_id"`
	Title   string `json:"title"`
	Genres  string `json:"genres"`

	// ContentScore and CollabScore are linear rank-decay scores in (0,1],
	// not the underlying similarity or predicted-rating magnitudes.
	ContentScore float64 `json:"content_score"`
	CollabScore  float64 `json:"collab_score"`

	// HybridScore is the weighted combination of the two scores.
	HybridScore float64 `json:"hybrid_score"`

	// Source is the model that contributed this movie; when both did, the
	// source of the higher-ranked occurrence wins.
	Source Source `json:"source"`

	// Reason is a short human-readable justification derived from the
	// contributing source.
	Reason string `json:"reason"`
}

// MovieStats aggregates the rating distribution of one movie.
type MovieStats struct {
	MovieID     int     `json:"movie_id"`
	Title       string  `json:"title"`
	Genres      string  `json:"genres"`
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

// tokenize lowercases the input and extracts alphanumeric runs of at least
// two characters, excluding English stop-words. Genre tags are not
// natural-language stop-words in practice, but the exclusion is kept as
// policy for arbitrary tag vocabularies.
func tokenize(s string) []string {
	s = strings.ToLower(s)

	var tokens []string
	start := -1
	for i, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		switch {
		case alnum && start < 0:
			start = i
		case !alnum && start >= 0:
			if tok := s[start:i]; len(tok) >= 2 && !stopWords[tok] {
				tokens = append(tokens, tok)
			}
			start = -1
		}
	}
	if start >= 0 {
		if tok := s[start:]; len(tok) >= 2 && !stopWords[tok] {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// stopWords is a compact English stop-word set applied during genre
// tokenization.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"had": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "if": true, "in": true, "into": true, "is": true,
	"it": true, "its": true, "no": true, "not": true, "of": true,
	"on": true, "or": true, "she": true, "so": true, "that": true,
	"the": true, "their": true, "then": true, "there": true, "they": true,
	"this": true, "to": true, "was": true, "were": true, "will": true,
	"with": true,
}

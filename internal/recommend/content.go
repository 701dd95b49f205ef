// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

import "sort"

// ContentModel recommends movies by genre similarity. It builds TF-IDF
// vectors over each movie's genre tags and precomputes the full pairwise
// cosine similarity matrix at construction time. Read-only after build.
type ContentModel struct {
	movies []Movie

	// titleIndex maps a title to the position of its first occurrence in
	// load order; duplicate titles resolve to the earliest row.
	titleIndex map[string]int

	// sim is the dense symmetric similarity matrix, values in [0,1],
	// diagonal 1, indexed by movie position.
	sim [][]float64
}

// NewContentModel builds the TF-IDF vector space and similarity matrix for
// the full movie set. O(movies²) time and space.
func NewContentModel(movies []Movie) *ContentModel {
	docs := make([][]string, len(movies))
	titleIndex := make(map[string]int, len(movies))
	for i, m := range movies {
		docs[i] = m.GenreTokens()
		if _, ok := titleIndex[m.Title]; !ok {
			titleIndex[m.Title] = i
		}
	}

	vectors := tfidfMatrix(docs)

	n := len(movies)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	// Rows are L2-normalized, so cosine similarity is the dot product.
	for i := 0; i < n; i++ {
		sim[i][i] = 1
		for j := i + 1; j < n; j++ {
			s := dot(vectors[i], vectors[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}

	return &ContentModel{
		movies:     movies,
		titleIndex: titleIndex,
		sim:        sim,
	}
}

// MovieCount returns the number of movies in the model.
func (m *ContentModel) MovieCount() int {
	return len(m.movies)
}

// Recommend returns up to n movies most similar to the given title,
// excluding the movie itself. Ties are broken by load order. An unknown
// title yields an empty result with OutcomeTitleNotFound.
func (m *ContentModel) Recommend(title string, n int) ([]ContentRecommendation, Outcome) {
	idx, ok := m.titleIndex[title]
	if !ok {
		return []ContentRecommendation{}, OutcomeTitleNotFound
	}
	if n < 1 {
		return []ContentRecommendation{}, OutcomeOK
	}

	row := m.sim[idx]
	order := make([]int, 0, len(m.movies)-1)
	for i := range m.movies {
		if i != idx {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return row[order[a]] > row[order[b]]
	})

	if n > len(order) {
		n = len(order)
	}

	recs := make([]ContentRecommendation, 0, n)
	for _, i := range order[:n] {
		recs = append(recs, ContentRecommendation{
			MovieID:    m.movies[i].MovieID,
			Title:      m.movies[i].Title,
			Genres:     m.movies[i].Genres,
			Similarity: row[i],
		})
	}
	return recs, OutcomeOK
}

// Similarity returns the precomputed similarity between two titles, or 0.0
// if either title is absent.
func (m *ContentModel) Similarity(titleA, titleB string) float64 {
	a, okA := m.titleIndex[titleA]
	b, okB := m.titleIndex[titleB]
	if !okA || !okB {
		return 0.0
	}
	return m.sim[a][b]
}

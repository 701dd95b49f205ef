// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

import "sort"

// CollaborativeModel recommends movies from the ratings of behaviorally
// similar users. It builds a dense user×movie rating matrix and the full
// pairwise cosine similarity matrix over users at construction time.
// Read-only after build.
//
// Missing ratings are treated as 0 for the similarity computation only;
// absence is tracked separately and never interpreted as a zero rating.
type CollaborativeModel struct {
	// userIDs and movieIDs fix the matrix row and column order
	// (ascending by ID).
	userIDs  []int
	movieIDs []int

	userIndex  map[int]int
	movieIndex map[int]int

	// ratings[u][m] holds the rating value, 0 when absent.
	// rated[u][m] records presence.
	ratings [][]float64
	rated   [][]bool

	// sim is the dense symmetric user similarity matrix, diagonal 1.
	sim [][]float64

	// neighbors is the number of most-similar users blended per prediction.
	neighbors int

	// movieMeta joins movie IDs to titles and genres for output rows.
	movieMeta map[int]Movie
}

// NewCollaborativeModel builds the user-movie matrix and user similarity
// matrix from the full rating set. neighbors must be at least 1.
// O(users²·movies) time for the similarity pass.
func NewCollaborativeModel(ratings []Rating, movies []Movie, neighbors int) *CollaborativeModel {
	if neighbors < 1 {
		neighbors = 10
	}

	userSet := make(map[int]struct{})
	movieSet := make(map[int]struct{})
	for _, r := range ratings {
		userSet[r.UserID] = struct{}{}
		movieSet[r.MovieID] = struct{}{}
	}

	userIDs := sortedKeys(userSet)
	movieIDs := sortedKeys(movieSet)

	userIndex := make(map[int]int, len(userIDs))
	for i, id := range userIDs {
		userIndex[id] = i
	}
	movieIndex := make(map[int]int, len(movieIDs))
	for i, id := range movieIDs {
		movieIndex[id] = i
	}

	matrix := make([][]float64, len(userIDs))
	rated := make([][]bool, len(userIDs))
	for i := range matrix {
		matrix[i] = make([]float64, len(movieIDs))
		rated[i] = make([]bool, len(movieIDs))
	}
	for _, r := range ratings {
		u := userIndex[r.UserID]
		m := movieIndex[r.MovieID]
		matrix[u][m] = r.Rating
		rated[u][m] = true
	}

	n := len(userIDs)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		sim[i][i] = 1
		for j := i + 1; j < n; j++ {
			s := cosineSimilarity(matrix[i], matrix[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}

	movieMeta := make(map[int]Movie, len(movies))
	for _, m := range movies {
		if _, ok := movieMeta[m.MovieID]; !ok {
			movieMeta[m.MovieID] = m
		}
	}

	return &CollaborativeModel{
		userIDs:    userIDs,
		movieIDs:   movieIDs,
		userIndex:  userIndex,
		movieIndex: movieIndex,
		ratings:    matrix,
		rated:      rated,
		sim:        sim,
		neighbors:  neighbors,
		movieMeta:  movieMeta,
	}
}

// UserCount returns the number of users in the matrix.
func (m *CollaborativeModel) UserCount() int {
	return len(m.userIDs)
}

// Recommend predicts ratings for movies the user has not rated from the
// weighted ratings of their most similar neighbors and returns the top n.
// An unknown user yields an empty result with OutcomeUserNotFound; a zero
// neighbor-weight sum yields OutcomeNoCandidates instead of undefined
// predictions.
func (m *CollaborativeModel) Recommend(userID, n int) ([]CollaborativeRecommendation, Outcome) {
	u, ok := m.userIndex[userID]
	if !ok {
		return []CollaborativeRecommendation{}, OutcomeUserNotFound
	}
	if n < 1 {
		return []CollaborativeRecommendation{}, OutcomeOK
	}

	neighbors := m.topNeighbors(u)

	var weightSum float64
	for _, nb := range neighbors {
		weightSum += nb.similarity
	}
	if weightSum == 0 {
		return []CollaborativeRecommendation{}, OutcomeNoCandidates
	}

	// Similarity-weighted rating total per movie, normalized by the sum of
	// the neighbor weights.
	predicted := make([]float64, len(m.movieIDs))
	for _, nb := range neighbors {
		row := m.ratings[nb.index]
		for j, r := range row {
			if r != 0 {
				predicted[j] += nb.similarity * r
			}
		}
	}

	// Candidates are unrated movies with a positive prediction; movies no
	// neighbor rated stay out rather than padding the tail with zeros.
	candidates := make([]int, 0, len(predicted))
	for j := range predicted {
		if m.rated[u][j] {
			continue
		}
		predicted[j] /= weightSum
		if predicted[j] > 0 {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return []CollaborativeRecommendation{}, OutcomeNoCandidates
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return predicted[candidates[a]] > predicted[candidates[b]]
	})

	if n > len(candidates) {
		n = len(candidates)
	}

	recs := make([]CollaborativeRecommendation, 0, n)
	for _, j := range candidates[:n] {
		movieID := m.movieIDs[j]
		meta := m.movieMeta[movieID]
		recs = append(recs, CollaborativeRecommendation{
			MovieID:         movieID,
			Title:           meta.Title,
			Genres:          meta.Genres,
			PredictedRating: predicted[j],
		})
	}
	return recs, OutcomeOK
}

// neighbor pairs a matrix row index with its similarity to the target user.
type neighbor struct {
	index      int
	similarity float64
}

// topNeighbors returns the most similar other users, ties broken by matrix
// column order.
func (m *CollaborativeModel) topNeighbors(u int) []neighbor {
	row := m.sim[u]
	order := make([]int, 0, len(m.userIDs)-1)
	for i := range m.userIDs {
		if i != u {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return row[order[a]] > row[order[b]]
	})

	k := m.neighbors
	if k > len(order) {
		k = len(order)
	}

	neighbors := make([]neighbor, 0, k)
	for _, i := range order[:k] {
		neighbors = append(neighbors, neighbor{index: i, similarity: row[i]})
	}
	return neighbors
}

// Similarity returns the precomputed similarity between two users, or 0.0
// if either ID is absent.
func (m *CollaborativeModel) Similarity(userIDA, userIDB int) float64 {
	a, okA := m.userIndex[userIDA]
	b, okB := m.userIndex[userIDB]
	if !okA || !okB {
		return 0.0
	}
	return m.sim[a][b]
}

// RatingCount returns the number of movies the user has rated, or 0 if the
// user is absent.
func (m *CollaborativeModel) RatingCount(userID int) int {
	u, ok := m.userIndex[userID]
	if !ok {
		return 0
	}
	count := 0
	for _, r := range m.rated[u] {
		if r {
			count++
		}
	}
	return count
}

// HasUser reports whether the user appears in the matrix.
func (m *CollaborativeModel) HasUser(userID int) bool {
	_, ok := m.userIndex[userID]
	return ok
}

// sortedKeys returns the map keys in ascending order.
func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

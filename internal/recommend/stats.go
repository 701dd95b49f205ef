// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

import "sort"

// ComputeMovieStats aggregates per-movie rating averages and counts, sorted
// by rating count descending with movie ID as the tie-break. Movies with no
// ratings are omitted.
func ComputeMovieStats(movies []Movie, ratings []Rating) []MovieStats {
	type agg struct {
		sum   float64
		count int
	}
	byMovie := make(map[int]*agg)
	for _, r := range ratings {
		a, ok := byMovie[r.MovieID]
		if !ok {
			a = &agg{}
			byMovie[r.MovieID] = a
		}
		a.sum += r.Rating
		a.count++
	}

	meta := make(map[int]Movie, len(movies))
	for _, m := range movies {
		if _, ok := meta[m.MovieID]; !ok {
			meta[m.MovieID] = m
		}
	}

	stats := make([]MovieStats, 0, len(byMovie))
	for movieID, a := range byMovie {
		m := meta[movieID]
		stats = append(stats, MovieStats{
			MovieID:     movieID,
			Title:       m.Title,
			Genres:      m.Genres,
			AvgRating:   a.sum / float64(a.count),
			RatingCount: a.count,
		})
	}

	sort.Slice(stats, func(a, b int) bool {
		if stats[a].RatingCount != stats[b].RatingCount {
			return stats[a].RatingCount > stats[b].RatingCount
		}
		return stats[a].MovieID < stats[b].MovieID
	})
	return stats
}

// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

import "sort"

// HybridModel blends the content and collaborative models into a single
// ranked list. Each source contributes rank-decayed scores which are
// weighted, merged content-first, deduplicated, and truncated.
type HybridModel struct {
	content *ContentModel
	collab  *CollaborativeModel
	cfg     Config
}

// HybridResult carries the blended list plus the per-source outcomes so
// callers can distinguish an unknown title from an unknown user.
type HybridResult struct {
	Items          []Recommendation `json:"items"`
	ContentOutcome Outcome          `json:"content_outcome"`
	CollabOutcome  Outcome          `json:"collaborative_outcome"`
	Weights        Weights          `json:"weights"`
	Tier           UserTier         `json:"-"`
	Dropped        int              `json:"-"`
}

// NewHybridModel wires the two source models under a shared config.
func NewHybridModel(content *ContentModel, collab *CollaborativeModel, cfg Config) *HybridModel {
	return &HybridModel{content: content, collab: collab, cfg: cfg}
}

// Recommend produces up to n blended recommendations for userID, optionally
// anchored to a reference title for the content half. An empty title skips
// the content source. Both sources failing yields an empty list with the
// per-source outcomes set; one source failing degrades to the other.
//
// Each source's results are converted to a linear rank-decay score
// (topN-rank)/topN rather than the raw similarity or predicted rating, so
// the two score scales are comparable. The hybrid score is the weighted sum
// of the two decay scores.
func (m *HybridModel) Recommend(userID int, title string, n int) HybridResult {
	if n < 1 {
		n = m.cfg.DefaultTopN
	}

	weights := Weights{Content: m.cfg.ContentWeight, Collab: m.cfg.CollabWeight}
	tier := TierEstablished
	if m.cfg.DynamicWeights {
		tier = TierForCount(m.collab.RatingCount(userID))
		weights = WeightsForTier(tier)
	}

	result := HybridResult{
		Items:          []Recommendation{},
		ContentOutcome: OutcomeOK,
		CollabOutcome:  OutcomeOK,
		Weights:        weights,
		Tier:           tier,
	}

	// Pull n from each source so either can fill the final list alone.
	var contentRecs []ContentRecommendation
	if title != "" {
		contentRecs, result.ContentOutcome = m.content.Recommend(title, n)
	}
	collabRecs, collabOutcome := m.collab.Recommend(userID, n)
	result.CollabOutcome = collabOutcome

	// Concatenate content-first; the slice position is the stable tie-break
	// for the sort and the dedup below.
	merged := make([]Recommendation, 0, len(contentRecs)+len(collabRecs))
	for r, rec := range contentRecs {
		merged = append(merged, Recommendation{
			MovieID:      rec.MovieID,
			Title:        rec.Title,
			Genres:       rec.Genres,
			ContentScore: float64(n-r) / float64(n),
			Source:       SourceContent,
		})
	}
	for r, rec := range collabRecs {
		merged = append(merged, Recommendation{
			MovieID:      rec.MovieID,
			Title:        rec.Title,
			Genres:       rec.Genres,
			CollabScore:  float64(n-r) / float64(n),
			Source:       SourceCollaborative,
		})
	}

	// Rows that failed the metadata join carry no title; they are dropped
	// and counted rather than surfaced half-empty.
	kept := merged[:0]
	for _, rec := range merged {
		if rec.Title == "" {
			result.Dropped++
			continue
		}
		rec.HybridScore = weights.Content*rec.ContentScore + weights.Collab*rec.CollabScore
		kept = append(kept, rec)
	}
	merged = kept

	// Stable sort keeps first-seen items ahead on score ties, so content
	// rows win over collaborative rows with equal hybrid scores.
	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].HybridScore > merged[b].HybridScore
	})

	// First occurrence wins on duplicate movie IDs.
	seen := make(map[int]struct{}, len(merged))
	for _, rec := range merged {
		if _, ok := seen[rec.MovieID]; ok {
			continue
		}
		seen[rec.MovieID] = struct{}{}
		result.Items = append(result.Items, rec)
		if len(result.Items) == n {
			break
		}
	}
	for i := range result.Items {
		result.Items[i].Rank = i
		result.Items[i].Reason = reasonFor(result.Items[i], title)
	}
	return result
}

// reasonFor builds the per-row justification from the contributing source.
func reasonFor(rec Recommendation, title string) string {
	if rec.Source == SourceContent {
		return "shares genres with " + title
	}
	return "rated highly by users with similar taste"
}

// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/kinographus/internal/logging"
	"github.com/tomtom215/kinographus/internal/metrics"
	"github.com/tomtom215/kinographus/internal/recommend"
)

// HybridResponse is the payload of the hybrid recommendation endpoint.
type HybridResponse struct {
	UserID         int                        `json:"user_id"`
	Reference      string                     `json:"reference,omitempty"`
	Weights        recommend.Weights          `json:"weights"`
	Tier           string                     `json:"tier,omitempty"`
	Explanation    string                     `json:"explanation,omitempty"`
	ContentOutcome recommend.Outcome          `json:"content_outcome"`
	CollabOutcome  recommend.Outcome          `json:"collaborative_outcome"`
	Count          int                        `json:"count"`
	Items          []recommend.Recommendation `json:"items"`
}

// Recommendations serves the blended hybrid list for a user, optionally
// anchored to a reference movie title.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	set := h.models(w)
	if set == nil {
		return
	}

	req := HybridRequest{
		UserID:    getIntParam(r, "user_id", 0),
		Reference: r.URL.Query().Get("reference"),
		Limit:     h.config.Recommender.TopN,
	}
	if limit := getIntParam(r, "limit", 0); limit > 0 {
		req.Limit = limit
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	req.Limit = h.engine.Config().ClampTopN(req.Limit)

	key := fmt.Sprintf("hybrid:v%d:%d:%s:%d", set.Version, req.UserID, req.Reference, req.Limit)
	if body, ok := h.lookupCache(key); ok {
		h.serveCached(w, body)
		return
	}

	start := time.Now()
	result := set.Hybrid.Recommend(req.UserID, req.Reference, req.Limit)
	metrics.RecordRecommendation("hybrid", hybridOutcome(result).String(), time.Since(start))

	if result.Dropped > 0 {
		metrics.JoinDropped.Add(float64(result.Dropped))
		logger := logging.Ctx(r.Context())
		logger.Warn().
			Int("dropped", result.Dropped).
			Int("user_id", req.UserID).
			Msg("Recommendations dropped for missing movie metadata")
	}

	// Both sources failing to resolve their subject is a 404; a single
	// failed source degrades to the other and stays visible in the payload.
	contentFailed := req.Reference != "" && result.ContentOutcome != recommend.OutcomeOK
	collabFailed := result.CollabOutcome == recommend.OutcomeUserNotFound
	if collabFailed && (req.Reference == "" || contentFailed) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound,
			"No recommendations: unknown user or reference movie", nil)
		return
	}

	payload := HybridResponse{
		UserID:         req.UserID,
		Reference:      req.Reference,
		Weights:        result.Weights,
		ContentOutcome: result.ContentOutcome,
		CollabOutcome:  result.CollabOutcome,
		Count:          len(result.Items),
		Items:          result.Items,
	}
	if h.config.Recommender.DynamicWeights {
		payload.Tier = result.Tier.String()
		payload.Explanation = recommend.WeightExplanation(result.Tier)
	}

	h.cacheableJSON(w, key, &APIResponse{
		Status: "success",
		Data:   payload,
		Metadata: Metadata{
			Timestamp:    time.Now(),
			ModelVersion: set.Version,
		},
	})
}

// hybridOutcome collapses the per-source outcomes into one metric label.
func hybridOutcome(result recommend.HybridResult) recommend.Outcome {
	if len(result.Items) > 0 {
		return recommend.OutcomeOK
	}
	if result.CollabOutcome != recommend.OutcomeOK {
		return result.CollabOutcome
	}
	return result.ContentOutcome
}

// RecommendationsContent serves the raw content model output, exposing the
// underlying cosine similarities rather than rank-decay scores.
func (h *Handler) RecommendationsContent(w http.ResponseWriter, r *http.Request) {
	set := h.models(w)
	if set == nil {
		return
	}

	req := ContentRequest{
		Title: r.URL.Query().Get("title"),
		Limit: h.config.Recommender.TopN,
	}
	if limit := getIntParam(r, "limit", 0); limit > 0 {
		req.Limit = limit
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	req.Limit = h.engine.Config().ClampTopN(req.Limit)

	key := fmt.Sprintf("content:v%d:%s:%d", set.Version, req.Title, req.Limit)
	if body, ok := h.lookupCache(key); ok {
		h.serveCached(w, body)
		return
	}

	start := time.Now()
	recs, outcome := set.Content.Recommend(req.Title, req.Limit)
	metrics.RecordRecommendation("content", outcome.String(), time.Since(start))

	if outcome == recommend.OutcomeTitleNotFound {
		respondError(w, http.StatusNotFound, ErrCodeNotFound,
			"Movie title not found: "+sanitizeLogValue(req.Title), nil)
		return
	}

	h.cacheableJSON(w, key, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"title":   req.Title,
			"outcome": outcome,
			"count":   len(recs),
			"items":   recs,
		},
		Metadata: Metadata{
			Timestamp:    time.Now(),
			ModelVersion: set.Version,
		},
	})
}

// RecommendationsCollaborative serves the raw collaborative model output
// with predicted ratings.
func (h *Handler) RecommendationsCollaborative(w http.ResponseWriter, r *http.Request) {
	set := h.models(w)
	if set == nil {
		return
	}

	req := CollaborativeRequest{
		UserID: getIntParam(r, "user_id", 0),
		Limit:  h.config.Recommender.TopN,
	}
	if limit := getIntParam(r, "limit", 0); limit > 0 {
		req.Limit = limit
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	req.Limit = h.engine.Config().ClampTopN(req.Limit)

	key := fmt.Sprintf("collab:v%d:%d:%d", set.Version, req.UserID, req.Limit)
	if body, ok := h.lookupCache(key); ok {
		h.serveCached(w, body)
		return
	}

	start := time.Now()
	recs, outcome := set.Collab.Recommend(req.UserID, req.Limit)
	metrics.RecordRecommendation("collaborative", outcome.String(), time.Since(start))

	if outcome == recommend.OutcomeUserNotFound {
		respondError(w, http.StatusNotFound, ErrCodeNotFound,
			"User not found: "+strconv.Itoa(req.UserID), nil)
		return
	}

	h.cacheableJSON(w, key, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"user_id": req.UserID,
			"outcome": outcome,
			"count":   len(recs),
			"items":   recs,
		},
		Metadata: Metadata{
			Timestamp:    time.Now(),
			ModelVersion: set.Version,
		},
	})
}

// SimilarityMovies returns the precomputed genre similarity of two titles.
// Absent titles yield 0.0, matching the model's silent-fallback contract.
func (h *Handler) SimilarityMovies(w http.ResponseWriter, r *http.Request) {
	set := h.models(w)
	if set == nil {
		return
	}

	req := MovieSimilarityRequest{
		A: r.URL.Query().Get("a"),
		B: r.URL.Query().Get("b"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"a":          req.A,
			"b":          req.B,
			"similarity": set.Content.Similarity(req.A, req.B),
		},
		Metadata: Metadata{
			Timestamp:    time.Now(),
			ModelVersion: set.Version,
		},
	})
}

// SimilarityUsers returns the precomputed rating-vector similarity of two
// users. Absent IDs yield 0.0.
func (h *Handler) SimilarityUsers(w http.ResponseWriter, r *http.Request) {
	set := h.models(w)
	if set == nil {
		return
	}

	req := UserSimilarityRequest{
		A: getIntParam(r, "a", 0),
		B: getIntParam(r, "b", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"a":          req.A,
			"b":          req.B,
			"similarity": set.Collab.Similarity(req.A, req.B),
		},
		Metadata: Metadata{
			Timestamp:    time.Now(),
			ModelVersion: set.Version,
		},
	})
}

// UserProfile reports a user's rating depth, tier and the blend weights
// that tier implies.
func (h *Handler) UserProfile(w http.ResponseWriter, r *http.Request) {
	set := h.models(w)
	if set == nil {
		return
	}

	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || userID < 1 {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid user ID", nil)
		return
	}

	if !set.Collab.HasUser(userID) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound,
			"User not found: "+strconv.Itoa(userID), nil)
		return
	}

	count := set.Collab.RatingCount(userID)
	tier := recommend.TierForCount(count)

	weights := recommend.Weights{
		Content: h.config.Recommender.ContentWeight,
		Collab:  h.config.Recommender.CollabWeight,
	}
	if h.config.Recommender.DynamicWeights {
		weights = recommend.WeightsForTier(tier)
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"user_id":         userID,
			"rating_count":    count,
			"tier":            tier.String(),
			"weights":         weights,
			"dynamic_weights": h.config.Recommender.DynamicWeights,
			"explanation":     recommend.WeightExplanation(tier),
		},
		Metadata: Metadata{
			Timestamp:    time.Now(),
			ModelVersion: set.Version,
		},
	})
}

// MovieStats serves the per-movie rating aggregates, most rated first.
func (h *Handler) MovieStats(w http.ResponseWriter, r *http.Request) {
	set := h.models(w)
	if set == nil {
		return
	}

	req := MovieStatsRequest{Limit: getIntParam(r, "limit", 100)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	stats := set.Stats
	if req.Limit < len(stats) {
		stats = stats[:req.Limit]
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"count": len(stats),
			"items": stats,
		},
		Metadata: Metadata{
			Timestamp:    time.Now(),
			ModelVersion: set.Version,
		},
	})
}

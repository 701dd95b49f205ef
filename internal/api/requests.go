// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

// Package api provides the HTTP surface of the recommendation engine:
// Chi routing, request validation with go-playground/validator tags, and
// the standardized JSON response envelope.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance; validator caches struct
// metadata, so one instance serves all requests.
var validate = validator.New()

// HybridRequest holds the validated query parameters for the hybrid
// recommendation endpoint. Reference is optional; without it the blend is
// collaborative-only.
type HybridRequest struct {
	UserID    int    `validate:"required,min=1"`
	Reference string `validate:"omitempty,min=1,max=512"`
	Limit     int    `validate:"min=1,max=1000"`
}

// ContentRequest holds the validated query parameters for the content-only
// endpoint.
type ContentRequest struct {
	Title string `validate:"required,min=1,max=512"`
	Limit int    `validate:"min=1,max=1000"`
}

// CollaborativeRequest holds the validated query parameters for the
// collaborative-only endpoint.
type CollaborativeRequest struct {
	UserID int `validate:"required,min=1"`
	Limit  int `validate:"min=1,max=1000"`
}

// MovieSimilarityRequest holds the two titles for the movie similarity
// endpoint.
type MovieSimilarityRequest struct {
	A string `validate:"required,min=1,max=512"`
	B string `validate:"required,min=1,max=512"`
}

// UserSimilarityRequest holds the two user IDs for the user similarity
// endpoint.
type UserSimilarityRequest struct {
	A int `validate:"required,min=1"`
	B int `validate:"required,min=1"`
}

// MovieStatsRequest holds the validated query parameters for the movie
// stats endpoint.
type MovieStatsRequest struct {
	Limit int `validate:"min=1,max=10000"`
}

// validateRequest runs struct validation, returning an API error suitable
// for a 400 response.
func validateRequest(v interface{}) *APIError {
	if err := validate.Struct(v); err != nil {
		return &APIError{
			Code:    ErrCodeValidationFailed,
			Message: "Invalid request parameters: " + err.Error(),
		}
	}
	return nil
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

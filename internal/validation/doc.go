// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

// Package validation wraps go-playground/validator v10 with a shared
// instance and readable messages.
//
// It validates the application config at load time and the query parameters
// of HTTP API requests:
//
//	type reportsQuery struct {
//	    Limit int `json:"limit" validate:"gte=0,lte=1000"`
//	}
//
//	if err := validation.ValidateStruct(&q); err != nil {
//	    var verr *validation.Error
//	    if errors.As(err, &verr) {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    }
//	}
package validation

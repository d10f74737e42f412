// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation validates API request structs with
// go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Field names in error messages
// come from the `json` tag (falling back to `query`, then the Go name), so
// clients see the parameter names they actually sent.
//
//	type HybridRequest struct {
//	    MovieID int64 `query:"movie_id" validate:"omitempty,gt=0"`
//	    Limit   int   `query:"limit" validate:"min=1,max=50"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError() // Code "VALIDATION_ERROR"
//	}
package validation

// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Package validation wraps go-playground/validator for API request bodies.
//
//	type FeedbackRequest struct {
//	    UserID   string  `json:"user_id" validate:"required,max=128"`
//	    ItemID   string  `json:"item_id" validate:"required,ident"`
//	    Feedback float64 `json:"feedback" validate:"finite"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation

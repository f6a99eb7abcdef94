// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Package advice turns stress and sentiment classifier outputs into a short
// advice line and a risk flag. The classifiers themselves are external; their
// outputs arrive as request fields.
package advice

// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Package catalog holds the tag vocabulary and the activity registry.
//
// Each activity's tag set is compiled into a binary vector over the
// vocabulary when the catalog is built. The resulting Catalog is read-only:
// it is constructed once at process start and shared by every request.
//
//	cat, err := catalog.Load(cfg.Recommend.CatalogPath) // "" selects the built-in catalog
//	entry, err := cat.Get("a1")
package catalog

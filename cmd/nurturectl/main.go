// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

// Command nurturectl inspects the activity catalog, ranks activities and
// reads or appends the interaction log without running the server.
//
//	nurturectl catalog
//	nurturectl recommend --metric sleep_quality=2 --metric anxiety_level=15 --label anxious --top-k 5
//	nurturectl popularity --log-path data/interactions.csv
//	nurturectl log --user u1 --item a4 --feedback 1
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

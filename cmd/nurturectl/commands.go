// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/nurture/internal/recommend"
	"github.com/tomtom215/nurture/internal/recommend/catalog"
	"github.com/tomtom215/nurture/internal/recommend/profile"
	"github.com/tomtom215/nurture/internal/recommend/storage"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the activity catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Load(opts.catalogPath)
			if err != nil {
				return err
			}
			acts := cat.Activities()
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), acts)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMINUTES\tTITLE\tTAGS")
			for _, a := range acts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, minutesString(a.Minutes), a.Title, strings.Join(a.Tags, ","))
			}
			return tw.Flush()
		},
	}
}

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	var (
		metricArgs []string
		label      string
		topK       int
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank activities for a user state",
		Long: `Rank activities for a user state using the popularity learned from
the interaction log.

Examples:
  nurturectl recommend --label sad
  nurturectl recommend --metric sleep_quality=2 --metric anxiety_level=15 --top-k 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			metrics, err := parseMetrics(metricArgs)
			if err != nil {
				return err
			}

			engine, ilog, err := opts.openEngine(cmd, nil)
			if err != nil {
				return err
			}
			defer ilog.Close()

			resp, err := engine.Recommend(cmd.Context(), recommend.Request{
				Metrics: metrics,
				Label:   label,
				K:       topK,
			})
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), resp)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tID\tSCORE\tTITLE")
			for i, item := range resp.Items {
				fmt.Fprintf(tw, "%d\t%s\t%.4f\t%s\n", i+1, item.ID, item.Score, item.Title)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringArrayVarP(&metricArgs, "metric", "m", nil, "Metric as name=value (repeatable)")
	cmd.Flags().StringVarP(&label, "label", "l", "", "Detected emotion or sentiment label")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "Number of activities to return (0 = default)")
	return cmd
}

func newPopularityCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "popularity",
		Short: "Replay the interaction log and print per-activity counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, ilog, err := opts.openEngine(cmd, nil)
			if err != nil {
				return err
			}
			defer ilog.Close()

			snap := engine.Popularity()
			ranked := snap.Ranked()
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), ranked)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCOUNT\tBONUS")
			for _, rc := range ranked {
				fmt.Fprintf(tw, "%s\t%d\t%.4f\n", rc.ItemID, rc.Count, snap.Bonus(rc.ItemID))
			}
			fmt.Fprintf(tw, "total\t%d\t\n", snap.Total())
			return tw.Flush()
		},
	}
}

func newLogCmd(opts *rootOptions) *cobra.Command {
	var (
		user     string
		item     string
		feedback float64
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append one interaction to the log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := recommend.DefaultConfig()
			cfg.Feedback.RequireKnownItem = strict
			engine, ilog, err := opts.openEngine(cmd, cfg)
			if err != nil {
				return err
			}
			defer ilog.Close()

			count, err := engine.LogInteraction(cmd.Context(), storage.Interaction{
				UserID:    user,
				ItemID:    item,
				Feedback:  feedback,
				Timestamp: time.Now().UTC(),
			})
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{"item_id": item, "count": count})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged %s for %s (count %d)\n", item, user, count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "User id")
	cmd.Flags().StringVarP(&item, "item", "i", "", "Activity id")
	cmd.Flags().Float64VarP(&feedback, "feedback", "f", 1, "Feedback value")
	cmd.Flags().BoolVar(&strict, "strict", true, "Reject activity ids that are not in the catalog")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

// parseMetrics turns name=value pairs into metrics. Numeric values are
// stored as float64, anything else as the raw string.
func parseMetrics(args []string) (profile.Metrics, error) {
	m := make(profile.Metrics, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid metric %q: want name=value", arg)
		}
		value = strings.TrimSpace(value)
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			m[name] = f
		} else {
			m[name] = value
		}
	}
	return m, nil
}

func minutesString(m *int) string {
	if m == nil {
		return "-"
	}
	return strconv.Itoa(*m)
}

// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/tomtom215/ratingcf/internal/predict"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	return t
}

func renderRanking(w io.Writer, ranked []predict.RankedMovie) error {
	if len(ranked) == 0 {
		_, err := fmt.Fprintln(w, "No unseen movies from that year.")
		return err
	}
	t := newTable(w, "Movie Name", "Expected Rating")
	for _, m := range ranked {
		t.Append([]string{m.Title, strconv.FormatFloat(m.Rating, 'f', 1, 64)})
	}
	t.Render()
	return nil
}

func renderEvaluation(w io.Writer, out *evaluation) error {
	t := newTable(w, "Metric", "Value")
	t.Append([]string{"Mean Absolute Error", strconv.FormatFloat(out.Result.MAE, 'f', -1, 64)})
	t.Append([]string{"Root Mean Squared Error", strconv.FormatFloat(out.Result.RMSE, 'f', -1, 64)})
	t.Append([]string{"Matched records", strconv.Itoa(out.Result.Matched)})
	t.Append([]string{"Skipped records", strconv.Itoa(out.Result.Skipped)})
	t.Append([]string{"Duration", out.Result.Duration.String()})
	if out.RunID != "" {
		t.Append([]string{"Report", out.RunID})
	}
	t.Render()
	return nil
}

func renderMenu(w io.Writer) {
	t := newTable(w, "Option", "Description")
	t.Append([]string{"1", "Classify the ratings in a test file and report the error."})
	t.Append([]string{"2", "Query a user and a year to find other movies from that year the user might like."})
	t.Append([]string{"3", "Exit"})
	t.Render()
}

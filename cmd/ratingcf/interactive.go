// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// session is one interactive run over stdin/stdout.
type session struct {
	app *app
	in  *bufio.Scanner
	out io.Writer
}

func (a *app) runInteractive(ctx context.Context) error {
	s := &session{app: a, in: bufio.NewScanner(a.stdin), out: a.stdout}

	err := s.loop(ctx)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
		return nil
	}
	return err
}

// prompt prints msg and reads one trimmed line. It returns io.EOF when
// input ends.
func (s *session) prompt(msg string) (string, error) {
	fmt.Fprint(s.out, msg)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// pathOrPrompt returns configured, or asks for a path when it is empty.
func (s *session) pathOrPrompt(configured, msg string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	for {
		path, err := s.prompt(msg)
		if err != nil || path != "" {
			return path, err
		}
	}
}

func (s *session) loop(ctx context.Context) error {
	data := s.app.cfg.Data
	fmt.Fprint(s.out, "Welcome to the ratingcf collaborative filter!\n\n")

	training, err := s.pathOrPrompt(data.TrainingPath, "Enter the name of the file containing your training data: ")
	if err != nil {
		return err
	}
	titles, err := s.pathOrPrompt(data.TitlesPath, "Enter the name of the file containing the titles and years of the movies: ")
	if err != nil {
		return err
	}
	if err := s.app.loadModel(ctx, training, titles); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Loaded %d ratings from %d users across %d movies.\n\n",
		s.app.store.RatingCount(), s.app.store.UserCount(), s.app.store.MovieCount())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		selection, err := s.menu()
		if err != nil {
			return err
		}

		switch selection {
		case "1":
			err = s.classify(ctx)
		case "2":
			err = s.query()
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *session) menu() (string, error) {
	fmt.Fprint(s.out, "Please select an option!\n\n")
	renderMenu(s.out)
	fmt.Fprintln(s.out)

	for {
		selection, err := s.prompt("Selection: ")
		if err != nil {
			return "", err
		}
		switch strings.ToLower(selection) {
		case "1", "2", "3":
			return selection, nil
		case "exit":
			return "3", nil
		}
		fmt.Fprintln(s.out, "That is not a valid selection. Please try again.")
	}
}

// classify evaluates a test file. A failed evaluation is reported and the
// menu shown again.
func (s *session) classify(ctx context.Context) error {
	path, err := s.prompt("Enter the name of the file containing your testing data: ")
	if err != nil {
		return err
	}
	if path == "" {
		path = s.app.cfg.Data.TestPath
	}
	if path == "" {
		fmt.Fprint(s.out, "No test file given.\n\n")
		return nil
	}

	fmt.Fprintln(s.out, "The program will now attempt to predict the ratings contained in the file.")
	fmt.Fprintln(s.out, "This may take some time. When this is complete, error will be printed to the console.")

	out, err := s.app.evaluateFile(ctx, path)
	if errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		fmt.Fprintf(s.out, "Evaluation failed: %v\n\n", err)
		return nil
	}

	fmt.Fprintf(s.out, "The Mean Absolute Error is %v\n", out.Result.MAE)
	fmt.Fprintf(s.out, "The Root Mean Squared Error is %v\n", out.Result.RMSE)
	if out.RunID != "" {
		fmt.Fprintf(s.out, "Saved as report %s\n", out.RunID)
	}
	fmt.Fprintln(s.out)
	return nil
}

// query runs ranking queries until the user answers n.
func (s *session) query() error {
	for {
		userID, err := s.prompt("Please type in the ID of the user in question: ")
		if err != nil {
			return err
		}
		for {
			if _, ok := s.app.store.User(userID); ok {
				break
			}
			userID, err = s.prompt("That user ID is not in the training set. Please pick a new one: ")
			if err != nil {
				return err
			}
		}

		year, err := s.prompt("Please type in a year: ")
		if err != nil {
			return err
		}

		ranked, err := s.app.rank(userID, year)
		if err != nil {
			return err
		}
		if err := renderRanking(s.out, ranked); err != nil {
			return err
		}

		again, err := s.askAgain()
		if err != nil || !again {
			fmt.Fprintln(s.out)
			return err
		}
	}
}

func (s *session) askAgain() (bool, error) {
	for {
		answer, err := s.prompt("\nWould you like to query again? (y/n): ")
		if err != nil {
			return false, err
		}
		switch answer {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		fmt.Fprintln(s.out, "That was not a valid response. Please try again.")
	}
}

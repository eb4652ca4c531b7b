// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/ratingcf/internal/ratings"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// ErrMalformedRecord is matched by every ParseError.
var ErrMalformedRecord = errors.New("malformed record")

// ParseError reports a line that could not be parsed. Any ParseError aborts
// the ingestion pass that produced it.
type ParseError struct {
	// Source names the input, usually a file path.
	Source string

	// Line is the 1-based line number.
	Line int

	// Reason describes what was wrong with the line.
	Reason string

	// Err is the underlying conversion error, if any.
	Err error
}

// Error implements error.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying conversion error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformedRecord) succeed for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// lineScanner wraps bufio.Scanner with line counting and CR stripping.
type lineScanner struct {
	scanner *bufio.Scanner
	source  string
	line    int
}

func newLineScanner(r io.Reader, source string) *lineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &lineScanner{scanner: sc, source: source}
}

// next returns the next line without its terminator, or io.EOF.
func (s *lineScanner) next() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", fmt.Errorf("read %s: %w", s.source, err)
		}
		return "", io.EOF
	}
	s.line++
	return strings.TrimSuffix(s.scanner.Text(), "\r"), nil
}

func (s *lineScanner) parseError(reason string, err error) *ParseError {
	return &ParseError{Source: s.source, Line: s.line, Reason: reason, Err: err}
}

// RatingReader reads "movieId,userId,rating" lines. It serves both training
// and test files and implements evaluate.Source.
type RatingReader struct {
	ls *lineScanner
}

// NewRatingReader creates a reader over r. source is used in error messages.
func NewRatingReader(r io.Reader, source string) *RatingReader {
	return &RatingReader{ls: newLineScanner(r, source)}
}

// Next returns the next rating, io.EOF at end of input, or a *ParseError.
func (r *RatingReader) Next() (ratings.Rating, error) {
	line, err := r.ls.next()
	if err != nil {
		return ratings.Rating{}, err
	}

	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return ratings.Rating{}, r.ls.parseError(
			fmt.Sprintf("want 3 fields (movieId,userId,rating), got %d", len(fields)), nil)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return ratings.Rating{}, r.ls.parseError("rating is not a number", err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ratings.Rating{}, r.ls.parseError("rating is not finite", ratings.ErrInvalidRating)
	}

	return ratings.Rating{
		MovieID: fields[0],
		UserID:  fields[1],
		Value:   value,
	}, nil
}

// Line returns the number of lines consumed so far.
func (r *RatingReader) Line() int {
	return r.ls.line
}

// TitleReader reads "movieId,year,name" lines. Everything after the second
// comma is the name, so names may contain commas. Invalid UTF-8 in names is
// dropped.
type TitleReader struct {
	ls *lineScanner
}

// NewTitleReader creates a reader over r. source is used in error messages.
func NewTitleReader(r io.Reader, source string) *TitleReader {
	return &TitleReader{ls: newLineScanner(r, source)}
}

// Next returns the next title, io.EOF at end of input, or a *ParseError.
func (r *TitleReader) Next() (ratings.Title, error) {
	line, err := r.ls.next()
	if err != nil {
		return ratings.Title{}, err
	}

	fields := strings.SplitN(line, ",", 3)
	if len(fields) != 3 {
		return ratings.Title{}, r.ls.parseError(
			fmt.Sprintf("want 3 fields (movieId,year,name), got %d", len(fields)), nil)
	}

	return ratings.Title{
		MovieID: fields[0],
		Year:    fields[1],
		Name:    strings.ToValidUTF8(fields[2], ""),
	}, nil
}

// Line returns the number of lines consumed so far.
func (r *TitleReader) Line() int {
	return r.ls.line
}

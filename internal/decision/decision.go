// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package decision builds the rename prompt and interprets the model's
// two-line reply:
//
//	Decision: YES|NO
//	Corrected Name: <name>
//
// Anything ambiguous is read as "no change".
package decision

import (
	"errors"
	"strings"
)

const (
	labelDecision  = "decision:"
	labelCorrected = "corrected name:"

	answerYes = "YES"
	answerNo  = "NO"
)

// Parse warnings. They never imply a rename; callers log them and move on.
var (
	ErrEmptyResponse   = errors.New("empty response")
	ErrNoDecision      = errors.New("response has no Decision line")
	ErrUnknownDecision = errors.New("decision is neither YES nor NO")
	ErrMalformedLine   = errors.New("labelled line has no value")
)

// Decision is the parsed verdict for one filename.
type Decision struct {
	ShouldRename bool
	ProposedName string
}

// Parse interprets raw for the file currently named original. The returned
// Decision is always safe to act on: when err is non-nil ShouldRename is
// false. A YES that proposes the original name is not a rename.
func Parse(raw, original string) (Decision, error) {
	noChange := Decision{ProposedName: original}

	if strings.TrimSpace(raw) == "" {
		return noChange, ErrEmptyResponse
	}

	answer := answerNo
	corrected := original
	sawDecision := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, labelDecision):
			v, ok := valueAfterColon(line)
			if !ok {
				return noChange, ErrMalformedLine
			}
			answer = strings.ToUpper(trimDecoration(v))
			sawDecision = true
		case strings.HasPrefix(lower, labelCorrected):
			v, ok := valueAfterColon(line)
			if !ok {
				return noChange, ErrMalformedLine
			}
			corrected = trimQuotes(v)
		}
	}

	if !sawDecision {
		return noChange, ErrNoDecision
	}
	if answer != answerYes && answer != answerNo {
		return noChange, ErrUnknownDecision
	}
	if answer == answerYes && corrected != original && corrected != "" {
		return Decision{ShouldRename: true, ProposedName: corrected}, nil
	}
	return noChange, nil
}

// NewName returns the name to rename original to, or false when no rename is
// warranted for any reason.
func NewName(raw, original string) (string, bool) {
	d, err := Parse(raw, original)
	if err != nil || !d.ShouldRename {
		return "", false
	}
	return d.ProposedName, true
}

// valueAfterColon returns the trimmed text after the first colon.
func valueAfterColon(line string) (string, bool) {
	_, v, found := strings.Cut(line, ":")
	v = strings.TrimSpace(v)
	if !found || v == "" {
		return "", false
	}
	return v, true
}

// trimDecoration strips markup models like to wrap answers in: "[YES]",
// "**NO**", "YES.".
func trimDecoration(s string) string {
	return strings.TrimSpace(strings.Trim(s, "[]*\"'`. "))
}

// trimQuotes removes one pair of matching surrounding quotes.
func trimQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

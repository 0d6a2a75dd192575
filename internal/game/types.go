// internal/game/types.go
//
// Core type definitions for the Word Scramble engine.
// Defines:
//   - RejectionKind: why a submission was refused.
//   - Rejection: kind + display title/message for the presentation layer.
//   - Verdict: outcome of one validation call.
//   - Dictionary / RootSource: contracts for the external collaborators.

package game

import (
	"context"
	"errors"
)

// RejectionKind tags the first validation rule a submission broke.
// Possible values:
//   - "too_short":    fewer than MinWordLength letters.
//   - "same_as_root": the submission is the root word itself.
//   - "already_used": the word was accepted earlier this session.
//   - "not_possible": the root word does not have the letters for it.
//   - "not_real":     the dictionary does not recognize it.
type RejectionKind string

const (
	RejectTooShort    RejectionKind = "too_short"
	RejectSameAsRoot  RejectionKind = "same_as_root"
	RejectAlreadyUsed RejectionKind = "already_used"
	RejectNotPossible RejectionKind = "not_possible"
	RejectNotReal     RejectionKind = "not_real"
)

const (
	// MinWordLength is the shortest acceptable submission, in letters.
	MinWordLength = 3

	// DefaultLanguage is the language tag handed to the dictionary.
	DefaultLanguage = "en"

	// FallbackRoot is used when the root word pool loads but is empty.
	FallbackRoot = "silkword"
)

var (
	// ErrNoRootWord means the root word source could not be read. A session
	// cannot exist without a root word, so callers treat this as fatal.
	ErrNoRootWord = errors.New("game: no root word available")

	// ErrNotStarted is returned by Submit before the first Start.
	ErrNotStarted = errors.New("game: session not started")

	// ErrBusy is returned by Submit while another submission is in flight.
	ErrBusy = errors.New("game: submission already in progress")
)

// Rejection is the user-facing outcome of a refused submission.
type Rejection struct {
	Kind    RejectionKind `json:"kind"`
	Title   string        `json:"title"`
	Message string        `json:"message"`
}

// Error lets a Rejection travel as an error where that is convenient.
func (r *Rejection) Error() string {
	return string(r.Kind) + ": " + r.Title
}

// Verdict is the result of validating one submission.
// Word is always the normalized submission; Rejection is nil when accepted.
type Verdict struct {
	Word      string
	Rejection *Rejection
}

// Accepted reports whether the submission passed every rule.
func (v Verdict) Accepted() bool { return v.Rejection == nil }

// Dictionary decides whether a string is a real word in a language.
// Implementations must be exact-match and deterministic for a fixed word list.
type Dictionary interface {
	IsReal(ctx context.Context, word, lang string) (bool, error)
}

// RootSource supplies the pool of candidate root words.
type RootSource interface {
	Roots() ([]string, error)
}

// RootSourceFunc adapts a plain function to RootSource.
type RootSourceFunc func() ([]string, error)

// Roots calls f.
func (f RootSourceFunc) Roots() ([]string, error) { return f() }

// DictionaryFunc adapts a plain function to Dictionary.
type DictionaryFunc func(ctx context.Context, word, lang string) (bool, error)

// IsReal calls f.
func (f DictionaryFunc) IsReal(ctx context.Context, word, lang string) (bool, error) {
	return f(ctx, word, lang)
}

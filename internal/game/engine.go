// internal/game/engine.go
//
// Validation pipeline for Word Scramble submissions.
// Responsibilities:
//   - Normalize raw input (lowercase, trimmed).
//   - Run the ordered rule checks, stopping at the first failure.
//   - Attach the fixed title/message pair for each rejection kind.
//
// Notes:
//   - Rule order decides which reason the player sees when several apply.
//   - The dictionary is only consulted once every local rule has passed.
package game

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Normalize lowercases s and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate decides whether raw is an acceptable new word for root given the
// words already used this session. It never mutates its inputs.
//
// Rules, in order:
//   - at least MinWordLength letters
//   - not the root word itself
//   - not already used
//   - spellable from the root's letters
//   - recognized by dict in lang
//
// The returned error is non-nil only when dict itself fails.
func Validate(ctx context.Context, raw, root string, used []string, dict Dictionary, lang string) (Verdict, error) {
	word := Normalize(raw)

	if utf8.RuneCountInString(word) < MinWordLength {
		return reject(word, RejectTooShort, root), nil
	}
	if word == root {
		return reject(word, RejectSameAsRoot, root), nil
	}
	if slices.Contains(used, word) {
		return reject(word, RejectAlreadyUsed, root), nil
	}
	if !IsPossible(word, root) {
		return reject(word, RejectNotPossible, root), nil
	}

	ok, err := dict.IsReal(ctx, word, lang)
	if err != nil {
		return Verdict{Word: word}, fmt.Errorf("dictionary lookup %q: %w", word, err)
	}
	if !ok {
		return reject(word, RejectNotReal, root), nil
	}
	return Verdict{Word: word}, nil
}

// reject builds a rejected verdict with the display text for kind.
func reject(word string, kind RejectionKind, root string) Verdict {
	return Verdict{Word: word, Rejection: NewRejection(kind, root)}
}

// NewRejection returns the Rejection for kind. root is only used by the
// messages that mention it.
func NewRejection(kind RejectionKind, root string) *Rejection {
	r := &Rejection{Kind: kind}
	switch kind {
	case RejectTooShort:
		r.Title = "Answer too short"
		r.Message = fmt.Sprintf("Don't be lazy, answers must have at least %d letters.", MinWordLength)
	case RejectSameAsRoot:
		r.Title = "Same word is not allowed"
		r.Message = "You can't just repeat the root word."
	case RejectAlreadyUsed:
		r.Title = "Word used already"
		r.Message = "Be more original!"
	case RejectNotPossible:
		r.Title = "Word is not possible"
		r.Message = fmt.Sprintf("You can't spell that word from %s!", root)
	case RejectNotReal:
		r.Title = "Word not recognized"
		r.Message = "You can't just make them up, you know!"
	default:
		r.Title = "Word rejected"
		r.Message = string(kind)
	}
	return r
}

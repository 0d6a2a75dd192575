// internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Load the root word pool from a file or the embedded start.txt.
//   - Load per-language dictionaries from a file or the embedded en.txt.
//   - Serve them through the game.RootSource and game.Dictionary contracts.
//
// File format:
//   One word per line, no header. Lines are trimmed and lowercased; blank
//   lines and lines starting with # are skipped.
//
// Failure behavior:
//   A configured file that cannot be read is an error. A file that reads
//   fine but holds no words is not; the session falls back to its default
//   root word in that case.

package words

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jesuscallejadev/WordScramble/assets"
)

// Source is a fixed pool of root words loaded once at startup.
type Source struct {
	roots []string
}

// NewSource wraps an in-memory pool.
func NewSource(roots []string) *Source {
	return &Source{roots: append([]string(nil), roots...)}
}

// LoadSource reads the pool from path, or from the embedded list when path
// is empty.
func LoadSource(path string) (*Source, error) {
	var (
		list []string
		err  error
	)
	if path == "" {
		list, err = assets.RootWords()
	} else {
		list, err = readWordFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("words: load root words: %w", err)
	}
	return &Source{roots: list}, nil
}

// Roots returns a copy of the pool.
func (s *Source) Roots() ([]string, error) {
	return append([]string(nil), s.roots...), nil
}

// Len reports the pool size.
func (s *Source) Len() int { return len(s.roots) }

// Dictionary is an exact-match, in-memory word set per language tag.
// Safe for concurrent use.
type Dictionary struct {
	mu   sync.RWMutex
	sets map[string]map[string]struct{}
}

func NewDictionary() *Dictionary {
	return &Dictionary{sets: make(map[string]map[string]struct{})}
}

// LoadDictionary builds a dictionary for lang from path, or from the
// embedded list for lang when path is empty.
func LoadDictionary(lang, path string) (*Dictionary, error) {
	var (
		list []string
		err  error
	)
	if path == "" {
		list, err = assets.Dictionary(lang)
		if err == nil && list == nil {
			err = fmt.Errorf("no embedded dictionary for %q", lang)
		}
	} else {
		list, err = readWordFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("words: load dictionary: %w", err)
	}
	d := NewDictionary()
	d.Add(lang, list)
	return d, nil
}

// Add inserts words under lang.
func (d *Dictionary) Add(lang string, words []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	set, ok := d.sets[lang]
	if !ok {
		set = toSet(nil)
		d.sets[lang] = set
	}
	for _, w := range words {
		set[w] = struct{}{}
	}
}

// IsReal reports whether word is in the lang word set.
func (d *Dictionary) IsReal(_ context.Context, word, lang string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.sets[lang][word]
	return ok, nil
}

// Words returns every word under lang, in no particular order.
func (d *Dictionary) Words(lang string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.sets[lang]))
	for w := range d.sets[lang] {
		out = append(out, w)
	}
	return out
}

// Len reports how many words lang has.
func (d *Dictionary) Len(lang string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sets[lang])
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

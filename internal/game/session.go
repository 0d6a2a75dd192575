// internal/game/session.go
//
// Session controller for a single Word Scramble game.
// Responsibilities:
//   - Start/restart: pick a root word from the RootSource and reset state.
//   - Submit: run the validation pipeline against the current state and
//     apply accepted words.
//   - Remember the last rejection so the presentation layer can show it.
//
// State transitions:
//   - uninitialized → active on the first successful Start.
//   - active → active on Submit (state mutated or not) and on Start (reset).
package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Picker chooses an index in [0, n). n is always > 0.
type Picker func(n int) int

// Session owns one State exclusively. Submissions are processed one at a
// time; a concurrent Submit returns ErrBusy instead of queueing.
type Session struct {
	id     string
	src    RootSource
	dict   Dictionary
	pick   Picker
	lang   string
	logger zerolog.Logger

	mu            sync.RWMutex // guards state, started, lastRejection
	state         State
	started       bool
	lastRejection *Rejection

	submitting atomic.Bool
}

// Option configures a Session.
type Option func(*Session)

// WithPicker replaces the uniform random root word pick.
func WithPicker(p Picker) Option { return func(s *Session) { s.pick = p } }

// WithLanguage sets the language tag passed to the dictionary.
func WithLanguage(lang string) Option { return func(s *Session) { s.lang = lang } }

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option { return func(s *Session) { s.logger = l } }

// WithID fixes the session ID instead of generating one.
func WithID(id string) Option { return func(s *Session) { s.id = id } }

// NewSession returns an uninitialized session. Call Start before Submit.
func NewSession(src RootSource, dict Dictionary, opts ...Option) *Session {
	s := &Session{
		id:     randomID(),
		src:    src,
		dict:   dict,
		pick:   RandomPick,
		lang:   DefaultLanguage,
		logger: zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With().Str("session", s.id).Logger()
	return s
}

func (s *Session) ID() string { return s.id }

// Start picks a new root word and resets the game. It waits for any
// in-flight submission. An unreadable root word source yields an error
// wrapping ErrNoRootWord and leaves the previous state untouched; an empty
// pool falls back to FallbackRoot.
func (s *Session) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pool, err := s.src.Roots()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoRootWord, err)
	}

	root := FallbackRoot
	if len(pool) > 0 {
		root = Normalize(pool[s.pick(len(pool))])
	} else {
		s.logger.Warn().Str("root", root).Msg("root word pool is empty, using fallback")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Reset(root)
	s.started = true
	s.lastRejection = nil
	s.logger.Debug().Str("root", root).Msg("game started")
	return nil
}

// Submit validates raw against the current game and applies it if
// accepted. Rejections come back in the Verdict, not as errors; the error
// is reserved for ErrNotStarted, ErrBusy, context and dictionary failures,
// none of which change the game.
func (s *Session) Submit(ctx context.Context, raw string) (Verdict, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return Verdict{}, ErrBusy
	}
	defer s.submitting.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return Verdict{}, ErrNotStarted
	}
	if err := ctx.Err(); err != nil {
		return Verdict{}, err
	}

	v, err := Validate(ctx, raw, s.state.Root(), s.state.used, s.dict, s.lang)
	if err != nil {
		return Verdict{}, err
	}
	if !v.Accepted() {
		s.lastRejection = v.Rejection
		s.logger.Debug().Str("word", v.Word).Str("kind", string(v.Rejection.Kind)).Msg("word rejected")
		return v, nil
	}

	s.state.ApplyAccepted(v.Word)
	s.lastRejection = nil
	s.logger.Debug().Str("word", v.Word).Int("score", s.state.Score()).Msg("word accepted")
	return v, nil
}

// View is what the presentation layer renders.
type View struct {
	Snapshot
	Started       bool       `json:"started"`
	LastRejection *Rejection `json:"lastRejection,omitempty"`
}

func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{
		Snapshot:      s.state.Snapshot(),
		Started:       s.started,
		LastRejection: s.lastRejection,
	}
}

// Subscribe registers fn for state change events. fn runs while the
// session is locked, so it must not call back into the session; the Event
// already carries a snapshot. The returned func unregisters fn and must not
// be called from inside fn.
func (s *Session) Subscribe(fn func(Event)) (cancel func()) {
	s.mu.Lock()
	c := s.state.Subscribe(fn)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		c()
	}
}

// RandomPick is the default Picker: a uniform crypto/rand index.
func RandomPick(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

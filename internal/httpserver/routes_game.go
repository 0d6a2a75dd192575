// internal/httpserver/routes_game.go
//
// HTTP routes for playing a game.
//   - POST   /game/new      → create and start a session, issue its token
//   - GET    /game/state    → current root word, used words, score, last rejection
//   - POST   /game/word     → submit a word
//   - POST   /game/restart  → pick a new root word and reset the session
//   - DELETE /game          → drop the session and clear the cookie
//
// Rejected words are a normal 200 response with accepted=false; only
// transport-level problems (busy, no session, dictionary failure) use error codes.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jesuscallejadev/WordScramble/internal/daily"
	"github.com/jesuscallejadev/WordScramble/internal/game"
)

const (
	modeRandom = "random"
	modeDaily  = "daily"
)

// mountGame registers all /game routes.
func (s *Server) mountGame() {
	s.r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/state", s.handleState)
			r.Post("/word", s.handleWord)
			r.Post("/restart", s.handleRestart)
			r.Delete("/", s.handleLeave)
		})
	})
}

// entry is one used word as the client lists it.
type entry struct {
	Word   string `json:"word"`
	Length int    `json:"length"`
}

// stateRes is the presentation view of a session.
type stateRes struct {
	GameID        string          `json:"gameId"`
	RootWord      string          `json:"rootWord"`
	Entries       []entry         `json:"entries"` // most recent first
	Score         int             `json:"score"`
	Started       bool            `json:"started"`
	LastRejection *game.Rejection `json:"lastRejection,omitempty"`
}

func toStateRes(sess *game.Session) stateRes {
	v := sess.View()
	entries := make([]entry, 0, len(v.Used))
	for _, w := range v.Used {
		entries = append(entries, entry{Word: w, Length: len([]rune(w))})
	}
	return stateRes{
		GameID:        sess.ID(),
		RootWord:      v.Root,
		Entries:       entries,
		Score:         v.Score,
		Started:       v.Started,
		LastRejection: v.LastRejection,
	}
}

// -----------------------------------------------------------------------------
// /game/new

type newGameReq struct {
	Mode string `json:"mode"` // "random" (default) | "daily"
}

type newGameRes struct {
	Token string   `json:"token"`
	Mode  string   `json:"mode"`
	Date  string   `json:"date,omitempty"` // daily mode only
	State stateRes `json:"state"`
}

// handleNewGame creates a fresh session, starts it and hands back its token.
// A caller that already holds a valid token has the old session dropped.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Mode == "" {
		req.Mode = modeRandom
	}

	opts := []game.Option{
		game.WithLanguage(s.cfg.Language),
		game.WithLogger(*logger(r)),
	}
	res := newGameRes{Mode: req.Mode}
	switch req.Mode {
	case modeRandom:
	case modeDaily:
		now := s.now()
		res.Date = daily.DateKey(now)
		opts = append(opts, game.WithPicker(daily.Picker(now, s.cfg.DailySalt)))
	default:
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}

	sess := game.NewSession(s.roots, s.dict, opts...)
	if err := sess.Start(r.Context()); err != nil {
		logger(r).Error().Err(err).Msg("start game")
		if errors.Is(err, game.ErrNoRootWord) {
			writeError(w, http.StatusInternalServerError, "no_root_word")
			return
		}
		writeError(w, http.StatusServiceUnavailable, "start_failed")
		return
	}

	if old, err := s.parseToken(bearerOrCookie(r, s.cfg.CookieName)); err == nil {
		_ = s.store.Delete(r.Context(), old)
	}
	// Sessions idle past the token lifetime can never be reached again.
	if n := s.store.Prune(r.Context(), s.now().Add(-s.cfg.SessionTTL)); n > 0 {
		logger(r).Debug().Int("pruned", n).Msg("dropped idle sessions")
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		logger(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	tok, exp, err := s.signToken(sess.ID())
	if err != nil {
		logger(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)

	res.Token = tok
	res.State = toStateRes(sess)
	logger(r).Info().Str("gameId", sess.ID()).Str("mode", req.Mode).Str("root", res.State.RootWord).Msg("new game")
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// /game/state

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toStateRes(sessionFrom(r.Context())))
}

// -----------------------------------------------------------------------------
// /game/word

type wordReq struct {
	Word string `json:"word"`
}

type wordRes struct {
	Accepted  bool            `json:"accepted"`
	Word      string          `json:"word"`
	Rejection *game.Rejection `json:"rejection,omitempty"`
	State     stateRes        `json:"state"`
}

// handleWord runs one submission through the session.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r.Context())

	v, err := sess.Submit(r.Context(), req.Word)
	switch {
	case err == nil:
	case errors.Is(err, game.ErrBusy):
		writeError(w, http.StatusConflict, "busy")
		return
	case errors.Is(err, game.ErrNotStarted):
		writeError(w, http.StatusConflict, "not_started")
		return
	case isTimeout(err):
		writeError(w, http.StatusServiceUnavailable, "timeout")
		return
	default:
		logger(r).Error().Err(err).Str("gameId", sess.ID()).Msg("submit word")
		writeError(w, http.StatusBadGateway, "dictionary_error")
		return
	}

	writeJSON(w, http.StatusOK, wordRes{
		Accepted:  v.Accepted(),
		Word:      v.Word,
		Rejection: v.Rejection,
		State:     toStateRes(sess),
	})
}

// -----------------------------------------------------------------------------
// /game/restart

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := sess.Start(r.Context()); err != nil {
		logger(r).Error().Err(err).Str("gameId", sess.ID()).Msg("restart game")
		if isTimeout(err) {
			writeError(w, http.StatusServiceUnavailable, "timeout")
			return
		}
		writeError(w, http.StatusInternalServerError, "restart_failed")
		return
	}
	writeJSON(w, http.StatusOK, toStateRes(sess))
}

// -----------------------------------------------------------------------------
// DELETE /game

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	_ = s.store.Delete(r.Context(), sess.ID())
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// isTimeout reports whether err came from a canceled or expired request context.
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

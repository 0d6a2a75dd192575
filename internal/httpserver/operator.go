package httpserver

import (
	"context"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// mountOperator registers /debug/words when an operator password hash is
// configured. Without one the route does not exist.
func (s *Server) mountOperator() {
	if s.cfg.OperatorPasswordHash == "" {
		return
	}
	s.r.With(s.requireOperator).Get("/debug/words", s.handleDebugWords)
}

// requireOperator checks the basic-auth password against the bcrypt hash.
// The username is ignored.
func (s *Server) requireOperator(next http.Handler) http.Handler {
	hash := []byte(s.cfg.OperatorPasswordHash)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, pw, ok := r.BasicAuth()
		if !ok || bcrypt.CompareHashAndPassword(hash, []byte(pw)) != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="operator"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type debugWordsRes struct {
	Roots      int    `json:"roots"`
	Dictionary int    `json:"dictionary"`
	Language   string `json:"language"`
	Sessions   int    `json:"sessions"`
}

// handleDebugWords reports word list and session counts.
func (s *Server) handleDebugWords(w http.ResponseWriter, r *http.Request) {
	res := debugWordsRes{Language: s.cfg.Language, Sessions: s.store.Len(), Roots: -1, Dictionary: -1}
	if src, ok := s.roots.(interface{ Len() int }); ok {
		res.Roots = src.Len()
	}
	switch d := s.dict.(type) {
	case interface{ Len(string) int }:
		res.Dictionary = d.Len(s.cfg.Language)
	case interface {
		Len(context.Context, string) (int, error)
	}:
		n, err := d.Len(r.Context(), s.cfg.Language)
		if err != nil {
			logger(r).Warn().Err(err).Msg("count dictionary")
		} else {
			res.Dictionary = n
		}
	}
	writeJSON(w, http.StatusOK, res)
}

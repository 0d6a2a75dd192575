package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jesuscallejadev/WordScramble/internal/config"
	"github.com/jesuscallejadev/WordScramble/internal/daily"
	"github.com/jesuscallejadev/WordScramble/internal/game"
	"github.com/jesuscallejadev/WordScramble/internal/store"
	"github.com/jesuscallejadev/WordScramble/internal/words"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(map[string]string{"JWT_SECRET": "test-secret"})
	require.NoError(t, err)
	return cfg
}

func newTestServer(t *testing.T, cfg config.Config, roots ...string) (*Server, store.Store) {
	t.Helper()
	dict := words.NewDictionary()
	dict.Add("en", []string{"swim", "silk", "worm", "milk", "act", "cat"})
	st := store.NewMemoryStore()
	return New(cfg, st, words.NewSource(roots), dict), st
}

type client struct {
	t     *testing.T
	h     http.Handler
	token string
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (c *client) newGame(body string) newGameRes {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/game/new", body)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[newGameRes](c.t, rec)
	c.token = res.Token
	return res
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(t), "silkworm")
	c := &client{t: t, h: srv.Router()}

	rec := c.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok":true}`, rec.Body.String())
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = c.do(http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"not_found","path":"/nope"}`, rec.Body.String())
}

func TestGameFlow(t *testing.T) {
	srv, st := newTestServer(t, testConfig(t), "silkworm")
	c := &client{t: t, h: srv.Router()}

	res := c.newGame("")
	require.Equal(t, modeRandom, res.Mode)
	require.NotEmpty(t, res.Token)
	require.Equal(t, "silkworm", res.State.RootWord)
	require.True(t, res.State.Started)
	require.Empty(t, res.State.Entries)
	require.Equal(t, 1, st.Len())

	rec := c.do(http.MethodPost, "/game/word", `{"word":"  Swim "}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	wr := decode[wordRes](t, rec)
	require.True(t, wr.Accepted)
	require.Equal(t, "swim", wr.Word)
	require.Nil(t, wr.Rejection)
	require.Equal(t, 4, wr.State.Score)

	rec = c.do(http.MethodPost, "/game/word", `{"word":"silk"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPost, "/game/word", `{"word":"silkworm"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	wr = decode[wordRes](t, rec)
	require.False(t, wr.Accepted)
	require.Equal(t, game.RejectSameAsRoot, wr.Rejection.Kind)

	rec = c.do(http.MethodGet, "/game/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[stateRes](t, rec)
	want := []entry{{Word: "silk", Length: 4}, {Word: "swim", Length: 4}}
	if diff := cmp.Diff(want, state.Entries); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 8, state.Score)
	require.NotNil(t, state.LastRejection)
	require.Equal(t, game.RejectSameAsRoot, state.LastRejection.Kind)

	rec = c.do(http.MethodPost, "/game/restart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	state = decode[stateRes](t, rec)
	require.Equal(t, res.State.GameID, state.GameID)
	require.Empty(t, state.Entries)
	require.Zero(t, state.Score)
	require.Nil(t, state.LastRejection)

	rec = c.do(http.MethodDelete, "/game", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, st.Len())
	require.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")

	rec = c.do(http.MethodGet, "/game/state", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRejectionKinds(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(t), "cat")
	c := &client{t: t, h: srv.Router()}
	c.newGame(`{"mode":"random"}`)

	rec := c.do(http.MethodPost, "/game/word", `{"word":"act"}`)
	require.True(t, decode[wordRes](t, rec).Accepted)

	for word, kind := range map[string]game.RejectionKind{
		"xz":  game.RejectTooShort,
		"cat": game.RejectSameAsRoot,
		"act": game.RejectAlreadyUsed,
		"dog": game.RejectNotPossible,
		"tac": game.RejectNotReal,
	} {
		rec := c.do(http.MethodPost, "/game/word", `{"word":"`+word+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		wr := decode[wordRes](t, rec)
		require.False(t, wr.Accepted, word)
		require.Equal(t, kind, wr.Rejection.Kind, word)
		require.Equal(t, 3, wr.State.Score)
	}
}

func TestSessionTokenRequired(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(t), "cat")
	c := &client{t: t, h: srv.Router()}

	rec := c.do(http.MethodGet, "/game/state", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	c.token = "garbage"
	rec = c.do(http.MethodPost, "/game/word", `{"word":"act"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// A token signed with another secret is rejected.
	other := *srv
	other.cfg.JWTSecret = "other"
	tok, _, err := other.signToken("someid")
	require.NoError(t, err)
	c.token = tok
	rec = c.do(http.MethodGet, "/game/state", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionTokenExpires(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(t), "cat")
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	srv.now = func() time.Time { return now }
	c := &client{t: t, h: srv.Router()}
	c.newGame("")

	now = now.Add(srv.cfg.SessionTTL + time.Minute)
	rec := c.do(http.MethodGet, "/game/state", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionCookie(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(t), "cat")
	req := httptest.NewRequest(http.MethodPost, "/game/new", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "scramble_session", cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/game/state", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "cat", decode[stateRes](t, rec).RootWord)
}

func TestNewGameReplacesOldSession(t *testing.T) {
	srv, st := newTestServer(t, testConfig(t), "cat")
	c := &client{t: t, h: srv.Router()}
	first := c.newGame("")
	second := c.newGame("")
	require.NotEqual(t, first.State.GameID, second.State.GameID)
	require.Equal(t, 1, st.Len())
	_, err := st.Get(context.Background(), first.State.GameID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNewGameBadInput(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(t), "cat")
	c := &client{t: t, h: srv.Router()}

	rec := c.do(http.MethodPost, "/game/new", `{"mode":"blitz"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"bad_mode"}`, rec.Body.String())

	rec = c.do(http.MethodPost, "/game/new", `{`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	c.newGame("")
	rec = c.do(http.MethodPost, "/game/word", `not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDailyMode(t *testing.T) {
	roots := []string{"silkworm", "cat", "notebook", "mountain", "elephant"}
	srv, _ := newTestServer(t, testConfig(t), roots...)
	day := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	srv.now = func() time.Time { return day }

	a := &client{t: t, h: srv.Router()}
	b := &client{t: t, h: srv.Router()}
	ra := a.newGame(`{"mode":"daily"}`)
	rb := b.newGame(`{"mode":"daily"}`)

	require.Equal(t, "2026-10-14", ra.Date)
	require.Equal(t, ra.State.RootWord, rb.State.RootWord)
	require.Equal(t, roots[daily.WordIndex(day, srv.cfg.DailySalt, len(roots))], ra.State.RootWord)
	require.NotEqual(t, ra.State.GameID, rb.State.GameID)
}

func TestNoRootWord(t *testing.T) {
	cfg := testConfig(t)
	broken := game.RootSourceFunc(func() ([]string, error) { return nil, errors.New("unreadable") })
	srv := New(cfg, store.NewMemoryStore(), broken, words.NewDictionary())
	c := &client{t: t, h: srv.Router()}

	rec := c.do(http.MethodPost, "/game/new", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"no_root_word"}`, rec.Body.String())
}

func TestEmptyPoolUsesFallback(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(t))
	c := &client{t: t, h: srv.Router()}
	require.Equal(t, game.FallbackRoot, c.newGame("").State.RootWord)
}

func TestDictionaryFailure(t *testing.T) {
	cfg := testConfig(t)
	dict := game.DictionaryFunc(func(context.Context, string, string) (bool, error) {
		return false, errors.New("offline")
	})
	srv := New(cfg, store.NewMemoryStore(), words.NewSource([]string{"cat"}), dict)
	c := &client{t: t, h: srv.Router()}
	c.newGame("")

	rec := c.do(http.MethodPost, "/game/word", `{"word":"act"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	rec = c.do(http.MethodGet, "/game/state", "")
	require.Empty(t, decode[stateRes](t, rec).Entries)
}

func TestDebugWords(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := testConfig(t)
	srv, _ := newTestServer(t, cfg, "cat")
	c := &client{t: t, h: srv.Router()}
	require.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/debug/words", "").Code)

	cfg.OperatorPasswordHash = string(hash)
	srv, _ = newTestServer(t, cfg, "cat", "silkworm")
	c = &client{t: t, h: srv.Router()}
	c.newGame("")

	req := httptest.NewRequest(http.MethodGet, "/debug/words", nil)
	req.SetBasicAuth("operator", "wrong")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))

	req = httptest.NewRequest(http.MethodGet, "/debug/words", nil)
	req.SetBasicAuth("operator", "letmein")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, debugWordsRes{Roots: 2, Dictionary: 6, Language: "en", Sessions: 1}, decode[debugWordsRes](t, rec))
}

func TestIdleSessionsArePruned(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	cfg := testConfig(t)
	st := store.NewMemoryStore(store.WithClock(clock))
	srv := New(cfg, st, words.NewSource([]string{"cat"}), words.NewDictionary())
	srv.now = clock

	for i := 0; i < 50; i++ {
		(&client{t: t, h: srv.Router()}).newGame("")
	}
	require.Equal(t, 50, st.Len())

	now = now.Add(2 * cfg.SessionTTL)
	last := (&client{t: t, h: srv.Router()}).newGame("")
	require.Equal(t, 1, st.Len())
	_, err := st.Get(context.Background(), last.State.GameID)
	require.NoError(t, err)
}

func TestRestartCanceledRequest(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(t), "cat")
	c := &client{t: t, h: srv.Router()}
	c.newGame("")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/game/restart", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+c.token)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.JSONEq(t, `{"error":"timeout"}`, rec.Body.String())
}

package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jesuscallejadev/WordScramble/internal/config"
	"github.com/jesuscallejadev/WordScramble/internal/dictdb"
	"github.com/jesuscallejadev/WordScramble/internal/game"
	"github.com/jesuscallejadev/WordScramble/internal/httpserver"
	"github.com/jesuscallejadev/WordScramble/internal/store"
	"github.com/jesuscallejadev/WordScramble/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// No root words means no game; refuse to start.
	roots, err := words.LoadSource(cfg.RootWordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load root words")
	}
	if roots.Len() == 0 {
		log.Warn().Str("fallback", game.FallbackRoot).Msg("root word list is empty")
	}

	dict, closeDict, err := openDictionary(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	defer closeDict()

	srv := httpserver.New(cfg, store.NewMemoryStore(), roots, dict)
	log.Info().Str("port", cfg.Port).Int("roots", roots.Len()).Msg("starting wordscramble server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openDictionary returns the in-memory dictionary, or the SQLite one when
// DICTIONARY_DB is set. The SQLite file is seeded from the same word list
// the first time it is opened.
func openDictionary(ctx context.Context, cfg config.Config) (game.Dictionary, func(), error) {
	mem, err := words.LoadDictionary(cfg.Language, cfg.DictionaryFile)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DictionaryDB == "" {
		log.Info().Str("lang", cfg.Language).Int("words", mem.Len(cfg.Language)).Msg("dictionary loaded")
		return mem, func() {}, nil
	}

	db, err := dictdb.Open(cfg.DictionaryDB)
	if err != nil {
		return nil, nil, err
	}
	if err := dictdb.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	seeded, err := dictdb.Seed(ctx, db, cfg.Language, mem.Words(cfg.Language))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	log.Info().Str("db", cfg.DictionaryDB).Str("lang", cfg.Language).Bool("seeded", seeded).Msg("dictionary opened")
	return dictdb.NewDictionary(db), func() { _ = db.Close() }, nil
}

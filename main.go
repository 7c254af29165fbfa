package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spectrum/apps/go-server/internal/archive"
	"github.com/robalobadob/spectrum/apps/go-server/internal/cards"
	"github.com/robalobadob/spectrum/apps/go-server/internal/config"
	"github.com/robalobadob/spectrum/apps/go-server/internal/httpserver"
	"github.com/robalobadob/spectrum/apps/go-server/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.ZerologLevel())
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := cards.Init(cfg.CardsFile); err != nil {
		log.Fatal().Err(err).Str("file", cfg.CardsFile).Msg("failed to load spectrum cards")
	}

	db, err := archive.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open archive")
	}
	defer db.Close()
	if err := archive.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate archive")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(cfg, mem, cards.Default(), archive.NewStore(db))
	log.Info().Str("port", cfg.Port).Int("cards", cards.Default().Len()).
		Bool("wraparound", cfg.Wraparound).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"musicmonkey/internal/config"
	"musicmonkey/internal/discord"
	"musicmonkey/internal/logging"
	"musicmonkey/internal/storage"
	v "musicmonkey/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Setup(cfg.LogLevel, cfg.LogFile)
	log.Info().Str("name", v.AppName).Str("version", v.AppVersion).Msg("starting bot")

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := discord.StartBot(ctx, cfg, store); err != nil {
		log.Fatal().Err(err).Msg("bot exited with error")
	}

	log.Info().Msg("bot exited cleanly")
}

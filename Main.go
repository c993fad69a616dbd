package main

import (
	"flag"
	"os"

	"checkers/config"
	"checkers/game/network"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "checkers.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg.Log)

	gin.SetMode(gin.ReleaseMode)
	hub := network.NewHub(
		network.WithBufferSizes(cfg.WS.ReadBuffer, cfg.WS.WriteBuffer),
		network.WithCheckOrigin(cfg.WS.CheckOrigin),
		network.WithMaxRooms(cfg.MaxRooms),
	)
	r := newRouter(hub)

	log.Info().Str("addr", cfg.Addr).Msg("server starting")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

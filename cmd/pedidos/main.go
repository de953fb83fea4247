package main

import (
	"os"
	"time"

	"github.com/Chelosky-O/soyElectronico/internal/config"
	"github.com/Chelosky-O/soyElectronico/internal/infra"
	"github.com/Chelosky-O/soyElectronico/internal/router"
	"github.com/Chelosky-O/soyElectronico/internal/token"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load(8083)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	codec := token.NewCodec(cfg.JWTSecret, time.Duration(cfg.JWTExpirationSeconds)*time.Second)

	r := router.NewPedidos(cfg, db, codec)
	infra.Run("pedidos-service", r, cfg.Port)
}

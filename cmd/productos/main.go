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

	cfg, err := config.Load(8082)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	// Redis is optional — an empty REDIS_URL disables the catalog cache.
	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	codec := token.NewCodec(cfg.JWTSecret, time.Duration(cfg.JWTExpirationSeconds)*time.Second)

	r := router.NewProductos(cfg, db, rdb, codec)
	infra.Run("productos-service", r, cfg.Port)
}

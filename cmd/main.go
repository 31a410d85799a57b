// Package main provides the API that reconciles wallet top-ups and
// authorizes container borrows.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/reloop-app/reloop-core/cmd/httpserver"
	"github.com/reloop-app/reloop-core/internal/middleware"
	"github.com/reloop-app/reloop-core/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	server, err := httpserver.New(logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("RELOOP CORE API HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

package main

import (
	"os"

	"github.com/yigit/uniactivity/internal/pkg/logger"
	"github.com/yigit/uniactivity/internal/server"
)

// @title University Activity API
// @version 1.0
// @description Classes, enrollments and attendance for university activities
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// blocks until shutdown
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

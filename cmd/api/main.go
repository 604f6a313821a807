package main

import (
	"os"

	"github.com/unizg/careerhub/internal/pkg/logger"
	"github.com/unizg/careerhub/internal/server"
)

// @title CareerHub API
// @version 1.0
// @description Backend for the university career services portal: student and company accounts, job applications, events and the career assistant.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email karijere@unizg.hr

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

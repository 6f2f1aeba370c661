package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"telcochurn/app"
	"telcochurn/internal"
	"telcochurn/internal/config"
	"telcochurn/internal/errors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		internal.DefaultLogger.Error("Failed to load configuration: %v", err)
		os.Exit(app.ExitCode(err))
	}
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Logging.Level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := app.NewDefaultPipeline(appConfig, logger).Run(ctx)
	if err != nil {
		stop()
		logger.Error("Pipeline failed (%s): %v", errors.GetCode(err), err)
		os.Exit(app.ExitCode(err))
	}

	log.Printf("Run %s complete: %d rows cleaned, %d artifacts under %s",
		result.RunID, result.CleanRows, len(result.Manifest.Artifacts), appConfig.Paths.RootDir)
}

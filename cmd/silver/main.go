package main

import (
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/Yagoas/SinistrosPRF/config"
	"github.com/Yagoas/SinistrosPRF/extract"
	"github.com/Yagoas/SinistrosPRF/load"
	"github.com/Yagoas/SinistrosPRF/pipeline"
	"github.com/Yagoas/SinistrosPRF/transform"
)

func main() {
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stdout })).With().Timestamp().Logger()

	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("No .env file found, using environment")
	}
	settings := config.FromEnv()

	db, err := waitForDatabase(settings.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()

	extractor := extract.NewExtractor(settings.Paths.BronzeDir, log)
	engine := transform.NewEngine(log)
	loader := load.NewLoader(db, log)

	p := pipeline.New(extractor, engine, loader, settings.Paths.BronzeDir, settings.Paths.SilverDir, log)
	runErr := p.Run()
	if runErr != nil {
		log.Error().Err(runErr).Msg("Pipeline failed")
	} else {
		if _, err := loader.Validate(); err != nil {
			log.Error().Err(err).Msg("Post-load validation failed")
		}
		log.Info().Msg("Pipeline finished successfully")
	}

	if settings.KeepAlive {
		log.Info().Msg("KEEP_ALIVE set, container idling")
		for {
			time.Sleep(time.Minute)
		}
	}

	if runErr != nil {
		os.Exit(1)
	}
}

// waitForDatabase retries the connection while PostgreSQL starts up.
func waitForDatabase(cfg config.Database, log zerolog.Logger) (*sqlx.DB, error) {
	const (
		maxRetries = 30
		retryDelay = 2 * time.Second
	)

	var db *sqlx.DB
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err = sqlx.Connect("postgres", cfg.ConnectionString())
		if err == nil {
			log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("Database connection established")
			return db, nil
		}
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_retries", maxRetries).
			Msg("Database not ready, retrying")
		time.Sleep(retryDelay)
	}
	return nil, err
}

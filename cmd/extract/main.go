package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Yagoas/SinistrosPRF/config"
	"github.com/Yagoas/SinistrosPRF/extract"
)

// Standalone acquisition run: downloads and stages every configured year
// without touching the database.
func main() {
	force := flag.Bool("force", false, "re-download sources even when already staged")
	flag.Parse()

	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stdout })).With().Timestamp().Logger()

	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("No .env file found, using environment")
	}
	settings := config.FromEnv()

	extractor := extract.NewExtractor(settings.Paths.BronzeDir, log)
	if err := extractor.ExtractAll(*force); err != nil {
		log.Error().Err(err).Msg("Extraction failed")
		os.Exit(1)
	}
	log.Info().Str("bronze_dir", settings.Paths.BronzeDir).Msg("Extraction completed")
}

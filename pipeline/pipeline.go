// Package pipeline orchestrates the bronze-to-silver run: acquisition,
// bronze read, transform, audit output and database load.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Yagoas/SinistrosPRF/dataset"
	"github.com/Yagoas/SinistrosPRF/load"
	"github.com/Yagoas/SinistrosPRF/transform"
)

// AuditFilename is the canonical dataset materialized alongside the
// database load for audit.
const AuditFilename = "sinistros_tratado.csv"

// Extractor stages the yearly source archives into the bronze directory.
type Extractor interface {
	ExtractAll(force bool) error
}

// Loader persists the canonical dataset.
type Loader interface {
	Load(ds *dataset.Dataset, mode load.Mode) error
}

// Pipeline runs the bronze-to-silver ETL end to end.
type Pipeline struct {
	extractor Extractor
	engine    *transform.Engine
	loader    Loader
	bronzeDir string
	silverDir string
	log       zerolog.Logger
}

// New creates a Pipeline. The loader may be nil when running without a
// database (transform-only runs still produce the audit CSV).
func New(extractor Extractor, engine *transform.Engine, loader Loader, bronzeDir, silverDir string, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		engine:    engine,
		loader:    loader,
		bronzeDir: bronzeDir,
		silverDir: silverDir,
		log:       log,
	}
}

// Run executes the full pipeline. Structural failures (no source files,
// empty dataset, load errors) abort the run with a non-nil error naming
// the failed step.
func (p *Pipeline) Run() error {
	runID := uuid.NewString()
	log := p.log.With().Str("run_id", runID).Logger()
	started := time.Now()
	log.Info().Msg("Starting silver pipeline")

	if p.extractor != nil {
		if err := p.extractor.ExtractAll(false); err != nil {
			return fmt.Errorf("extract: %w", err)
		}
	}

	bronze, err := p.ReadBronze()
	if err != nil {
		return fmt.Errorf("read bronze: %w", err)
	}
	p.validateBronze(bronze, log)

	silver, stages, err := p.engine.Transform(bronze)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	for _, m := range stages {
		for key, value := range m.Counters {
			log.Info().Str("stage", m.Stage).Int(key, value).Msg("Stage counter")
		}
	}

	if err := os.MkdirAll(p.silverDir, 0755); err != nil {
		return fmt.Errorf("audit output: %w", err)
	}
	auditPath := filepath.Join(p.silverDir, AuditFilename)
	if err := silver.WriteCSVFile(auditPath); err != nil {
		return fmt.Errorf("audit output: %w", err)
	}
	log.Info().Str("path", auditPath).Int("rows", silver.Len()).Msg("Audit CSV written")

	if p.loader != nil {
		if err := p.loader.Load(silver, load.ModeAuto); err != nil {
			return fmt.Errorf("load: %w", err)
		}
	}

	log.Info().
		Dur("duration", time.Since(started)).
		Int("rows", silver.Len()).
		Int("cols", silver.NumColumns()).
		Msg("Pipeline completed")
	return nil
}

// ReadBronze reads every CSV in the bronze directory and concatenates
// them, taking the union of columns. No readable file is a structural
// error; individually broken or empty files are skipped with a log entry.
func (p *Pipeline) ReadBronze() (*dataset.Dataset, error) {
	paths, err := filepath.Glob(filepath.Join(p.bronzeDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to list bronze directory: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no csv files found in %s", p.bronzeDir)
	}
	sort.Strings(paths)

	var combined *dataset.Dataset
	read := 0
	for _, path := range paths {
		ds, err := dataset.ReadCSVFile(path)
		if err != nil {
			p.log.Error().Err(err).Str("file", filepath.Base(path)).Msg("Failed to read bronze file, skipping")
			continue
		}
		if ds.Len() == 0 {
			p.log.Warn().Str("file", filepath.Base(path)).Msg("Bronze file is empty, skipping")
			continue
		}
		p.log.Info().
			Str("file", filepath.Base(path)).
			Int("rows", ds.Len()).
			Int("cols", ds.NumColumns()).
			Msg("Bronze file read")

		if combined == nil {
			combined = ds
		} else {
			combined.Append(ds)
		}
		read++
	}

	if combined == nil {
		return nil, fmt.Errorf("no bronze file could be read from %s", p.bronzeDir)
	}
	p.log.Info().
		Int("files", read).
		Int("rows", combined.Len()).
		Int("cols", combined.NumColumns()).
		Msg("Bronze files combined")
	return combined, nil
}

// validateBronze logs basic quality signals on the combined raw table.
func (p *Pipeline) validateBronze(ds *dataset.Dataset, log zerolog.Logger) {
	for _, name := range []string{"id", "data_inversa", "uf"} {
		if !ds.Has(name) {
			log.Warn().Str("column", name).Msg("Critical column missing from bronze data")
			continue
		}
		nulls := 0
		for _, v := range ds.Column(name) {
			if v.IsNull() || v.Text() == "" {
				nulls++
			}
		}
		if nulls > 0 {
			log.Warn().Str("column", name).Int("nulls", nulls).Msg("Critical column has null values")
		}
	}
}

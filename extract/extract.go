// Package extract acquires the yearly PRF accident archives and stages
// them as UTF-8 CSVs in the bronze directory.
package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/charmap"

	"github.com/Yagoas/SinistrosPRF/dataset"
)

// Source describes one yearly archive published by the PRF.
type Source struct {
	URL         string
	Filename    string
	Description string
}

// Sources maps year to its official download location.
var Sources = map[string]Source{
	"2024": {
		URL:         "https://drive.usercontent.google.com/uc?id=14qBOhrE1gioVtuXgxkCJ9kCA8YtUGXKA&export=download",
		Filename:    "acidentes2024_todas_causas_tipos.csv",
		Description: "Sinistros PRF 2024",
	},
	"2025": {
		URL:         "https://drive.usercontent.google.com/uc?id=1-PJGRbfSe7PVjU37A3wTCls_NRXyVGRD&export=download",
		Filename:    "acidentes2025_todas_causas_tipos.csv",
		Description: "Sinistros PRF 2025",
	},
}

// expectedColumns are the raw columns a sane PRF export always carries;
// their absence is logged but does not fail the extraction.
var expectedColumns = []string{"data_inversa", "br", "km", "municipio", "uf"}

// Extractor downloads, unpacks and stages the source archives.
type Extractor struct {
	bronzeDir string
	client    *http.Client
	log       zerolog.Logger
}

// NewExtractor creates an Extractor staging into bronzeDir. The HTTP
// client retries transient failures with backoff.
func NewExtractor(bronzeDir string, log zerolog.Logger) *Extractor {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.Logger = nil
	retryClient.HTTPClient = &http.Client{
		Timeout: 120 * time.Second,
	}

	return &Extractor{
		bronzeDir: bronzeDir,
		client:    retryClient.StandardClient(),
		log:       log,
	}
}

// ExtractAll stages every configured year. It returns an error when any
// year fails, after attempting all of them.
func (e *Extractor) ExtractAll(force bool) error {
	var failed []string
	for year := range Sources {
		if err := e.ExtractYear(year, force); err != nil {
			e.log.Error().Err(err).Str("year", year).Msg("Extraction failed")
			failed = append(failed, year)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("extraction failed for years %s", strings.Join(failed, ", "))
	}
	e.log.Info().Int("years", len(Sources)).Msg("All sources extracted")
	return nil
}

// ExtractYear downloads and stages one year. An already-staged file is
// kept unless force is set.
func (e *Extractor) ExtractYear(year string, force bool) error {
	source, ok := Sources[year]
	if !ok {
		return fmt.Errorf("unknown year %s", year)
	}

	target := filepath.Join(e.bronzeDir, source.Filename)
	if !force {
		if info, err := os.Stat(target); err == nil {
			e.log.Info().
				Str("file", source.Filename).
				Int64("size_bytes", info.Size()).
				Msg("Staged file already exists, skipping download")
			return nil
		}
	}

	e.log.Info().Str("source", source.Description).Msg("Downloading archive")
	archive, err := e.download(source.URL)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", source.Description, err)
	}

	ds, err := DatasetFromZip(archive)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", source.Description, err)
	}

	e.validate(ds, year)

	if err := os.MkdirAll(e.bronzeDir, 0755); err != nil {
		return fmt.Errorf("failed to create bronze directory: %w", err)
	}
	if err := ds.WriteCSVFile(target); err != nil {
		return fmt.Errorf("failed to stage %s: %w", source.Filename, err)
	}

	e.log.Info().
		Str("file", source.Filename).
		Int("rows", ds.Len()).
		Int("cols", ds.NumColumns()).
		Msg("Year staged")
	return nil
}

func (e *Extractor) download(url string) ([]byte, error) {
	resp, err := e.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	e.log.Info().Int("size_bytes", len(content)).Msg("Download completed")
	return content, nil
}

// DatasetFromZip locates the first CSV member of a zip archive, decodes
// it from latin-1 and parses it into a Dataset.
func DatasetFromZip(archive []byte) (*dataset.Dataset, error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}

	var member *zip.File
	for _, f := range reader.File {
		if strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			member = f
			break
		}
	}
	if member == nil {
		return nil, fmt.Errorf("no csv file found in archive")
	}

	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", member.Name, err)
	}
	defer rc.Close()

	// PRF publishes latin-1 encoded CSVs; everything downstream is UTF-8.
	decoded := charmap.ISO8859_1.NewDecoder().Reader(rc)
	ds, err := dataset.ReadCSV(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", member.Name, err)
	}
	return ds, nil
}

// validate performs the light completeness check on a staged table.
func (e *Extractor) validate(ds *dataset.Dataset, year string) {
	var missing []string
	for _, col := range expectedColumns {
		if !slices.Contains(ds.Columns(), col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		e.log.Warn().
			Str("year", year).
			Strs("columns", missing).
			Msg("Expected columns missing from source")
	}

	if ds.Has("data_inversa") {
		valid := 0
		for _, v := range ds.Column("data_inversa") {
			if strings.TrimSpace(v.Text()) != "" {
				valid++
			}
		}
		e.log.Info().
			Str("year", year).
			Int("rows", ds.Len()).
			Int("valid_dates", valid).
			Msg("Source validated")
	}
}

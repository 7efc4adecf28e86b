package load

import (
	"database/sql"
	"fmt"
	"time"
)

// ValidationReport summarizes the loaded silver table.
type ValidationReport struct {
	TotalRecords        int64
	SinistrosUnicos     int64
	PessoasEnvolvidas   int64
	VeiculosEnvolvidos  int64
	PeriodoInicio       *time.Time
	PeriodoFim          *time.Time
	UFsDistintas        int64
	MunicipiosDistintos int64
	Gravidade           []GravidadeCount
	TotalMortos         int64
	TotalFeridos        int64
	TotalIlesos         int64
}

// GravidadeCount is one row of the severity distribution.
type GravidadeCount struct {
	Gravidade string `db:"gravidade"`
	Count     int64  `db:"count"`
}

// Validate runs the post-load validation queries and logs the results.
func (l *Loader) Validate() (*ValidationReport, error) {
	table := fmt.Sprintf("%s.%s", l.schema, l.table)
	report := &ValidationReport{}

	if err := l.db.Get(&report.TotalRecords,
		fmt.Sprintf("SELECT COUNT(*) FROM %s", table)); err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	if err := l.db.Get(&report.SinistrosUnicos,
		fmt.Sprintf("SELECT COUNT(DISTINCT sinistro_id) FROM %s", table)); err != nil {
		return nil, fmt.Errorf("failed to count accidents: %w", err)
	}
	if err := l.db.Get(&report.PessoasEnvolvidas,
		fmt.Sprintf("SELECT COUNT(DISTINCT id_envolvido) FROM %s WHERE id_envolvido IS NOT NULL", table)); err != nil {
		return nil, fmt.Errorf("failed to count people: %w", err)
	}
	if err := l.db.Get(&report.VeiculosEnvolvidos,
		fmt.Sprintf("SELECT COUNT(DISTINCT veiculo_id) FROM %s WHERE veiculo_id IS NOT NULL", table)); err != nil {
		return nil, fmt.Errorf("failed to count vehicles: %w", err)
	}

	var period struct {
		DataInicio          sql.NullTime `db:"data_inicio"`
		DataFim             sql.NullTime `db:"data_fim"`
		UFsDistintas        int64        `db:"ufs_distintas"`
		MunicipiosDistintos int64        `db:"municipios_distintos"`
	}
	if err := l.db.Get(&period, fmt.Sprintf(`
		SELECT
			MIN(data) AS data_inicio,
			MAX(data) AS data_fim,
			COUNT(DISTINCT uf) AS ufs_distintas,
			COUNT(DISTINCT municipio) AS municipios_distintos
		FROM %s WHERE data IS NOT NULL`, table)); err != nil {
		return nil, fmt.Errorf("failed to query data period: %w", err)
	}
	if period.DataInicio.Valid {
		report.PeriodoInicio = &period.DataInicio.Time
	}
	if period.DataFim.Valid {
		report.PeriodoFim = &period.DataFim.Time
	}
	report.UFsDistintas = period.UFsDistintas
	report.MunicipiosDistintos = period.MunicipiosDistintos

	if err := l.db.Select(&report.Gravidade, fmt.Sprintf(`
		SELECT gravidade, COUNT(DISTINCT sinistro_id) AS count
		FROM %s
		WHERE gravidade IS NOT NULL
		GROUP BY gravidade
		ORDER BY count DESC`, table)); err != nil {
		return nil, fmt.Errorf("failed to query severity distribution: %w", err)
	}

	var totals struct {
		Mortos  sql.NullInt64 `db:"total_mortos"`
		Feridos sql.NullInt64 `db:"total_feridos"`
		Ilesos  sql.NullInt64 `db:"total_ilesos"`
	}
	if err := l.db.Get(&totals, fmt.Sprintf(`
		SELECT
			SUM(mortos) AS total_mortos,
			SUM(feridos) AS total_feridos,
			SUM(ilesos) AS total_ilesos
		FROM %s`, table)); err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}
	report.TotalMortos = totals.Mortos.Int64
	report.TotalFeridos = totals.Feridos.Int64
	report.TotalIlesos = totals.Ilesos.Int64

	l.log.Info().
		Int64("total_records", report.TotalRecords).
		Int64("sinistros_unicos", report.SinistrosUnicos).
		Int64("pessoas_envolvidas", report.PessoasEnvolvidas).
		Int64("veiculos_envolvidos", report.VeiculosEnvolvidos).
		Int64("ufs_distintas", report.UFsDistintas).
		Int64("municipios_distintos", report.MunicipiosDistintos).
		Msg("Load validated")
	for _, g := range report.Gravidade {
		l.log.Info().Str("gravidade", g.Gravidade).Int64("sinistros", g.Count).Msg("Severity distribution")
	}

	return report, nil
}

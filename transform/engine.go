package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Yagoas/SinistrosPRF/dataset"
)

// StageMetrics reports the table shape after one stage plus any counters
// the stage collected (outliers nulled, duplicates removed, ...).
type StageMetrics struct {
	Stage    string
	Rows     int
	Cols     int
	Counters map[string]int
}

// Engine applies the nine-stage silver transform. It holds no mutable
// state across runs; the lookup tables it consults are package-level and
// immutable.
type Engine struct {
	log zerolog.Logger
	now func() time.Time
}

// NewEngine creates a transform engine logging through the given logger.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{log: log, now: time.Now}
}

// Transform runs the full nine-stage pipeline over the raw table and
// returns the canonical table plus per-stage metrics. The input table is
// consumed. An empty input is a structural error; per-value parse
// failures inside stages become nulls and never abort the run.
func (e *Engine) Transform(ds *dataset.Dataset) (*dataset.Dataset, []StageMetrics, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, nil, fmt.Errorf("transform requires a non-empty dataset")
	}

	type stage struct {
		name string
		run  func(*dataset.Dataset) (*dataset.Dataset, map[string]int)
	}

	stages := []stage{
		{"prune_columns", e.pruneColumns},
		{"normalize_strings", e.normalizeStrings},
		{"convert_types", e.convertTypes},
		{"rename_columns", e.renameColumns},
		{"recode_values", e.recodeValues},
		{"derive_columns", e.deriveColumns},
		{"treat_outliers", e.treatOutliers},
		{"final_cleanup", e.finalCleanup},
		{"reconcile_schema", e.reconcileSchema},
	}

	metrics := make([]StageMetrics, 0, len(stages))
	for _, s := range stages {
		var counters map[string]int
		ds, counters = s.run(ds)
		m := StageMetrics{Stage: s.name, Rows: ds.Len(), Cols: ds.NumColumns(), Counters: counters}
		metrics = append(metrics, m)
		e.log.Info().
			Str("stage", s.name).
			Int("rows", m.Rows).
			Int("cols", m.Cols).
			Msg("Stage completed")
	}

	return ds, metrics, nil
}

// pruneColumns drops known-irrelevant source columns when present.
func (e *Engine) pruneColumns(ds *dataset.Dataset) (*dataset.Dataset, map[string]int) {
	dropped := ds.Drop(irrelevantColumns...)
	if dropped > 0 {
		e.log.Info().Int("dropped", dropped).Msg("Removed irrelevant columns")
	}
	return ds, map[string]int{"columns_dropped": dropped}
}

// normalizeStrings applies the generic textual pre-clean to every column:
// trim, null-literal mapping and decimal comma replacement.
func (e *Engine) normalizeStrings(ds *dataset.Dataset) (*dataset.Dataset, map[string]int) {
	for _, name := range ds.Columns() {
		ds.Apply(name, normalizeText)
	}
	return ds, map[string]int{"columns_normalized": ds.NumColumns()}
}

// convertTypes parses the typed source columns, coercing unparseable
// values to null.
func (e *Engine) convertTypes(ds *dataset.Dataset) (*dataset.Dataset, map[string]int) {
	for _, name := range intColumns {
		ds.Apply(name, parseInt)
	}
	for _, name := range floatColumns {
		ds.Apply(name, parseFloat)
	}
	// br is parsed numeric above and rendered back to text here, which
	// strips leading zeros before route formatting.
	for _, name := range stringColumns {
		ds.Apply(name, coerceString)
	}
	ds.Apply("data_inversa", parseDate)
	ds.Apply("horario", parseTimeOfDay)
	return ds, nil
}

// renameColumns applies the canonical rename map.
func (e *Engine) renameColumns(ds *dataset.Dataset) (*dataset.Dataset, map[string]int) {
	renamed := ds.Rename(renameMap)
	return ds, map[string]int{"columns_renamed": renamed}
}

// recodeValues applies the fixed categorical value substitutions.
func (e *Engine) recodeValues(ds *dataset.Dataset) (*dataset.Dataset, map[string]int) {
	ds.Apply("uso_solo", func(v dataset.Value) dataset.Value {
		switch v.Text() {
		case "Sim":
			return dataset.String("Urbano")
		case "Não":
			return dataset.String("Rural")
		}
		return v
	})
	ds.Apply("condicao_meteorologica", func(v dataset.Value) dataset.Value {
		if v.Text() == "Ceu" {
			return dataset.String("Céu")
		}
		return v
	})
	return ds, nil
}

// deriveColumns computes the derived analytical columns, in dependency
// order. Steps whose source columns are absent are skipped.
func (e *Engine) deriveColumns(ds *dataset.Dataset) (*dataset.Dataset, map[string]int) {
	n := ds.Len()

	// Total injuries: light + severe, missing counted as zero.
	if ds.Has("feridos_leves") && ds.Has("feridos_graves") {
		leves, graves := ds.Column("feridos_leves"), ds.Column("feridos_graves")
		feridos := make([]dataset.Value, n)
		for i := 0; i < n; i++ {
			l, _ := leves[i].Int()
			g, _ := graves[i].Int()
			feridos[i] = dataset.Int(l + g)
		}
		ds.SetColumn("feridos", feridos)
	}

	// Route formatting and numeric suffix.
	if ds.Has("rodovia") {
		ds.Apply("rodovia", formatRodovia)
		rodovia := ds.Column("rodovia")
		numero := make([]dataset.Value, n)
		for i := 0; i < n; i++ {
			numero[i] = rodoviaNumero(rodovia[i])
		}
		ds.SetColumn("rodovia_numero", numero)
	}

	// Combined timestamp and the temporal columns derived from it. Note
	// that data is re-derived here from data_hora, so a row whose time
	// failed to parse ends up with a null data even when the stage-3 date
	// parse succeeded.
	if ds.Has("data") && ds.Has("horario") {
		datas, horarios := ds.Column("data"), ds.Column("horario")
		dataHora := make([]dataset.Value, n)
		diaSemana := make([]dataset.Value, n)
		dataOnly := make([]dataset.Value, n)
		anos := make([]dataset.Value, n)
		horas := make([]dataset.Value, n)
		for i := 0; i < n; i++ {
			dh := combineDateTime(datas[i], horarios[i])
			dataHora[i] = dh
			if t, ok := dh.Time(); ok {
				diaSemana[i] = dataset.String(diasSemana[weekdayIndex(t)])
				dataOnly[i] = dataset.Date(t)
				anos[i] = dataset.Int(int64(t.Year()))
				horas[i] = dataset.Int(int64(t.Hour()))
			}
		}
		ds.SetColumn("data_hora", dataHora)
		ds.SetColumn("dia_semana", diaSemana)
		ds.SetColumn("data", dataOnly)
		ds.SetColumn("ano", anos)
		ds.SetColumn("hora", horas)
	}

	if ds.Has("hora") {
		ds.SetColumn("periodo", mapColumn(ds.Column("hora"), periodoDoDia))
	}
	if ds.Has("dia_semana") {
		ds.SetColumn("periodo_semana", mapColumn(ds.Column("dia_semana"), periodoSemana))
	}
	if ds.Has("uf") {
		uf := ds.Column("uf")
		ds.SetColumn("localidade", mapColumn(uf, func(v dataset.Value) dataset.Value {
			return ufLookup(v, ufToLocalidade)
		}))
		ds.SetColumn("regiao", mapColumn(uf, func(v dataset.Value) dataset.Value {
			return ufLookup(v, ufToRegiao)
		}))
	}
	if ds.Has("envolvido_idade") {
		idade := ds.Column("envolvido_idade")
		ds.SetColumn("faixa_etaria_ano", mapColumn(idade, faixaEtariaAno))
		ds.SetColumn("faixa_etaria_classe", mapColumn(idade, faixaEtariaClasse))
	}

	if ds.Has("mortos") && ds.Has("feridos") {
		mortos, feridos := ds.Column("mortos"), ds.Column("feridos")
		grav := make([]dataset.Value, n)
		for i := 0; i < n; i++ {
			grav[i] = gravidade(mortos[i], feridos[i])
		}
		ds.SetColumn("gravidade", grav)

		if ds.Has("sinistro_tipo") {
			tipos := ds.Column("sinistro_tipo")
			scores := make([]dataset.Value, n)
			for i := 0; i < n; i++ {
				scores[i] = ups(mortos[i], feridos[i], tipos[i])
			}
			ds.SetColumn("ups", scores)
		}
	}

	return ds, nil
}

// treatOutliers nulls out-of-range ages and vehicle fabrication years and
// counts how many were touched.
func (e *Engine) treatOutliers(ds *dataset.Dataset) (*dataset.Dataset, map[string]int) {
	counters := map[string]int{}

	if ds.Has("envolvido_idade") {
		outliers := 0
		ds.Apply("envolvido_idade", func(v dataset.Value) dataset.Value {
			if age, ok := v.Int(); ok && age > 200 {
				outliers++
				return dataset.Null()
			}
			return v
		})
		counters["idade_outliers"] = outliers
		if outliers > 0 {
			e.log.Info().Int("count", outliers).Msg("Nulled age outliers above 200")
		}
	}

	if ds.Has("veiculo_ano_fabricacao") {
		currentYear := int64(e.now().Year())
		outliers := 0
		ds.Apply("veiculo_ano_fabricacao", func(v dataset.Value) dataset.Value {
			if year, ok := v.Int(); ok && (year < 1920 || year > currentYear) {
				outliers++
				return dataset.Null()
			}
			return v
		})
		counters["ano_fabricacao_outliers"] = outliers
		if outliers > 0 {
			e.log.Info().Int("count", outliers).Msg("Nulled fabrication year outliers")
		}
	}

	return ds, counters
}

// finalCleanup trims the categorical columns, re-nulls residual textual
// null markers, defaults sinistro_causa/sinistro_tipo to "Não informado"
// and removes exact duplicate rows.
func (e *Engine) finalCleanup(ds *dataset.Dataset) (*dataset.Dataset, map[string]int) {
	for _, name := range finalTrimColumns {
		ds.Apply(name, func(v dataset.Value) dataset.Value {
			if v.IsNull() {
				return v
			}
			s := strings.TrimSpace(v.Text())
			if _, isNull := finalNullLiterals[s]; isNull {
				return dataset.Null()
			}
			return dataset.String(s)
		})
	}

	for _, name := range []string{"sinistro_causa", "sinistro_tipo"} {
		ds.Apply(name, func(v dataset.Value) dataset.Value {
			if v.IsNull() || v.Text() == "" {
				return dataset.String("Não informado")
			}
			return v
		})
	}

	removed := ds.Deduplicate()
	if removed > 0 {
		e.log.Info().Int("removed", removed).Msg("Removed duplicate rows")
	}
	return ds, map[string]int{"duplicates_removed": removed}
}

// reconcileSchema projects the working table onto the 42-column output
// contract, creating absent columns as all-null and dropping intermediate
// ones. Idempotent by construction.
func (e *Engine) reconcileSchema(ds *dataset.Dataset) (*dataset.Dataset, map[string]int) {
	return ds.Select(RequiredColumns), nil
}

func mapColumn(col []dataset.Value, fn func(dataset.Value) dataset.Value) []dataset.Value {
	out := make([]dataset.Value, len(col))
	for i, v := range col {
		out[i] = fn(v)
	}
	return out
}

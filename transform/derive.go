package transform

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"github.com/Yagoas/SinistrosPRF/dataset"
)

// Per-value derivation functions. Each takes nullable typed values and
// returns a nullable value, so they can be applied column-wise and unit
// tested in isolation.

// normalizeText coerces a cell to trimmed text, maps null-like literal
// tokens to null and replaces comma decimal separators with periods.
func normalizeText(v dataset.Value) dataset.Value {
	s := strings.TrimSpace(v.Text())
	if _, isNull := nullLiterals[s]; isNull {
		return dataset.Null()
	}
	return dataset.String(strings.ReplaceAll(s, ",", "."))
}

// parseInt parses a cell as a nullable integer; unparseable values become
// null. Numeric text with a decimal part is truncated, matching the
// tolerant numeric coercion of the source system.
func parseInt(v dataset.Value) dataset.Value {
	if v.IsNull() {
		return dataset.Null()
	}
	if i, ok := v.Int(); ok {
		return dataset.Int(i)
	}
	s := strings.TrimSpace(v.Text())
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return dataset.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return dataset.Int(int64(f))
	}
	return dataset.Null()
}

// parseFloat parses a cell as a nullable float; unparseable values become
// null.
func parseFloat(v dataset.Value) dataset.Value {
	if v.IsNull() {
		return dataset.Null()
	}
	if f, ok := v.Float(); ok {
		return dataset.Float(f)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Text()), 64)
	if err != nil {
		return dataset.Null()
	}
	return dataset.Float(f)
}

// coerceString renders any non-null cell as a textual value.
func coerceString(v dataset.Value) dataset.Value {
	if v.IsNull() {
		return dataset.Null()
	}
	return dataset.String(v.Text())
}

// parseDate parses a YYYY-MM-DD cell into a calendar date.
func parseDate(v dataset.Value) dataset.Value {
	if v.IsNull() {
		return dataset.Null()
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(v.Text()))
	if err != nil {
		return dataset.Null()
	}
	return dataset.Date(t)
}

// parseTimeOfDay parses an HH:MM:SS cell into a time of day.
func parseTimeOfDay(v dataset.Value) dataset.Value {
	if v.IsNull() {
		return dataset.Null()
	}
	t, err := time.Parse("15:04:05", strings.TrimSpace(v.Text()))
	if err != nil {
		return dataset.Null()
	}
	return dataset.TimeOfDay(t)
}

// combineDateTime joins a date and a time of day into a timestamp. Either
// side null yields null.
func combineDateTime(date, tod dataset.Value) dataset.Value {
	d, ok := date.Time()
	if !ok {
		return dataset.Null()
	}
	t, ok := tod.Time()
	if !ok {
		return dataset.Null()
	}
	return dataset.DateTime(time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC))
}

// weekdayIndex maps a timestamp to the Monday=0 .. Sunday=6 index used by
// the diasSemana table.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// formatRodovia reformats a raw route number as BR-XXX, zero-padding the
// number to at least three digits.
func formatRodovia(v dataset.Value) dataset.Value {
	if v.IsNull() {
		return dataset.Null()
	}
	s := strings.TrimSpace(v.Text())
	for len(s) < 3 {
		s = "0" + s
	}
	return dataset.String("BR-" + s)
}

// rodoviaNumero extracts the numeric suffix after the last hyphen of a
// formatted route. Routes without a hyphen yield null.
func rodoviaNumero(v dataset.Value) dataset.Value {
	if v.IsNull() {
		return dataset.Null()
	}
	s := strings.TrimSpace(v.Text())
	idx := strings.LastIndex(s, "-")
	if idx < 0 {
		return dataset.Null()
	}
	return dataset.String(s[idx+1:])
}

// periodoDoDia buckets an hour of day: 0-5 Madrugada, 6-11 Manhã, 12-17
// Tarde, otherwise Noite.
func periodoDoDia(hora dataset.Value) dataset.Value {
	h, ok := hora.Int()
	if !ok {
		return dataset.Null()
	}
	switch {
	case h >= 0 && h <= 5:
		return dataset.String("Madrugada")
	case h >= 6 && h <= 11:
		return dataset.String("Manhã")
	case h >= 12 && h <= 17:
		return dataset.String("Tarde")
	default:
		return dataset.String("Noite")
	}
}

// periodoSemana classifies a weekday name as weekend or working week.
func periodoSemana(dia dataset.Value) dataset.Value {
	if dia.IsNull() {
		return dataset.Null()
	}
	name := dia.Text()
	if slices.Contains(weekendNames, name) {
		return dataset.String("Final de semana")
	}
	if slices.Contains(weekdayNames, name) {
		return dataset.String("Segunda à Sexta")
	}
	return dataset.Null()
}

// ufLookup resolves a state code through one of the fixed UF tables.
func ufLookup(uf dataset.Value, table map[string]string) dataset.Value {
	if uf.IsNull() {
		return dataset.Null()
	}
	name, ok := table[uf.Text()]
	if !ok {
		return dataset.Null()
	}
	return dataset.String(name)
}

// faixaEtariaAno buckets an age into decades: 0-9, 10-19, ... 90-99, 100+.
// Negative ages yield null.
func faixaEtariaAno(idade dataset.Value) dataset.Value {
	age, ok := idade.Int()
	if !ok || age < 0 {
		return dataset.Null()
	}
	if age >= 100 {
		return dataset.String("100+")
	}
	lo := (age / 10) * 10
	return dataset.String(strconv.FormatInt(lo, 10) + "-" + strconv.FormatInt(lo+9, 10))
}

// faixaEtariaClasse classifies an age per the Brazilian legal age classes.
func faixaEtariaClasse(idade dataset.Value) dataset.Value {
	age, ok := idade.Int()
	if !ok || age < 0 {
		return dataset.Null()
	}
	switch {
	case age <= 11:
		return dataset.String("Criança")
	case age <= 17:
		return dataset.String("Adolescente")
	case age <= 59:
		return dataset.String("Adulto")
	default:
		return dataset.String("Idoso")
	}
}

// gravidade derives the severity bucket with first-match priority.
// Fatalities are treated as 0 when missing, but "Sem vítima" requires the
// injuries count to be explicitly known: a null feridos (with no
// fatalities) resolves to "Não informado".
func gravidade(mortos, feridos dataset.Value) dataset.Value {
	m, _ := mortos.Int()
	if m > 0 {
		return dataset.String("Com morto")
	}
	f, known := feridos.Int()
	if known && f > 0 {
		return dataset.String("Com ferido")
	}
	if known && f == 0 {
		return dataset.String("Sem vítima")
	}
	return dataset.String("Não informado")
}

// ups derives the severity score: 13 with a fatality, 6 for a pedestrian
// strike, 4 with injuries, 1 otherwise. Missing counts score as 0.
func ups(mortos, feridos, tipo dataset.Value) dataset.Value {
	if m, _ := mortos.Int(); m > 0 {
		return dataset.Int(13)
	}
	if !tipo.IsNull() && tipo.Text() == "Atropelamento" {
		return dataset.Int(6)
	}
	if f, _ := feridos.Int(); f > 0 {
		return dataset.Int(4)
	}
	return dataset.Int(1)
}

package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yagoas/SinistrosPRF/dataset"
)

func TestNormalizeText(t *testing.T) {
	nullTokens := []string{"NaN", "None", "NoneType", "(null)", "na", "n/a", "N/A", "NULL", "null", "nan", "", "   "}
	for _, token := range nullTokens {
		t.Run("null_"+token, func(t *testing.T) {
			assert.True(t, normalizeText(dataset.String(token)).IsNull())
		})
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims whitespace", "  Colisão frontal  ", "Colisão frontal"},
		{"decimal comma", "12,5", "12.5"},
		{"keeps case sensitive non-null", "Na", "Na"},
		{"plain value", "BA", "BA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeText(dataset.String(tt.in))
			assert.Equal(t, tt.want, got.Text())
		})
	}
}

func TestParseInt(t *testing.T) {
	v := parseInt(dataset.String("42"))
	i, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), i)

	v = parseInt(dataset.String("42.0"))
	i, ok = v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), i)

	assert.True(t, parseInt(dataset.String("abc")).IsNull())
	assert.True(t, parseInt(dataset.Null()).IsNull())
}

func TestParseFloat(t *testing.T) {
	v := parseFloat(dataset.String("-12.345678"))
	f, ok := v.Float()
	require.True(t, ok)
	assert.InDelta(t, -12.345678, f, 1e-9)

	assert.True(t, parseFloat(dataset.String("x")).IsNull())
}

func TestParseDateAndTime(t *testing.T) {
	d := parseDate(dataset.String("2024-03-15"))
	ts, ok := d.Time()
	require.True(t, ok)
	assert.Equal(t, "2024-03-15", ts.Format("2006-01-02"))
	assert.True(t, parseDate(dataset.String("15/03/2024")).IsNull())

	tod := parseTimeOfDay(dataset.String("08:30:00"))
	ts, ok = tod.Time()
	require.True(t, ok)
	assert.Equal(t, 8, ts.Hour())
	assert.True(t, parseTimeOfDay(dataset.String("8h30")).IsNull())
}

func TestCombineDateTime(t *testing.T) {
	date := parseDate(dataset.String("2024-03-15"))
	tod := parseTimeOfDay(dataset.String("22:10:05"))

	dh := combineDateTime(date, tod)
	ts, ok := dh.Time()
	require.True(t, ok)
	assert.Equal(t, "2024-03-15 22:10:05", ts.Format("2006-01-02 15:04:05"))

	assert.True(t, combineDateTime(dataset.Null(), tod).IsNull())
	assert.True(t, combineDateTime(date, dataset.Null()).IsNull())
}

func TestWeekdayIndex(t *testing.T) {
	// 2024-03-11 is a Monday.
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, weekdayIndex(monday))
	assert.Equal(t, "Segunda-feira", diasSemana[weekdayIndex(monday)])

	sunday := monday.AddDate(0, 0, 6)
	assert.Equal(t, 6, weekdayIndex(sunday))
	assert.Equal(t, "Domingo", diasSemana[weekdayIndex(sunday)])
}

func TestFormatRodovia(t *testing.T) {
	tests := []struct {
		in          string
		wantRodovia string
		wantNumero  string
	}{
		{"1", "BR-001", "001"},
		{"10", "BR-010", "010"},
		{"101", "BR-101", "101"},
		{"1010", "BR-1010", "1010"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rodovia := formatRodovia(dataset.String(tt.in))
			assert.Equal(t, tt.wantRodovia, rodovia.Text())
			assert.Equal(t, tt.wantNumero, rodoviaNumero(rodovia).Text())
		})
	}

	assert.True(t, formatRodovia(dataset.Null()).IsNull())
	assert.True(t, rodoviaNumero(dataset.Null()).IsNull())
	assert.True(t, rodoviaNumero(dataset.String("101")).IsNull())
}

func TestPeriodoDoDia(t *testing.T) {
	tests := []struct {
		hora int64
		want string
	}{
		{0, "Madrugada"},
		{5, "Madrugada"},
		{6, "Manhã"},
		{11, "Manhã"},
		{12, "Tarde"},
		{17, "Tarde"},
		{18, "Noite"},
		{23, "Noite"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, periodoDoDia(dataset.Int(tt.hora)).Text())
	}
	assert.True(t, periodoDoDia(dataset.Null()).IsNull())
}

func TestPeriodoSemana(t *testing.T) {
	assert.Equal(t, "Final de semana", periodoSemana(dataset.String("Sábado")).Text())
	assert.Equal(t, "Final de semana", periodoSemana(dataset.String("Domingo")).Text())
	assert.Equal(t, "Segunda à Sexta", periodoSemana(dataset.String("Quarta-feira")).Text())
	assert.True(t, periodoSemana(dataset.String("feriado")).IsNull())
	assert.True(t, periodoSemana(dataset.Null()).IsNull())
}

func TestUFLookups(t *testing.T) {
	require.Len(t, ufToLocalidade, 27)
	require.Len(t, ufToRegiao, 27)

	assert.Equal(t, "Bahia", ufLookup(dataset.String("BA"), ufToLocalidade).Text())
	assert.Equal(t, "Nordeste", ufLookup(dataset.String("BA"), ufToRegiao).Text())
	assert.Equal(t, "Distrito Federal", ufLookup(dataset.String("DF"), ufToLocalidade).Text())
	assert.True(t, ufLookup(dataset.String("XX"), ufToRegiao).IsNull())
	assert.True(t, ufLookup(dataset.Null(), ufToLocalidade).IsNull())
}

func TestFaixaEtariaAno(t *testing.T) {
	tests := []struct {
		idade int64
		want  string
	}{
		{0, "0-9"},
		{9, "0-9"},
		{10, "10-19"},
		{19, "10-19"},
		{20, "20-29"},
		{55, "50-59"},
		{99, "90-99"},
		{100, "100+"},
		{150, "100+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, faixaEtariaAno(dataset.Int(tt.idade)).Text())
	}

	assert.True(t, faixaEtariaAno(dataset.Int(-1)).IsNull())
	assert.True(t, faixaEtariaAno(dataset.Null()).IsNull())

	// Every age in [0,150] lands in exactly one bucket.
	for age := int64(0); age <= 150; age++ {
		assert.False(t, faixaEtariaAno(dataset.Int(age)).IsNull(), "age %d", age)
	}
}

func TestFaixaEtariaClasse(t *testing.T) {
	tests := []struct {
		idade int64
		want  string
	}{
		{0, "Criança"},
		{11, "Criança"},
		{12, "Adolescente"},
		{17, "Adolescente"},
		{18, "Adulto"},
		{59, "Adulto"},
		{60, "Idoso"},
		{95, "Idoso"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, faixaEtariaClasse(dataset.Int(tt.idade)).Text())
	}
	assert.True(t, faixaEtariaClasse(dataset.Int(-5)).IsNull())
	assert.True(t, faixaEtariaClasse(dataset.Null()).IsNull())
}

func TestGravidade(t *testing.T) {
	tests := []struct {
		name    string
		mortos  dataset.Value
		feridos dataset.Value
		want    string
	}{
		{"fatality wins", dataset.Int(1), dataset.Int(5), "Com morto"},
		{"injuries", dataset.Int(0), dataset.Int(3), "Com ferido"},
		{"explicit zero injuries", dataset.Int(0), dataset.Int(0), "Sem vítima"},
		{"null injuries", dataset.Int(0), dataset.Null(), "Não informado"},
		{"both null", dataset.Null(), dataset.Null(), "Não informado"},
		{"null mortos with injuries", dataset.Null(), dataset.Int(2), "Com ferido"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gravidade(tt.mortos, tt.feridos).Text())
		})
	}
}

func TestUPS(t *testing.T) {
	tests := []struct {
		name    string
		mortos  dataset.Value
		feridos dataset.Value
		tipo    dataset.Value
		want    int64
	}{
		{"fatality beats pedestrian", dataset.Int(1), dataset.Int(0), dataset.String("Atropelamento"), 13},
		{"pedestrian strike", dataset.Int(0), dataset.Int(0), dataset.String("Atropelamento"), 6},
		{"injuries", dataset.Int(0), dataset.Int(2), dataset.String("Colisão"), 4},
		{"property damage only", dataset.Int(0), dataset.Int(0), dataset.String("Colisão"), 1},
		{"all null", dataset.Null(), dataset.Null(), dataset.Null(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ups(tt.mortos, tt.feridos, tt.tipo).Int()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

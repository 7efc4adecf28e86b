package transform

// Static lookup tables and column lists for the silver transform. Loaded
// once at process start and never mutated.

// ufToLocalidade maps the two-letter state code to the full state name.
var ufToLocalidade = map[string]string{
	"AC": "Acre",
	"AL": "Alagoas",
	"AP": "Amapá",
	"AM": "Amazonas",
	"BA": "Bahia",
	"CE": "Ceará",
	"DF": "Distrito Federal",
	"ES": "Espírito Santo",
	"GO": "Goiás",
	"MA": "Maranhão",
	"MT": "Mato Grosso",
	"MS": "Mato Grosso do Sul",
	"MG": "Minas Gerais",
	"PA": "Pará",
	"PB": "Paraíba",
	"PR": "Paraná",
	"PE": "Pernambuco",
	"PI": "Piauí",
	"RJ": "Rio de Janeiro",
	"RN": "Rio Grande do Norte",
	"RS": "Rio Grande do Sul",
	"RO": "Rondônia",
	"RR": "Roraima",
	"SC": "Santa Catarina",
	"SP": "São Paulo",
	"SE": "Sergipe",
	"TO": "Tocantins",
}

// ufToRegiao maps the state code to its macro-region.
var ufToRegiao = map[string]string{
	"AC": "Norte",
	"AL": "Nordeste",
	"AP": "Norte",
	"AM": "Norte",
	"BA": "Nordeste",
	"CE": "Nordeste",
	"DF": "Centro-Oeste",
	"ES": "Sudeste",
	"GO": "Centro-Oeste",
	"MA": "Nordeste",
	"MT": "Centro-Oeste",
	"MS": "Centro-Oeste",
	"MG": "Sudeste",
	"PA": "Norte",
	"PB": "Nordeste",
	"PR": "Sul",
	"PE": "Nordeste",
	"PI": "Nordeste",
	"RJ": "Sudeste",
	"RN": "Nordeste",
	"RS": "Sul",
	"RO": "Norte",
	"RR": "Norte",
	"SC": "Sul",
	"SP": "Sudeste",
	"SE": "Nordeste",
	"TO": "Norte",
}

// diasSemana maps the weekday index (Monday=0 .. Sunday=6) to its name.
var diasSemana = map[int]string{
	0: "Segunda-feira",
	1: "Terça-feira",
	2: "Quarta-feira",
	3: "Quinta-feira",
	4: "Sexta-feira",
	5: "Sábado",
	6: "Domingo",
}

var weekdayNames = []string{
	"Segunda-feira",
	"Terça-feira",
	"Quarta-feira",
	"Quinta-feira",
	"Sexta-feira",
}

var weekendNames = []string{"Sábado", "Domingo"}

// irrelevantColumns are administrative/regional source columns dropped up
// front; dia_semana and fase_dia are recomputed later from the timestamp.
var irrelevantColumns = []string{
	"regional",
	"uop",
	"delegacia",
	"classificacao_acidente",
	"dia_semana",
	"fase_dia",
}

// nullLiterals are textual tokens normalized to the null marker.
var nullLiterals = map[string]struct{}{
	"NaN":      {},
	"None":     {},
	"NoneType": {},
	"(null)":   {},
	"na":       {},
	"n/a":      {},
	"N/A":      {},
	"NULL":     {},
	"null":     {},
	"nan":      {},
	"":         {},
}

var intColumns = []string{
	"id",
	"pesid",
	"id_veiculo",
	"idade",
	"ano_fabricacao_veiculo",
	"ordem_tipo_acidente",
	"br",
	"ilesos",
	"feridos_leves",
	"feridos_graves",
	"mortos",
}

var floatColumns = []string{"km", "latitude", "longitude"}

var stringColumns = []string{
	"dia_semana",
	"uf",
	"municipio",
	"br",
	"causa_principal",
	"causa_acidente",
	"tipo_acidente",
	"fase_dia",
	"sentido_via",
	"condicao_metereologica",
	"tipo_pista",
	"tracado_via",
	"uso_solo",
	"veiculo_tipo",
	"veiculo_marca_modelo",
	"tipo_veiculo",
	"estado_fisico",
	"sexo",
}

// renameMap translates raw PRF column names to the canonical schema.
var renameMap = map[string]string{
	"ano_fabricacao_veiculo": "veiculo_ano_fabricacao",
	"br":                     "rodovia",
	"causa_acidente":         "sinistro_causa",
	"causa_principal":        "sinistro_causa_principal",
	"condicao_metereologica": "condicao_meteorologica",
	"data_inversa":           "data",
	"id_veiculo":             "veiculo_id",
	"id":                     "sinistro_id",
	"idade":                  "envolvido_idade",
	"km":                     "quilometro",
	"marca":                  "veiculo_marca_modelo",
	"pesid":                  "id_envolvido",
	"ordem_tipo_acidente":    "sinistro_ordem_tipo",
	"sentido_via":            "via_sentido",
	"sexo":                   "envolvido_sexo",
	"tipo_acidente":          "sinistro_tipo",
	"tipo_envolvido":         "envolvido_tipo",
	"tipo_pista":             "via_tipo",
	"tipo_veiculo":           "veiculo_tipo",
	"tracado_via":            "via_tracado",
}

// finalTrimColumns are the categorical columns trimmed and re-nulled in
// the final cleanup stage.
var finalTrimColumns = []string{
	"uf",
	"via_sentido",
	"uso_solo",
	"sinistro_tipo",
	"sinistro_causa",
	"gravidade",
	"municipio",
	"condicao_meteorologica",
	"via_tipo",
	"via_tracado",
	"veiculo_marca_modelo",
}

// finalNullLiterals are the null markers recognized in the final cleanup,
// including the "NA/NA" concatenation left by upstream joins.
var finalNullLiterals = map[string]struct{}{
	"nan":    {},
	"None":   {},
	"(null)": {},
	"NA/NA":  {},
}

// RequiredColumns is the canonical output contract: exactly these 42
// columns, in this order.
var RequiredColumns = []string{
	"sinistro_id",
	"id_envolvido",
	"veiculo_id",
	"data",
	"horario",
	"data_hora",
	"ano",
	"hora",
	"dia_semana",
	"periodo",
	"periodo_semana",
	"uf",
	"localidade",
	"regiao",
	"municipio",
	"rodovia",
	"rodovia_numero",
	"quilometro",
	"latitude",
	"longitude",
	"sinistro_tipo",
	"sinistro_causa",
	"sinistro_causa_principal",
	"sinistro_ordem_tipo",
	"condicao_meteorologica",
	"via_tipo",
	"via_tracado",
	"via_sentido",
	"uso_solo",
	"envolvido_idade",
	"envolvido_sexo",
	"envolvido_tipo",
	"estado_fisico",
	"faixa_etaria_ano",
	"faixa_etaria_classe",
	"veiculo_tipo",
	"veiculo_marca_modelo",
	"veiculo_ano_fabricacao",
	"ilesos",
	"feridos_leves",
	"feridos_graves",
	"feridos",
	"mortos",
	"gravidade",
	"ups",
}

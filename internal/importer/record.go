// Package importer implements the bulk-import pipeline for collective
// bargaining agreement spreadsheets: batching, optional LLM enrichment,
// row normalization, and persistence in foreign-key order.
package importer

import (
	"strconv"
	"strings"
	"time"
)

// Record is one semi-structured input row: column name → raw value.
// Values are strings when read from a spreadsheet, but enriched records
// decoded from model output may carry JSON numbers and booleans.
type Record map[string]any

// Column names recognized by the normalizer. Enriched records are asked to
// use exactly these; raw spreadsheet headers commonly lack the accents, so
// each lookup also tries the unaccented variants.
const (
	ColSindicato         = "SINDICATO"
	ColCNPJ              = "CNPJ"
	ColSite              = "SITE"
	ColDataBase          = "DATA BASE"
	ColEstado            = "ESTADO"
	ColTipo              = "TIPO"
	ColVigenciaInicio    = "VIGÊNCIA INÍCIO"
	ColVigenciaFim       = "VIGÊNCIA FIM"
	ColValeRefeicao      = "VALE REFEIÇÃO"
	ColAssistenciaMedica = "ASSISTÊNCIA MÉDICA"
	ColSeguroDeVida      = "SEGURO DE VIDA"
	ColUniforme          = "UNIFORME"
	ColAdicionalNoturno  = "ADICIONAL NOTURNO"
	ColCargo             = "CARGO"
	ColCargaHoraria      = "CARGA HORÁRIA"
	ColCBO               = "CBO"
	ColPisoSalarial      = "PISO SALARIAL"
	ColValorHoraNormal   = "VALOR HORA NORMAL"
	ColValorHoraExtra50  = "VALOR HORA EXTRA 50%"
	ColValorHoraExtra100 = "VALOR HORA EXTRA 100%"
	ColParticularidade   = "PARTICULARIDADE"
	ColLicencas          = "LICENÇAS"
)

// columnAliases maps a canonical column to accepted spellings.
var columnAliases = map[string][]string{
	ColVigenciaInicio:    {"VIGENCIA INICIO", "VIGENCIA INÍCIO"},
	ColVigenciaFim:       {"VIGENCIA FIM"},
	ColValeRefeicao:      {"VALE REFEICAO"},
	ColAssistenciaMedica: {"ASSISTENCIA MEDICA"},
	ColCargaHoraria:      {"CARGA HORARIA"},
	ColParticularidade:   {"PARTICULARIDADES"},
	ColLicencas:          {"LICENCAS"},
}

// String returns the trimmed string value of a column, trying the canonical
// name and its aliases. Missing columns and nil values yield "".
func (r Record) String(column string) string {
	if v, ok := r[column]; ok {
		return stringValue(v)
	}
	for _, alias := range columnAliases[column] {
		if v, ok := r[alias]; ok {
			return stringValue(v)
		}
	}
	return ""
}

// Bool reports whether a column holds an affirmative value. "SIM" (any
// case), "1", "true", and JSON true all count; everything else is false.
func (r Record) Bool(column string) bool {
	if v, ok := r[column]; ok {
		if b, isBool := v.(bool); isBool {
			return b
		}
	}
	s := r.String(column)
	return strings.EqualFold(s, "sim") || strings.EqualFold(s, "true") || s == "1"
}

// Float parses a column as a decimal number, accepting Brazilian formatting
// ("1.234,56"). Unparseable or absent values yield nil, never NaN and never
// an error.
func (r Record) Float(column string) *float64 {
	if v, ok := r[column]; ok {
		switch n := v.(type) {
		case float64:
			f := n
			return &f
		case int:
			f := float64(n)
			return &f
		}
	}
	return parseDecimal(r.String(column))
}

// Date parses a column as a calendar date, dd/mm/yyyy first, then ISO.
// Unparseable values yield nil.
func (r Record) Date(column string) *time.Time {
	s := r.String(column)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// stringValue renders a raw cell value as a trimmed string.
func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		if s {
			return "SIM"
		}
		return "NÃO"
	case nil:
		return ""
	}
	return ""
}

// parseDecimal handles both plain ("1000", "10.5") and Brazilian
// ("1.234,56") numeric formats.
func parseDecimal(s string) *float64 {
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" {
		return nil
	}
	if strings.Contains(s, ",") {
		// Comma is the decimal separator; dots are thousands separators
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &val
}

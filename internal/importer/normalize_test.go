package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecord_NoUnionNameYieldsEmptyDrafts(t *testing.T) {
	drafts := NormalizeRecord(Record{
		"CARGO":         "Atendente",
		"PISO SALARIAL": "1000",
	})

	assert.Nil(t, drafts.Agreement)
	assert.Empty(t, drafts.SalaryFloors)
	assert.Empty(t, drafts.Particularities)
}

func TestNormalizeRecord_FullRow(t *testing.T) {
	drafts := NormalizeRecord(Record{
		"SINDICATO":             "Sind A",
		"ESTADO":                "SP",
		"CARGO":                 "Atendente",
		"CARGA HORÁRIA":         "44",
		"PISO SALARIAL":         "1000",
		"VALOR HORA NORMAL":     "10",
		"VALOR HORA EXTRA 50%":  "15",
		"VALOR HORA EXTRA 100%": "20",
		"PARTICULARIDADE":       "Uma, Duas",
	})

	require.NotNil(t, drafts.Agreement)
	a := drafts.Agreement
	assert.Equal(t, "CONVENÇÃO COLETIVA SP - Sind A", a.Titulo)
	assert.Equal(t, "SP", a.Estado)
	assert.Equal(t, "Sind A", a.Union.Nome)

	// Benefit flags default false, dates default nil
	assert.False(t, a.AssistenciaMedica)
	assert.False(t, a.SeguroDeVida)
	assert.False(t, a.Uniforme)
	assert.Nil(t, a.DataBase)
	assert.Nil(t, a.VigenciaInicio)
	assert.Nil(t, a.VigenciaFim)

	require.Len(t, drafts.SalaryFloors, 1)
	floor := drafts.SalaryFloors[0]
	assert.Equal(t, "Atendente", floor.Cargo)
	assert.Equal(t, "44", floor.CargaHoraria)
	require.NotNil(t, floor.PisoSalarial)
	assert.Equal(t, 1000.0, *floor.PisoSalarial)
	require.NotNil(t, floor.ValorHoraNormal)
	assert.Equal(t, 10.0, *floor.ValorHoraNormal)
	require.NotNil(t, floor.ValorHoraExtra50)
	assert.Equal(t, 15.0, *floor.ValorHoraExtra50)
	require.NotNil(t, floor.ValorHoraExtra100)
	assert.Equal(t, 20.0, *floor.ValorHoraExtra100)

	require.Len(t, drafts.Particularities, 2)
	assert.Equal(t, ParticularityDraft{Conteudo: "Uma", Categoria: "Geral"}, drafts.Particularities[0])
	assert.Equal(t, ParticularityDraft{Conteudo: "Duas", Categoria: "Geral"}, drafts.Particularities[1])
}

func TestNormalizeRecord_UnparseableNumbersBecomeNil(t *testing.T) {
	drafts := NormalizeRecord(Record{
		"SINDICATO":         "Sind B",
		"CARGO":             "Vigia",
		"PISO SALARIAL":     "a combinar",
		"VALOR HORA NORMAL": "",
	})

	require.Len(t, drafts.SalaryFloors, 1)
	assert.Nil(t, drafts.SalaryFloors[0].PisoSalarial)
	assert.Nil(t, drafts.SalaryFloors[0].ValorHoraNormal)
}

func TestNormalizeRecord_BooleanAndDateFields(t *testing.T) {
	drafts := NormalizeRecord(Record{
		"SINDICATO":          "Sind C",
		"ESTADO":             "RJ",
		"TIPO":               "Acordo Coletivo",
		"DATA BASE":          "01/03/2024",
		"VIGÊNCIA INÍCIO":    "01/03/2024",
		"VIGÊNCIA FIM":       "28/02/2025",
		"VALE REFEIÇÃO":      "R$ 25,00/dia",
		"ASSISTÊNCIA MÉDICA": "SIM",
		"SEGURO DE VIDA":     "sim",
		"UNIFORME":           "não informado",
		"ADICIONAL NOTURNO":  "20% entre 22h e 5h",
	})

	require.NotNil(t, drafts.Agreement)
	a := drafts.Agreement
	assert.Equal(t, "Acordo Coletivo", a.Tipo)
	assert.True(t, a.AssistenciaMedica)
	assert.True(t, a.SeguroDeVida)
	assert.False(t, a.Uniforme)
	assert.Equal(t, "R$ 25,00/dia", a.ValeRefeicao)
	assert.Equal(t, "20% entre 22h e 5h", a.AdicionalNoturno)
	require.NotNil(t, a.DataBase)
	assert.Equal(t, "2024-03-01", a.DataBase.Format("2006-01-02"))
	require.NotNil(t, a.VigenciaFim)
	assert.Equal(t, "2025-02-28", a.VigenciaFim.Format("2006-01-02"))
}

func TestNormalizeRecord_DefaultType(t *testing.T) {
	drafts := NormalizeRecord(Record{"SINDICATO": "Sind D"})
	require.NotNil(t, drafts.Agreement)
	assert.Equal(t, "Convenção Coletiva", drafts.Agreement.Tipo)
}

func TestNormalizeRecord_TitleWithoutState(t *testing.T) {
	drafts := NormalizeRecord(Record{"SINDICATO": "Sind E"})
	require.NotNil(t, drafts.Agreement)
	assert.Equal(t, "CONVENÇÃO COLETIVA - Sind E", drafts.Agreement.Titulo)
}

func TestSplitParticularities(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "comma separated", text: "Uma, Duas", want: []string{"Uma", "Duas"}},
		{name: "pipe separated", text: "Uma | Duas | Três", want: []string{"Uma", "Duas", "Três"}},
		{name: "mixed separators", text: "Uma, Duas | Três", want: []string{"Uma", "Duas", "Três"}},
		{name: "empty segments dropped", text: "Uma,, ,Duas", want: []string{"Uma", "Duas"}},
		{name: "blank text", text: "   ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts := splitParticularities(tt.text, CategoryGeneral)
			var got []string
			for _, d := range drafts {
				assert.Equal(t, CategoryGeneral, d.Categoria)
				got = append(got, d.Conteudo)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRecord_LeaveColumnUsesLeaveCategory(t *testing.T) {
	drafts := NormalizeRecord(Record{
		"SINDICATO": "Sind F",
		"LICENÇAS":  "Licença maternidade 180 dias, Licença paternidade 20 dias",
	})

	require.Len(t, drafts.Particularities, 2)
	for _, p := range drafts.Particularities {
		assert.Equal(t, CategoryLeave, p.Categoria)
	}
}

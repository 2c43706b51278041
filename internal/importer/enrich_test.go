package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariana/cct-importer/internal/llm"
)

func TestEnrichBlock_DecodesFencedResponse(t *testing.T) {
	client := &fakeClient{responses: []string{
		"```json\n[{\"SINDICATO\": \"Sind A\", \"ESTADO\": \"SP\"}]\n```",
	}}
	enricher := NewEnricher(client)

	records, err := enricher.EnrichBlock(context.Background(), []Record{{"sindicato": "sind a"}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Sind A", records[0].String(ColSindicato))
	assert.Equal(t, "SP", records[0].String(ColEstado))
}

func TestEnrichBlock_DecodesBareArrayWithProse(t *testing.T) {
	client := &fakeClient{responses: []string{
		"Aqui estão os dados estruturados:\n[{\"CARGO\": \"Atendente\", \"PISO SALARIAL\": 1000}]",
	}}
	enricher := NewEnricher(client)

	records, err := enricher.EnrichBlock(context.Background(), []Record{{"cargo": "atendente"}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	if piso := records[0].Float(ColPisoSalarial); assert.NotNil(t, piso) {
		assert.Equal(t, 1000.0, *piso)
	}
}

func TestEnrichBlock_PromptCarriesBlockJSON(t *testing.T) {
	client := &fakeClient{responses: []string{"[]"}}
	enricher := NewEnricher(client)

	_, err := enricher.EnrichBlock(context.Background(), []Record{{"SINDICATO": "Sind A"}})
	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], `"SINDICATO":"Sind A"`)
	assert.Contains(t, client.prompts[0], "array JSON")
}

func TestEnrichBlock_UnparseableResponseIsParseError(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "plain prose", response: "Não consegui processar os dados."},
		{name: "object not array", response: `{"SINDICATO": "Sind A"}`},
		{name: "invalid json in array", response: "[{'single': 'quotes'}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{responses: []string{tt.response}}
			enricher := NewEnricher(client)

			_, err := enricher.EnrichBlock(context.Background(), []Record{{}})
			require.Error(t, err)
			var parseErr *llm.ParseError
			assert.True(t, errors.As(err, &parseErr), "expected *llm.ParseError, got %T", err)
		})
	}
}

func TestEnrichBlock_ClientErrorPassesThrough(t *testing.T) {
	client := &fakeClient{errs: []error{fmt.Errorf("HTTP 429")}}
	enricher := NewEnricher(client)

	_, err := enricher.EnrichBlock(context.Background(), []Record{{}})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "429"))
	var parseErr *llm.ParseError
	assert.False(t, errors.As(err, &parseErr), "transport errors are not parse errors")
}

func TestEnrichBlock_DoesNotMutateInput(t *testing.T) {
	block := []Record{{"SINDICATO": "Sind A"}}
	client := &fakeClient{responses: []string{`[{"SINDICATO": "Sind A - Limpo"}]`}}

	_, err := NewEnricher(client).EnrichBlock(context.Background(), block)
	require.NoError(t, err)
	assert.Equal(t, "Sind A", block[0].String(ColSindicato))
}

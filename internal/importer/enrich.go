package importer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mariana/cct-importer/internal/llm"
)

// enrichmentInstruction is the fixed system prompt sent ahead of each block.
// It pins the output to the canonical column names the normalizer expects.
const enrichmentInstruction = `Você é um assistente que limpa e estrutura dados de convenções coletivas de trabalho brasileiras.

Receberá um array JSON de linhas de planilha com nomes de colunas variados. Para cada linha, produza um objeto com exatamente estas chaves (omita as que não se aplicam):
"SINDICATO", "CNPJ", "SITE", "DATA BASE", "ESTADO", "TIPO", "VIGÊNCIA INÍCIO", "VIGÊNCIA FIM", "VALE REFEIÇÃO", "ASSISTÊNCIA MÉDICA", "SEGURO DE VIDA", "UNIFORME", "ADICIONAL NOTURNO", "CARGO", "CARGA HORÁRIA", "CBO", "PISO SALARIAL", "VALOR HORA NORMAL", "VALOR HORA EXTRA 50%", "VALOR HORA EXTRA 100%", "PARTICULARIDADE", "LICENÇAS"

Regras:
- Datas no formato dd/mm/aaaa.
- Valores monetários como números ou texto numérico, sem "R$".
- Campos sim/não como "SIM" ou "NÃO".
- Não invente dados; preserve o conteúdo original das células.
- Responda APENAS com o array JSON, sem comentários e sem markdown.

Linhas:
`

// Enricher sends blocks of raw records through the text-generation service
// and decodes the structured rows it returns.
type Enricher struct {
	client llm.Client
}

// NewEnricher wraps an LLM client for block enrichment.
func NewEnricher(client llm.Client) *Enricher {
	return &Enricher{client: client}
}

// EnrichBlock submits one block and returns the enriched records. The input
// block is never mutated. Unlocatable or undecodable JSON in the response
// surfaces as *llm.ParseError so callers can treat it as a per-block,
// recoverable failure.
func (e *Enricher) EnrichBlock(ctx context.Context, block []Record) ([]Record, error) {
	payload, err := json.Marshal(block)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize block: %w", err)
	}

	response, err := e.client.GenerateContent(ctx, enrichmentInstruction+string(payload))
	if err != nil {
		return nil, fmt.Errorf("enrichment request failed: %w", err)
	}

	jsonText, ok := llm.ExtractJSONArray(response)
	if !ok {
		return nil, &llm.ParseError{Message: "no JSON array found in enrichment response"}
	}

	var records []Record
	if err := json.Unmarshal([]byte(jsonText), &records); err != nil {
		return nil, &llm.ParseError{Message: "enrichment response is not a valid record array", Cause: err}
	}
	return records, nil
}

package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mariana/cct-importer/internal/llm"
)

// DefaultBlockDelay spaces out enrichment requests to stay under the
// external service's rate limits.
const DefaultBlockDelay = 2 * time.Second

// Options configures one Importer. All external dependencies are injected
// at construction; nothing is fetched from ambient state mid-run.
type Options struct {
	// BlockSize caps records per enrichment request. Zero means
	// DefaultBlockSize.
	BlockSize int
	// BlockDelay is the pause between enrichment requests. Zero means
	// DefaultBlockDelay; negative disables the pause (used by tests).
	BlockDelay time.Duration
	// UseAI enables the enrichment pass. Requires Client.
	UseAI bool
	// Client is the text-generation client. Nil fails the run when UseAI
	// is set.
	Client llm.Client
}

// Result is the structured outcome handed back to the caller, success or
// not. Errors inside the run never escape as panics or bare error returns.
type Result struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Counts  RecordCounts `json:"counts"`
	// Processed is how many records went through the normalizer.
	Processed int `json:"processed"`
	// BlocksFailed counts enrichment blocks that were dropped.
	BlocksFailed int `json:"blocks_failed"`
}

// runDetails is the JSON blob persisted on the run row at completion.
type runDetails struct {
	Arquivo      string       `json:"arquivo"`
	Counts       RecordCounts `json:"counts"`
	Processados  int          `json:"processados"`
	BlocosTotal  int          `json:"blocos_total"`
	BlocosFalhos int          `json:"blocos_falhos"`
	ModoIA       bool         `json:"modo_ia"`
}

// Importer drives one or more import runs against a Store. Runs are
// single-threaded: blocks strictly in input order, records strictly in
// block order, so union resolution sees names in first-occurrence order.
type Importer struct {
	store Store
	logs  LogSink
	opts  Options
}

const orchestratorModule = "importacao"

// New creates an Importer. The store carries all persistence; logs is the
// write-only side channel.
func New(store Store, logs LogSink, opts Options) *Importer {
	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultBlockSize
	}
	if opts.BlockDelay == 0 {
		opts.BlockDelay = DefaultBlockDelay
	}
	return &Importer{store: store, logs: logs, opts: opts}
}

// Run executes the pipeline for one uploaded file: mark the run in
// progress, enrich per block (best effort), normalize and persist every
// record, and finalize the run row. The returned Result is always
// populated; Success is false when the run ended in erro.
func (imp *Importer) Run(ctx context.Context, records []Record, fileName string, runID uuid.UUID) Result {
	if err := imp.store.StartImportRun(ctx, runID, len(records), columnCount(records)); err != nil {
		return imp.failRun(ctx, runID, fmt.Sprintf("falha ao iniciar importação: %v", err))
	}

	if imp.opts.UseAI && imp.opts.Client == nil {
		return imp.failRun(ctx, runID, "modo IA solicitado, mas nenhuma chave de API está configurada")
	}

	processed, blocksTotal, blocksFailed := records, 0, 0
	if imp.opts.UseAI && len(records) > 0 {
		enriched, total, failed := imp.enrichAll(ctx, records)
		blocksTotal, blocksFailed = total, failed
		if len(enriched) > 0 {
			processed = enriched
		} else {
			// All blocks failed (or produced nothing): fall back to the
			// raw rows rather than importing nothing.
			imp.logs.AddLog(ctx, LevelWarn,
				"enriquecimento não retornou registros; usando linhas originais", orchestratorModule)
		}
	}

	resolver := NewResolver(imp.store, imp.logs)
	var counts RecordCounts
	for _, rec := range processed {
		counts.Add(resolver.PersistRecord(ctx, NormalizeRecord(rec)))
	}

	details := runDetails{
		Arquivo:      fileName,
		Counts:       counts,
		Processados:  len(processed),
		BlocosTotal:  blocksTotal,
		BlocosFalhos: blocksFailed,
		ModoIA:       imp.opts.UseAI,
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	if err := imp.store.FinishImportRun(ctx, runID, StatusCompleted, len(processed), string(detailsJSON)); err != nil {
		return imp.failRun(ctx, runID, fmt.Sprintf("falha ao concluir importação: %v", err))
	}

	imp.logs.AddLog(ctx, LevelInfo,
		fmt.Sprintf("importação %s concluída: %d registros, %d convênios, %d pisos, %d particularidades",
			fileName, len(processed), counts.Convenios, counts.Pisos, counts.Particularidades),
		orchestratorModule)

	return Result{
		Success:      true,
		Message:      fmt.Sprintf("Importação concluída: %d registros processados", len(processed)),
		Counts:       counts,
		Processed:    len(processed),
		BlocksFailed: blocksFailed,
	}
}

// enrichAll runs the block loop: sequential, with an inter-block delay.
// A failed block is logged and dropped, never retried, and never aborts
// the run.
func (imp *Importer) enrichAll(ctx context.Context, records []Record) (enriched []Record, blocksTotal, blocksFailed int) {
	enricher := NewEnricher(imp.opts.Client)
	blocks := Chunk(records, imp.opts.BlockSize)

	for i, block := range blocks {
		if i > 0 && imp.opts.BlockDelay > 0 {
			time.Sleep(imp.opts.BlockDelay)
		}

		out, err := enricher.EnrichBlock(ctx, block)
		if err != nil {
			blocksFailed++
			imp.logs.AddLog(ctx, LevelError,
				fmt.Sprintf("bloco %d/%d descartado: %v", i+1, len(blocks), err), orchestratorModule)
			continue
		}
		enriched = append(enriched, out...)
	}
	return enriched, len(blocks), blocksFailed
}

// failRun moves the run to erro and returns the failure result. A failing
// status update at this point has nowhere left to go, so it is only logged.
func (imp *Importer) failRun(ctx context.Context, runID uuid.UUID, message string) Result {
	detailsJSON, _ := json.Marshal(map[string]string{
		"erro":     message,
		"ocorrido": time.Now().Format(time.RFC3339),
	})
	if err := imp.store.FinishImportRun(ctx, runID, StatusError, 0, string(detailsJSON)); err != nil {
		log.Printf("failed to mark import run %s as erro: %v", runID, err)
	}
	imp.logs.AddLog(ctx, LevelError, message, orchestratorModule)
	return Result{Success: false, Message: message}
}

// columnCount reports how many columns the first record carries, as input
// shape diagnostics for the run row.
func columnCount(records []Record) int {
	if len(records) == 0 {
		return 0
	}
	return len(records[0])
}

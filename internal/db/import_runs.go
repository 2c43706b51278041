package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mariana/cct-importer/internal/importer"
)

// ImportRun is one row of historico_importacao.
type ImportRun struct {
	ID           uuid.UUID  `json:"id"`
	Arquivo      string     `json:"arquivo"`
	Status       string     `json:"status"`
	IniciadoEm   *time.Time `json:"iniciado_em"`
	FinalizadoEm *time.Time `json:"finalizado_em"`
	Registros    int        `json:"registros_processados"`
	Detalhes     string     `json:"detalhes"`
}

// CreateImportRun inserts a pending run row for an uploaded file and
// returns its id. The orchestrator later moves it to em_andamento.
func (db *DB) CreateImportRun(ctx context.Context, arquivo string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO historico_importacao (arquivo, status)
		 VALUES ($1, 'pendente')
		 RETURNING id`,
		arquivo,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create import run: %w", err)
	}
	return id, nil
}

// StartImportRun marks a run em_andamento and records input shape
// diagnostics in the details blob.
func (db *DB) StartImportRun(ctx context.Context, runID uuid.UUID, totalRecords, totalColumns int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE historico_importacao
		 SET status = $1, iniciado_em = NOW(),
		     detalhes = jsonb_build_object('total_registros', $2::int, 'total_colunas', $3::int)
		 WHERE id = $4`,
		importer.StatusInProgress, totalRecords, totalColumns, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to start import run: %w", err)
	}
	return nil
}

// FinishImportRun writes the terminal status, final counts, and details
// blob. Called exactly once per run, for concluido or erro alike.
func (db *DB) FinishImportRun(ctx context.Context, runID uuid.UUID, status string, processed int, details string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE historico_importacao
		 SET status = $1, finalizado_em = NOW(), registros_processados = $2, detalhes = $3::jsonb
		 WHERE id = $4`,
		status, processed, details, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish import run: %w", err)
	}
	return nil
}

// GetImportRun retrieves one run by id. Returns nil when absent.
func (db *DB) GetImportRun(ctx context.Context, runID uuid.UUID) (*ImportRun, error) {
	var run ImportRun
	err := db.pool.QueryRow(ctx,
		`SELECT id, arquivo, status, iniciado_em, finalizado_em,
		        COALESCE(registros_processados, 0), COALESCE(detalhes::text, '{}')
		 FROM historico_importacao WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Arquivo, &run.Status, &run.IniciadoEm, &run.FinalizadoEm, &run.Registros, &run.Detalhes)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get import run: %w", err)
	}
	return &run, nil
}

// ListImportRuns retrieves recent runs, newest first.
func (db *DB) ListImportRuns(ctx context.Context, limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, arquivo, status, iniciado_em, finalizado_em,
		        COALESCE(registros_processados, 0), COALESCE(detalhes::text, '{}')
		 FROM historico_importacao ORDER BY iniciado_em DESC NULLS LAST LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var run ImportRun
		if err := rows.Scan(&run.ID, &run.Arquivo, &run.Status, &run.IniciadoEm, &run.FinalizadoEm, &run.Registros, &run.Detalhes); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

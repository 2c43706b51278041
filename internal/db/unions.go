package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mariana/cct-importer/internal/importer"
)

// FindUnionIDByName looks up a union by exact name match.
func (db *DB) FindUnionIDByName(ctx context.Context, nome string) (int64, bool, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`SELECT id FROM sindicatos WHERE nome = $1 LIMIT 1`,
		nome,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to find union by name: %w", err)
	}
	return id, true, nil
}

// CreateUnion inserts a new union row and returns its id.
func (db *DB) CreateUnion(ctx context.Context, draft importer.UnionDraft) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO sindicatos (nome, cnpj, site, data_base, estado)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		draft.Nome, nullString(draft.CNPJ), nullString(draft.Site), draft.DataBase, nullString(draft.Estado),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create union: %w", err)
	}
	return id, nil
}

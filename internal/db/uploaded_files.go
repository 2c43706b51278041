package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// RegisterUploadedFile records an uploaded source file and returns its id.
func (db *DB) RegisterUploadedFile(ctx context.Context, nome string, tamanho int64) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO uploaded_files (nome, tamanho_bytes)
		 VALUES ($1, $2)
		 RETURNING id`,
		nome, tamanho,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to register uploaded file: %w", err)
	}
	return id, nil
}

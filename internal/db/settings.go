package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Setting keys stored in configuracoes.
const (
	SettingGeminiAPIKey = "gemini_api_key"
)

// GetSetting fetches a key/value setting from configuracoes. An absent key
// returns "" without error; callers treat that as "feature unavailable",
// not a crash.
func (db *DB) GetSetting(ctx context.Context, chave string) (string, error) {
	var valor string
	err := db.pool.QueryRow(ctx,
		`SELECT valor FROM configuracoes WHERE chave = $1`,
		chave,
	).Scan(&valor)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get setting %s: %w", chave, err)
	}
	return valor, nil
}

// SetSetting upserts a key/value setting.
func (db *DB) SetSetting(ctx context.Context, chave, valor string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO configuracoes (chave, valor) VALUES ($1, $2)
		 ON CONFLICT (chave) DO UPDATE SET valor = $2`,
		chave, valor,
	)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", chave, err)
	}
	return nil
}

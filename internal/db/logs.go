package db

import (
	"context"
	"log"
)

// AddLog writes one entry to the system_logs side channel. It is
// deliberately fire-and-forget: a failing log write must never affect
// pipeline control flow, so errors only reach the console.
func (db *DB) AddLog(ctx context.Context, level, message, module string) {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO system_logs (nivel, mensagem, modulo) VALUES ($1, $2, $3)`,
		level, message, module,
	)
	if err != nil {
		log.Printf("[%s] %s: %s (log write failed: %v)", level, module, message, err)
	}
}

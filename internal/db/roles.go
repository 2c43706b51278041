package db

import (
	"context"
	"fmt"
)

// CreateJobRole always inserts a new role row, even when the same role name
// already exists for the agreement. Each insert is an independent
// statement; there is no transaction grouping a role with its salary rows.
func (db *DB) CreateJobRole(ctx context.Context, agreementID int64, cargo, cargaHoraria, cbo string) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO cargos (convenio_id, titulo, carga_horaria, cbo)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		agreementID, cargo, nullString(cargaHoraria), nullString(cbo),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create job role: %w", err)
	}
	return id, nil
}

// CreateSalaryFloor inserts the salary floor for a job role.
func (db *DB) CreateSalaryFloor(ctx context.Context, roleID int64, valor float64) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO piso_salarial (cargo_id, valor) VALUES ($1, $2)`,
		roleID, valor,
	)
	if err != nil {
		return fmt.Errorf("failed to create salary floor: %w", err)
	}
	return nil
}

// CreateHourlyRate inserts one typed hourly rate for a job role.
func (db *DB) CreateHourlyRate(ctx context.Context, roleID int64, tipo string, valor float64) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO valores_hora (cargo_id, tipo, valor) VALUES ($1, $2, $3)`,
		roleID, tipo, valor,
	)
	if err != nil {
		return fmt.Errorf("failed to create hourly rate: %w", err)
	}
	return nil
}

// CreateParticularity inserts one clause row tied to a job role.
func (db *DB) CreateParticularity(ctx context.Context, roleID int64, conteudo, categoria string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO particularidades (cargo_id, conteudo, categoria) VALUES ($1, $2, $3)`,
		roleID, conteudo, categoria,
	)
	if err != nil {
		return fmt.Errorf("failed to create particularity: %w", err)
	}
	return nil
}

package db

import (
	"context"
	"fmt"

	"github.com/mariana/cct-importer/internal/importer"
)

// CreateAgreement always inserts a new agreement row; agreements are never
// deduplicated against prior imports.
func (db *DB) CreateAgreement(ctx context.Context, unionID int64, draft importer.AgreementDraft) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO convenios (
			sindicato_id, titulo, tipo, estado, data_base,
			vigencia_inicio, vigencia_fim, vale_refeicao,
			assistencia_medica, seguro_de_vida, uniforme, adicional_noturno
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		unionID, draft.Titulo, draft.Tipo, nullString(draft.Estado), draft.DataBase,
		draft.VigenciaInicio, draft.VigenciaFim, nullString(draft.ValeRefeicao),
		draft.AssistenciaMedica, draft.SeguroDeVida, draft.Uniforme, nullString(draft.AdicionalNoturno),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create agreement: %w", err)
	}
	return id, nil
}

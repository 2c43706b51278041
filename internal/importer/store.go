package importer

import (
	"context"

	"github.com/google/uuid"
)

// Import run statuses as persisted in historico_importacao. A run moves
// em_andamento → concluido or em_andamento → erro; both are terminal.
const (
	StatusInProgress = "em_andamento"
	StatusCompleted  = "concluido"
	StatusError      = "erro"
)

// Hourly rate type tags as persisted in valores_hora.
const (
	RateNormal   = "normal"
	RateExtra50  = "extra_50"
	RateExtra100 = "extra_100"
)

// Store is the row-level persistence interface the pipeline writes through.
// Each method is a single independent statement; there is no transaction
// spanning an agreement and its dependents.
type Store interface {
	// FindUnionIDByName looks a union up by exact name. found is false
	// when no row matches.
	FindUnionIDByName(ctx context.Context, nome string) (id int64, found bool, err error)
	CreateUnion(ctx context.Context, draft UnionDraft) (int64, error)
	CreateAgreement(ctx context.Context, unionID int64, draft AgreementDraft) (int64, error)
	CreateJobRole(ctx context.Context, agreementID int64, cargo, cargaHoraria, cbo string) (int64, error)
	CreateSalaryFloor(ctx context.Context, roleID int64, valor float64) error
	CreateHourlyRate(ctx context.Context, roleID int64, tipo string, valor float64) error
	CreateParticularity(ctx context.Context, roleID int64, conteudo, categoria string) error

	// StartImportRun marks the run em_andamento and records input shape
	// diagnostics. FinishImportRun writes the terminal status exactly once.
	StartImportRun(ctx context.Context, runID uuid.UUID, totalRecords, totalColumns int) error
	FinishImportRun(ctx context.Context, runID uuid.UUID, status string, processed int, details string) error
}

// LogSink is the write-only side-channel logger. Implementations must
// swallow their own failures; logging never affects pipeline control flow.
type LogSink interface {
	AddLog(ctx context.Context, level, message, module string)
}

// Log levels accepted by LogSink.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

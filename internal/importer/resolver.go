package importer

import (
	"context"
	"fmt"
)

const resolverModule = "importacao"

// RecordCounts accumulates what one record (or a whole run) persisted.
type RecordCounts struct {
	Convenios        int `json:"convenios"`
	Pisos            int `json:"pisos"`
	ValoresHora      int `json:"valores_hora"`
	Particularidades int `json:"particularidades"`
	Beneficios       int `json:"beneficios"`
	Licencas         int `json:"licencas"`
}

// Add accumulates another set of counts into c.
func (c *RecordCounts) Add(other RecordCounts) {
	c.Convenios += other.Convenios
	c.Pisos += other.Pisos
	c.ValoresHora += other.ValoresHora
	c.Particularidades += other.Particularidades
	c.Beneficios += other.Beneficios
	c.Licencas += other.Licencas
}

// Resolver persists drafts in foreign-key order: union → agreement → job
// role → {salary floor, hourly rates} → particularities. One Resolver
// serves one import run; its union cache must not be shared across runs.
type Resolver struct {
	store Store
	logs  LogSink

	// unionIDs caches name → id for the duration of one run so repeated
	// rows for the same union never race a second insert.
	unionIDs map[string]int64

	// lastRole remembers the most recent role per agreement, so clause
	// rows without a CARGO value still attach somewhere sensible.
	lastRole map[int64]int64
}

// NewResolver creates a resolver scoped to a single import run.
func NewResolver(store Store, logs LogSink) *Resolver {
	return &Resolver{
		store:    store,
		logs:     logs,
		unionIDs: make(map[string]int64),
		lastRole: make(map[int64]int64),
	}
}

// PersistRecord writes one record's drafts. Every store error is caught
// here, logged at ERROR, and turns the failing part (or the whole record,
// for union/agreement failures) into a no-op; one bad row never aborts the
// run. Returns the counts of rows actually created.
func (r *Resolver) PersistRecord(ctx context.Context, drafts RecordDrafts) RecordCounts {
	var counts RecordCounts

	if drafts.Agreement == nil {
		return counts
	}

	unionID, err := r.resolveUnion(ctx, drafts.Agreement.Union)
	if err != nil {
		r.logs.AddLog(ctx, LevelError,
			fmt.Sprintf("falha ao resolver sindicato %q: %v", drafts.Agreement.Union.Nome, err),
			resolverModule)
		return counts
	}

	agreementID, err := r.store.CreateAgreement(ctx, unionID, *drafts.Agreement)
	if err != nil {
		// No agreement means no dependent rows for this record.
		r.logs.AddLog(ctx, LevelError,
			fmt.Sprintf("falha ao criar convênio %q: %v", drafts.Agreement.Titulo, err),
			resolverModule)
		return counts
	}
	counts.Convenios++
	counts.Beneficios += benefitCount(drafts.Agreement)

	for _, floor := range drafts.SalaryFloors {
		r.persistSalaryFloor(ctx, agreementID, floor, &counts)
	}

	r.persistParticularities(ctx, agreementID, drafts.Particularities, &counts)

	return counts
}

// resolveUnion returns the id for a union name, consulting the run-local
// cache, then the store, creating the row only when absent.
func (r *Resolver) resolveUnion(ctx context.Context, draft UnionDraft) (int64, error) {
	if id, ok := r.unionIDs[draft.Nome]; ok {
		return id, nil
	}

	id, found, err := r.store.FindUnionIDByName(ctx, draft.Nome)
	if err != nil {
		return 0, err
	}
	if !found {
		id, err = r.store.CreateUnion(ctx, draft)
		if err != nil {
			return 0, err
		}
		r.logs.AddLog(ctx, LevelInfo,
			fmt.Sprintf("sindicato criado: %s", draft.Nome), resolverModule)
	}

	r.unionIDs[draft.Nome] = id
	return id, nil
}

// persistSalaryFloor creates the role row and its dependent salary rows.
// Sibling inserts are independent: a failed floor insert does not roll back
// the role or block the hourly rates.
func (r *Resolver) persistSalaryFloor(ctx context.Context, agreementID int64, floor SalaryFloorDraft, counts *RecordCounts) {
	roleID, err := r.store.CreateJobRole(ctx, agreementID, floor.Cargo, floor.CargaHoraria, floor.CBO)
	if err != nil {
		r.logs.AddLog(ctx, LevelError,
			fmt.Sprintf("falha ao criar cargo %q: %v", floor.Cargo, err), resolverModule)
		return
	}
	r.lastRole[agreementID] = roleID

	if floor.PisoSalarial != nil {
		if err := r.store.CreateSalaryFloor(ctx, roleID, *floor.PisoSalarial); err != nil {
			r.logs.AddLog(ctx, LevelError,
				fmt.Sprintf("falha ao criar piso salarial do cargo %q: %v", floor.Cargo, err), resolverModule)
		} else {
			counts.Pisos++
		}
	}

	rates := []struct {
		tipo  string
		valor *float64
	}{
		{RateNormal, floor.ValorHoraNormal},
		{RateExtra50, floor.ValorHoraExtra50},
		{RateExtra100, floor.ValorHoraExtra100},
	}
	for _, rate := range rates {
		if rate.valor == nil {
			continue
		}
		if err := r.store.CreateHourlyRate(ctx, roleID, rate.tipo, *rate.valor); err != nil {
			r.logs.AddLog(ctx, LevelError,
				fmt.Sprintf("falha ao criar valor hora %s do cargo %q: %v", rate.tipo, floor.Cargo, err), resolverModule)
			continue
		}
		counts.ValoresHora++
	}
}

// persistParticularities attaches clause drafts to the agreement's most
// recent role, creating a placeholder role when the record had none.
func (r *Resolver) persistParticularities(ctx context.Context, agreementID int64, drafts []ParticularityDraft, counts *RecordCounts) {
	if len(drafts) == 0 {
		return
	}

	roleID, ok := r.lastRole[agreementID]
	if !ok {
		var err error
		roleID, err = r.store.CreateJobRole(ctx, agreementID, "Geral", "", "")
		if err != nil {
			r.logs.AddLog(ctx, LevelError,
				fmt.Sprintf("falha ao criar cargo para particularidades: %v", err), resolverModule)
			return
		}
		r.lastRole[agreementID] = roleID
	}

	for _, p := range drafts {
		if err := r.store.CreateParticularity(ctx, roleID, p.Conteudo, p.Categoria); err != nil {
			r.logs.AddLog(ctx, LevelError,
				fmt.Sprintf("falha ao criar particularidade: %v", err), resolverModule)
			continue
		}
		if p.Categoria == CategoryLeave {
			counts.Licencas++
		} else {
			counts.Particularidades++
		}
	}
}

// benefitCount tallies the benefit terms present on an agreement.
func benefitCount(a *AgreementDraft) int {
	n := 0
	if a.ValeRefeicao != "" {
		n++
	}
	if a.AssistenciaMedica {
		n++
	}
	if a.SeguroDeVida {
		n++
	}
	if a.Uniforme {
		n++
	}
	return n
}

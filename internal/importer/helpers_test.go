package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// fakeStore records every write in memory and can be told to fail specific
// operations.
type fakeStore struct {
	nextID int64

	unions          map[string]int64
	unionDrafts     []UnionDraft
	agreements      []fakeAgreement
	roles           []fakeRole
	floors          []fakeFloor
	rates           []fakeRate
	particularities []fakeParticularity

	runStatus    map[uuid.UUID]string
	runProcessed map[uuid.UUID]int
	runDetails   map[uuid.UUID]string

	failUnionLookup bool
	failAgreement   bool
	failFloor       bool
	failStart       bool
	failFinish      bool
}

type fakeAgreement struct {
	id      int64
	unionID int64
	draft   AgreementDraft
}

type fakeRole struct {
	id           int64
	agreementID  int64
	cargo        string
	cargaHoraria string
	cbo          string
}

type fakeFloor struct {
	roleID int64
	valor  float64
}

type fakeRate struct {
	roleID int64
	tipo   string
	valor  float64
}

type fakeParticularity struct {
	roleID    int64
	conteudo  string
	categoria string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		unions:       make(map[string]int64),
		runStatus:    make(map[uuid.UUID]string),
		runProcessed: make(map[uuid.UUID]int),
		runDetails:   make(map[uuid.UUID]string),
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) FindUnionIDByName(_ context.Context, nome string) (int64, bool, error) {
	if s.failUnionLookup {
		return 0, false, fmt.Errorf("lookup unavailable")
	}
	id, ok := s.unions[nome]
	return id, ok, nil
}

func (s *fakeStore) CreateUnion(_ context.Context, draft UnionDraft) (int64, error) {
	id := s.id()
	s.unions[draft.Nome] = id
	s.unionDrafts = append(s.unionDrafts, draft)
	return id, nil
}

func (s *fakeStore) CreateAgreement(_ context.Context, unionID int64, draft AgreementDraft) (int64, error) {
	if s.failAgreement {
		return 0, fmt.Errorf("insert failed")
	}
	id := s.id()
	s.agreements = append(s.agreements, fakeAgreement{id: id, unionID: unionID, draft: draft})
	return id, nil
}

func (s *fakeStore) CreateJobRole(_ context.Context, agreementID int64, cargo, cargaHoraria, cbo string) (int64, error) {
	id := s.id()
	s.roles = append(s.roles, fakeRole{id: id, agreementID: agreementID, cargo: cargo, cargaHoraria: cargaHoraria, cbo: cbo})
	return id, nil
}

func (s *fakeStore) CreateSalaryFloor(_ context.Context, roleID int64, valor float64) error {
	if s.failFloor {
		return fmt.Errorf("insert failed")
	}
	s.floors = append(s.floors, fakeFloor{roleID: roleID, valor: valor})
	return nil
}

func (s *fakeStore) CreateHourlyRate(_ context.Context, roleID int64, tipo string, valor float64) error {
	s.rates = append(s.rates, fakeRate{roleID: roleID, tipo: tipo, valor: valor})
	return nil
}

func (s *fakeStore) CreateParticularity(_ context.Context, roleID int64, conteudo, categoria string) error {
	s.particularities = append(s.particularities, fakeParticularity{roleID: roleID, conteudo: conteudo, categoria: categoria})
	return nil
}

func (s *fakeStore) StartImportRun(_ context.Context, runID uuid.UUID, _, _ int) error {
	if s.failStart {
		return fmt.Errorf("store unreachable")
	}
	s.runStatus[runID] = StatusInProgress
	return nil
}

func (s *fakeStore) FinishImportRun(_ context.Context, runID uuid.UUID, status string, processed int, details string) error {
	if s.failFinish && status == StatusCompleted {
		return fmt.Errorf("store unreachable")
	}
	s.runStatus[runID] = status
	s.runProcessed[runID] = processed
	s.runDetails[runID] = details
	return nil
}

// fakeLog collects side-channel log entries.
type fakeLog struct {
	entries []fakeLogEntry
}

type fakeLogEntry struct {
	level   string
	message string
	module  string
}

func (l *fakeLog) AddLog(_ context.Context, level, message, module string) {
	l.entries = append(l.entries, fakeLogEntry{level: level, message: message, module: module})
}

func (l *fakeLog) countLevel(level string) int {
	n := 0
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

// fakeClient returns canned responses per call, cycling through errs and
// responses in lockstep.
type fakeClient struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (c *fakeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	i := c.calls
	c.calls++
	c.prompts = append(c.prompts, prompt)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", fmt.Errorf("unexpected call %d", i)
}

func (c *fakeClient) Close() error { return nil }

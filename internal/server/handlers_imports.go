package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mariana/cct-importer/internal/db"
	"github.com/mariana/cct-importer/internal/importer"
)

var validate = validator.New()

// createImportRequest is the POST /imports payload: a file name plus the
// spreadsheet rows already decoded to column-name → value maps.
type createImportRequest struct {
	Arquivo   string            `json:"arquivo" validate:"required"`
	Registros []importer.Record `json:"registros" validate:"required"`
	UseAI     bool              `json:"use_ai"`
}

// createImportResponse acknowledges an accepted run.
type createImportResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// handleCreateImport accepts a batch of rows and runs the pipeline in the
// background. The response carries the run id; clients poll GET
// /imports/{id} for progress.
func (s *Server) handleCreateImport(w http.ResponseWriter, r *http.Request) {
	var req createImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.UseAI && s.client == nil {
		s.errorResponse(w, http.StatusBadRequest, "AI enrichment requested but no API key is configured")
		return
	}

	runID, err := s.store.CreateImportRun(r.Context(), req.Arquivo)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to create import run: "+err.Error())
		return
	}

	opts := s.opts
	opts.UseAI = req.UseAI
	if req.UseAI {
		opts.Client = s.client
	}

	// The run outlives the request; it gets its own context.
	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		pipeline := importer.New(s.store, s.logs, opts)
		result := pipeline.Run(context.Background(), req.Registros, req.Arquivo, runID)
		if !result.Success {
			log.Printf("import %s failed: %s", runID, result.Message)
		}
	}()

	s.jsonResponse(w, http.StatusAccepted, createImportResponse{ID: runID, Status: "pendente"})
}

// handleListImports returns recent runs, newest first. ?limit= caps the
// page size.
func (s *Server) handleListImports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.store.ListImportRuns(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to list import runs: "+err.Error())
		return
	}
	if runs == nil {
		runs = []db.ImportRun{}
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// handleGetImport returns one run by id.
func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid run id")
		return
	}

	run, err := s.store.GetImportRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to get import run: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "import run not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}

package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/0M-3/synaptext/internal/core/domain"
	"github.com/0M-3/synaptext/internal/logger"
)

const welcomeMessage = "Welcome to the SynapText Backend API"

// uploadResponse is returned by POST /upload-pdf.
type uploadResponse struct {
	Filename  string `json:"filename"`
	SourceID  string `json:"source_id"`
	Status    string `json:"status"`
	Chunks    int    `json:"chunks"`
	Keywords  int    `json:"keywords"`
	Junctions int    `json:"junctions"`
}

// processResponse is returned by POST /process-pdf.
type processResponse struct {
	Filename string                  `json:"filename"`
	Chunks   []domain.AnalysisChunk  `json:"chunks"`
	Graph    *domain.CentralityGraph `json:"graph"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, ok := s.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	result, err := s.ports.Ingest.Ingest(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, fmt.Errorf("ingest %s: %w", header.Filename, err))
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Filename:  result.Filename,
		SourceID:  result.SourceID,
		Status:    result.Status,
		Chunks:    result.Chunks,
		Keywords:  result.Keywords,
		Junctions: result.Junctions,
	})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if s.ports.Analysis == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Detail: "analysis is not available"})
		return
	}

	file, header, ok := s.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	analysis, err := s.ports.Analysis.Analyze(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, fmt.Errorf("analyze %s: %w", header.Filename, err))
		return
	}

	writeJSON(w, http.StatusOK, processResponse{
		Filename: header.Filename,
		Chunks:   analysis.Chunks,
		Graph:    analysis.Graph,
	})
}

// formFile reads the multipart "file" field. On failure it writes the
// response and returns ok=false.
func (s *Server) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Detail: "file too large"})
			return nil, nil, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "multipart field \"file\" is required"})
		return nil, nil, false
	}
	return file, header, true
}

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.ports.Source.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if sources == nil {
		sources = []domain.Source{}
	}
	writeJSON(w, http.StatusOK, sources)
}

func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	source, err := s.ports.Source.Get(r.Context(), chi.URLParam(r, "sourceID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, source)
}

func (s *Server) handleDeleteSource(w http.ResponseWriter, r *http.Request) {
	if err := s.ports.Source.Delete(r.Context(), chi.URLParam(r, "sourceID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListChunks(w http.ResponseWriter, r *http.Request) {
	chunks, err := s.ports.Source.ListChunks(r.Context(), chi.URLParam(r, "sourceID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if chunks == nil {
		chunks = []domain.Chunk{}
	}
	writeJSON(w, http.StatusOK, chunks)
}

func (s *Server) handleListKeywords(w http.ResponseWriter, r *http.Request) {
	keywords, err := s.ports.Source.ListKeywords(r.Context(), chi.URLParam(r, "sourceID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if keywords == nil {
		keywords = []domain.Keyword{}
	}
	writeJSON(w, http.StatusOK, keywords)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	sourceID := chi.URLParam(r, "sourceID")

	centrality := false
	if raw := r.URL.Query().Get("centrality"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: centrality must be a boolean", domain.ErrInvalidInput))
			return
		}
		centrality = v
	}

	if centrality {
		graph, err := s.ports.Graph.GetCentralityGraph(r.Context(), sourceID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, graph)
		return
	}

	graph, err := s.ports.Graph.GetGraph(r.Context(), sourceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, graph)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.ports.Summary.GetSummary(r.Context(),
		chi.URLParam(r, "sourceID"), chi.URLParam(r, "keywordID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	archive, err := s.ports.Export.Export(r.Context(), chi.URLParam(r, "sourceID"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-zip-compressed")
	w.Header().Set("Content-Disposition", "attachment; filename="+archive.Filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(archive.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archive.Data); err != nil {
		logger.Warn("write archive: %v", err)
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Warn("request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Detail: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response: %v", err)
	}
}

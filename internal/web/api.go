package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kryonis/lazysusan/internal/extract"
	"github.com/kryonis/lazysusan/internal/history"
	"github.com/kryonis/lazysusan/internal/llm"
	"github.com/kryonis/lazysusan/internal/orchestrator"
	"github.com/kryonis/lazysusan/internal/report"
	"github.com/kryonis/lazysusan/pkg/models"
)

// maxUploadBytes bounds the multipart upload body.
const maxUploadBytes = 10 << 20

// askRequest is the inbound body of POST /api/ask. The briefMode flag
// selects the extended synthesis.
type askRequest struct {
	Question    string `json:"question"`
	Lang        string `json:"lang"`
	FileContent string `json:"fileContent"`
	BriefMode   bool   `json:"briefMode"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var body askRequest
	if err := decodeJSON(r, &body); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := s.orch.Run(r.Context(), orchestrator.Request{
		Question:     body.Question,
		Lang:         models.ParseLanguage(body.Lang),
		Verbosity:    models.VerbosityFromBrief(body.BriefMode),
		DocumentText: body.FileContent,
	})
	if errors.Is(err, orchestrator.ErrMissingQuestion) {
		jsonError(w, "Question missing", http.StatusBadRequest)
		return
	}
	if errors.Is(err, llm.ErrMissingAPIKey) {
		jsonError(w, "OPENROUTER_API_KEY missing", http.StatusInternalServerError)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if s.history != nil {
		if err := s.history.Save(res); err != nil {
			s.log.Warn("history save failed", zap.String("session", res.ID), zap.Error(err))
		}
	}

	jsonResponse(w, res)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		jsonError(w, "invalid multipart body", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "reading upload failed", http.StatusInternalServerError)
		return
	}

	text, err := extract.Text(header.Filename, data)
	if errors.Is(err, extract.ErrUnsupportedType) {
		jsonError(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]any{
		"filename": header.Filename,
		"text":     text,
		"length":   len(text),
	})
}

func (s *Server) handleIntel(w http.ResponseWriter, r *http.Request) {
	if s.feed == nil {
		jsonError(w, "intel feed not configured", http.StatusServiceUnavailable)
		return
	}

	lang := models.ParseLanguage(r.URL.Query().Get("lang"))
	digest, err := s.feed.Get(r.Context(), lang)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	jsonResponse(w, digest)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		jsonError(w, "history not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			jsonError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	results, err := s.history.Recent(limit)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []*models.Result{}
	}
	jsonResponse(w, results)
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	jsonResponse(w, res)
}

func (s *Server) handleHistoryExport(w http.ResponseWriter, r *http.Request) {
	res, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	md := report.Markdown(res)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.Filename(res.Verbosity, res.Timestamp)))
	w.Write([]byte(md))
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*models.Result, bool) {
	if s.history == nil {
		jsonError(w, "history not configured", http.StatusServiceUnavailable)
		return nil, false
	}

	id := r.PathValue("id")
	res, err := s.history.Get(id)
	if errors.Is(err, history.ErrNotFound) {
		jsonError(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return res, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]any{
		"status": "ok",
		"agents": s.agents,
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

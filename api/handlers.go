package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"jamesfarrell.me/youtube-rag/internal/enrich"
	"jamesfarrell.me/youtube-rag/internal/llm"
	"jamesfarrell.me/youtube-rag/internal/rag"
	"jamesfarrell.me/youtube-rag/internal/sources"
	"jamesfarrell.me/youtube-rag/internal/transcript"
	"jamesfarrell.me/youtube-rag/internal/video"
)

func (r *Router) processVideo(w http.ResponseWriter, req *http.Request) {
	var body ProcessRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := configFrom(body)
	if err != nil {
		writeError(w, err)
		return
	}

	session, err := rag.CreateSession(req.Context(), body.URL, cfg, r.deps)
	if err != nil {
		logrus.WithField("url", body.URL).Errorf("processing failed: %v", err)
		writeError(w, err)
		return
	}

	id := uuid.NewString()
	r.storeSession(id, session)

	strategies := make([]string, len(session.Metadata.EnrichmentSources))
	for i, s := range session.Metadata.EnrichmentSources {
		strategies[i] = string(s)
	}

	writeJSON(w, http.StatusCreated, ProcessResponse{
		ID:                id,
		Title:             session.Metadata.Title,
		VideoID:           session.Metadata.VideoID,
		EnrichmentSources: strategies,
		TotalSources:      session.Ledger.Summary().TotalSources,
	})
}

func (r *Router) askQuestion(w http.ResponseWriter, req *http.Request) {
	session, ok := r.session(mux.Vars(req)["id"])
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	var body AskRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Question == "" {
		http.Error(w, "Question is required", http.StatusBadRequest)
		return
	}

	if body.WithSources {
		result, err := session.Engine.AskWithSources(req.Context(), body.Question)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, AskResponse{
			Answer:   result.Answer,
			Sources:  &result.Sources,
			Metadata: &result.Metadata,
		})
		return
	}

	answer, err := session.Engine.Ask(req.Context(), body.Question)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AskResponse{Answer: answer})
}

func (r *Router) getSummary(w http.ResponseWriter, req *http.Request) {
	session, ok := r.session(mux.Vars(req)["id"])
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	granularity := rag.Granularity(req.URL.Query().Get("granularity"))
	if granularity == "" {
		granularity = rag.Brief
	}

	result, err := session.Engine.Summarize(req.Context(), granularity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (r *Router) getAllSummaries(w http.ResponseWriter, req *http.Request) {
	session, ok := r.session(mux.Vars(req)["id"])
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	results, err := session.Engine.GenerateAllSummaries(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (r *Router) generateQA(w http.ResponseWriter, req *http.Request) {
	session, ok := r.session(mux.Vars(req)["id"])
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	var body QARequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pairs, err := session.Engine.GenerateAutoQA(req.Context(), body.Count)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pairs)
}

func (r *Router) getReport(w http.ResponseWriter, req *http.Request) {
	session, ok := r.session(mux.Vars(req)["id"])
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary":       session.Ledger.Summary(),
		"query_history": session.Ledger.QueryHistory(),
		"metadata":      session.Metadata,
	})
}

func (r *Router) exportReport(w http.ResponseWriter, req *http.Request) {
	session, ok := r.session(mux.Vars(req)["id"])
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	var body ExportRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Path == "" {
		body.Path = "source_tracking_report.json"
	}

	if err := session.Ledger.Export(body.Path); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ExportResponse{Path: body.Path})
}

func configFrom(body ProcessRequest) (enrich.Config, error) {
	if body.Config != nil {
		strategies := make([]enrich.Strategy, 0, len(body.Config.Strategies))
		for _, name := range body.Config.Strategies {
			strategies = append(strategies, enrich.Strategy(name))
		}
		cfg := enrich.NewConfig(body.Config.Enabled, strategies...)
		if body.Config.MaxResultChars > 0 {
			cfg.MaxResultChars = body.Config.MaxResultChars
		}
		cfg.TrackSources = body.Config.TrackSources
		return cfg, nil
	}

	switch body.Preset {
	case "", "balanced":
		return enrich.PresetBalanced(), nil
	case "transcript_only":
		return enrich.TranscriptOnly(), nil
	case "minimal":
		return enrich.PresetMinimal(), nil
	case "comprehensive":
		return enrich.PresetComprehensive(), nil
	case "academic":
		return enrich.PresetAcademic(), nil
	default:
		return enrich.Config{}, &rag.InvalidArgumentError{Msg: fmt.Sprintf("unknown preset %q", body.Preset)}
	}
}

// writeError maps pipeline errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	guidance := ""

	var refErr *video.InvalidReferenceError
	var argErr *rag.InvalidArgumentError
	var unavailableErr *transcript.UnavailableError
	var emptyErr *transcript.EmptyTranscriptError
	var backendErr *llm.BackendError
	var exportErr *sources.ExportError

	switch {
	case errors.As(err, &refErr), errors.As(err, &argErr):
		status = http.StatusBadRequest
	case errors.As(err, &unavailableErr), errors.As(err, &emptyErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &backendErr):
		guidance = backendErr.Guidance()
		if backendErr.Kind == llm.RateLimited {
			status = http.StatusTooManyRequests
			w.Header().Set("Retry-After", "60")
		} else {
			status = http.StatusBadGateway
		}
	case errors.As(err, &exportErr):
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, ErrorResponse{Error: err.Error(), Guidance: guidance})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

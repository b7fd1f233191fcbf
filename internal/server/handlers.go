package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	perrors "github.com/BardicNoel/perktree/pkg/errors"
	"github.com/BardicNoel/perktree/pkg/graph"
	"github.com/BardicNoel/perktree/pkg/pipeline"
)

// =============================================================================
// Wire Types
// =============================================================================

type layoutRequest struct {
	Records []graph.Record   `json:"records"`
	Options pipeline.Options `json:"options"`
}

type renderRequest struct {
	Layout  graph.Layout     `json:"layout"`
	Options pipeline.Options `json:"options"`
}

type layoutResponse struct {
	RequestID   string            `json:"request_id"`
	RecordsHash string            `json:"records_hash"`
	Layout      graph.Layout      `json:"layout"`
	Artifacts   map[string]string `json:"artifacts,omitempty"`
	Cache       cacheStatus       `json:"cache"`
}

type renderResponse struct {
	RequestID string            `json:"request_id"`
	Artifacts map[string]string `json:"artifacts"`
	Cached    bool              `json:"cached"`
}

type cacheStatus struct {
	Layout bool `json:"layout"`
	Render bool `json:"render"`
}

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    perrors.Code `json:"code"`
	Message string       `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := layoutRequest{Options: s.requestDefaults()}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validateRecords(req.Records); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.pin(req.Options, r)

	result, err := s.runner.Execute(ctx, req.Records, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		RequestID:   requestIDFrom(ctx),
		RecordsHash: result.RecordsHash,
		Layout:      result.Layout,
		Artifacts:   textArtifacts(result.Artifacts),
		Cache: cacheStatus{
			Layout: result.CacheInfo.LayoutHit,
			Render: result.CacheInfo.RenderHit,
		},
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := renderRequest{Options: s.requestDefaults()}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validateLayout(req.Layout); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.pin(req.Options, r)

	artifacts, hit, err := s.runner.RenderWithCacheInfo(ctx, req.Layout, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make(map[string]string, len(artifacts))
	for format, data := range artifacts {
		out[format] = string(data)
	}
	writeJSON(w, http.StatusOK, renderResponse{
		RequestID: requestIDFrom(ctx),
		Artifacts: out,
		Cached:    hit,
	})
}

// =============================================================================
// Helpers
// =============================================================================

// requestDefaults returns a copy of the server defaults safe to decode over.
// Formats is cloned because decoding a JSON array may reuse its backing array.
func (s *Server) requestDefaults() pipeline.Options {
	opts := s.defaults
	opts.Formats = slices.Clone(s.defaults.Formats)
	return opts
}

// pin overrides the fields a client may not choose.
func (s *Server) pin(opts pipeline.Options, r *http.Request) pipeline.Options {
	opts.MaxRecords = s.cfg.MaxRecords
	opts.Concurrency = 0
	opts.Logger = s.logger.With("request_id", requestIDFrom(r.Context()))
	return opts
}

func (s *Server) validateRecords(records []graph.Record) error {
	if err := perrors.ValidateRecordCount(len(records), s.cfg.MaxRecords); err != nil {
		return err
	}
	for _, rec := range records {
		if err := perrors.ValidateRecordID(rec.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) validateLayout(l graph.Layout) error {
	if len(l.Nodes) == 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "layout has no nodes")
	}
	if err := perrors.ValidateRecordCount(len(l.Nodes), s.cfg.MaxRecords); err != nil {
		return err
	}
	for _, n := range l.Nodes {
		if err := perrors.ValidateRecordID(n.ID); err != nil {
			return err
		}
	}
	return nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return perrors.Wrap(perrors.ErrCodeTooLarge, err, "request body exceeds %d bytes", maxErr.Limit)
		}
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

// textArtifacts drops the JSON artifact, which duplicates the layout field.
func textArtifacts(artifacts map[string][]byte) map[string]string {
	var out map[string]string
	for format, data := range artifacts {
		if format == pipeline.FormatJSON {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[format] = string(data)
	}
	return out
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := perrors.HTTPStatus(err)
	code := perrors.GetCode(err)
	if code == "" {
		code = perrors.ErrCodeInternal
	}
	msg := perrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", requestIDFrom(r.Context()), "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: code, Message: msg},
		RequestID: requestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

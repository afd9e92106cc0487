package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davetashner/launchdash/internal/output"
	"github.com/davetashner/launchdash/internal/pipeline"
	"github.com/davetashner/launchdash/internal/selection"
)

// maxBodyBytes caps selection request bodies.
const maxBodyBytes = 1 << 16

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := s.page.Format(s.ctrl.Snapshot(), &buf); err != nil {
		s.logger.Error("render dashboard", "error", err)
		writeError(w, http.StatusInternalServerError, "render dashboard failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.ctrl.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"revision": snap.Revision,
		"rows":     s.ctrl.Dataset().Len(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

type siteOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type sitesResponse struct {
	Placeholder string           `json:"placeholder"`
	Options     []siteOption     `json:"options"`
	Domain      selection.Domain `json:"domain"`
}

func (s *Server) handleSites(w http.ResponseWriter, _ *http.Request) {
	domain := s.ctrl.Domain()
	opts := make([]siteOption, 0, len(domain.Sites)+1)
	opts = append(opts, siteOption{Value: selection.AllSites, Label: selection.AllSitesLabel})
	for _, site := range domain.Sites {
		opts = append(opts, siteOption{Value: site, Label: site})
	}
	writeJSON(w, http.StatusOK, sitesResponse{
		Placeholder: output.SitePlaceholder,
		Options:     opts,
		Domain:      domain,
	})
}

type siteRequest struct {
	Site *string `json:"site"`
}

func (s *Server) handleSelectSite(w http.ResponseWriter, r *http.Request) {
	var req siteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Site == nil {
		writeError(w, http.StatusBadRequest, `missing field "site"`)
		return
	}

	snap, err := s.ctrl.SelectSite(*req.Site)
	if err != nil {
		writeSelectionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type payloadRequest struct {
	Low  *float64 `json:"low"`
	High *float64 `json:"high"`
}

func (s *Server) handleSelectPayload(w http.ResponseWriter, r *http.Request) {
	var req payloadRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Low == nil || req.High == nil {
		writeError(w, http.StatusBadRequest, `fields "low" and "high" are required`)
		return
	}

	snap, err := s.ctrl.SelectPayload(*req.Low, *req.High)
	if err != nil {
		writeSelectionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	snap := s.ctrl.Snapshot()
	switch name := chi.URLParam(r, "chart"); name {
	case "proportion":
		writeJSON(w, http.StatusOK, snap.Proportion)
	case "correlation":
		writeJSON(w, http.StatusOK, snap.Correlation)
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown chart %q", name))
	}
}

// handleExport streams the rows behind the current correlation chart. Rows
// are derived from the snapshot's own selection so they match the filename.
func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	snap := s.ctrl.Snapshot()
	rows := pipeline.FilterForCorrelation(s.ctrl.Dataset(), snap.Selection.Site, snap.Selection.Payload)

	var buf bytes.Buffer
	if err := output.WriteCSV(&buf, s.ctrl.Dataset().Columns(), rows); err != nil {
		s.logger.Error("export csv", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.CSVFilename(snap.Selection, s.now())))
	_, _ = buf.WriteTo(w)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeSelectionError(w http.ResponseWriter, err error) {
	if errors.Is(err, selection.ErrUnknownSite) || errors.Is(err, selection.ErrInvalidRange) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

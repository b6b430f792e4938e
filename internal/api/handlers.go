package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/shipdata/internal/canon"
	"github.com/sells-group/shipdata/internal/collapse"
	"github.com/sells-group/shipdata/internal/model"
	"github.com/sells-group/shipdata/internal/record"
	"github.com/sells-group/shipdata/internal/standardize"
	"github.com/sells-group/shipdata/internal/store"
)

type valuesRequest struct {
	Values []model.Value `json:"values"`
}

type resultsResponse struct {
	Results []model.Optional[string] `json:"results"`
}

func (s *Server) normalizeName(w http.ResponseWriter, r *http.Request) {
	s.normalize(w, r, canon.NormalizeNameValue)
}

func (s *Server) normalizeCallsign(w http.ResponseWriter, r *http.Request) {
	s.normalize(w, r, canon.NormalizeCallsignValue)
}

func (s *Server) normalizeIMO(w http.ResponseWriter, r *http.Request) {
	s.normalize(w, r, standardize.IMO)
}

func (s *Server) normalize(w http.ResponseWriter, r *http.Request, fn func(model.Value) model.Optional[string]) {
	var req valuesRequest
	if !decode(w, r, &req) {
		return
	}
	out := make([]model.Optional[string], len(req.Values))
	for i, v := range req.Values {
		out[i] = fn(v)
	}
	writeJSON(w, http.StatusOK, resultsResponse{Results: out})
}

type resolveRequest struct {
	Tags   []string `json:"tags"`
	Tagged []string `json:"tagged"`
}

type resolveResponse struct {
	Geartype  model.Optional[string] `json:"geartype"`
	IsFishing model.Optional[bool]   `json:"is_fishing"`
}

func (s *Server) resolveGear(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Tags) > 0 && len(req.Tagged) > 0 {
		writeError(w, http.StatusBadRequest, "send either tags or tagged, not both")
		return
	}

	var gear model.Optional[string]
	if len(req.Tagged) > 0 {
		gear = s.gear.ResolveWithConfidence(req.Tagged)
	} else {
		gear = s.gear.Resolve(req.Tags)
	}
	resp := resolveResponse{Geartype: gear, IsFishing: model.None[bool]()}
	if g, ok := gear.Get(); ok {
		resp.IsFishing = s.gear.IsFishing(g)
	}
	writeJSON(w, http.StatusOK, resp)
}

type fishingRequest struct {
	Geartype string `json:"geartype"`
}

func (s *Server) isFishing(w http.ResponseWriter, r *http.Request) {
	var req fishingRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]model.Optional[bool]{
		"is_fishing": s.gear.IsFishing(req.Geartype),
	})
}

type collapseRequest struct {
	Rule   string        `json:"rule"`
	Values []model.Value `json:"values"`
}

func (s *Server) collapse(w http.ResponseWriter, r *http.Request) {
	var req collapseRequest
	if !decode(w, r, &req) {
		return
	}
	rule, err := collapse.ParseRule(req.Rule)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	v, err := collapse.Apply(rule, req.Values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]model.Optional[string]{"value": v})
}

type runResponse struct {
	Run     *store.Run         `json:"run"`
	Records []record.Consensus `json:"records"`
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	runID := chi.URLParam(r, "runID")

	run, err := s.store.GetRun(r.Context(), runID)
	if eris.Is(err, store.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		zap.L().Error("api: get run", zap.String("run_id", runID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	records, err := s.store.ListRun(r.Context(), runID)
	if err != nil {
		zap.L().Error("api: list run", zap.String("run_id", runID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if records == nil {
		records = []record.Consensus{}
	}
	writeJSON(w, http.StatusOK, runResponse{Run: run, Records: records})
}

// decode reads a JSON body into dst, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Package api serves anagram subset queries over HTTP.
//
//	GET /find/{pattern}?length=4&min=3&match=d.ts
//	GET /health
//	GET /metrics
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/anafind/internal/logger"
	"github.com/bastiangx/anafind/pkg/config"
	"github.com/bastiangx/anafind/pkg/index"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// Handler provides HTTP handlers over a read-only index.
type Handler struct {
	idx     *index.Index
	config  *config.Config
	metrics *Metrics
	logger  *log.Logger
}

// FindResponse is the body returned by /find.
type FindResponse struct {
	Pattern   string   `json:"pattern"`
	Words     []string `json:"words"`
	Count     int      `json:"count"`
	Truncated bool     `json:"truncated,omitempty"`
	TookUS    int64    `json:"took_us"`
}

// HealthResponse is the body returned by /health.
type HealthResponse struct {
	Status string `json:"status"`
	index.Stats
}

// NewHandler creates a handler and registers its metrics with reg.
func NewHandler(idx *index.Index, cfg *config.Config, reg prometheus.Registerer) *Handler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	h := &Handler{
		idx:     idx,
		config:  cfg,
		metrics: NewMetrics(reg),
		logger:  logger.New("http"),
	}
	h.metrics.words.Set(float64(idx.Len()))
	return h
}

// HandleFind handles GET /find/{pattern}.
func (h *Handler) HandleFind(w http.ResponseWriter, r *http.Request) {
	pattern := mux.Vars(r)["pattern"]

	q, err := h.parseQuery(pattern, r)
	if err != nil {
		h.metrics.observeRejected()
		h.logger.Debug("Rejected query", "pattern", pattern, "err", err)
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	words := h.idx.Query(q)
	elapsed := time.Since(start)
	h.metrics.observeQuery(elapsed, len(words))

	resp := FindResponse{
		Pattern: pattern,
		Words:   words,
		Count:   len(words),
		TookUS:  elapsed.Microseconds(),
	}
	if limit := h.config.Server.MaxResults; limit > 0 && len(words) > limit {
		resp.Words = words[:limit]
		resp.Truncated = true
	}

	h.logger.Debugf("Found %d words for '%s' in %v", resp.Count, pattern, elapsed)
	writeJSON(w, http.StatusOK, resp)
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Stats: h.idx.Stats()})
}

// parseQuery reads the optional length, min and match parameters.
func (h *Handler) parseQuery(pattern string, r *http.Request) (index.Query, error) {
	if pattern == "" {
		return index.Query{}, fmt.Errorf("missing pattern")
	}
	if utf8.RuneCountInString(pattern) > h.config.Server.MaxPattern {
		return index.Query{}, fmt.Errorf("pattern exceeds maximum length of %d", h.config.Server.MaxPattern)
	}

	params := r.URL.Query()
	q := index.Query{
		Pattern:   pattern,
		MinLength: h.config.Query.MinLength,
		Match:     params.Get("match"),
	}

	var err error
	if q.Length, err = intParam(params.Get("length"), 0); err != nil {
		return index.Query{}, fmt.Errorf("invalid length: %w", err)
	}
	if q.MinLength, err = intParam(params.Get("min"), q.MinLength); err != nil {
		return index.Query{}, fmt.Errorf("invalid min: %w", err)
	}
	return q, nil
}

// intParam parses a non-negative integer, returning def for an empty value.
func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must be >= 0, got %d", n)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

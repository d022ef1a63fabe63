package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/anafind/internal/logger"
	"github.com/bastiangx/anafind/pkg/config"
	"github.com/bastiangx/anafind/pkg/index"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server answers msgpack requests against a loaded index.
type Server struct {
	idx          *index.Index
	config       *config.Config
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

// NewServer creates a server speaking over stdin/stdout.
func NewServer(idx *index.Index, cfg *config.Config) *Server {
	return NewServerWithIO(idx, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams.
func NewServerWithIO(idx *index.Index, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		idx:     idx,
		config:  cfg,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		logger:  logger.New("ipc"),
	}
}

// Start sends the ready marker and serves requests until the input ends.
// A message that cannot be decoded stops the server, since the stream can
// not be resynchronised after it.
func (s *Server) Start() error {
	s.logger.Debug("Starting IPC server")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			_ = s.send(ErrorResponse{Error: "invalid msgpack request", Code: 400})
			return fmt.Errorf("failed to decode request: %w", err)
		}
		s.requestCount++
		if err := s.send(s.handleRequest(req)); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the request action.
func (s *Server) handleRequest(req Request) any {
	switch req.Action {
	case "", ActionFind:
		return s.handleFind(req)
	case ActionStats:
		stats := s.idx.Stats()
		return StatsResponse{
			ID:            req.ID,
			Status:        "ok",
			Words:         stats.Words,
			Signatures:    stats.Signatures,
			LargestBucket: stats.LargestBucket,
		}
	case ActionHealth:
		return StatusResponse{ID: req.ID, Status: "ok"}
	default:
		return ErrorResponse{ID: req.ID, Error: fmt.Sprintf("unknown action: %s", req.Action), Code: 400}
	}
}

func (s *Server) handleFind(req Request) any {
	q, err := s.buildQuery(req)
	if err != nil {
		s.logger.Debug("Rejected request", "id", req.ID, "err", err)
		return ErrorResponse{ID: req.ID, Error: err.Error(), Code: 400}
	}

	start := time.Now()
	words := s.idx.Query(q)
	elapsed := time.Since(start)

	resp := FindResponse{
		ID:        req.ID,
		Words:     words,
		Count:     len(words),
		TimeTaken: elapsed.Microseconds(),
	}
	if limit := s.config.Server.MaxResults; limit > 0 && len(words) > limit {
		resp.Words = words[:limit]
		resp.Truncated = true
	}
	s.logger.Debugf("Took [ %v ] for pattern '%s', %d words", elapsed, req.Pattern, resp.Count)
	return resp
}

// buildQuery validates a find request and fills in configured defaults.
func (s *Server) buildQuery(req Request) (index.Query, error) {
	if req.Pattern == "" {
		return index.Query{}, errors.New("missing pattern")
	}
	if n := utf8.RuneCountInString(req.Pattern); n > s.config.Server.MaxPattern {
		return index.Query{}, fmt.Errorf("pattern exceeds maximum length of %d", s.config.Server.MaxPattern)
	}
	if req.Length < 0 {
		return index.Query{}, fmt.Errorf("length must be >= 0, got %d", req.Length)
	}

	minLength := s.config.Query.MinLength
	if req.MinLength != nil {
		if *req.MinLength < 0 {
			return index.Query{}, fmt.Errorf("min length must be >= 0, got %d", *req.MinLength)
		}
		minLength = *req.MinLength
	}

	return index.Query{
		Pattern:   req.Pattern,
		Length:    req.Length,
		MinLength: minLength,
		Match:     req.Match,
	}, nil
}

func (s *Server) send(v any) error {
	if err := s.encoder.Encode(v); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

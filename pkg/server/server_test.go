package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/anafind/pkg/config"
	"github.com/bastiangx/anafind/pkg/index"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func testIndex() *index.Index {
	return index.FromWords("ant", "tan", "ants", "at", "dots", "dote", "elephant", "plane")
}

// run feeds requests through a server and returns a decoder over its output
// positioned after the ready marker.
func run(t *testing.T, cfg *config.Config, requests ...any) (*msgpack.Decoder, error) {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		require.NoError(t, enc.Encode(r))
	}

	err := NewServerWithIO(testIndex(), cfg, &in, &out).Start()

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)
	return dec, err
}

func intPtr(n int) *int { return &n }

func TestFindRequests(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{"default min length", Request{ID: "1", Pattern: "ants"}, []string{"ant", "ants", "tan"}},
		{"explicit min length", Request{ID: "2", Pattern: "ants", MinLength: intPtr(2)}, []string{"ant", "ants", "at", "tan"}},
		{"exact length", Request{ID: "3", Action: ActionFind, Pattern: "ants", Length: 4}, []string{"ants"}},
		{"positional", Request{ID: "4", Pattern: "dotse", Match: "d.ts"}, []string{"dots"}},
		{"whole pattern word", Request{ID: "5", Pattern: "elephant"}, []string{"ant", "elephant", "plane", "tan"}},
		{"no results", Request{ID: "6", Pattern: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := run(t, nil, tt.req)
			require.NoError(t, err)

			var resp FindResponse
			require.NoError(t, dec.Decode(&resp))
			assert.Equal(t, tt.req.ID, resp.ID)
			if len(tt.want) == 0 {
				assert.Empty(t, resp.Words)
			} else {
				assert.Equal(t, tt.want, resp.Words)
			}
			assert.Equal(t, len(tt.want), resp.Count)
			assert.False(t, resp.Truncated)
			assert.GreaterOrEqual(t, resp.TimeTaken, int64(0))
		})
	}
}

func TestRejectedRequests(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxPattern = 5

	tests := []struct {
		name string
		req  Request
		msg  string
	}{
		{"empty pattern", Request{ID: "a"}, "missing pattern"},
		{"too long", Request{ID: "b", Pattern: "elephant"}, "maximum length of 5"},
		{"negative length", Request{ID: "c", Pattern: "ant", Length: -1}, "length must be >= 0"},
		{"negative min", Request{ID: "d", Pattern: "ant", MinLength: intPtr(-2)}, "min length must be >= 0"},
		{"unknown action", Request{ID: "e", Action: "explode"}, "unknown action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := run(t, cfg, tt.req)
			require.NoError(t, err)

			var resp ErrorResponse
			require.NoError(t, dec.Decode(&resp))
			assert.Equal(t, tt.req.ID, resp.ID)
			assert.Equal(t, 400, resp.Code)
			assert.Contains(t, resp.Error, tt.msg)
		})
	}
}

func TestSequentialRequestsKeepOrder(t *testing.T) {
	dec, err := run(t, nil,
		Request{ID: "s", Action: ActionStats},
		Request{ID: "h", Action: ActionHealth},
		Request{ID: "f", Pattern: "tan"},
	)
	require.NoError(t, err)

	var stats StatsResponse
	require.NoError(t, dec.Decode(&stats))
	assert.Equal(t, StatsResponse{ID: "s", Status: "ok", Words: 8, Signatures: 7, LargestBucket: 2}, stats)

	var health StatusResponse
	require.NoError(t, dec.Decode(&health))
	assert.Equal(t, StatusResponse{ID: "h", Status: "ok"}, health)

	var find FindResponse
	require.NoError(t, dec.Decode(&find))
	assert.Equal(t, []string{"ant", "tan"}, find.Words)
}

func TestMaxResultsTruncates(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxResults = 2

	dec, err := run(t, cfg, Request{ID: "1", Pattern: "elephant"})
	require.NoError(t, err)

	var resp FindResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, []string{"ant", "elephant"}, resp.Words)
	assert.Equal(t, 4, resp.Count)
	assert.True(t, resp.Truncated)
}

func TestGarbageInputStopsServer(t *testing.T) {
	var out bytes.Buffer
	srv := NewServerWithIO(testIndex(), nil, strings.NewReader("\xc1"), &out)

	err := srv.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode request")

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, 400, resp.Code)
}

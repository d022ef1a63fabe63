package index

import (
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// lines adapts a word list plus an optional trailing error into a line source.
func lines(words []string, tail error) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, w := range words {
			if !yield(w, nil) {
				return
			}
		}
		if tail != nil {
			yield("", tail)
		}
	}
}

func TestBuildGroupsAnagrams(t *testing.T) {
	idx, err := Build(lines([]string{"ant", "Tan", "ants", "at", "nat"}, nil))
	require.NoError(t, err)

	assert.Equal(t, 5, idx.Len())
	assert.Equal(t, Stats{Words: 5, Signatures: 3, LargestBucket: 3}, idx.Stats())
	assert.Equal(t, []string{"ant", "nat", "tan"}, idx.Anagrams("TNA"))
	assert.Empty(t, idx.Anagrams("xyz"))
}

func TestBuildAbortsOnError(t *testing.T) {
	boom := errors.New("bad line")
	idx, err := Build(lines([]string{"ant", "tan"}, boom))

	require.Error(t, err)
	assert.Nil(t, idx)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "after 2 words")
}

func TestBuildEmptyWords(t *testing.T) {
	idx := FromWords("", "", "a")

	assert.Equal(t, Stats{Words: 3, Signatures: 2, LargestBucket: 2}, idx.Stats())
	assert.Equal(t, []string{"", ""}, idx.Anagrams(""))
	assert.Empty(t, idx.Query(NewQuery("")))
	assert.Equal(t, []string{"", ""}, idx.Query(Query{Pattern: ""}))
	assert.Equal(t, []string{"", "", "a"}, idx.Query(Query{Pattern: "a"}))
}

func TestQueryScenarios(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		query Query
		want  []string
	}{
		{
			name:  "subset words above min length",
			words: []string{"ant", "tan", "ants", "at"},
			query: NewQuery("ants"),
			want:  []string{"ant", "ants", "tan"},
		},
		{
			name:  "pattern word itself and sub multisets",
			words: []string{"elephant", "ant", "plane"},
			query: NewQuery("elephant"),
			want:  []string{"ant", "elephant", "plane"},
		},
		{
			name:  "multiplicity respected",
			words: []string{"teeth", "heat", "hate"},
			query: NewQuery("elephant"),
			want:  []string{"hate", "heat"},
		},
		{
			name:  "exact length",
			words: []string{"ant", "tan", "ants", "stan"},
			query: Query{Pattern: "ants", Length: 4, MinLength: 3},
			want:  []string{"ants", "stan"},
		},
		{
			name:  "exact length below min length",
			words: []string{"at", "ta", "ant"},
			query: Query{Pattern: "ant", Length: 2, MinLength: 3},
			want:  []string{},
		},
		{
			name:  "exact length honoured with lower min",
			words: []string{"at", "ta", "ant"},
			query: Query{Pattern: "ant", Length: 2, MinLength: 1},
			want:  []string{"at", "ta"},
		},
		{
			name:  "positional pattern",
			words: []string{"dots", "dote", "toads", "sod"},
			query: Query{Pattern: "dotsea", MinLength: 3, Match: "d.ts"},
			want:  []string{"dots"},
		},
		{
			name:  "case folded on both sides",
			words: []string{"Ant", "TAN"},
			query: NewQuery("NTA"),
			want:  []string{"ant", "tan"},
		},
		{
			name:  "duplicates preserved",
			words: []string{"ant", "ant"},
			query: NewQuery("ant"),
			want:  []string{"ant", "ant"},
		},
		{
			name:  "no match",
			words: []string{"zebra"},
			query: NewQuery("ant"),
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := FromWords(tt.words...)
			assert.Equal(t, tt.want, idx.Query(tt.query))
		})
	}
}

func TestQueryResultsAreSorted(t *testing.T) {
	idx := FromWords("stop", "pots", "tops", "spot", "opts", "post", "sop", "top", "pot")
	got := idx.Query(NewQuery("stop"))

	assert.True(t, slices.IsSorted(got))
	assert.Len(t, got, 9)
}

func TestQueryIdempotent(t *testing.T) {
	idx := FromWords("listen", "silent", "enlist", "tinsel", "inlets", "lest", "nest")
	q := Query{Pattern: "listen", MinLength: 4}

	first := idx.Query(q)
	second := idx.Query(q)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestQueryRuneLength(t *testing.T) {
	idx := FromWords("café", "face")
	assert.Equal(t, []string{"café"}, idx.Query(Query{Pattern: "éfac", Length: 4}))
}

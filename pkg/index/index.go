// Package index groups dictionary words by letter signature and answers
// anagram subset queries against the grouping.
package index

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/bastiangx/anafind/pkg/signature"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// bucket holds every word sharing one signature, in insertion order.
type bucket struct {
	sig   signature.Signature
	words []string
}

// Index maps signatures to buckets of lowercased words. It is built once
// and never mutated afterwards, so concurrent queries need no locking.
type Index struct {
	// keyed by canonical signature key; the empty key lives in blank
	trie       *patricia.Trie
	blank      *bucket
	words      int
	signatures int
	largest    int
}

// Stats describes the shape of a built index.
type Stats struct {
	Words         int `json:"words" msgpack:"words"`
	Signatures    int `json:"signatures" msgpack:"signatures"`
	LargestBucket int `json:"largest_bucket" msgpack:"largest_bucket"`
}

func newIndex() *Index {
	return &Index{trie: patricia.NewTrie()}
}

// Build consumes lines until the sequence ends. The first error yielded by
// lines aborts the build; no partial index is returned.
func Build(lines iter.Seq2[string, error]) (*Index, error) {
	idx := newIndex()
	for line, err := range lines {
		if err != nil {
			return nil, fmt.Errorf("failed to build index after %d words: %w", idx.words, err)
		}
		idx.add(line)
	}
	log.Debugf("Indexed %d words into %d signatures (largest bucket %d)", idx.words, idx.signatures, idx.largest)
	return idx, nil
}

// FromWords builds an index from an in-memory word list.
func FromWords(words ...string) *Index {
	idx := newIndex()
	for _, w := range words {
		idx.add(w)
	}
	return idx
}

func (idx *Index) add(word string) {
	sig := signature.New(word)
	b := idx.bucketFor(sig)
	b.words = append(b.words, strings.ToLower(word))
	idx.words++
	if len(b.words) > idx.largest {
		idx.largest = len(b.words)
	}
}

// bucketFor returns the bucket for sig, creating it when absent.
func (idx *Index) bucketFor(sig signature.Signature) *bucket {
	if sig.IsEmpty() {
		if idx.blank == nil {
			idx.blank = &bucket{sig: sig}
			idx.signatures++
		}
		return idx.blank
	}

	key := patricia.Prefix(sig.Key())
	if item := idx.trie.Get(key); item != nil {
		return item.(*bucket)
	}
	b := &bucket{sig: sig}
	idx.trie.Insert(key, b)
	idx.signatures++
	return b
}

// each calls fn for every bucket, the empty signature first, then in
// canonical key order.
func (idx *Index) each(fn func(b *bucket)) {
	if idx.blank != nil {
		fn(idx.blank)
	}
	err := idx.trie.Visit(func(_ patricia.Prefix, item patricia.Item) error {
		fn(item.(*bucket))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting signature trie: %v", err)
	}
}

// Anagrams returns the words sharing word's signature exactly, sorted.
func (idx *Index) Anagrams(word string) []string {
	sig := signature.New(word)
	var b *bucket
	if sig.IsEmpty() {
		b = idx.blank
	} else if item := idx.trie.Get(patricia.Prefix(sig.Key())); item != nil {
		b = item.(*bucket)
	}
	if b == nil {
		return []string{}
	}
	words := slices.Clone(b.words)
	slices.Sort(words)
	return words
}

// Len returns the number of indexed words, duplicates included.
func (idx *Index) Len() int {
	return idx.words
}

// Stats returns word, signature and bucket counts.
func (idx *Index) Stats() Stats {
	return Stats{
		Words:         idx.words,
		Signatures:    idx.signatures,
		LargestBucket: idx.largest,
	}
}

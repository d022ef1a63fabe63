package index

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testPatterns = []string{
	"a", "at", "ant", "ants", "stain", "satin",
	"elephant", "listen", "silent", "tinsel", "enlists",
}

func concurrentIndex() *Index {
	return FromWords(
		"ant", "tan", "ants", "at", "sat", "stain", "satin", "saint",
		"listen", "silent", "enlist", "tinsel", "inlets", "list", "lest",
		"elephant", "plane", "panel", "leap", "peel", "heel",
	)
}

// Queries only read the index, so any number of goroutines may share it.
func TestQueryConcurrent(t *testing.T) {
	idx := concurrentIndex()

	want := make(map[string][]string, len(testPatterns))
	for _, p := range testPatterns {
		want[p] = idx.Query(NewQuery(p))
	}

	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 200},
		{workers: 4, iterationsPerWorker: 100},
		{workers: 16, iterationsPerWorker: 25},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterationsPerWorker), func(t *testing.T) {
			var wg sync.WaitGroup
			errs := make(chan string, config.workers)

			for w := range config.workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range config.iterationsPerWorker {
						p := testPatterns[(w+i)%len(testPatterns)]
						got := idx.Query(NewQuery(p))
						if !assert.ObjectsAreEqual(want[p], got) {
							errs <- fmt.Sprintf("worker %d: %q gave %v, want %v", w, p, got, want[p])
							return
						}
					}
				}()
			}
			wg.Wait()
			close(errs)

			for msg := range errs {
				t.Error(msg)
			}
		})
	}
}

func BenchmarkQuery(b *testing.B) {
	idx := concurrentIndex()
	q := NewQuery("elephant")

	b.ReportAllocs()
	for b.Loop() {
		idx.Query(q)
	}
}

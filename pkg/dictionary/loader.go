/*
Package dictionary reads line oriented word lists and feeds them to the index.

A word list holds one word per line. Plain text files are read as is; files
ending in .gz, .zst or .lz4 are decompressed on the fly:

	src, err := dictionary.Open("/usr/share/dict/words")
	if err != nil {
		return err
	}
	defer src.Close()
	idx, err := index.Build(src.Lines())

Load wraps those steps. Any read failure or line that is not valid UTF-8
aborts the load with a *SetupError naming the file and line.
*/
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/anafind/pkg/index"
	"github.com/charmbracelet/log"
)

// DefaultWordsPath is the usual location of the system word list.
const DefaultWordsPath = "/usr/share/dict/words"

// maxLineSize bounds a single line; word lists never come close.
const maxLineSize = 1 << 20

var (
	// ErrInvalidUTF8 marks a line that does not decode as UTF-8.
	ErrInvalidUTF8 = errors.New("line is not valid UTF-8")
	// ErrEmptyPath is returned when no word list path was configured.
	ErrEmptyPath = errors.New("word list path is empty")
)

// SetupError reports a word list that could not be read. Line is zero when
// the failure happened before any line was read.
type SetupError struct {
	Path string
	Line int
	Err  error
}

func (e *SetupError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("word list %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("word list %s: %v", e.Path, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// Source is an open word list.
type Source struct {
	path   string
	format Format
	file   io.Closer
	rc     io.ReadCloser
}

// Open opens the word list at path, detecting compression by extension.
func Open(path string) (*Source, error) {
	if path == "" {
		return nil, &SetupError{Path: path, Err: ErrEmptyPath}
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, &SetupError{Path: path, Err: err}
	}

	format := DetectFormat(path)
	rc, err := decoder(file, format)
	if err != nil {
		file.Close()
		return nil, &SetupError{Path: path, Err: err}
	}
	log.Debugf("Opened word list %s (%s)", path, format)

	return &Source{path: path, format: format, file: file, rc: rc}, nil
}

// NewSource reads an already decoded stream. name is only used in errors.
func NewSource(name string, r io.Reader) *Source {
	return &Source{path: name, format: FormatText, rc: io.NopCloser(r)}
}

// Format returns the detected encoding of the source.
func (s *Source) Format() Format {
	return s.format
}

// Lines yields every line with its terminator stripped. After the first
// error the sequence stops.
func (s *Source) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(s.rc)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		line := 0
		for scanner.Scan() {
			line++
			text := scanner.Text()
			if !utf8.ValidString(text) {
				yield("", &SetupError{Path: s.path, Line: line, Err: ErrInvalidUTF8})
				return
			}
			if !yield(text, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", &SetupError{Path: s.path, Line: line + 1, Err: err})
		}
	}
}

// Close releases the decoder and the underlying file.
func (s *Source) Close() error {
	err := s.rc.Close()
	if s.file != nil {
		if ferr := s.file.Close(); err == nil {
			err = ferr
		}
	}
	return err
}

// Load reads the whole word list at path into a new index.
func Load(path string) (*index.Index, error) {
	start := time.Now()
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	idx, err := index.Build(src.Lines())
	if err != nil {
		return nil, err
	}

	stats := idx.Stats()
	log.Debugf("Loaded %d words (%d signatures) from %s in %v", stats.Words, stats.Signatures, path, time.Since(start))
	return idx, nil
}

// Package cli provides an interactive prompt for trying anagram queries
// against a loaded index.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/anafind/internal/logger"
	"github.com/bastiangx/anafind/internal/utils"
	"github.com/bastiangx/anafind/pkg/index"
	"github.com/charmbracelet/log"
)

// errQuit ends the input loop without an error.
var errQuit = errors.New("quit")

// InputHandler reads patterns line by line and prints matching words.
// Lines starting with ':' adjust the filters applied to later patterns:
//
//	:len 5       only words of exactly 5 letters (0 clears)
//	:min 2       minimum word length
//	:match d.ts  positional pattern (no argument clears)
//	:show        print current filters
//	:q           quit
type InputHandler struct {
	idx          *index.Index
	query        index.Query
	maxPattern   int
	in           io.Reader
	out          io.Writer
	term         *terminal
	logger       *log.Logger
	requestCount int
}

// NewInputHandler creates a handler over idx with the initial filters.
func NewInputHandler(idx *index.Index, length, minLength, maxPattern int, match string) *InputHandler {
	h := &InputHandler{
		idx: idx,
		query: index.Query{
			Length:    length,
			MinLength: minLength,
			Match:     match,
		},
		maxPattern: maxPattern,
		logger:     logger.New("cli"),
	}
	h.SetIO(os.Stdin, os.Stdout)
	return h
}

// SetIO replaces the input and output streams.
func (h *InputHandler) SetIO(in io.Reader, out io.Writer) {
	h.in = in
	h.out = out
	h.term = newTerminal(out)
}

// Start runs the prompt until EOF or ':q'.
func (h *InputHandler) Start() error {
	h.term.banner()
	scanner := bufio.NewScanner(h.in)

	for {
		h.term.prompt()
		if !scanner.Scan() {
			h.term.newline()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if err := h.handleCommand(line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				h.logger.Error(err)
			}
			continue
		}
		h.handleInput(line)
	}
}

// handleCommand applies a ':' directive to the current filters.
func (h *InputHandler) handleCommand(line string) error {
	fields := strings.Fields(strings.TrimPrefix(line, ":"))
	if len(fields) == 0 {
		return fmt.Errorf("empty command")
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "q", "quit", "exit":
		return errQuit
	case "len", "length":
		n, err := nonNegative(arg)
		if err != nil {
			return fmt.Errorf("length: %w", err)
		}
		h.query.Length = n
	case "min":
		n, err := nonNegative(arg)
		if err != nil {
			return fmt.Errorf("min: %w", err)
		}
		h.query.MinLength = n
	case "match":
		if arg != "" && !utils.IsValidMatch(arg) {
			return fmt.Errorf("match: only letters and '.' are allowed, got '%s'", arg)
		}
		h.query.Match = arg
	case "show":
	default:
		return fmt.Errorf("unknown command ':%s'", fields[0])
	}

	h.term.filters(h.query)
	return nil
}

// handleInput validates one pattern, queries the index and prints the result.
func (h *InputHandler) handleInput(pattern string) {
	h.requestCount++

	if !utils.IsLetters(pattern) {
		h.logger.Errorf("Pattern must contain letters only: %s", pattern)
		return
	}
	if utf8.RuneCountInString(pattern) > h.maxPattern {
		h.logger.Errorf("Pattern too long: %s", pattern)
		return
	}
	if utils.IsRepetitive(pattern) {
		h.logger.Warnf("Pattern '%s' repeats a single letter", pattern)
	}

	q := h.query
	q.Pattern = pattern

	start := time.Now()
	words := h.idx.Query(q)
	h.logger.Debugf("Took [ %v ] for pattern '%s' (request #%d)", time.Since(start), pattern, h.requestCount)

	h.term.results(pattern, words)
}

func nonNegative(arg string) (int, error) {
	if arg == "" {
		return 0, fmt.Errorf("missing value")
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must be >= 0, got %d", n)
	}
	return n, nil
}

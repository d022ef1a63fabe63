package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bastiangx/anafind/pkg/index"
	"github.com/charmbracelet/lipgloss"
)

// terminal renders prompt output. Colors follow the writer's capabilities,
// so a plain buffer gets plain text.
type terminal struct {
	out   io.Writer
	word  lipgloss.Style
	dim   lipgloss.Style
	title lipgloss.Style
}

func newTerminal(out io.Writer) *terminal {
	r := lipgloss.NewRenderer(out)
	return &terminal{
		out:   out,
		word:  r.NewStyle().Foreground(lipgloss.Color("75")),
		dim:   r.NewStyle().Faint(true),
		title: r.NewStyle().Bold(true),
	}
}

func (t *terminal) banner() {
	fmt.Fprintln(t.out, t.title.Render("anafind"))
	fmt.Fprintln(t.out, t.dim.Render("type letters and press Enter to list the words they spell (:q or Ctrl+D to exit)"))
}

func (t *terminal) prompt() {
	fmt.Fprint(t.out, "> ")
}

func (t *terminal) newline() {
	fmt.Fprintln(t.out)
}

func (t *terminal) filters(q index.Query) {
	length := "any"
	if q.Length > 0 {
		length = strconv.Itoa(q.Length)
	}
	match := "none"
	if q.Match != "" {
		match = q.Match
	}
	fmt.Fprintln(t.out, t.dim.Render(fmt.Sprintf("length=%s min=%d match=%s", length, q.MinLength, match)))
}

func (t *terminal) results(pattern string, words []string) {
	if len(words) == 0 {
		fmt.Fprintf(t.out, "No words found for '%s'\n", pattern)
		return
	}

	fmt.Fprintf(t.out, "Found %s words for '%s':\n", formatWithCommas(len(words)), pattern)
	for i, w := range words {
		fmt.Fprintf(t.out, "%4d. %s\n", i+1, t.word.Render(w))
	}
}

// formatWithCommas formats an integer with comma separators
func formatWithCommas(n int) string {
	str := strconv.Itoa(n)
	if n < 1000 {
		return str
	}

	result := make([]byte, 0, len(str)+len(str)/3)
	for i := range len(str) {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, str[i])
	}
	return string(result)
}

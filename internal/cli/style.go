package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// styles renders command output; every style is a no-op when the
// destination is not a terminal.
type styles struct {
	title lipgloss.Style
	key   lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newStyles(w io.Writer) styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{title: plain, key: plain, good: plain, bad: plain}
	}

	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		key:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		good:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		bad:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// row is one key/value line of a report.
type row struct {
	key, value string
}

// report writes a titled two-column table.
func (s styles) report(w io.Writer, title string, rows []row) error {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.key))
	}

	var b strings.Builder
	b.WriteString(s.title.Render(title))
	b.WriteByte('\n')
	for _, r := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(r.key))
		fmt.Fprintf(&b, "  %s%s  %s\n", s.key.Render(r.key), pad, r.value)
	}
	_, err := io.WriteString(w, b.String())

	return err
}

package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

// categoryColors maps taxonomy color names to terminal colours.
var categoryColors = map[string]lipgloss.Color{
	"rose":    lipgloss.Color("#F43F5E"),
	"emerald": lipgloss.Color("#10B981"),
	"amber":   lipgloss.Color("#F59E0B"),
	"blue":    lipgloss.Color("#3B82F6"),
	"violet":  lipgloss.Color("#8B5CF6"),
	"lime":    lipgloss.Color("#84CC16"),
	"cyan":    lipgloss.Color("#06B6D4"),
	"orange":  lipgloss.Color("#F97316"),
	"teal":    lipgloss.Color("#14B8A6"),
	"pink":    lipgloss.Color("#EC4899"),
	"slate":   lipgloss.Color("#64748B"),
	"indigo":  lipgloss.Color("#6366F1"),
	"fuchsia": lipgloss.Color("#D946EF"),
	"sky":     lipgloss.Color("#0EA5E9"),
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

// industryStyle returns the style for a category colour name.
func industryStyle(color string) lipgloss.Style {
	c, ok := categoryColors[color]
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(c)
}

// renderIndustries renders scores as "Name 12.5" joined by commas.
func renderIndustries(scores []domain.IndustryScore) string {
	if len(scores) == 0 {
		return mutedStyle.Render("-")
	}
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = industryStyle(s.Color).Render(s.Name + " " + strconv.FormatFloat(s.Score, 'f', 1, 64))
	}
	return strings.Join(parts, ", ")
}

// formatInt renders n with thousands separators.
func formatInt(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		var b strings.Builder
		lead := len(s) % 3
		if lead > 0 {
			b.WriteString(s[:lead])
		}
		for i := lead; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// formatChange renders a signed word delta, or "-" when absent.
func formatChange(v *int) string {
	if v == nil {
		return mutedStyle.Render("-")
	}
	switch {
	case *v > 0:
		return positiveStyle.Render("+" + formatInt(*v))
	case *v < 0:
		return negativeStyle.Render(formatInt(*v))
	default:
		return "0"
	}
}

// formatPct renders a signed percentage, or "-" when absent.
func formatPct(v *float64) string {
	if v == nil {
		return mutedStyle.Render("-")
	}
	s := strconv.FormatFloat(*v, 'f', 2, 64) + "%"
	switch {
	case *v > 0:
		return positiveStyle.Render("+" + s)
	case *v < 0:
		return negativeStyle.Render(s)
	default:
		return s
	}
}

// truncate shortens s to at most width cells, marking the cut with "…".
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// pad right-pads s with spaces to width cells, ignoring ANSI sequences.
func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// padLeft left-pads s with spaces to width cells.
func padLeft(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// table renders rows in aligned columns. rightAlign marks numeric columns.
type table struct {
	headers    []string
	rightAlign []bool
	rows       [][]string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	t.writeRow(&b, widths, t.headers, headerStyle)
	for _, row := range t.rows {
		t.writeRow(&b, widths, row, lipgloss.NewStyle())
	}
	return b.String()
}

func (t *table) writeRow(b *strings.Builder, widths []int, cells []string, style lipgloss.Style) {
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		cell = style.Render(cell)
		last := i == len(cells)-1
		switch {
		case i < len(t.rightAlign) && t.rightAlign[i]:
			b.WriteString(padLeft(cell, widths[i]))
		case last:
			b.WriteString(cell)
		default:
			b.WriteString(pad(cell, widths[i]))
		}
	}
	b.WriteByte('\n')
}

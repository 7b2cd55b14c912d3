package formatter

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Field renders one "LABEL  value" line of a detail card. Empty values are
// shown as a dimmed dash.
func Field(label string, width int, value string) string {
	if strings.TrimSpace(value) == "" {
		value = Dim("--")
	} else {
		value = StyleFg.Render(value)
	}
	pad := width - lipgloss.Width(label)
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("%s%s  %s\n", StyleDim.Render(strings.ToUpper(label)), strings.Repeat(" ", pad), value)
}

// HumanDate returns a human-friendly absolute date string relative to now.
func HumanDate(t, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return "--"
	}
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return HumanDate(t, now)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t, now)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Excerpt collapses whitespace and cuts text to max runes with an ellipsis.
func Excerpt(text string, max int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if max <= 0 || utf8.RuneCountInString(flat) <= max {
		return flat
	}
	r := []rune(flat)
	return string(r[:max-1]) + "…"
}

// FormatLatency converts milliseconds into a short duration such as "1.2s".
func FormatLatency(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	s := fmt.Sprint(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

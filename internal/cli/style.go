package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"unirise-backend/internal/majors"
)

var (
	colorAccent = lipgloss.Color("#7c3aed")
	colorRank   = lipgloss.Color("#0ea5e9")
	colorDim    = lipgloss.Color("#94a3b8")
	colorFg     = lipgloss.Color("#f1f5f9")
	colorWarn   = lipgloss.Color("#f59e0b")

	styleHeader = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleRank   = lipgloss.NewStyle().Foreground(colorRank).Bold(true)
	styleMajor  = lipgloss.NewStyle().Foreground(colorFg).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleWarn   = lipgloss.NewStyle().Foreground(colorWarn)
	styleStep   = lipgloss.NewStyle().Foreground(colorFg).Background(colorAccent).Padding(0, 1)
)

func header(text string) string {
	line := strings.Repeat("─", lipgloss.Width(text))
	return styleHeader.Render(text) + "\n" + styleDim.Render(line)
}

func dim(text string) string {
	return styleDim.Render(text)
}

func warn(text string) string {
	return styleWarn.Render(text)
}

// renderPrediction prints the ranked majors, or the raw text when no
// numbered line could be parsed.
func renderPrediction(p majors.Prediction) string {
	var b strings.Builder
	b.WriteString(header("Recommended majors"))
	b.WriteString("\n")
	if len(p.Recommendations) == 0 {
		b.WriteString(p.Result)
		b.WriteString("\n")
	}
	for i, rec := range p.Recommendations {
		major := rec.Major
		if major == "" {
			major = "(unnamed)"
		}
		fmt.Fprintf(&b, "%s %s\n", styleRank.Render(fmt.Sprintf("%d.", i+1)), styleMajor.Render(major))
		if rec.Explanation != "" {
			b.WriteString("   " + styleDim.Render(rec.Explanation) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(dim(fmt.Sprintf("model %s · est. processing time %s", p.Model, p.ProcessingTime)))
	b.WriteString("\n")
	return b.String()
}

func formTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorRank)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(colorRank).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(colorDim).SetString("[ ] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(colorWarn)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(colorWarn).SetString(" *")
	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(colorDim)
	return t
}

package notation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/togramago/melodygen/internal/generator"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D946EF"))
	voiceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Width(8)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))
	partialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// RenderText draws m as rows of bars for a terminal. Notes are written as
// pitch/tag ("F#4/q"); partial bars are marked with a trailing "!".
func RenderText(m *generator.Melody) string {
	if m == nil || m.BarCount() == 0 {
		return mutedStyle.Render("(empty melody)") + "\n"
	}

	var b strings.Builder
	header := fmt.Sprintf("%s  %s  %d bpm  seed %d", m.Key(), m.TimeSignature, m.Tempo, m.Seed)
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("scale %s  shortest %s  closure %s",
		strings.Join(m.Scale, " "), m.ShortestNote.Label(), m.Closure)))
	b.WriteString("\n\n")

	lead := m.Voices[0].Bars
	rows := Rows(len(lead), BarsPerRow(len(lead), len(FlattenBars(lead))))
	for _, row := range rows {
		for _, v := range m.Voices {
			b.WriteString(voiceStyle.Render(v.Name))
			b.WriteString(mutedStyle.Render("|"))
			for _, i := range row {
				if i >= len(v.Bars) {
					continue
				}
				b.WriteString(" ")
				b.WriteString(renderBar(v.Bars[i]))
				b.WriteString(" ")
				b.WriteString(mutedStyle.Render("|"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	for _, w := range Warnings(m) {
		b.WriteString(partialStyle.Render("! " + w))
		b.WriteString("\n")
	}
	return b.String()
}

func renderBar(bar generator.Bar) string {
	parts := make([]string, 0, len(bar.Notes))
	for _, n := range bar.Notes {
		parts = append(parts, n.Pitch.String()+"/"+n.Duration.Tag())
	}
	text := strings.Join(parts, " ")
	if bar.Partial {
		return partialStyle.Render(text + " !")
	}
	return barStyle.Render(text)
}

package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette helpers. Colors are adaptive so the board stays readable on light
// and dark terminals; faint styling is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted     lipgloss.TerminalColor = ac("240", "243")
	colorAccent    lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg  lipgloss.TerminalColor = ac("255", "235")
	colorControlBg lipgloss.TerminalColor = ac("252", "237")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorError     lipgloss.TerminalColor = ac("160", "203")
)

func styleMuted() lipgloss.Style { return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)) }

func styleTitle() lipgloss.Style { return lipgloss.NewStyle().Bold(true).Foreground(colorAccent) }

func styleListHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
}

func styleCard() lipgloss.Style { return lipgloss.NewStyle().Foreground(colorSurfaceFg) }

// styleDragged marks the element currently being carried.
func styleDragged() lipgloss.Style {
	return lipgloss.NewStyle().Reverse(true)
}

// styleDropTarget marks the row a release would drop on.
func styleDropTarget() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent)
}

func styleChip() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorControlBg).Foreground(colorSurfaceFg).Padding(0, 1)
}

func styleError() lipgloss.Style { return lipgloss.NewStyle().Foreground(colorError) }

const (
	profileDefault = "default"
	profileMono    = "mono"
)

// applyColorProfile sets Lip Gloss's color profile for the interactive TUI.
// NO_COLOR and the mono profile force plain output; otherwise termenv's guess
// is upgraded when TERM/COLORTERM advertise more colors than it detected.
func applyColorProfile(profile string) {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" || strings.EqualFold(strings.TrimSpace(profile), profileMono) {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	p := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if p != termenv.Ascii {
			p = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if p == termenv.Ascii || p == termenv.ANSI {
			p = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(p)
}

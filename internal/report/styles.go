package report

import (
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

// Styles used by the text reporter.
type Styles struct {
	Header  lipgloss.Style
	Rank    lipgloss.Style
	Address lipgloss.Style
	Matches lipgloss.Style
	Zero    lipgloss.Style
	Offset  lipgloss.Style
	Text    lipgloss.Style
}

// DefaultStyles returns the colored palette.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(charmtone.Charple.Hex())),
		Rank:    lipgloss.NewStyle().Foreground(lipgloss.Color(charmtone.Squid.Hex())),
		Address: lipgloss.NewStyle().Foreground(lipgloss.Color(charmtone.Malibu.Hex())),
		Matches: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(charmtone.Guac.Hex())),
		Zero:    lipgloss.NewStyle().Foreground(lipgloss.Color(charmtone.Squid.Hex())),
		Offset:  lipgloss.NewStyle().Foreground(lipgloss.Color(charmtone.Zest.Hex())),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(charmtone.Smoke.Hex())),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:  plain,
		Rank:    plain,
		Address: plain,
		Matches: plain,
		Zero:    plain,
		Offset:  plain,
		Text:    plain,
	}
}

// ColorDisabled reports whether BASEFIND_NO_COLOR is set.
func ColorDisabled() bool {
	return os.Getenv("BASEFIND_NO_COLOR") != ""
}

// SPDX-License-Identifier: Apache-2.0
package config

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the terminal palette, as hex colors
type Theme struct {
	Primary string
	Accent  string
	Muted   string
	Warning string
	Error   string
}

// CurrentTheme is used by every command's output
var CurrentTheme = Theme{
	Primary: "#82FB9C",
	Accent:  "#7cf8f7",
	Muted:   "#6a6e95",
	Warning: "#FFD700",
	Error:   "#FF6B6B",
}

func fg(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// PrimaryColor is used for spinners and success output
func (t Theme) PrimaryColor() lipgloss.Color { return lipgloss.Color(t.Primary) }

func (t Theme) SuccessStyle() lipgloss.Style { return fg(t.Primary).Bold(true) }
func (t Theme) InfoStyle() lipgloss.Style { return fg(t.Accent) }
func (t Theme) WarningStyle() lipgloss.Style { return fg(t.Warning) }
func (t Theme) ErrorStyle() lipgloss.Style { return fg(t.Error) }
func (t Theme) SubtleStyle() lipgloss.Style { return fg(t.Muted) }

func (t Theme) SuccessMessage(text string) string { return t.SuccessStyle().Render("✓ " + text) }
func (t Theme) InfoMessage(text string) string { return t.InfoStyle().Render("ℹ " + text) }

// Status symbols used in reports
func (t Theme) CompleteIndicator() string { return t.SuccessStyle().Render("✓") }
func (t Theme) WarningIndicator() string { return t.WarningStyle().Render("⚠") }
func (t Theme) ErrorIndicator() string { return t.ErrorStyle().Render("✗") }

// RenderHeader renders "ZYPHER  ▸  SECTION  ▸  [CONTEXT]"
func (t Theme) RenderHeader(section, context string) string {
	return fg(t.Accent).Bold(true).Render("ZYPHER  ▸  " + section + "  ▸  [" + context + "]")
}

// Package fancy renders lipgloss trees and styled text for CLI output.
package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorBlue     = lipgloss.Color("39")
	ColorGreen    = lipgloss.Color("82")
	ColorYellow   = lipgloss.Color("228")
	ColorCyan     = lipgloss.Color("45")
	ColorRed      = lipgloss.Color("196")
	ColorGray     = lipgloss.Color("250")
	ColorWhite    = lipgloss.Color("15")
	ColorDarkGray = lipgloss.Color("240")
)

var (
	RootStyle   = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorWhite).Bold(true)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorGray).Italic(true)
	BranchStyle = lipgloss.NewStyle().Foreground(ColorDarkGray)
	ToolStyle   = lipgloss.NewStyle().Foreground(ColorGreen)
	KindStyle   = lipgloss.NewStyle().Foreground(ColorCyan)
	ParamStyle  = lipgloss.NewStyle().Foreground(ColorYellow)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorRed)
)

func ToolText(text string) string  { return ToolStyle.Render(text) }
func KindText(text string) string  { return KindStyle.Render(text) }
func ParamText(text string) string { return ParamStyle.Render(text) }
func ErrorText(text string) string { return ErrorStyle.Render(text) }
func ValidText(text string) string { return ToolStyle.Render(text) }
func PathText(text string) string  { return InfoStyle.Render(text) }

// TruncateString shortens s to maxLength runes, ending in "..." when cut.
func TruncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(r[:maxLength])
	}
	return string(r[:maxLength-3]) + "..."
}

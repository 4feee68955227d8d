package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
)

func printSuccess(msg string) {
	fmt.Printf("%s %s\n", styleSuccess.Render(iconSuccess), msg)
}

func printError(msg string) {
	fmt.Printf("%s %s\n", styleError.Render(iconError), msg)
}

func printFile(path string) {
	fmt.Printf("%s %s\n", styleDim.Render(iconInfo), styleValue.Render(path))
}

func printStats(tables, refs int) {
	fmt.Printf("%s %s tables, %s refs\n",
		styleDim.Render(iconInfo),
		styleNumber.Render(fmt.Sprintf("%d", tables)),
		styleNumber.Render(fmt.Sprintf("%d", refs)))
}

func printNextStep(label, command string) {
	fmt.Printf("%s %s: %s\n", styleDim.Render(iconInfo), label, styleCommand.Render(command))
}

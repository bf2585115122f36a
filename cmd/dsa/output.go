package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(22)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func printField(label string, value any) {
	fmt.Printf("  %s%v\n", labelStyle.Render(label), value)
}

// printResult prints a verification outcome. expected marks whether valid is
// the desired outcome, so a correctly rejected signature still shows green.
func printResult(label string, valid, expected bool) {
	status := "✓ valid"
	if !valid {
		status = "✗ invalid"
	}

	style := okStyle
	if valid != expected {
		style = failStyle
	}
	fmt.Printf("  %s%s\n", labelStyle.Render(label), style.Render(status))
}

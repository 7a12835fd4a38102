package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)

	subtitleStyle = lipgloss.NewStyle().
			Faint(true)
)

// printBanner writes the boxed title shown at the top of every command
func printBanner(w io.Writer, title, subtitle string) {
	body := title
	if subtitle != "" {
		body += "\n" + subtitleStyle.Render(subtitle)
	}
	fmt.Fprintln(w, bannerStyle.Render(body))
	fmt.Fprintln(w)
}

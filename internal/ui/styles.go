package ui

import "github.com/charmbracelet/lipgloss"

var styles = newPalette("#7D56F4", "#04B575", "#FF5F87", "#FFA500", "#626262")

type palette struct {
	title  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
	help   lipgloss.Style
	label  lipgloss.Style
	dialog lipgloss.Style
}

func newPalette(title, ok, err, warn, help string) palette {
	return palette{
		title:  newBold(title).MarginBottom(1),
		ok:     newBold(ok),
		err:    newBold(err),
		warn:   newStyle(warn),
		help:   newEm(help),
		label:  newStyle(help).Width(12),
		dialog: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(err)).Padding(1, 2),
	}
}

func newStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func newBold(fg string) lipgloss.Style {
	return newStyle(fg).Bold(true)
}

func newEm(fg string) lipgloss.Style {
	return newStyle(fg).Italic(true)
}

// Package ui holds the terminal styles shared by the canvasctl commands.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderAccent renders s in the accent style used for names and markers.
func RenderAccent(s string) string { return accentStyle.Render(s) }

// RenderPass renders s in the success style.
func RenderPass(s string) string { return passStyle.Render(s) }

// RenderWarn renders s in the warning style.
func RenderWarn(s string) string { return warnStyle.Render(s) }

// RenderErr renders s in the error style.
func RenderErr(s string) string { return errStyle.Render(s) }

// RenderDim renders s in the de-emphasized style used for paths and counts.
func RenderDim(s string) string { return dimStyle.Render(s) }

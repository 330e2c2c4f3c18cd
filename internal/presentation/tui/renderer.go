// Package tui styles story output for the interactive `play` command.
package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// Renderer styles narration and choices for the terminal. It degrades to
// plain text automatically when the output is not a capable TTY.
type Renderer struct {
	profile termenv.Profile
}

// NewRenderer builds a renderer using the detected color profile.
func NewRenderer() *Renderer {
	return &Renderer{profile: termenv.ColorProfile()}
}

// Narration formats a scene's narration text.
func (r *Renderer) Narration(text string) string {
	return termenv.String(text).Foreground(r.profile.Color("#e2e8f0")).Bold().String()
}

// Choice formats one numbered choice line. The number shown is the reader's
// pick index, not the engine's choice ID.
func (r *Renderer) Choice(number int, text string) string {
	num := termenv.String(fmt.Sprintf("%d)", number)).Foreground(r.profile.Color("#818cf8")).String()
	return fmt.Sprintf("  %s %s", num, text)
}

// GameOver formats the terminal end-of-story marker.
func (r *Renderer) GameOver() string {
	return termenv.String("The End.").Foreground(r.profile.Color("#fb7185")).Italic().String()
}

// Prompt formats the input prompt.
func (r *Renderer) Prompt() string {
	return termenv.String("> ").Foreground(r.profile.Color("#a78bfa")).String()
}

package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for meshtopo.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).ColorProfile()
	// Using a subtle gradient-like color scheme (Teal/Sky)
	lines := []struct{ text, color string }{
		{"                   _     _              ", "#2dd4bf"},
		{"  _ __ ___   ___ ___| |__ | |_ ___  _ __  ", "#22d3ee"},
		{" | '_ ` _ \\ / _ / __| '_ \\| __/ _ \\| '_ \\ ", "#38bdf8"},
		{" | | | | | |  __\\__ | | | | || (_) | |_) |", "#60a5fa"},
		{" |_| |_| |_|\\___|___|_| |_|\\__\\___/| .__/ ", "#818cf8"},
		{"                                   |_|    ", "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Success prints a green check line.
func Success(w io.Writer, format string, args ...any) {
	status(w, "✓", "#22c55e", format, args...)
}

// Failure prints a red cross line.
func Failure(w io.Writer, format string, args ...any) {
	status(w, "✗", "#ef4444", format, args...)
}

func status(w io.Writer, mark, color, format string, args ...any) {
	p := termenv.NewOutput(w).ColorProfile()
	fmt.Fprintf(w, "%s %s\n", termenv.String(mark).Foreground(p.Color(color)).Bold(), fmt.Sprintf(format, args...))
}

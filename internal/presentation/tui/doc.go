// Package tui renders meshtopo reports and status lines for terminals.
// Output that is not a terminal gets plain markdown.
package tui

package meshtopo

import _ "embed"

// Version is the meshtopo release, read from the VERSION file at build time.
//
//go:embed VERSION
var Version string

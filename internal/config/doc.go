// Package config loads meshtopo settings from an optional YAML or JSON file.
package config

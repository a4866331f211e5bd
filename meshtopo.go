package meshtopo

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/meshtopo/internal/adapters/file"
	"github.com/aretw0/meshtopo/internal/logging"
	"github.com/aretw0/meshtopo/internal/topology"
	"github.com/aretw0/meshtopo/pkg/domain"
	"github.com/aretw0/meshtopo/pkg/ports"
	"github.com/aretw0/meshtopo/pkg/tables"
)

// Converter is the high-level entry point for the meshtopo library.
// It snapshots a mesh source, builds its topology and publishes the solver tables.
type Converter struct {
	builder   *topology.Builder
	publisher *file.Publisher
	scheme    tables.EdgeIDScheme
	hooks     domain.BuildHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Converter.
type Option func(*Converter)

// WithLogger sets a custom structured logger for the converter.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithBuildHooks registers observability hooks.
func WithBuildHooks(hooks domain.BuildHooks) Option {
	return func(c *Converter) {
		c.hooks = hooks
	}
}

// WithEdgeIDScheme selects how triangle rows refer to their edges (default: tables.EdgeIDSynthetic).
func WithEdgeIDScheme(scheme tables.EdgeIDScheme) Option {
	return func(c *Converter) {
		c.scheme = scheme
	}
}

// New initializes a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		scheme:    tables.EdgeIDSynthetic,
		publisher: file.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	c.builder = topology.NewBuilder(
		topology.WithLogger(c.logger),
		topology.WithBuildHooks(c.hooks),
	)
	return c
}

// Load reads the source and builds its topology.
// The source session is closed before Load returns, whatever the outcome.
func (c *Converter) Load(ctx context.Context, opener ports.MeshOpener) (*domain.Mesh, error) {
	raw, err := topology.Snapshot(ctx, opener)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("mesh source read", "vertices", len(raw.Vertices), "elements", len(raw.Elements))
	return c.builder.Build(ctx, raw)
}

// Validate reads the source and reports every integrity violation at once.
// Violations are returned as a *domain.AggregateError; use domain.Violations to list them.
func (c *Converter) Validate(ctx context.Context, opener ports.MeshOpener) error {
	raw, err := topology.Snapshot(ctx, opener)
	if err != nil {
		return err
	}
	return c.builder.Validate(ctx, raw)
}

// Write publishes the geometry and topology tables of a built mesh.
// Both files are rendered before either is moved into place, so a failure leaves no partial output.
func (c *Converter) Write(ctx context.Context, mesh *domain.Mesh, geometryPath, topologyPath string) error {
	err := c.publisher.Publish(ctx,
		file.Output{Path: geometryPath, Render: func(w io.Writer) error {
			return tables.WriteGeometry(w, mesh)
		}},
		file.Output{Path: topologyPath, Render: func(w io.Writer) error {
			return tables.WriteTopology(w, mesh, c.scheme)
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to write tables: %w", err)
	}
	c.logger.Info("tables written",
		"geometry", geometryPath,
		"topology", topologyPath,
		"edge_ids", c.scheme.String(),
	)
	return nil
}

// Convert loads the source and writes both tables.
// No output file is created or modified when loading fails.
func (c *Converter) Convert(ctx context.Context, opener ports.MeshOpener, geometryPath, topologyPath string) error {
	mesh, err := c.Load(ctx, opener)
	if err != nil {
		return err
	}
	return c.Write(ctx, mesh, geometryPath, topologyPath)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/meshtopo"
	"github.com/aretw0/meshtopo/internal/config"
	"github.com/aretw0/meshtopo/internal/metrics"
	"github.com/aretw0/meshtopo/pkg/adapters/gmsh"
	"github.com/aretw0/meshtopo/pkg/tables"
)

// Options contains the settings shared by every command.
// Empty fields fall back to the config file, then to config.Default.
type Options struct {
	ConfigPath  string
	Input       string
	Geometry    string
	Topology    string
	EdgeIDs     string
	MetricsFile string
	Debug       bool
	Keep3D      bool

	// Stdout receives reports and tables; Stderr receives logs. Both default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// env is the wiring of a single command run.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	source   *gmsh.Source
	conv     *meshtopo.Converter
	recorder *metrics.Recorder
	stdout   io.Writer
}

// resolve merges the config file with the command-line options.
func resolve(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.Input, opts.Input)
	override(&cfg.Geometry, opts.Geometry)
	override(&cfg.Topology, opts.Topology)
	override(&cfg.EdgeIDs, opts.EdgeIDs)
	override(&cfg.MetricsFile, opts.MetricsFile)
	if opts.Keep3D {
		cfg.Keep3D = true
	}

	if cfg.Input == "" {
		return cfg, errors.New("no input mesh: pass a .msh file or set 'input' in the config file")
	}
	return cfg, cfg.Validate()
}

func newEnv(opts Options) (*env, error) {
	cfg, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	logger, err := createLogger(stderr, cfg.LogLevel, opts.Debug)
	if err != nil {
		return nil, err
	}
	logger = logger.With("input", cfg.Input)

	scheme, err := tables.ParseEdgeIDScheme(cfg.EdgeIDs)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:    cfg,
		logger: logger,
		source: gmsh.New(cfg.Input),
		stdout: stdout,
	}
	e.source.Keep3D = cfg.Keep3D

	hooks := createDebugHooks(logger)
	if cfg.MetricsFile != "" {
		e.recorder = metrics.NewRecorder()
		hooks = chainHooks(hooks, e.recorder.Hooks())
	}

	e.conv = meshtopo.New(
		meshtopo.WithLogger(logger),
		meshtopo.WithBuildHooks(hooks),
		meshtopo.WithEdgeIDScheme(scheme),
	)
	return e, nil
}

// finish writes the metrics file, if any, whatever the outcome of the run.
// Commands only write their output once it is complete, so an interrupted run leaves nothing behind.
func (e *env) finish(ctx context.Context, runErr error) error {
	if errors.Is(runErr, context.Canceled) {
		printSystemMessage(e.stdout, "Interrupted (%s). No output was written.", interruptCause(ctx))
	}
	if e.recorder == nil {
		return runErr
	}
	if err := e.recorder.WriteTextfile(e.cfg.MetricsFile); err != nil {
		werr := fmt.Errorf("failed to write metrics: %w", err)
		if runErr != nil {
			return errors.Join(runErr, werr)
		}
		return werr
	}
	e.logger.Debug("metrics written", "path", e.cfg.MetricsFile)
	return runErr
}

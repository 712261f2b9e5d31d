package command

import (
	"context"
	"io"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aarondwi/fairqueue"
	"github.com/aarondwi/fairqueue/config"
	"github.com/aarondwi/fairqueue/logging"
	"github.com/aarondwi/fairqueue/metrics"
)

// ShellCommand builds the `shell` subcommand, reading commands from stdin or --file.
//
// Logger is optional; when unset one is built from the parsed configuration.
type ShellCommand struct {
	Logger   logr.Logger
	Registry prometheus.Registerer
	In       io.Reader
	Out      io.Writer
}

func (cmd ShellCommand) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	var file string
	c := &cobra.Command{
		Use:   "shell",
		Short: "run fair queue commands (add, addmany, list, clear, next) line by line",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.main(ctx, cfg, file)
		},
	}
	c.Flags().StringVarP(&file, "file", "f", "", "read commands from this file instead of stdin")
	return c
}

func (cmd ShellCommand) main(ctx context.Context, cfg *config.Config, file string) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "shell : invalid configuration")
	}

	in := cmd.In
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return errors.Wrap(err, "shell : failed to open command file")
		}
		defer f.Close()
		in = f
	}

	base := cmd.Logger
	if base.GetSink() == nil {
		var err error
		if base, err = logging.NewLogger(cfg.LogVerbosity, cfg.Development); err != nil {
			return errors.Wrap(err, "shell : failed to build logger")
		}
	}
	logger := base.WithName("shell")

	engine, err := fairqueue.New[snowflake.ID, string](fairqueue.NewFairQueue[snowflake.ID, string](), fairqueue.Config{
		SizeLimit: cfg.SizeLimit,
		Logger:    base,
		Metrics:   metrics.NewRecorder(cmd.Registry),
		OnStart: func(context.Context) {
			logger.V(logging.DEFAULT).Info("Queue became non-empty, playback started")
		},
	})
	if err != nil {
		return errors.Wrap(err, "shell : failed to create engine")
	}
	defer engine.Close()

	s := &Shell{Queue: engine, SizeLimit: cfg.SizeLimit}
	return s.Run(ctx, in, cmd.Out)
}

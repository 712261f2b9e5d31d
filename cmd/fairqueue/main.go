package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aarondwi/fairqueue/cmd/fairqueue/command"
	"github.com/aarondwi/fairqueue/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.FromEnv(config.Default(), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	const description = "Fair queue: interleaves items from many requesters"
	root := &cobra.Command{Use: "fairqueue", Short: description, SilenceUsage: true}
	cfg.BindFlags(root.PersistentFlags())

	shell := command.ShellCommand{
		Registry: prometheus.NewRegistry(),
		In:       os.Stdin,
		Out:      os.Stdout,
	}
	root.AddCommand(shell.Command(ctx, &cfg))

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOpts holds the persistent flags shared by every command
type rootOpts struct {
	configPath string
	verbose    bool
}

// newRootCmd wires the subcommands. The persistent pre-run loads the
// configuration and attaches it, together with a logger, to the command context.
func newRootCmd() *cobra.Command {
	var opts rootOpts

	root := &cobra.Command{
		Use:           "gallery",
		Short:         "Place vertex guards in a simple polygon",
		Long:          `gallery builds the vertex visibility graph of a simple polygon and places guards on vertices with a greedy set cover so every vertex is seen by at least one guard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(opts.configPath)
			if err != nil {
				return err
			}

			level, err := log.ParseLevel(cfg.Log.Level)
			if err != nil {
				level = log.InfoLevel
			}
			if opts.verbose {
				level = log.DebugLevel
			}

			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default "+DefaultConfigFile+" if present)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newPathCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newServeCmd())

	return root
}

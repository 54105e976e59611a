// Package cmd implements the dsviz CLI commands.
//
// The root command loads configuration and logging once; subcommands
// (play, preview, watch, version) read the resolved settings from app.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/visualds/cmd/dsviz/internal/config"
	"github.com/go-drift/visualds/cmd/dsviz/internal/player"
	"github.com/go-drift/visualds/cmd/dsviz/internal/scenario"
	"github.com/go-drift/visualds/pkg/graphics"
	"github.com/go-drift/visualds/pkg/logging"
)

// Version information set at build time.
var (
	Version   = "v0.1.0-dev"
	BuildTime = "unknown"
)

const cliExecutable = "dsviz"

// app carries state shared between the root command and its children.
type app struct {
	configFile string
	cfg        *config.Config
	out        io.Writer
}

// NewCommand constructs the top-level dsviz command writing to out.
func NewCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "dsviz animates stacks and queues",
		Long: `dsviz plays scenario files against a stack or queue and renders
every animation frame of the visualization.

Configuration is read from dsviz.yaml (or --config), DSVIZ_* environment
variables and flags, in increasing order of precedence.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logging.Configure(cfg.Log.Level)
			return nil
		},
		SilenceUsage: true,
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().String("log-level", config.Default().Log.Level, "Log level (trace|debug|info|warn|error)")

	cmd.AddCommand(newPlayCommand(a))
	cmd.AddCommand(newPreviewCommand(a))
	cmd.AddCommand(newWatchCommand(a))
	cmd.AddCommand(newVersionCommand(a))
	return cmd
}

// Execute runs the CLI against os.Args.
func Execute() error {
	return NewCommand(os.Stdout).Execute()
}

// openPlayer loads the scenario at path and builds a player for it using
// the resolved render settings.
func (a *app) openPlayer(path string) (*player.Player, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	p, err := player.New(sc, player.Options{
		FPS:            a.cfg.Render.FPS,
		Size:           graphics.Size{Width: a.cfg.Render.Width, Height: a.cfg.Render.Height},
		AllowUnderflow: a.cfg.Render.AllowUnderflow,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return p, nil
}

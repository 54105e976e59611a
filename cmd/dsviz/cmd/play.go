package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-drift/visualds/cmd/dsviz/internal/config"
)

func newPlayCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <scenario.yaml>",
		Short: "Render every frame of a scenario",
		Long: `Play a scenario and write one frame per animation step.

Frames are named frame-00000.svg, frame-00001.svg, ... in the output
directory. Pops on an empty container are skipped unless
--allow-underflow is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd, args[0])
		},
	}
	config.BindRenderFlags(cmd.Flags())
	return cmd
}

func (a *app) runPlay(cmd *cobra.Command, path string) error {
	p, err := a.openPlayer(path)
	if err != nil {
		return err
	}
	defer p.Close()

	frames, err := openFrames(a.cfg.Render.Out, a.cfg.Render.Format)
	if err != nil {
		return err
	}
	defer frames.Close()

	if err := p.Run(cmd.Context(), frames.Write); err != nil {
		return err
	}

	ok := color.New(color.FgGreen, color.Bold)
	ok.Fprint(a.out, "done ")
	fmt.Fprintf(a.out, "%d frames written to %s\n", p.Frames(), a.cfg.Render.Out)
	if n := p.Skipped(); n > 0 {
		color.New(color.FgYellow).Fprintf(a.out, "%d pop(s) on an empty container skipped\n", n)
	}
	return nil
}

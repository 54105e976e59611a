package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/go-drift/visualds/cmd/dsviz/internal/scenario"
)

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := Version
			if !semver.IsValid(v) {
				return fmt.Errorf("malformed build version %q", v)
			}
			fmt.Fprintf(a.out, "%s version %s (built %s)\n", cliExecutable, v, BuildTime)
			fmt.Fprintf(a.out, "scenario format %s\n", scenario.SupportedMajor)
			return nil
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#660EB3")).
			Padding(0, 1).
			MarginRight(1)
	pointerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

func newPreviewCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <scenario.yaml>",
		Short: "Print the final state of a scenario",
		Long: `Play a scenario without rendering frames and print the resulting
container as a row of cells in the terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPlayer(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			if err := p.Run(cmd.Context(), nil); err != nil {
				return err
			}
			fmt.Fprintln(a.out, previewRow(p.Snapshot(), p.Pointer()))
			return nil
		},
	}
}

// previewRow draws values left to right with the pointer caption under the
// last cell.
func previewRow(values []string, pointer string) string {
	if len(values) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, "(empty)", pointerStyle.Render(pointer+" ^"))
	}
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = cellStyle.Render(v)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	// The trailing cell margin is not part of the cell.
	caption := lipgloss.PlaceHorizontal(lipgloss.Width(row)-1, lipgloss.Right, pointer+" ^")
	return lipgloss.JoinVertical(lipgloss.Left, row, pointerStyle.Render(caption))
}

package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/irgen/target"
)

// TargetsCmd lists the target backends.
var TargetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the available target backends",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := [][]string{{"Name", "Description", "Reserved words", "Banned members"}}
		for _, t := range target.All() {
			name := t.Name
			if name == target.Default {
				name += " (default)"
			}
			rows = append(rows, []string{
				name,
				t.Description,
				fmt.Sprint(len(t.Tables.Reserved)),
				fmt.Sprint(len(t.Tables.Banned)),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/minipm/minipm/pkg/state"
)

// newListCmd creates the list command showing the install state store.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show installed packages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	proj, err := loadProject(cmd.Context())
	if err != nil {
		return err
	}

	st, err := state.Load(proj.cfg.StatePath(proj.dir))
	if err != nil {
		return err
	}
	if st.Len() == 0 {
		printInfo("No packages installed")
		return nil
	}

	pkgs := st.Packages()
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Version").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 {
				return styleHighlight
			}
			return styleValue
		})

	for _, name := range slices.Sorted(maps.Keys(pkgs)) {
		t.Row(name, pkgs[name])
	}

	fmt.Println(t.Render())
	printDetail("%d packages in %s", st.Len(), state.FileName)
	return nil
}

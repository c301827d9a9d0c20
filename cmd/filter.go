package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/selectbox"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/tui"
)

var filterCmd = &cobra.Command{
	Use:   "filter [pattern]",
	Short: "Print the options matching a filter text",
	Long: `Runs the select box without a terminal UI: the pattern is typed into
the widget and the visible options are printed, group titles included.
Remote settings query the endpoint once; fetch errors fail the command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

var (
	filterSource sourceFlags
	filterValues bool
)

func init() {
	filterSource.register(filterCmd)
	filterCmd.Flags().BoolVar(&filterValues, "values", false, "Print the selectable options as a JSON array of {id, text}")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	a, err := loadApp(filterSource)
	if err != nil {
		return err
	}

	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}
	return filterOptions(cmd.Context(), a, pattern, filterValues, cmd.OutOrStdout())
}

func filterOptions(ctx context.Context, a *app.App, pattern string, values bool, w io.Writer) error {
	state, err := a.Filter(ctx, pattern)
	if err != nil {
		return err
	}

	if values {
		return printJSON(w, option.Project(selectable(state)))
	}
	_, err = fmt.Fprint(w, tui.Plain(state))
	return err
}

// selectable flattens the visible options of state to the items that can
// be committed.
func selectable(state *selectbox.State) []*option.Item {
	var items []*option.Item
	for _, row := range state.Rows() {
		if !row.Header {
			items = append(items, row.Item)
		}
	}
	return items
}

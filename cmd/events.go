package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/events"
)

var eventsCmd = &cobra.Command{
	Use:   "events <file>",
	Short: "Display a notification log written by pick --events (JSONL or SQLite)",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvents,
}

var (
	eventsJSON    bool
	eventsSession string
)

func init() {
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "Output events as JSON lines")
	eventsCmd.Flags().StringVar(&eventsSession, "session", "", "Only show events of this session")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	return printEvents(cmd.OutOrStdout(), args[0], eventsSession, eventsJSON)
}

func printEvents(w io.Writer, path, session string, asJSON bool) error {
	var (
		evs []events.Event
		err error
	)
	if session != "" {
		evs, err = events.SessionEvents(path, session)
	} else {
		evs, err = events.Events(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	if len(evs) == 0 {
		logInfo("No events found in %s", path)
		return nil
	}

	if asJSON {
		for _, e := range evs {
			if err := printJSON(w, e); err != nil {
				return err
			}
		}
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"TIME", "SESSION", "TYPE", "DETAIL"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	for _, e := range evs {
		table.Append([]string{e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Session, string(e.Type), describe(e)})
	}
	table.Render()
	return nil
}

func describe(e events.Event) string {
	switch e.Type {
	case events.TypeSelected, events.TypeRemoved:
		return fmt.Sprintf("%s (%s)", e.Text, e.ID)
	case events.TypeTyped:
		return fmt.Sprintf("%q", e.Query)
	case events.TypeData:
		texts := make([]string, 0, len(e.Values))
		for _, v := range e.Values {
			texts = append(texts, v.Text)
		}
		return fmt.Sprintf("%d active [%s]", e.Count, strings.Join(texts, ", "))
	}
	return ""
}

package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive select box",
	Long: `Opens the select box and prints the selection as JSON on stdout.

Type to filter, arrows to move, Enter to select.

Keys:
  Enter      - Select the highlighted option (open the list when closed)
  ←/→        - Jump to the first / last option
  Backspace  - Delete a filter character, or the last selection
  Esc        - Close the list; on a closed list, quit
  ctrl+x     - Clear the selection (allowClear)
  ctrl+s     - Finish a multiple selection
  ctrl+c     - Quit

Exit codes: 4 when nothing was selected, 130 when cancelled.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

var (
	pickSource     sourceFlags
	pickTitle      string
	pickEvents     string
	pickSession    string
	pickLogFile    string
	pickProperties bool
	pickFullScreen bool
	pickCopy       bool
)

func init() {
	pickSource.register(pickCmd)
	pickCmd.Flags().StringVarP(&pickTitle, "title", "t", "", "Title shown above the select box")
	pickCmd.Flags().StringVar(&pickEvents, "events", "", "Append widget notifications to this file (JSON Lines, or SQLite for .db/.sqlite)")
	pickCmd.Flags().StringVar(&pickSession, "session", "", "Session name recorded with each event")
	pickCmd.Flags().StringVar(&pickLogFile, "log-file", "", "Write logs to this file instead of stderr")
	pickCmd.Flags().BoolVar(&pickProperties, "properties", false, "Print the full option objects instead of {id, text}")
	pickCmd.Flags().BoolVar(&pickFullScreen, "full-screen", false, "Use the alternate screen")
	pickCmd.Flags().BoolVar(&pickCopy, "copy", false, "Also copy the selected option texts to the clipboard")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	if pickLogFile != "" {
		closeLog, err := logging.ToFile(pickLogFile)
		if err != nil {
			return err
		}
		defer closeLog()
	}

	a, err := loadApp(pickSource, eventsOption(pickEvents, pickSession))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sess, err := a.Session(ctx, pickTitle)
	if err != nil {
		return err
	}
	defer sess.Close()

	if pickProperties {
		sess.Options.Transform = func(active []*option.Item) any {
			return option.Properties(active)
		}
	}

	logging.Debug("picker started", "remote", a.Remote(), "items", len(sess.Options.Items))

	var runOpts []tui.RunOption
	if pickFullScreen {
		runOpts = append(runOpts, tui.WithAltScreen())
	}
	if pickLogFile == "" {
		logging.Silence()
	}
	result, err := tui.Run(ctx, sess.Options, runOpts...)
	if pickLogFile == "" {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	}
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, "select box failed", err)
	}

	if err := reportResult(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if pickCopy {
		copySelection(result.Active)
	}
	return nil
}

// copySelection puts the selected texts on the clipboard, one per line.
// A missing clipboard only warns.
func copySelection(active []*option.Item) {
	if clipboard.Unsupported {
		logWarning("Clipboard not available on this system")
		return
	}
	if err := clipboard.WriteAll(selectionText(active)); err != nil {
		logWarning("Failed to copy to clipboard: %v", err)
		return
	}
	logging.Debug("copied selection", "count", len(active))
}

func selectionText(active []*option.Item) string {
	texts := make([]string, 0, len(active))
	for _, it := range active {
		texts = append(texts, option.StripTags(it.Text))
	}
	return strings.Join(texts, "\n")
}

// reportResult prints the committed value or maps an empty outcome to its
// exit error.
func reportResult(w io.Writer, r tui.Result) error {
	logging.Debug("picker result", "cancelled", r.Cancelled, "selected", len(r.Active))

	if r.Cancelled {
		return errors.Cancelled()
	}
	if len(r.Active) == 0 {
		return errors.NoSelection()
	}
	return printJSON(w, r.Value)
}

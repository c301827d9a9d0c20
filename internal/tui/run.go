package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/selectbox"
)

// RunOption tweaks the program started by Run.
type RunOption func(*runConfig)

type runConfig struct {
	output    io.Writer
	altScreen bool
}

// WithOutput renders the widget to w instead of stderr.
func WithOutput(w io.Writer) RunOption {
	return func(c *runConfig) { c.output = w }
}

// WithAltScreen runs the widget full screen.
func WithAltScreen() RunOption {
	return func(c *runConfig) { c.altScreen = true }
}

// Run shows the select box until the user commits or cancels. The widget is
// drawn on stderr so that stdout stays free for the selected value.
func Run(ctx context.Context, opts Options, runOpts ...RunOption) (Result, error) {
	rc := runConfig{output: os.Stderr}
	for _, o := range runOpts {
		o(&rc)
	}

	m := New(ctx, opts)

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(rc.output),
		tea.WithMouseCellMotion(),
	}
	if rc.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	finalModel, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		return Result{}, err
	}

	return finalModel.(Model).Result(), nil
}

// Plain lists the options of state without styling, one per line. Group
// titles end with a colon and their children are indented. The highlighted
// option is marked with ">".
func Plain(state *selectbox.State) string {
	var sb strings.Builder

	rows := state.Rows()
	if len(rows) == 0 {
		sb.WriteString("No results found\n")
		return sb.String()
	}

	indent := ""
	if state.Grouped() {
		indent = "  "
	}

	for _, row := range rows {
		text := option.StripTags(row.Item.Text)
		if row.Header {
			if row.Divider {
				sb.WriteString("\n")
			}
			sb.WriteString(fmt.Sprintf("%s:\n", text))
			continue
		}
		marker := " "
		if state.IsActive(row.Item) {
			marker = ">"
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", indent, marker, text))
	}

	return sb.String()
}

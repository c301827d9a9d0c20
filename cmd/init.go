package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init <settings>",
	Short: "Write a starter settings file",
	Long: `Writes a settings file with sample options, or a remote source when
--url is given. The format follows the extension: .toml, .yaml or .json.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

var (
	initURL   string
	initForce bool
)

func init() {
	initCmd.Flags().StringVar(&initURL, "url", "", "Remote endpoint; SEARCH_VALUE is replaced by the filter text")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	return writeStarter(args[0], initURL, initForce)
}

func starterSettings(url string) *config.Settings {
	s := &config.Settings{
		Placeholder: "Select an option",
		AllowClear:  true,
	}
	if url != "" {
		s.Ajax = &config.Ajax{URL: url}
	} else {
		s.Data = []any{
			map[string]any{"id": "berlin", "text": "Berlin"},
			map[string]any{"id": "bern", "text": "Bern"},
			map[string]any{"id": "paris", "text": "Paris"},
		}
	}
	s.ApplyDefaults()
	return s
}

func writeStarter(path, url string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	s := starterSettings(url)
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := config.Save(path, s); err != nil {
		return err
	}

	logSuccess("Wrote %s", path)
	return nil
}

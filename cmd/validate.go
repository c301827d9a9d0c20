package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
)

var validateCmd = &cobra.Command{
	Use:   "validate <settings>",
	Short: "Check a settings file and its data file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	return validateSettings(args[0])
}

func validateSettings(path string) error {
	a, err := app.Load(path)
	if err != nil {
		return err
	}

	if a.Remote() {
		logSuccess("%s is valid (remote source %s)", path, a.Settings.Ajax.URL)
		return nil
	}

	items, err := a.Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		logWarning("%s has no usable options", path)
	}

	kind := "options"
	if option.AnyHasChildren(items) {
		kind = "groups"
	}
	logSuccess("%s is valid (%d %s)", path, len(items), kind)
	return nil
}

// Package logging provides logging utilities for forage-select.
//
// Two kinds of output exist side by side:
//   - Debug logging: structured slog records, quiet unless --verbose
//   - User output: short status lines printed by the CLI commands
//
// The interactive picker owns the terminal while it runs, so `pick` routes
// structured logs to --log-file instead of stderr:
//
//	logging.Setup(verbose, jsonOutput, logFile)
//	logging.Debug("remote load dropped", "gen", gen, "current", current)
//
// User output carries a status glyph:
//
//	logging.UserInfo("No options match %q", pattern)   // ℹ, stdout
//	logging.UserSuccess("%s is valid", path)            // ✓, stdout
//	logging.UserWarning("%d candidates dropped", n)     // ⚠, stderr
//	logging.UserError("Failed to load: %v", err)        // ✗, stderr
package logging

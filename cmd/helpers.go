package cmd

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/events"
)

// sourceFlags selects where options come from. Flags override the settings
// file.
type sourceFlags struct {
	config       string
	items        string
	url          string
	responsePath string
	multiple     bool
	placeholder  string
	matchMode    string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.config, "config", "c", "", "Settings file (.toml, .yaml or .json)")
	flags.StringVar(&f.items, "items", "", `Options as a shell-quoted list, e.g. 'Berlin "New York"'`)
	flags.StringVar(&f.url, "url", "", "Remote endpoint; SEARCH_VALUE is replaced by the filter text")
	flags.StringVar(&f.responsePath, "response-path", "", "Dot-separated path to the options in the remote response")
	flags.BoolVar(&f.multiple, "multiple", false, "Allow several selections")
	flags.StringVar(&f.placeholder, "placeholder", "", "Text shown while nothing is selected")
	flags.StringVar(&f.matchMode, "match", "", "Match mode: substring or fuzzy")
}

// loadApp builds the application from the settings file and flag overrides.
func loadApp(f sourceFlags, opts ...app.Option) (*app.App, error) {
	var a *app.App
	if f.config != "" {
		var err error
		if a, err = app.Load(f.config, opts...); err != nil {
			return nil, err
		}
	} else {
		a = app.New(opts...)
	}

	s := a.Settings
	if f.items != "" {
		words, err := shellquote.Split(f.items)
		if err != nil {
			return nil, errors.ConfigError("invalid --items", err)
		}
		s.Data = make([]any, 0, len(words))
		for _, w := range words {
			s.Data = append(s.Data, w)
		}
		s.DataFile, s.Watch, s.Ajax = "", false, nil
	}
	if f.url != "" {
		s.Ajax = &config.Ajax{
			URL:          f.url,
			RequestType:  config.DefaultRequestType,
			ResponsePath: f.responsePath,
		}
		s.Data, s.DataFile, s.Watch = nil, "", false
	}
	if f.multiple {
		s.Multiple = true
	}
	if f.placeholder != "" {
		s.Placeholder = f.placeholder
	}
	if f.matchMode != "" {
		s.MatchMode = f.matchMode
	}

	if err := s.Validate(); err != nil {
		return nil, errors.ConfigError("invalid settings", err)
	}
	if len(s.Data) == 0 && s.DataFile == "" && s.Ajax == nil {
		return nil, errors.ValidationError("no options: use --config, --items or --url")
	}
	return a, nil
}

// eventsOption records notifications to path, if set.
func eventsOption(path, session string) app.Option {
	if path == "" {
		return func(*app.App) {}
	}
	if session == "" {
		session = uuid.NewString()
	}
	return app.WithEvents(events.NewLogger(path, session))
}

// printJSON writes v as one line of JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/match"
)

const (
	DefaultIDField      = "id"
	DefaultTextField    = "text"
	DefaultDebounceTime = 250
	DefaultHeight       = 10
	DefaultRequestType  = "get"

	// dataFileKey holds the candidate array in TOML data files, which cannot
	// have an array at the top level.
	dataFileKey = "options"
)

// Format is a settings or data file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the encoding from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported file type %q (must be .json, .yaml, .yml or .toml)", filepath.Ext(path))
}

// Settings configures one select box.
type Settings struct {
	IDField     string `json:"idField,omitempty" yaml:"idField,omitempty" toml:"idField,omitempty"`
	TextField   string `json:"textField,omitempty" yaml:"textField,omitempty" toml:"textField,omitempty"`
	Multiple    bool   `json:"multiple,omitempty" yaml:"multiple,omitempty" toml:"multiple,omitempty"`
	AllowClear  bool   `json:"allowClear,omitempty" yaml:"allowClear,omitempty" toml:"allowClear,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty" toml:"placeholder,omitempty"`

	// DebounceTime is the delay in milliseconds between the last keystroke
	// and a remote query. Unset selects DefaultDebounceTime; 0 queries on
	// every keystroke.
	DebounceTime *int `json:"debounceTime,omitempty" yaml:"debounceTime,omitempty" toml:"debounceTime,omitempty"`

	MatchMode string `json:"matchMode,omitempty" yaml:"matchMode,omitempty" toml:"matchMode,omitempty"`

	// Height is the number of option rows shown at once.
	Height int `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`

	// Data is an inline candidate list.
	Data []any `json:"data,omitempty" yaml:"data,omitempty" toml:"data,omitempty"`

	// DataFile names a candidate file relative to the settings file.
	DataFile string `json:"dataFile,omitempty" yaml:"dataFile,omitempty" toml:"dataFile,omitempty"`

	// Watch reloads DataFile when it changes.
	Watch bool `json:"watch,omitempty" yaml:"watch,omitempty" toml:"watch,omitempty"`

	Ajax *Ajax `json:"ajax,omitempty" yaml:"ajax,omitempty" toml:"ajax,omitempty"`

	// Active is the initial selection.
	Active []any `json:"active,omitempty" yaml:"active,omitempty" toml:"active,omitempty"`

	// Disabled starts the widget disabled.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
}

// Ajax configures a remote candidate source.
type Ajax struct {
	// URL may contain SEARCH_VALUE, replaced by the filter text.
	URL         string `json:"url" yaml:"url" toml:"url"`
	RequestType string `json:"requestType,omitempty" yaml:"requestType,omitempty" toml:"requestType,omitempty"`
	AuthToken   string `json:"authToken,omitempty" yaml:"authToken,omitempty" toml:"authToken,omitempty"`

	// AuthTokenEnv names an environment variable holding the token, so it
	// can stay out of the settings file.
	AuthTokenEnv string `json:"authTokenEnv,omitempty" yaml:"authTokenEnv,omitempty" toml:"authTokenEnv,omitempty"`

	// ResponsePath is the dotted path to the candidate array in the payload.
	ResponsePath string `json:"responsePath,omitempty" yaml:"responsePath,omitempty" toml:"responsePath,omitempty"`
}

// Token returns the bearer token, preferring the environment variable.
func (a *Ajax) Token() string {
	if a.AuthTokenEnv != "" {
		if v := os.Getenv(a.AuthTokenEnv); v != "" {
			return v
		}
	}
	return a.AuthToken
}

// ApplyDefaults fills unset fields.
func (s *Settings) ApplyDefaults() {
	if s.IDField == "" {
		s.IDField = DefaultIDField
	}
	if s.TextField == "" {
		s.TextField = DefaultTextField
	}
	if s.DebounceTime == nil {
		d := DefaultDebounceTime
		s.DebounceTime = &d
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.MatchMode == "" {
		s.MatchMode = string(match.Substring)
	}
	if s.Ajax != nil && s.Ajax.RequestType == "" {
		s.Ajax.RequestType = DefaultRequestType
	}
}

// Validate checks that the Settings are usable.
func (s *Settings) Validate() error {
	if s.IDField == "" {
		return fmt.Errorf("idField is required")
	}
	if s.TextField == "" {
		return fmt.Errorf("textField is required")
	}
	if s.DebounceTime != nil && *s.DebounceTime < 0 {
		return fmt.Errorf("debounceTime must not be negative (got %d)", *s.DebounceTime)
	}
	if s.Height < 0 {
		return fmt.Errorf("height must not be negative (got %d)", s.Height)
	}
	if _, err := match.ParseMode(s.MatchMode); err != nil {
		return err
	}

	if len(s.Data) > 0 && s.DataFile != "" {
		return fmt.Errorf("data and dataFile are mutually exclusive")
	}
	if s.Ajax != nil && (len(s.Data) > 0 || s.DataFile != "") {
		return fmt.Errorf("ajax cannot be combined with data or dataFile")
	}
	if s.Watch && s.DataFile == "" {
		return fmt.Errorf("watch requires dataFile")
	}
	if s.DataFile != "" && filepath.IsAbs(s.DataFile) {
		return fmt.Errorf("dataFile must be relative to the settings file (got %q)", s.DataFile)
	}

	if !s.Multiple && len(s.Active) > 1 {
		return fmt.Errorf("active holds %d values but multiple is false", len(s.Active))
	}

	if s.Ajax != nil {
		if err := s.Ajax.Validate(); err != nil {
			return fmt.Errorf("ajax: %w", err)
		}
	}
	return nil
}

// Validate checks that the Ajax settings are usable.
func (a *Ajax) Validate() error {
	if a.URL == "" {
		return fmt.Errorf("url is required")
	}
	u, err := url.Parse(strings.ReplaceAll(a.URL, "SEARCH_VALUE", "q"))
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url must use http or https (got %q)", u.Scheme)
	}

	switch strings.ToLower(a.RequestType) {
	case "", "get", "post":
	default:
		return fmt.Errorf("invalid requestType: %s (must be get or post)", a.RequestType)
	}
	return nil
}

// Debounce returns DebounceTime as a duration.
func (s *Settings) Debounce() time.Duration {
	if s.DebounceTime == nil {
		return DefaultDebounceTime * time.Millisecond
	}
	return time.Duration(*s.DebounceTime) * time.Millisecond
}

// Load reads, defaults and validates a settings file. The format follows the
// file extension.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := decode(format, data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", filepath.Base(path), err)
	}

	if format == FormatTOML {
		settings.Data, _ = normalize(settings.Data).([]any)
		settings.Active, _ = normalize(settings.Active).([]any)
	}

	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", filepath.Base(path), err)
	}
	return &settings, nil
}

// ResolveDataFile returns the DataFile path confined to configDir. Symlinks
// and ".." components cannot lead outside of it.
func (s *Settings) ResolveDataFile(configDir string) (string, error) {
	if s.DataFile == "" {
		return "", fmt.Errorf("no dataFile configured")
	}
	path, err := securejoin.SecureJoin(configDir, s.DataFile)
	if err != nil {
		return "", fmt.Errorf("invalid dataFile %q: %w", s.DataFile, err)
	}
	return path, nil
}

// LoadDataFile reads a candidate list. JSON and YAML files hold an array at
// the top level; TOML files hold it under "options".
func LoadDataFile(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	return ParseData(path, data)
}

// ParseData decodes a candidate list in the format named by the extension
// of name.
func ParseData(name string, data []byte) ([]any, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}

	var raw []any
	if format == FormatTOML {
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse data file %s: %w", filepath.Base(name), err)
		}
		raw, _ = normalize(doc[dataFileKey]).([]any)
		if raw == nil {
			return nil, fmt.Errorf("data file %s has no %q array", filepath.Base(name), dataFileKey)
		}
		return raw, nil
	}

	if err := decode(format, data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", filepath.Base(name), err)
	}
	return raw, nil
}

// normalize rewrites the array-of-tables values the TOML decoder produces
// into plain []any, at any depth.
func normalize(v any) any {
	switch t := v.(type) {
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = normalize(m)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	}
	return v
}

func decode(format Format, data []byte, v any) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatTOML:
		return toml.Unmarshal(data, v)
	}
	return fmt.Errorf("unsupported format %q", format)
}

// Save writes settings in the format given by the file extension.
func Save(path string, s *Settings) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(s, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(s)
	case FormatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(s)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

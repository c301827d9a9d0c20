// Package config loads select box settings.
//
// # Settings Files
//
// Settings are read from JSON, YAML or TOML; the file extension picks the
// decoder. The keys are the same in every format:
//
//	type Settings struct {
//	    IDField      string // key holding an item's id (default "id")
//	    TextField    string // key holding an item's label (default "text")
//	    Multiple     bool   // multi-select
//	    AllowClear   bool   // show a clear control on the selection
//	    Placeholder  string // text shown while nothing is selected
//	    DebounceTime *int   // milliseconds before a remote query (default 250, 0 for none)
//	    MatchMode    string // "substring" or "fuzzy"
//	    Height       int    // visible option rows (default 10)
//	    Data         []any  // inline candidates
//	    DataFile     string // candidate file, relative to the settings file
//	    Watch        bool   // reload DataFile on change
//	    Ajax         *Ajax  // remote candidates
//	    Active       []any  // initial selection
//	}
//
// Candidates come from exactly one of Data, DataFile or Ajax.
//
// # Remote Sources
//
// Ajax describes an endpoint queried with the filter text:
//
//	[ajax]
//	url = "https://api.example.com/cities?q=SEARCH_VALUE"
//	requestType = "get"
//	authTokenEnv = "CITIES_TOKEN"
//	responsePath = "data.results"
//
// # Data Files
//
// LoadDataFile reads a candidate array. JSON and YAML files hold the array
// at the top level; TOML files hold it under an "options" key:
//
//	[[options]]
//	id = 1
//	text = "Berlin"
//
// ResolveDataFile joins DataFile to the settings directory with
// filepath-securejoin, so a data file can never point outside of it.
//
// # Validation
//
// Load applies defaults and calls Validate before returning.
package config

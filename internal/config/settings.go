// Package config resolves the settings of a documentation run from command
// line flags and an optional config file.
package config

// BuiltinTemplateConfig names the template set compiled into the binary.
const BuiltinTemplateConfig = "builtin:default"

// Default values.
const (
	DefaultTitle    = "API documentation"
	DefaultLogLevel = "warn"
)

// DefaultLogFile as the log file selects the log file under the apidoc base
// directory (~/.apidoc/apidoc.log).
const DefaultLogFile = "default"

// Settings is the resolved configuration of one run. It is read-only once
// Resolve returns it.
type Settings struct {
	// Source lists the directories or files to scan.
	Source []string `validate:"required,min=1,dive,required"`
	// Exclude lists globs of paths that are not scanned.
	Exclude []string
	// Destination is the output directory.
	Destination string `validate:"required"`
	// TemplateConfig is the template config file, or BuiltinTemplateConfig.
	TemplateConfig string `validate:"required"`
	// SkipDocPath lists globs of pages that are parsed but not documented.
	SkipDocPath []string
	// SkipDocPrefix lists name prefixes of declarations that are not documented.
	SkipDocPrefix []string

	Title   string
	BaseURL string `validate:"omitempty,url"`

	Help        bool
	Debug       bool
	Wipeout     bool
	UpdateCheck bool
	Colors      bool

	LogFile  string
	LogLevel string `validate:"omitempty,oneof=debug info warn error"`

	// ConfigFile is the config file the settings were read from, if any.
	ConfigFile string
}

// Defaults returns settings with every default applied and no sources.
func Defaults() *Settings {
	return &Settings{
		TemplateConfig: BuiltinTemplateConfig,
		Title:          DefaultTitle,
		UpdateCheck:    true,
		Colors:         true,
		LogLevel:       DefaultLogLevel,
	}
}

// IsHelpRequested reports whether the run should only print help.
func (s *Settings) IsHelpRequested() bool {
	return s != nil && s.Help
}

// SkipRules returns the skip-doc rules in report order: path globs first,
// then name prefixes.
func (s *Settings) SkipRules() []string {
	rules := make([]string, 0, len(s.SkipDocPath)+len(s.SkipDocPrefix))
	rules = append(rules, s.SkipDocPath...)
	return append(rules, s.SkipDocPrefix...)
}

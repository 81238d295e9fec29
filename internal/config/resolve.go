package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/tessro/apidoc/internal/failure"
	"github.com/tessro/apidoc/internal/paths"
)

// Resolver builds Settings from a parsed flag set and a config file.
type Resolver struct {
	Flags *pflag.FlagSet
	// Dir is searched for a default config file. Empty means the working
	// directory.
	Dir string
	// ForceHelp requests help regardless of the flags, e.g. for "apidoc help".
	ForceHelp bool
}

// NewResolver returns a resolver reading fs.
func NewResolver(fs *pflag.FlagSet) *Resolver {
	return &Resolver{Flags: fs}
}

// IsHelpRequested reports whether help was asked for. It never fails and
// reads no files.
func (r *Resolver) IsHelpRequested() bool {
	if r.ForceHelp {
		return true
	}
	if r.Flags == nil || r.Flags.Lookup(FlagHelp) == nil {
		return false
	}
	help, err := r.Flags.GetBool(FlagHelp)
	return err == nil && help
}

// Resolve returns the settings of the run. When help is requested the config
// file is not read and nothing is validated. Every error is a configuration
// failure.
func (r *Resolver) Resolve() (*Settings, error) {
	s := Defaults()

	if r.IsHelpRequested() {
		if err := applyFlags(r.Flags, s); err != nil {
			return nil, failure.Mark(failure.KindConfig, err)
		}
		s.Help = true
		return s, nil
	}

	path, err := r.configPath()
	if err != nil {
		return nil, err
	}
	if path != "" {
		f, err := LoadFile(path)
		if err != nil {
			return nil, failure.Wrap(failure.KindConfig, err, fmt.Sprintf("Cannot load config file %s", path))
		}
		f.apply(s, filepath.Dir(path))
		s.ConfigFile = path
	}

	if err := applyFlags(r.Flags, s); err != nil {
		return nil, failure.Mark(failure.KindConfig, err)
	}

	absolutize(s)

	if err := Validate(s); err != nil {
		return nil, failure.Mark(failure.KindConfig, err)
	}
	return s, nil
}

// configPath returns the config file to load, or "" when there is none. A
// file named explicitly must exist.
func (r *Resolver) configPath() (string, error) {
	explicit := ""
	if r.Flags != nil && r.Flags.Changed(FlagConfig) {
		explicit, _ = r.Flags.GetString(FlagConfig)
	} else {
		explicit = paths.EnvConfigPath()
	}

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", failure.Config("Config file %s doesn't exist", explicit)
		}
		return explicit, nil
	}

	dir := r.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil
		}
		dir = wd
	}
	if path, ok := paths.FindConfig(dir); ok {
		return path, nil
	}
	return "", nil
}

// absolutize makes the source, destination and template paths absolute so
// they are reported and compared unambiguously.
func absolutize(s *Settings) {
	for i, src := range s.Source {
		s.Source[i] = absPath(src)
	}
	s.Destination = absPath(s.Destination)
	if s.TemplateConfig != BuiltinTemplateConfig {
		s.TemplateConfig = absPath(s.TemplateConfig)
	}
}

func absPath(p string) string {
	if p == "" {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

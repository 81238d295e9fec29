package config

import (
	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig         = "config"
	FlagSource         = "source"
	FlagDestination    = "destination"
	FlagExclude        = "exclude"
	FlagSkipDocPath    = "skip-doc-path"
	FlagSkipDocPrefix  = "skip-doc-prefix"
	FlagTemplateConfig = "template-config"
	FlagTitle          = "title"
	FlagBaseURL        = "base-url"
	FlagWipeout        = "wipeout"
	FlagUpdateCheck    = "update-check"
	FlagColors         = "colors"
	FlagDebug          = "debug"
	FlagLogFile        = "log-file"
	FlagLogLevel       = "log-level"
	FlagHelp           = "help"
)

// RegisterFlags defines the settings flags on fs. Defaults shown in help are
// the values Resolve uses when neither a flag nor the config file sets them.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()

	fs.StringP(FlagConfig, "c", "", "config file (default: first of apidoc.{toml,yaml,yml,json,hcl} in the working directory)")
	fs.StringSliceP(FlagSource, "s", nil, "source file or directory to document (repeatable)")
	fs.StringP(FlagDestination, "d", "", "destination directory")
	fs.StringSlice(FlagExclude, nil, "glob of paths to exclude from scanning (repeatable)")
	fs.StringSlice(FlagSkipDocPath, nil, "glob of pages not to document (repeatable)")
	fs.StringSlice(FlagSkipDocPrefix, nil, "name prefix of declarations not to document (repeatable)")
	fs.String(FlagTemplateConfig, d.TemplateConfig, "template config file")
	fs.String(FlagTitle, d.Title, "title of the generated documentation")
	fs.String(FlagBaseURL, "", "base URL of the generated documentation")
	fs.Bool(FlagWipeout, d.Wipeout, "wipe out the destination directory before generating")
	fs.Bool(FlagUpdateCheck, d.UpdateCheck, "check for a newer apidoc release")
	fs.Bool(FlagColors, d.Colors, "use colors in console output")
	fs.Bool(FlagDebug, d.Debug, "print the cause chain and a stack trace on errors")
	fs.String(FlagLogFile, "", `write JSON logs to this file instead of stderr ("default" for ~/.apidoc/apidoc.log)`)
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn or error")
}

// applyFlags copies every flag the user set onto s.
func applyFlags(fs *pflag.FlagSet, s *Settings) error {
	if fs == nil {
		return nil
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagSource:
			s.Source, err = fs.GetStringSlice(f.Name)
		case FlagDestination:
			s.Destination = f.Value.String()
		case FlagExclude:
			s.Exclude, err = fs.GetStringSlice(f.Name)
		case FlagSkipDocPath:
			s.SkipDocPath, err = fs.GetStringSlice(f.Name)
		case FlagSkipDocPrefix:
			s.SkipDocPrefix, err = fs.GetStringSlice(f.Name)
		case FlagTemplateConfig:
			s.TemplateConfig = f.Value.String()
		case FlagTitle:
			s.Title = f.Value.String()
		case FlagBaseURL:
			s.BaseURL = f.Value.String()
		case FlagWipeout:
			s.Wipeout, err = fs.GetBool(f.Name)
		case FlagUpdateCheck:
			s.UpdateCheck, err = fs.GetBool(f.Name)
		case FlagColors:
			s.Colors, err = fs.GetBool(f.Name)
		case FlagDebug:
			s.Debug, err = fs.GetBool(f.Name)
		case FlagLogFile:
			s.LogFile = f.Value.String()
		case FlagLogLevel:
			s.LogLevel = f.Value.String()
		case FlagHelp:
			s.Help, err = fs.GetBool(f.Name)
		}
	})
	return err
}

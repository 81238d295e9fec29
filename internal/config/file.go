package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// File is the content of a config file. Pointer fields distinguish an
// option that is absent from one set to its zero value.
type File struct {
	Source         []string `toml:"source" yaml:"source" json:"source" hcl:"source,optional"`
	Exclude        []string `toml:"exclude" yaml:"exclude" json:"exclude" hcl:"exclude,optional"`
	Destination    string   `toml:"destination" yaml:"destination" json:"destination" hcl:"destination,optional"`
	TemplateConfig string   `toml:"template_config" yaml:"template_config" json:"template_config" hcl:"template_config,optional"`
	SkipDocPath    []string `toml:"skip_doc_path" yaml:"skip_doc_path" json:"skip_doc_path" hcl:"skip_doc_path,optional"`
	SkipDocPrefix  []string `toml:"skip_doc_prefix" yaml:"skip_doc_prefix" json:"skip_doc_prefix" hcl:"skip_doc_prefix,optional"`
	Title          string   `toml:"title" yaml:"title" json:"title" hcl:"title,optional"`
	BaseURL        string   `toml:"base_url" yaml:"base_url" json:"base_url" hcl:"base_url,optional"`
	Wipeout        *bool    `toml:"wipeout" yaml:"wipeout" json:"wipeout" hcl:"wipeout,optional"`
	UpdateCheck    *bool    `toml:"update_check" yaml:"update_check" json:"update_check" hcl:"update_check,optional"`
	Colors         *bool    `toml:"colors" yaml:"colors" json:"colors" hcl:"colors,optional"`
	Debug          *bool    `toml:"debug" yaml:"debug" json:"debug" hcl:"debug,optional"`
	LogFile        string   `toml:"log_file" yaml:"log_file" json:"log_file" hcl:"log_file,optional"`
	LogLevel       string   `toml:"log_level" yaml:"log_level" json:"log_level" hcl:"log_level,optional"`
}

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// LoadFile reads and decodes a config file. The format follows the file
// extension: .toml, .yaml/.yml/.neon, .json (comments allowed) or .hcl.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse %s: unknown option %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml", ".neon":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(filepath.Base(path), data, nil, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}

	return &f, nil
}

// apply copies the options set in f onto s. Relative paths are resolved
// against dir, the directory of the config file.
func (f *File) apply(s *Settings, dir string) {
	if len(f.Source) > 0 {
		s.Source = resolvePaths(dir, f.Source)
	}
	if len(f.Exclude) > 0 {
		s.Exclude = f.Exclude
	}
	if f.Destination != "" {
		s.Destination = resolvePath(dir, f.Destination)
	}
	if f.TemplateConfig != "" {
		s.TemplateConfig = f.TemplateConfig
		if f.TemplateConfig != BuiltinTemplateConfig {
			s.TemplateConfig = resolvePath(dir, f.TemplateConfig)
		}
	}
	if len(f.SkipDocPath) > 0 {
		s.SkipDocPath = f.SkipDocPath
	}
	if len(f.SkipDocPrefix) > 0 {
		s.SkipDocPrefix = f.SkipDocPrefix
	}
	if f.Title != "" {
		s.Title = f.Title
	}
	if f.BaseURL != "" {
		s.BaseURL = f.BaseURL
	}
	if f.Wipeout != nil {
		s.Wipeout = *f.Wipeout
	}
	if f.UpdateCheck != nil {
		s.UpdateCheck = *f.UpdateCheck
	}
	if f.Colors != nil {
		s.Colors = *f.Colors
	}
	if f.Debug != nil {
		s.Debug = *f.Debug
	}
	switch f.LogFile {
	case "":
	case DefaultLogFile:
		s.LogFile = DefaultLogFile
	default:
		s.LogFile = resolvePath(dir, f.LogFile)
	}
	if f.LogLevel != "" {
		s.LogLevel = f.LogLevel
	}
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

func resolvePaths(dir string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolvePath(dir, p)
	}
	return out
}

package docsite

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tessro/apidoc/internal/config"
)

// templateConfigName is the config file inside a template set directory.
const templateConfigName = "config.toml"

//go:embed templates/default
var builtinFS embed.FS

// templateConfig is the TOML description of a template set.
type templateConfig struct {
	Name      string `toml:"name"`
	Templates struct {
		Page  string `toml:"page"`
		Index string `toml:"index"`
	} `toml:"templates"`
	// Resources maps destination paths to source paths.
	Resources map[string]string `toml:"resources"`
}

// TemplateSet is a loaded template config.
type TemplateSet struct {
	Name      string
	Page      *template.Template
	Index     *template.Template
	resources map[string]string
	fsys      fs.FS
}

// LoadTemplateSet loads the template config at configPath. Template and
// resource paths are relative to the config file.
func LoadTemplateSet(configPath string) (*TemplateSet, error) {
	if configPath == "" || configPath == config.BuiltinTemplateConfig {
		sub, err := fs.Sub(builtinFS, "templates/default")
		if err != nil {
			return nil, err
		}
		return loadTemplateSet(sub, templateConfigName)
	}
	return loadTemplateSet(os.DirFS(filepath.Dir(configPath)), filepath.Base(configPath))
}

func loadTemplateSet(fsys fs.FS, name string) (*TemplateSet, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading template config: %w", err)
	}

	var cfg templateConfig
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing template config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown template config key %q", undecoded[0].String())
	}
	if cfg.Templates.Page == "" || cfg.Templates.Index == "" {
		return nil, fmt.Errorf("template config must name page and index templates")
	}

	set := &TemplateSet{Name: cfg.Name, resources: cfg.Resources, fsys: fsys}
	if set.Page, err = parseTemplate(fsys, cfg.Templates.Page); err != nil {
		return nil, err
	}
	if set.Index, err = parseTemplate(fsys, cfg.Templates.Index); err != nil {
		return nil, err
	}
	return set, nil
}

func parseTemplate(fsys fs.FS, name string) (*template.Template, error) {
	content, err := fs.ReadFile(fsys, cleanFSPath(name))
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	tmpl, err := template.New(path.Base(name)).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	return tmpl, nil
}

// copyResources copies every resource of the set below outputDir. A resource
// naming a directory is copied recursively.
func (t *TemplateSet) copyResources(outputDir string) error {
	for dest, src := range t.resources {
		src = cleanFSPath(src)
		err := fs.WalkDir(t.fsys, src, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel := strings.TrimPrefix(strings.TrimPrefix(p, src), "/")
			target := filepath.Join(outputDir, filepath.FromSlash(dest), filepath.FromSlash(rel))
			data, err := fs.ReadFile(t.fsys, p)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			return os.WriteFile(target, data, 0o644)
		})
		if err != nil {
			return fmt.Errorf("copying resource %s: %w", dest, err)
		}
	}
	return nil
}

// cleanFSPath turns a config-relative path into an fs.FS path.
func cleanFSPath(p string) string {
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "./")
}

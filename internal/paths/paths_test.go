package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBaseDir(t *testing.T) {
	t.Run("default uses home directory", func(t *testing.T) {
		t.Setenv(EnvDir, "")

		dir, err := BaseDir()
		if err != nil {
			t.Fatalf("BaseDir() error = %v", err)
		}
		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".apidoc")
		if dir != expected {
			t.Errorf("BaseDir() = %q, want %q", dir, expected)
		}
	})

	t.Run("APIDOC_DIR overrides default", func(t *testing.T) {
		t.Setenv(EnvDir, "/tmp/apidoc-test")

		dir, err := BaseDir()
		if err != nil {
			t.Fatalf("BaseDir() error = %v", err)
		}
		if dir != "/tmp/apidoc-test" {
			t.Errorf("BaseDir() = %q, want %q", dir, "/tmp/apidoc-test")
		}
	})
}

func TestLogPath(t *testing.T) {
	t.Setenv(EnvDir, "/tmp/apidoc-test")
	if got := LogPath(); got != filepath.Join("/tmp/apidoc-test", "apidoc.log") {
		t.Errorf("LogPath() = %q", got)
	}
}

func TestEnvConfigPath(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/apidoc.toml")
	if got := EnvConfigPath(); got != "/etc/apidoc.toml" {
		t.Errorf("EnvConfigPath() = %q", got)
	}
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()

	if _, ok := FindConfig(dir); ok {
		t.Fatal("FindConfig() found a config in an empty directory")
	}

	// A directory with a config name is not a config file.
	if err := os.Mkdir(filepath.Join(dir, "apidoc.toml"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"apidoc.json", "apidoc.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	path, ok := FindConfig(dir)
	if !ok {
		t.Fatal("FindConfig() found nothing")
	}
	if want := filepath.Join(dir, "apidoc.yaml"); path != want {
		t.Errorf("FindConfig() = %q, want %q (first in search order)", path, want)
	}
}

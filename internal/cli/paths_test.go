package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCLICacheDirOverride(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Dir = "/tmp/somewhere"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/somewhere" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	path, err := defaultConfigPath()
	if err != nil {
		t.Fatalf("defaultConfigPath() error: %v", err)
	}
	if !strings.HasPrefix(path, xdg) || filepath.Base(path) != "config.toml" {
		t.Errorf("defaultConfigPath() = %q, want config.toml under %q", path, xdg)
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "default base is system name",
			formats: []string{"png"},
			want:    map[string]string{"png": "fern.png"},
		},
		{
			name:    "single format uses output verbatim",
			output:  "out/leaf.image",
			formats: []string{"png"},
			want:    map[string]string{"png": "out/leaf.image"},
		},
		{
			name:    "multiple formats strip known extension",
			output:  "out/leaf.png",
			formats: []string{"png", "svg"},
			want:    map[string]string{"png": "out/leaf.png", "svg": "out/leaf.svg"},
		},
		{
			name:    "multiple formats keep unknown extension",
			output:  "leaf.v2",
			formats: []string{"json", "svg"},
			want:    map[string]string{"json": "leaf.v2.json", "svg": "leaf.v2.svg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "fern", tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%q] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestWriteFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.json")
	if err := writeFile(path, []byte("{}")); err != nil {
		t.Fatalf("writeFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("content = %q, want {}", data)
	}
}

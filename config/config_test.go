package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Config
		wantErr string
	}{
		{
			name:  "empty object keeps defaults",
			input: `{}`,
			want:  Default(),
		},
		{
			name: "comments and trailing commas",
			input: `{
				// recovery off
				"strict": true,
				"extensions": [".txt", ".cvar",],
				/* bounded */ "workers": 2,
				"verbosity": 1,
				"exclude": ["build/*"],
			}`,
			want: &Config{
				Root:       ".",
				Strict:     true,
				Extensions: []string{".txt", ".cvar"},
				Workers:    2,
				Verbosity:  1,
				Exclude:    []string{"build/*"},
			},
		},
		{name: "unknown field", input: `{"strikt": true}`, wantErr: "unknown field"},
		{name: "negative workers", input: `{"workers": -1}`, wantErr: "workers"},
		{name: "extension without dot", input: `{"extensions": ["txt"]}`, wantErr: "dot"},
		{name: "bad pattern", input: `{"exclude": ["["]}`, wantErr: "exclude pattern"},
		{name: "not json", input: `{"strict": }`, wantErr: "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want one containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("config = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg.Root != dir || cfg.Strict {
		t.Errorf("defaults = %+v", cfg)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(`{"strict": true, }`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFrom(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Strict || cfg.Root != dir {
		t.Errorf("loaded = %+v", cfg)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(`[`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(dir); err == nil || !strings.Contains(err.Error(), FileName) {
		t.Errorf("error = %v, want it to name the file", err)
	}
}

func TestMatches(t *testing.T) {
	cfg := &Config{Extensions: []string{".txt"}}
	tests := []struct {
		path string
		want bool
	}{
		{"mod/CVARINFO", true},
		{"mod/cvarinfo.weapons", true},
		{"mod/CVarInfo.TXT", true},
		{"mod/defs.txt", true},
		{"mod/DEFS.TXT", true},
		{"mod/zscript.zs", false},
		{"mod/cvarinfos", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := cfg.Matches(tt.path); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestExcluded(t *testing.T) {
	cfg := &Config{Root: "/mod", Exclude: []string{"build/*", "*.bak"}}
	tests := []struct {
		path string
		want bool
	}{
		{"/mod/build/cvarinfo", true},
		{"/mod/src/cvarinfo.bak", true},
		{"/mod/src/cvarinfo", false},
		{"/mod/build/deep/cvarinfo", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := cfg.Excluded(tt.path); got != tt.want {
				t.Errorf("Excluded(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestExcludedRelativeRoot(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg := Default()
	cfg.Exclude = []string{"build/*"}
	tests := []struct {
		path string
		want bool
	}{
		{"build/cvarinfo", true},
		{filepath.Join(dir, "build", "cvarinfo"), true},
		{filepath.Join(dir, "src", "cvarinfo"), false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := cfg.Excluded(tt.path); got != tt.want {
				t.Errorf("Excluded(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

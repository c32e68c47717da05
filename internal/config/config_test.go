package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Input.Delimiter != "," {
		t.Errorf("default delimiter = %q, want %q", cfg.Input.Delimiter, ",")
	}
	if cfg.Input.Sheet != "" {
		t.Errorf("default sheet = %q, want empty", cfg.Input.Sheet)
	}
	if cfg.Convert.FormatTelephone {
		t.Error("telephone formatting should default to off")
	}
	if cfg.Output.Force {
		t.Error("force should default to off")
	}
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "vcardify.yaml")
	if err := os.WriteFile(cfgPath, []byte(`
input:
  delimiter: ";"
  sheet: Contacts
convert:
  format_telephone: true
output:
  dir: /tmp/cards
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Input.Delimiter != ";" {
		t.Errorf("delimiter = %q, want %q", cfg.Input.Delimiter, ";")
	}
	if cfg.Input.Sheet != "Contacts" {
		t.Errorf("sheet = %q, want %q", cfg.Input.Sheet, "Contacts")
	}
	if !cfg.Convert.FormatTelephone {
		t.Error("format_telephone should be true")
	}
	if cfg.Output.Dir != "/tmp/cards" {
		t.Errorf("output dir = %q, want %q", cfg.Output.Dir, "/tmp/cards")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/vcardify.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "vcardify.yaml")
	if err := os.WriteFile(cfgPath, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_UnknownFields(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "vcardify.yaml")
	if err := os.WriteFile(cfgPath, []byte("bogus:\n  field: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("Load(unknown fields) should return error")
	}
}

func TestLoadLayered_LaterWins(t *testing.T) {
	dir := t.TempDir()
	userPath := filepath.Join(dir, "user.yaml")
	projectPath := filepath.Join(dir, "project.yaml")

	if err := os.WriteFile(userPath, []byte(`
input:
  delimiter: ";"
  sheet: UserSheet
`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(projectPath, []byte(`
input:
  sheet: ProjectSheet
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLayered(userPath, projectPath)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	// Project layer overrides sheet but leaves the user delimiter intact.
	if cfg.Input.Sheet != "ProjectSheet" {
		t.Errorf("sheet = %q, want %q", cfg.Input.Sheet, "ProjectSheet")
	}
	if cfg.Input.Delimiter != ";" {
		t.Errorf("delimiter = %q, want %q from user layer", cfg.Input.Delimiter, ";")
	}
}

func TestLoadLayered_MissingFilesSkipped(t *testing.T) {
	cfg, err := LoadLayered("/nonexistent/a.yaml", "/nonexistent/b.yaml")
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("LoadLayered(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		delimiter string
		wantErr   bool
	}{
		{"comma", ",", false},
		{"semicolon", ";", false},
		{"tab", "\t", false},
		{"empty", "", true},
		{"multi-char", ",,", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Input.Delimiter = tt.delimiter
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Validate(delimiter=%q) should fail", tt.delimiter)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate(delimiter=%q) error = %v", tt.delimiter, err)
			}
		})
	}
}

func TestDelimiterRune(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input.Delimiter = ";"
	if got := cfg.DelimiterRune(); got != ';' {
		t.Errorf("DelimiterRune() = %q, want ';'", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("VCARDIFY_DELIMITER", ";")
	t.Setenv("VCARDIFY_SHEET", "People")
	t.Setenv("VCARDIFY_OUTPUT_DIR", "/tmp/out")
	t.Setenv("VCARDIFY_FORMAT_TELEPHONE", "true")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Input.Delimiter != ";" {
		t.Errorf("delimiter = %q, want %q", cfg.Input.Delimiter, ";")
	}
	if cfg.Input.Sheet != "People" {
		t.Errorf("sheet = %q, want %q", cfg.Input.Sheet, "People")
	}
	if cfg.Output.Dir != "/tmp/out" {
		t.Errorf("output dir = %q, want %q", cfg.Output.Dir, "/tmp/out")
	}
	if !cfg.Convert.FormatTelephone {
		t.Error("format_telephone should be true")
	}
}

func TestApplyEnv_InvalidBool(t *testing.T) {
	t.Setenv("VCARDIFY_FORMAT_TELEPHONE", "maybe")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("ApplyEnv() should reject non-boolean VCARDIFY_FORMAT_TELEPHONE")
	}
}

package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		input    string
		explicit string
		want     string
	}{
		{"swap extension", "", "contacts.csv", "", "contacts.vcf"},
		{"xlsx input", "", "data/people.xlsx", "", filepath.Join("data", "people.vcf")},
		{"explicit wins", "out", "contacts.csv", "cards.vcf", "cards.vcf"},
		{"output dir", "out", "data/contacts.csv", "", filepath.Join("out", "contacts.vcf")},
		{"no extension", "", "contacts", "", "contacts.vcf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(tt.dir, false)
			if got := w.Derive(tt.input, tt.explicit); got != tt.want {
				t.Errorf("Derive(%q, %q) = %q, want %q", tt.input, tt.explicit, got, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")

	w := NewWriter("", false)
	if err := w.Write(path, []byte("BEGIN:VCARD\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "BEGIN:VCARD\n" {
		t.Errorf("written content = %q, want %q", data, "BEGIN:VCARD\n")
	}
}

func TestWrite_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "contacts.vcf")

	w := NewWriter("", false)
	if err := w.Write(path, []byte("x")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("written file missing: %v", err)
	}
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewWriter("", false)
	err := w.Write(path, []byte("new"))
	if !errors.Is(err, ErrExists) {
		t.Fatalf("Write(existing) error = %v, want ErrExists", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "old" {
		t.Errorf("existing file was modified: %q", data)
	}
}

func TestWrite_ForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewWriter("", true)
	if err := w.Write(path, []byte("new")); err != nil {
		t.Fatalf("Write(force) error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("forced write content = %q, want %q", data, "new")
	}
}

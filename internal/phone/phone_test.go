package phone

import "testing"

func TestFormat_Disabled(t *testing.T) {
	inputs := []string{"31612345678", "", "abc", "+31 6 1234", "1"}
	for _, in := range inputs {
		if got := Format(in, false); got != in {
			t.Errorf("Format(%q, false) = %q, want input unchanged", in, got)
		}
	}
}

func TestFormat_Enabled(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"31612345678", "+31 612 34 56 78"},
		{"4915712345678", "+49 157 12 34 56 78"},
		{"316123456789", "+31 612 34 56 78 9"},
		{"31612", "+31 612 "},
		{"3161234", "+31 612 34"},
	}

	for _, tt := range tests {
		if got := Format(tt.raw, true); got != tt.want {
			t.Errorf("Format(%q, true) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFormat_ShortInputsDegrade(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "+  "},
		{"3", "+3  "},
		{"31", "+31  "},
		{"316", "+31 6 "},
		{"3161", "+31 61 "},
	}

	for _, tt := range tests {
		if got := Format(tt.raw, true); got != tt.want {
			t.Errorf("Format(%q, true) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

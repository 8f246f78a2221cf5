package semantic

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  Version
	}{
		{
			name:  "bare triple",
			token: "1.10.8",
			want:  Version{Major: 1, Minor: 10, Patch: 8},
		},
		{
			name:  "leading v",
			token: "v1.10.8",
			want:  Version{Major: 1, Minor: 10, Patch: 8},
		},
		{
			name:  "leading capital V and whitespace",
			token: " V2.0.0 ",
			want:  Version{Major: 2, Minor: 0, Patch: 0},
		},
		{
			name:  "stable suffix",
			token: "1.10.26-stable",
			want:  Version{Major: 1, Minor: 10, Patch: 26},
		},
		{
			name:  "beta suffix",
			token: "0.2.0-beta.6",
			want:  Version{Major: 0, Minor: 2, Patch: 0},
		},
		{
			name:  "alpha suffix",
			token: "v1.0.0-alpha.1",
			want:  Version{Major: 1, Minor: 0, Patch: 0},
		},
		{
			name:  "release candidate suffix",
			token: "1.2.3-rc2",
			want:  Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:  "unstable suffix",
			token: "1.11.0-unstable",
			want:  Version{Major: 1, Minor: 11, Patch: 0},
		},
		{
			name:  "build metadata",
			token: "1.14.6+6c21356f",
			want:  Version{Major: 1, Minor: 14, Patch: 6},
		},
		{
			name:  "suffix and build metadata",
			token: "v1.10.4-stable+hf1",
			want:  Version{Major: 1, Minor: 10, Patch: 4},
		},
		{
			name:  "triple embedded in text",
			token: "release 21.10.1 final",
			want:  Version{Major: 21, Minor: 10, Patch: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.token)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.token, got, tt.want)
			}

			// normalization must be idempotent
			again, err := Parse(got.String())
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", got.String(), err)
			}
			if again != got {
				t.Errorf("Parse(%q) = %v, want %v", got.String(), again, got)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "whitespace only", token: "   "},
		{name: "no digits", token: "unknown"},
		{name: "major.minor only", token: "1.2"},
		{name: "lone number", token: "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse(tt.token); !errors.Is(err, ErrNotAVersion) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.token, err, ErrNotAVersion)
			}
		})
	}
}

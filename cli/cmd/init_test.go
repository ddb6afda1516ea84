package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string) // setup function to prepare test
		wantErr error
	}{
		{
			name: "create_new_config",
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing: content\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name: "fail_without_force",
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing: content\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli struct {
				TabSize int    `default:"4"`
				Name    string `default:"page"`
				Empty   string
			}

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), kctx)

			err = (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(content, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, content)
			}

			if got["name"] != "page" {
				t.Errorf("name = %v, want page", got["name"])
			}

			if _, ok := got["tab-size"]; !ok {
				t.Errorf("tab-size missing from %v", got)
			}

			if _, ok := got["empty"]; ok {
				t.Error("empty strings should not be written")
			}

			if _, ok := got["help"]; ok {
				t.Error("help flag should not be written")
			}
		})
	}
}

func TestFlagValue(t *testing.T) {
	type named string

	var nilPtr *int

	seven := 7

	tests := []struct {
		name   string
		value  any
		want   any
		wantOK bool
	}{
		{"nil", nil, nil, false},
		{"false kept", false, false, true},
		{"zero kept", 0, 0, true},
		{"string", "x", "x", true},
		{"named string", named("debug"), "debug", true},
		{"empty string", "", nil, false},
		{"empty slice", []string{}, nil, false},
		{"nil pointer", nilPtr, nil, false},
		{"pointer", &seven, 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := flagValue(tt.value)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("flagValue(%v) = (%v, %v), want (%v, %v)", tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if got, ok := flagValue([]string{"a"}); !ok || len(got.([]string)) != 1 {
		t.Errorf("flagValue([a]) = (%v, %v)", got, ok)
	}
}

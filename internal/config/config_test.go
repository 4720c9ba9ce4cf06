package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-hclog"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"FORMAT", "PREVIEW", "SORT", "LOG_LEVEL", "WORKERS", "PRODUCER", "TEMPLATE_DIR"} {
		// Register the restore, then clear: envconfig only applies defaults to unset variables.
		t.Setenv(Prefix+"_"+key, "")
		os.Unsetenv(Prefix + "_" + key)
	}

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		Format:   FormatHex,
		Preview:  PreviewAuto,
		Sort:     "none",
		LogLevel: "info",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ACOCONV_FORMAT", "JSON")
	t.Setenv("ACOCONV_PREVIEW", "never")
	t.Setenv("ACOCONV_SORT", "Hue")
	t.Setenv("ACOCONV_LOG_LEVEL", "debug")
	t.Setenv("ACOCONV_WORKERS", "3")
	t.Setenv("ACOCONV_PRODUCER", "Swatch Tools")
	t.Setenv("ACOCONV_TEMPLATE_DIR", "/tmp/templates")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		Format:      FormatJSON,
		Preview:     PreviewNever,
		Sort:        "hue",
		LogLevel:    "debug",
		Workers:     3,
		Producer:    "Swatch Tools",
		TemplateDir: "/tmp/templates",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	level, err := c.Level()
	if err != nil || level != hclog.Debug {
		t.Errorf("Level() = %v, %v; want debug", level, err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"ACOCONV_FORMAT", "xml"},
		{"ACOCONV_PREVIEW", "sometimes"},
		{"ACOCONV_SORT", "saturation"},
		{"ACOCONV_LOG_LEVEL", "loud"},
		{"ACOCONV_WORKERS", "many"},
		{"ACOCONV_WORKERS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s expected error", tt.key, tt.value)
			}
		})
	}
}

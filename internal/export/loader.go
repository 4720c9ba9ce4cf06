package export

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// Loader loads export templates, preferring user overrides in
// ~/.config/acoconv/templates/{format}/ over the embedded defaults.
type Loader struct {
	format     string
	embedFS    embed.FS
	customBase string
	logger     hclog.Logger
}

// NewLoader creates a template loader for the named export format.
func NewLoader(format string, embedFS embed.FS) *Loader {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	return &Loader{
		format:     format,
		embedFS:    embedFS,
		customBase: filepath.Join(home, ".config", "acoconv", "templates"),
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase sets the base directory searched for overrides.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// WithLogger sets the logger used to report which template was chosen.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load reads a template, checking for a custom override first.
// It reports whether the override was used.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	customPath := l.CustomPath(filename)

	if content, err := os.ReadFile(customPath); err == nil { // #nosec G304 - path is under the user's template directory
		l.logger.Debug("using custom template", "path", customPath)
		return content, true, nil
	}

	content, err = l.embedFS.ReadFile(filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}

	l.logger.Trace("using embedded template", "name", filename)
	return content, false, nil
}

// CustomPath returns where an override for filename would live.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.customBase, l.format, filename)
}

// DumpTemplate writes the embedded template to the override directory so it can be edited.
// An existing override is only replaced when force is set.
func (l *Loader) DumpTemplate(filename string, force bool) (string, error) {
	content, err := l.embedFS.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	outputPath := l.CustomPath(filename)
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return "", fmt.Errorf("custom template already exists: %s (use --force to overwrite)", outputPath)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil { // #nosec G301 - template directory needs standard permissions
		return "", fmt.Errorf("failed to create directory %q: %w", filepath.Dir(outputPath), err)
	}
	if err := os.WriteFile(outputPath, content, 0o644); err != nil { // #nosec G306 - templates are user-readable config
		return "", fmt.Errorf("failed to write template to %q: %w", outputPath, err)
	}

	return outputPath, nil
}

// Package export writes decoded swatches to other palette formats.
package export

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/acoconv/internal/colour"
	"github.com/jmylchreest/acoconv/internal/security"
)

//go:embed *.tmpl
var templates embed.FS

const (
	// PaintDotNetFormat names the Paint.NET palette format.
	PaintDotNetFormat = "paintdotnet"

	// PaintDotNetTemplate is the embedded template for Paint.NET palettes.
	PaintDotNetTemplate = "paintdotnet.txt.tmpl"

	// MaxPaintDotNetColors is the number of colours Paint.NET reads from one palette file.
	MaxPaintDotNetColors = 96
)

// ErrNoColors is returned when there is nothing to export.
var ErrNoColors = errors.New("no colours to export")

// Templates returns the embedded export templates.
func Templates() embed.FS {
	return templates
}

// PaintDotNet renders and writes Paint.NET palette files.
type PaintDotNet struct {
	producer string
	loader   *Loader
	logger   hclog.Logger
}

// Option configures a PaintDotNet exporter.
type Option func(*PaintDotNet)

// WithLogger sets the exporter logger.
func WithLogger(logger hclog.Logger) Option {
	return func(p *PaintDotNet) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTemplateDir overrides the directory searched for custom templates.
func WithTemplateDir(dir string) Option {
	return func(p *PaintDotNet) {
		p.loader.WithCustomBase(dir)
	}
}

// NewPaintDotNet creates an exporter. producer is named in each file's header comment.
func NewPaintDotNet(producer string, opts ...Option) *PaintDotNet {
	p := &PaintDotNet{
		producer: producer,
		loader:   NewLoader(PaintDotNetFormat, templates),
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.loader.WithLogger(p.logger)
	return p
}

// WritePaintDotNet writes colors to path as Paint.NET palettes using the default exporter.
func WritePaintDotNet(path string, colors []colour.RGBA, producer string) ([]string, error) {
	return NewPaintDotNet(producer).Write(path, colors)
}

// paletteData is passed to the palette template.
type paletteData struct {
	Producer string
	Colors   []colour.RGBA
}

// Render renders colors into one or more palette files of at most MaxPaintDotNetColors each.
func (p *PaintDotNet) Render(colors []colour.RGBA) ([][]byte, error) {
	if len(colors) == 0 {
		return nil, ErrNoColors
	}

	content, _, err := p.loader.Load(PaintDotNetTemplate)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("paintdotnet").Funcs(template.FuncMap{
		"argb": argbHex,
	}).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse palette template: %w", err)
	}

	chunks := Chunk(colors, MaxPaintDotNetColors)
	files := make([][]byte, 0, len(chunks))
	for _, chunk := range chunks {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, paletteData{Producer: p.producer, Colors: chunk}); err != nil {
			return nil, fmt.Errorf("failed to execute palette template: %w", err)
		}
		files = append(files, buf.Bytes())
	}

	return files, nil
}

// Write renders colors and writes them next to path. The first file is path itself;
// overflow files are named base#2.ext, base#3.ext and so on. It returns the written paths.
func (p *PaintDotNet) Write(path string, colors []colour.RGBA) ([]string, error) {
	files, err := p.Render(colors)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - output directory needs standard permissions
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	paths := PartPaths(path, len(files))
	for i, content := range files {
		if err := security.ValidateOutputPath(paths[i], dir); err != nil {
			return paths[:i], err
		}
		if err := os.WriteFile(paths[i], content, 0o644); err != nil { // #nosec G306 - palettes are user-readable
			return paths[:i], fmt.Errorf("failed to write %s: %w", paths[i], err)
		}
		p.logger.Debug("wrote palette", "path", paths[i], "bytes", len(content))
	}

	return paths, nil
}

// PartPaths returns the file names used for an export split into n parts.
func PartPaths(path string, n int) []string {
	if n <= 0 {
		return nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	paths := make([]string, n)
	paths[0] = path
	for i := 1; i < n; i++ {
		paths[i] = fmt.Sprintf("%s#%d%s", base, i+1, ext)
	}
	return paths
}

// Chunk splits colors into consecutive groups of at most size colours.
func Chunk(colors []colour.RGBA, size int) [][]colour.RGBA {
	if size <= 0 || len(colors) == 0 {
		return nil
	}

	chunks := make([][]colour.RGBA, 0, (len(colors)+size-1)/size)
	for start := 0; start < len(colors); start += size {
		end := min(start+size, len(colors))
		chunks = append(chunks, colors[start:end])
	}
	return chunks
}

// argbHex formats a colour as opaque AARRGGBB hex. Paint.NET ignores palette alpha.
func argbHex(c colour.RGBA) string {
	return fmt.Sprintf("%08X", c.ARGB()|0xFF000000)
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/acoconv/internal/colour"
	"github.com/jmylchreest/acoconv/internal/config"
	"github.com/jmylchreest/acoconv/internal/swatch"
)

// previewWidth is the width of a swatch preview block in cells.
const previewWidth = 8

// showOptions holds the flags shared by the root and show commands.
type showOptions struct {
	format  string
	preview string
	sort    string
	output  string
	member  string
}

func (o *showOptions) register(flags *pflag.FlagSet) {
	flags.StringVarP(&o.format, "format", "f", config.FormatHex, "output format (hex, rgb, json, names)")
	flags.StringVar(&o.preview, "preview", config.PreviewAuto, "show colour previews (auto, always, never)")
	flags.StringVarP(&o.sort, "sort", "s", string(colour.SortNone), "sort order (none, hue, lightness)")
	flags.StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVar(&o.member, "member", "", "archive member to read from zip or tar inputs")
}

func (a *app) newShowCmd() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <file.aco>",
		Short: "List the colours in a swatch file",
		Long: `List the colours in a swatch file.

Examples:
  # Hex codes, with previews when writing to a terminal
  acoconv show swatches.aco

  # A table with swatch names and the nearest common colour name
  acoconv show --format names swatches.aco

  # JSON, sorted by hue
  acoconv show -f json --sort hue swatches.aco.gz

  # Read a swatch file from an archive
  acoconv show --member Brand/Primary.aco brand-kit.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd, args[0], opts)
		},
	}
	opts.register(cmd.Flags())

	return cmd
}

// runShow decodes one file and prints its swatches.
func (a *app) runShow(cmd *cobra.Command, path string, opts *showOptions) error {
	flags := cmd.Flags()
	format := strings.ToLower(setting(flags, "format", opts.format, a.cfg.Format))
	previewMode := strings.ToLower(setting(flags, "preview", opts.preview, a.cfg.Preview))
	sortName := setting(flags, "sort", opts.sort, a.cfg.Sort)

	if err := config.ValidateFormat(format); err != nil {
		return err
	}
	if err := config.ValidatePreview(previewMode); err != nil {
		return err
	}
	sortKey, err := colour.ParseSortKey(sortName)
	if err != nil {
		return err
	}

	decoder := swatch.NewDecoder(swatch.WithLogger(a.logger.Named("decoder")))
	collection, err := decoder.DecodeFile(path, opts.member)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	a.logger.Info("decoded swatch file", "path", path, "swatches", collection.Len(), "named", collection.Named())

	swatches := collection.Swatches()
	if sortKey != colour.SortNone {
		slices.SortStableFunc(swatches, func(x, y swatch.Swatch) int {
			return sortKey.Compare(x.Color, y.Color)
		})
	}

	out := cmd.OutOrStdout()
	preview := wantPreview(previewMode, out, opts.output != "")

	output, err := formatSwatches(path, swatches, format, preview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.output == "" {
		_, err := io.WriteString(out, output)
		return err
	}

	if dir := filepath.Dir(opts.output); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - output directory needs standard permissions
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, []byte(output), 0o644); err != nil { // #nosec G306 - output is user-readable
		return fmt.Errorf("failed to write output file: %w", err)
	}
	a.logger.Info("wrote swatch listing", "path", opts.output)

	return nil
}

// wantPreview resolves a preview mode. Files never get previews in auto mode.
func wantPreview(mode string, out io.Writer, toFile bool) bool {
	switch mode {
	case config.PreviewAlways:
		return true
	case config.PreviewNever:
		return false
	}
	if toFile {
		return false
	}
	f, ok := out.(*os.File)
	return ok && colour.SupportsANSIColours(f)
}

// formatSwatches renders swatches in the given format.
func formatSwatches(source string, swatches []swatch.Swatch, format string, preview bool) (string, error) {
	switch format {
	case config.FormatHex:
		return formatLines(swatches, preview, func(c colour.RGBA) string { return c.Hex() }), nil
	case config.FormatRGB:
		return formatLines(swatches, preview, func(c colour.RGBA) string { return c.String() }), nil
	case config.FormatNames:
		return formatNames(swatches, preview), nil
	case config.FormatJSON:
		return formatJSON(source, swatches)
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json, names)", format)
	}
}

// formatLines writes one swatch per line, followed by its name when it has one.
func formatLines(swatches []swatch.Swatch, preview bool, value func(colour.RGBA) string) string {
	var b strings.Builder
	for _, s := range swatches {
		if preview {
			b.WriteString(colour.ColourPreview(s.Color, previewWidth))
			b.WriteString("  ")
		}
		b.WriteString(value(s.Color))
		if s.HasName && s.Name != "" {
			b.WriteString("  ")
			b.WriteString(s.Name)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatNames renders a table of swatch names alongside the nearest common colour name.
func formatNames(swatches []swatch.Swatch, preview bool) string {
	headers := []string{"#", "Hex", "RGB", "Name", "Nearest"}
	if preview {
		headers = append([]string{"Swatch"}, headers...)
	}

	table := NewTable(headers)
	for i, s := range swatches {
		name := "-"
		if s.HasName && s.Name != "" {
			name = s.Name
		}

		row := []string{strconv.Itoa(i + 1), s.Color.Hex(), s.Color.String(), name, colour.NearestName(s.Color)}
		if preview {
			row = append([]string{colour.ColourPreviewWithText(s.Color, "Aa", previewWidth)}, row...)
		}
		table.AddRow(row)
	}

	return table.Render()
}

type jsonSwatch struct {
	Hex  string     `json:"hex"`
	RGB  colour.RGB `json:"rgb"`
	Name string     `json:"name,omitempty"`
}

type jsonListing struct {
	Source   string       `json:"source"`
	Count    int          `json:"count"`
	Named    int          `json:"named"`
	Swatches []jsonSwatch `json:"swatches"`
}

func formatJSON(source string, swatches []swatch.Swatch) (string, error) {
	listing := jsonListing{
		Source:   source,
		Count:    len(swatches),
		Swatches: make([]jsonSwatch, len(swatches)),
	}
	for i, s := range swatches {
		listing.Swatches[i] = jsonSwatch{Hex: s.Color.Hex(), RGB: s.Color.RGB()}
		if s.HasName && s.Name != "" {
			listing.Swatches[i].Name = s.Name
			listing.Named++
		}
	}

	data, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to convert to JSON: %w", err)
	}
	return string(data) + "\n", nil
}

package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/acoconv/internal/batch"
	"github.com/jmylchreest/acoconv/internal/export"
	"github.com/jmylchreest/acoconv/internal/security"
	"github.com/jmylchreest/acoconv/internal/swatch"
	"github.com/jmylchreest/acoconv/internal/version"
)

// swatchSuffixes are removed from input names to build palette names.
var swatchSuffixes = []string{
	".tar.gz", ".tgz", ".tar.xz", ".txz", ".tar.bz2", ".tbz2", ".tbz",
	".zip", ".gz", ".bz2", ".xz", ".aco",
}

type exportOptions struct {
	output       string
	dir          string
	workers      int
	producer     string
	member       string
	templateDir  string
	dumpTemplate bool
	force        bool
}

func (a *app) newExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export <file.aco>...",
		Short: "Convert swatch files to Paint.NET palettes",
		Long: `Convert swatch files to Paint.NET palettes.

Each input is written as <name>.txt next to the input, or in --dir. Paint.NET
reads at most 96 colours per palette, so larger swatch files are split into
<name>#2.txt, <name>#3.txt and so on. Files are converted in parallel.

The palette layout comes from a template. Use --dump-template to write the
default template to ~/.config/acoconv/templates/paintdotnet/ for editing.

Examples:
  # Convert one file
  acoconv export swatches.aco

  # Choose the output file
  acoconv export -o ~/Documents/paint.net/Palettes/brand.txt brand.aco

  # Convert many files into one directory with 4 workers
  acoconv export --dir palettes -w 4 swatches/*.aco`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.dumpTemplate {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.dumpTemplate {
				return a.runDumpTemplate(cmd, opts)
			}
			return a.runExport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single input only)")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "output directory (default: next to each input)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "number of parallel workers (default: number of CPUs)")
	cmd.Flags().StringVar(&opts.producer, "producer", "", "producer named in the palette header (default: acoconv and its version)")
	cmd.Flags().StringVar(&opts.member, "member", "", "archive member to read from zip or tar inputs")
	cmd.Flags().StringVar(&opts.templateDir, "template-dir", "", "directory holding custom templates")
	cmd.Flags().BoolVar(&opts.dumpTemplate, "dump-template", false, "write the default palette template for editing and exit")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing custom template")
	cmd.MarkFlagsMutuallyExclusive("output", "dir")

	return cmd
}

func (a *app) exporter(cmd *cobra.Command, opts *exportOptions) *export.PaintDotNet {
	flags := cmd.Flags()

	producer := setting(flags, "producer", opts.producer, a.cfg.Producer)
	if producer == "" {
		producer = version.Producer()
	}

	exportOpts := []export.Option{export.WithLogger(a.logger.Named("export"))}
	if dir := setting(flags, "template-dir", opts.templateDir, a.cfg.TemplateDir); dir != "" {
		exportOpts = append(exportOpts, export.WithTemplateDir(dir))
	}

	return export.NewPaintDotNet(producer, exportOpts...)
}

func (a *app) runExport(cmd *cobra.Command, inputs []string, opts *exportOptions) error {
	if opts.output != "" && len(inputs) > 1 {
		return fmt.Errorf("--output can only be used with a single input, use --dir for %d inputs", len(inputs))
	}

	targets := make(map[string]string, len(inputs))
	for _, input := range inputs {
		target, err := outputPath(input, opts)
		if err != nil {
			return err
		}
		if prev, ok := targets[target]; ok && prev != input {
			return fmt.Errorf("%s and %s would both be written to %s", prev, input, target)
		}
		targets[target] = input
	}

	workers := setting(cmd.Flags(), "workers", opts.workers, a.cfg.Workers)
	exporter := a.exporter(cmd, opts)

	processor := batch.NewProcessor(
		batch.WithWorkers(workers),
		batch.WithMember(opts.member),
		batch.WithLogger(a.logger.Named("batch")),
	)

	results := processor.Run(inputs, func(input string, c *swatch.Collection) ([]string, error) {
		target, err := outputPath(input, opts)
		if err != nil {
			return nil, err
		}
		return exporter.Write(target, c.Colors())
	})

	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Err != nil {
			a.logger.Error("export failed", "path", r.Path, "error", r.Err)
			continue
		}
		for _, written := range r.Outputs {
			fmt.Fprintln(out, written)
		}
		a.logger.Info("exported swatch file", "path", r.Path, "colours", r.Collection.Len(), "files", len(r.Outputs))
	}

	if failed := results.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d files failed: %w", failed, len(results), results.Err())
	}
	return nil
}

func (a *app) runDumpTemplate(cmd *cobra.Command, opts *exportOptions) error {
	loader := export.NewLoader(export.PaintDotNetFormat, export.Templates()).WithLogger(a.logger.Named("export"))
	if dir := setting(cmd.Flags(), "template-dir", opts.templateDir, a.cfg.TemplateDir); dir != "" {
		loader.WithCustomBase(dir)
	}

	path, err := loader.DumpTemplate(export.PaintDotNetTemplate, opts.force)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// outputPath returns the first palette file for input.
func outputPath(input string, opts *exportOptions) (string, error) {
	if opts.output != "" {
		return opts.output, nil
	}

	name := paletteName(input)
	if opts.dir == "" {
		return filepath.Join(filepath.Dir(input), name), nil
	}

	target := filepath.Join(opts.dir, name)
	if err := security.ValidateOutputPath(target, opts.dir); err != nil {
		return "", err
	}
	return target, nil
}

// paletteName turns "brand.aco.gz" into "brand.txt".
func paletteName(input string) string {
	base := filepath.Base(input)

	for trimmed := true; trimmed; {
		trimmed = false
		lower := strings.ToLower(base)
		for _, suffix := range swatchSuffixes {
			if strings.HasSuffix(lower, suffix) && len(base) > len(suffix) {
				base = base[:len(base)-len(suffix)]
				trimmed = true
				break
			}
		}
	}

	return base + ".txt"
}

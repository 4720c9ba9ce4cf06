// Package cli provides the command-line interface for acoconv.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/acoconv/internal/config"
	"github.com/jmylchreest/acoconv/internal/version"
)

// app holds state shared by all commands of one root command.
type app struct {
	cfg     config.Config
	logger  hclog.Logger
	verbose bool
	quiet   bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}
	show := &showOptions{}

	rootCmd := &cobra.Command{
		Use:   "acoconv [file.aco]",
		Short: "Decode Adobe Photoshop colour swatch files",
		Long: `acoconv reads Adobe Photoshop Color Swatch (.aco) files and lists their colours,
or converts them to Paint.NET palettes.

RGB, HSB, CMYK, Lab and Grayscale swatches are converted to 8-bit RGB. Colour-book
swatches (Pantone, Focoltone, Trumatch, Toyo, HKS) are skipped. Swatch names are
read from version 2 data when present.

Files may be gzip, bzip2 or xz compressed, or packed in a zip or tar archive.

Running acoconv with a file is the same as running acoconv show.`,
		Args:              cobra.MaximumNArgs(1),
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.runShow(cmd, args[0], show)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	show.register(rootCmd.Flags())

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(a.newShowCmd())
	rootCmd.AddCommand(a.newExportCmd())

	return rootCmd
}

// setup loads the environment configuration and creates the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	switch {
	case a.verbose:
		level = hclog.Debug
	case a.quiet:
		level = hclog.Error
	}

	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "acoconv",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})
	a.logger.Trace("configuration loaded", "format", cfg.Format, "preview", cfg.Preview, "sort", cfg.Sort, "workers", cfg.Workers)

	return nil
}

// setting returns the flag value when the flag was given, otherwise the configured value.
func setting[T any](flags *pflag.FlagSet, name string, flagValue, configValue T) T {
	if f := flags.Lookup(name); f != nil && f.Changed {
		return flagValue
	}
	return configValue
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), info)
				return nil
			}

			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode version info: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}

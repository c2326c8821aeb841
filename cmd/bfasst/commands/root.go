package commands

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

var (
	rootDir string
	verbose bool
	explain bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bfasst",
	Short: "bfasst - ninja build-graph generator for FPGA CAD flows",
	Long: `bfasst generates a ninja build graph that runs synthesis and
implementation flows over one or many hardware designs.

An experiment descriptor names a flow and the designs to run it on. bfasst
writes one config artifact per flow stage, rewriting it only when its content
changes, and a build.ninja that regenerates itself when its templates or the
descriptor change.`,
	Version: version,
	// Prevent silent success when unknown flags are passed to root command
	// e.g., "bfasst --flow vivado" instead of "bfasst run --flow vivado"
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is specified, show help
		return cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(verbose, os.Stderr)
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// configureLogging sends library log lines to w when verbose, and drops them
// otherwise.
func configureLogging(verbose bool, w io.Writer) {
	if verbose {
		log.SetOutput(w)
		return
	}
	log.SetOutput(io.Discard)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Repository root (default: $BFASST_ROOT, the git toplevel, or the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log generation steps to stderr")
	rootCmd.PersistentFlags().BoolVar(&explain, "explain", false, "Log a diff for every config artifact that is rewritten")
}

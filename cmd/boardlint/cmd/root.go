package cmd

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/boardlint/boardlint/internal/logging"
	"github.com/boardlint/boardlint/internal/schema"
	"github.com/boardlint/boardlint/schemas"
)

// Version information - set at build time via ldflags.
var version = "dev"

var (
	// Global flags
	schemaDir string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "boardlint",
	Short: "Validate embedded board peripheral configurations",
	Long: `boardlint checks a declarative board configuration (GPIO, UART, I2C,
SPI, timers) against MCU package constraints and reports pin allocation
conflicts, schema violations and I2C address clashes.

Examples:
  boardlint validate board.yaml                # validate a configuration
  boardlint validate board.yaml --json         # machine-readable report
  boardlint pins board.yaml                    # show collected pin claims
  boardlint history --db runs.db               # list recorded runs`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Exit code is nonzero when a subcommand
// fails — including a validation run that produced error findings.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemaDir, "schemas", "", "directory with mcu/ and peripherals/ schema documents (default: embedded set)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
}

// newLogger builds the CLI logger from the global flags. Logs go to
// stderr so reports on stdout stay clean.
func newLogger() *logging.Logger {
	return logging.New(logging.Config{
		Level:  logLevel,
		Format: logFormat,
		Output: "stderr",
	}, version)
}

// loadRegistry loads the schema registry from --schemas, or the embedded
// default set when the flag is unset.
func loadRegistry() (*schema.Registry, error) {
	var fsys fs.FS = schemas.FS
	if schemaDir != "" {
		fsys = os.DirFS(schemaDir)
	}
	return schema.LoadRegistry(fsys)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boardlint/boardlint/internal/board"
	"github.com/boardlint/boardlint/internal/history"
	"github.com/boardlint/boardlint/internal/logging"
	"github.com/boardlint/boardlint/internal/validate"
)

var (
	jsonOutput       bool
	historyDB        string
	advisoriesAsErrs bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <config.yaml>",
	Short: "Validate a board configuration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the report as JSON")
	validateCmd.Flags().StringVar(&historyDB, "history", "", "record the run in this SQLite database")
	validateCmd.Flags().BoolVar(&advisoriesAsErrs, "strict-pins", false, "treat missing-pin advisories as errors")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := newLogger()

	registry, err := loadRegistry()
	if err != nil {
		return err
	}
	log.Debug("schema registry loaded", "descriptors", len(registry.Descriptors()))

	cfg, err := board.Load(args[0])
	if err != nil {
		return err
	}
	log.Debug("configuration loaded", "board", cfg.Board.Name, "mcu", cfg.Board.MCU)

	opts := validate.Options{}
	if advisoriesAsErrs {
		opts.AdvisorySeverity = validate.SeverityError
	}

	report, err := validate.New(registry, opts).Validate(cfg)
	if err != nil {
		return err
	}

	if historyDB != "" {
		if err := recordRun(cmd, cfg.Board, report, log); err != nil {
			return err
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if report.HasErrors() {
		return fmt.Errorf("%s: %d error(s), %d warning(s)",
			args[0], len(report.Errors()), len(report.Warnings()))
	}
	return nil
}

func recordRun(cmd *cobra.Command, meta board.Meta, report *validate.Report, log *logging.Logger) error {
	store, err := history.Open(historyDB)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.RecordRun(cmd.Context(), meta, report)
	if err != nil {
		return err
	}
	log.Info("run recorded", "id", id, "db", historyDB)
	return nil
}

func printReport(report *validate.Report) {
	for _, f := range report.Findings {
		if f.Location != "" {
			fmt.Printf("%s: %s: %s\n", f.Severity, f.Location, f.Message)
		} else {
			fmt.Printf("%s: %s\n", f.Severity, f.Message)
		}
	}
	fmt.Printf("%d error(s), %d warning(s), %d info\n",
		len(report.Errors()), len(report.Warnings()), len(report.Infos()))
}

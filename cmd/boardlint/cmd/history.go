package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boardlint/boardlint/internal/history"
)

var (
	historyPath  string
	historyLimit int
	historyShow  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded validation runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyPath, "db", "boardlint.db", "history database path")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to list")
	historyCmd.Flags().StringVar(&historyShow, "show", "", "print the findings of one run by ID")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if historyShow != "" {
		findings, err := store.RunFindings(cmd.Context(), historyShow)
		if err != nil {
			return err
		}
		for _, f := range findings {
			fmt.Printf("%s: %s\n", f.Severity, f.Message)
		}
		return nil
	}

	runs, err := store.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %-20s %-16s %d error(s), %d warning(s)  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Board, r.MCU, r.Errors, r.Warnings, r.ID)
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boardlint/boardlint/internal/board"
	"github.com/boardlint/boardlint/internal/validate"
)

var pinsCmd = &cobra.Command{
	Use:   "pins <config.yaml>",
	Short: "Show the pin claims a configuration makes",
	Long: `pins prints every physical pin the configuration claims and which
peripheral function claims it, in collector traversal order per pin.
Pins with more than one claim are marked as conflicts.`,
	Args: cobra.ExactArgs(1),
	RunE: runPins,
}

func init() {
	rootCmd.AddCommand(pinsCmd)
}

func runPins(cmd *cobra.Command, args []string) error {
	registry, err := loadRegistry()
	if err != nil {
		return err
	}
	cfg, err := board.Load(args[0])
	if err != nil {
		return err
	}

	pinMap, err := validate.New(registry, validate.Options{}).Pins(cfg)
	if err != nil {
		return err
	}

	for _, pin := range pinMap.Pins() {
		claims := pinMap.Claims(pin)
		marker := ""
		if len(claims) > 1 {
			marker = "  [CONFLICT]"
		}
		for i, c := range claims {
			if i == 0 {
				fmt.Printf("%-6s %s%s\n", pin, c.Claimant(), marker)
			} else {
				fmt.Printf("%-6s %s\n", "", c.Claimant())
			}
		}
	}
	return nil
}

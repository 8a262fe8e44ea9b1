package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the review or flagged collections",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().Bool("review", false, "Clear the review queue")
	resetCmd.Flags().Bool("flagged", false, "Clear the flagged words")
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	review, _ := cmd.Flags().GetBool("review")
	flagged, _ := cmd.Flags().GetBool("flagged")
	yes, _ := cmd.Flags().GetBool("yes")

	if !review && !flagged {
		return fmt.Errorf("nothing selected: pass --review, --flagged or both")
	}

	var targets []string
	if review {
		targets = append(targets, "review queue")
	}
	if flagged {
		targets = append(targets, "flagged words")
	}

	if !yes {
		fmt.Printf("Clear the %s? [y/N] ", strings.Join(targets, " and "))
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	records, cleanup, warning := openRecords(cmd)
	defer cleanup()
	if warning != "" {
		return fmt.Errorf("record store unavailable, nothing to reset")
	}

	ctx := cmd.Context()
	if review {
		if err := records.ClearReview(ctx); err != nil {
			return fmt.Errorf("clear review queue: %w", err)
		}
		fmt.Println("Review queue cleared.")
	}
	if flagged {
		if err := records.ClearFlag(ctx); err != nil {
			return fmt.Errorf("clear flagged words: %w", err)
		}
		fmt.Println("Flagged words cleared.")
	}
	return nil
}

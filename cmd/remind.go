package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nosakar/vocab-app/internal/reminder"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Show or deliver upcoming review reminders",
	Long: "Computes the spaced-repetition reminder schedule from the review queue. " +
		"With --list the upcoming reminders are printed; with --watch the process " +
		"stays running and delivers desktop notifications as they come due.",
	RunE: runRemind,
}

func init() {
	remindCmd.Flags().Bool("list", false, "Print upcoming reminders and exit")
	remindCmd.Flags().Bool("watch", false, "Stay running and deliver desktop notifications")
}

func runRemind(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")
	watch, _ := cmd.Flags().GetBool("watch")
	if !list && !watch {
		list = true
	}

	records, cleanup, warning := openRecords(cmd)
	defer cleanup()
	if warning != "" {
		return fmt.Errorf("record store unavailable, nothing to remind")
	}

	ctx := cmd.Context()
	entries, err := records.ListReviewEntries(ctx)
	if err != nil {
		return fmt.Errorf("list review entries: %w", err)
	}

	armed := reminder.Schedule(entries, time.Now())

	if list {
		if len(armed) == 0 {
			fmt.Println("No upcoming reminders.")
		}
		for _, r := range armed {
			fmt.Printf("%s  %s — %s\n", r.FireAt.Format("2006-01-02 15:04"), r.Word.Front, r.Word.Back)
		}
	}

	if !watch {
		return nil
	}

	if len(armed) == 0 {
		fmt.Println("Review queue is empty, nothing to watch.")
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("watching reminders", "count", len(armed))
	armer := reminder.NewArmer(records, reminder.Desktop{})
	armer.Arm(ctx, armed)
	armer.Wait()
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nosakar/vocab-app/internal/vocab"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Load and validate the word list",
	Long: "Loads the configured word list, reports how many usable words it " +
		"contains, and logs every row that was filtered out.",
	RunE: runWords,
}

func runWords(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	source := resolveWordSource(cmd, cfg)
	words, err := vocab.Load(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("load word list: %w", err)
	}

	fmt.Printf("%s: %d words\n", source, len(words))
	for _, w := range words {
		fmt.Printf("  %s — %s\n", w.Front, w.Back)
	}
	return nil
}

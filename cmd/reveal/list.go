package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-reveal/internal/config"
	"github.com/vovakirdan/block-reveal/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all registered games.`,
	Run:   runList,
}

var configCmd = &cobra.Command{
	Use:   "config [game]",
	Short: "Print the default configuration",
	Long: `Print the embedded default YAML configuration. Save it to
~/.reveal/configs/<game>.yaml or pass it with --config to customize a game.

Examples:
  reveal config > ~/.reveal/configs/reveal.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'reveal play <id>' to play a game.")
}

func runConfig(_ *cobra.Command, args []string) error {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}

	data := config.GetDefaultYAML(gameID)
	if data == nil {
		return fmt.Errorf("no default configuration for %q", gameID)
	}
	fmt.Print(string(data))
	return nil
}

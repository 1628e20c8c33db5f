package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/block-reveal/internal/core"
	"github.com/vovakirdan/block-reveal/internal/games/reveal"
	"github.com/vovakirdan/block-reveal/internal/platform/spectate"
	"github.com/vovakirdan/block-reveal/internal/platform/tui"
	"github.com/vovakirdan/block-reveal/internal/registry"
	"github.com/vovakirdan/block-reveal/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLetters    string
	flagLogFile    string
	flagSpectate   string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing in this terminal.

Controls:
  Space/Enter   - Start
  Left/A        - Move paddle left
  Right/D       - Move paddle right
  R             - Restart (after game over)
  Ctrl+S        - Save a screenshot
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Wider paddle, gentle speed-up
  normal - Slightly faster serve
  hard   - Narrow paddle, fast serve, steep speed-up
  fixed  - Exactly as configured

Examples:
  reveal play
  reveal play --difficulty easy
  reveal play --letters "HELLO WORLD, THIS IS A HIDDEN PHRASE!"
  reveal play --config ./my-reveal.yaml
  reveal play --spectate :8080 --log-file reveal.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLetters, "letters", "", "Hidden phrase, one character per block")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'reveal list' to see available games", gameID)
	}

	// The alternate screen owns stdout, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "reveal")
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	reveal.SetConfigPath(flagConfig)
	reveal.SetDifficultyPreset(flagDifficulty)
	reveal.SetLetters(flagLetters)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{Logger: logger}

	if flagSpectate != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		hub := spectate.NewHub(logger)
		go func() {
			if err := hub.ListenAndServe(ctx, flagSpectate); err != nil {
				logger.Error("spectator feed stopped", "error", err)
			}
		}()
		opts.Publisher = hub
	}

	if err := tui.Run(game, store, cfg, opts); err != nil {
		return fmt.Errorf("cannot run game: %w", err)
	}
	return nil
}

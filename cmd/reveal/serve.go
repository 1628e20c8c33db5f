package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-reveal/internal/games/reveal"
	"github.com/vovakirdan/block-reveal/internal/platform/spectate"
	"github.com/vovakirdan/block-reveal/internal/platform/tui"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeSpectate string
	flagServeConfig   string
	flagServeLevel    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays its own game. Scores are stored per-server and
recorded under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.reveal/host_key

Examples:
  reveal serve                           # Listen on :23234 with auto-generated key
  reveal serve --ssh :2222               # Listen on port 2222
  reveal serve --spectate :8080          # Also stream games to websocket spectators
  reveal serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeSpectate, "spectate", "", "Serve a websocket spectator feed on this address")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagServeLevel, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "reveal-ssh")
	if err != nil {
		return err
	}

	reveal.SetConfigPath(flagServeConfig)
	reveal.SetDifficultyPreset(flagServeLevel)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.GameID = defaultGame
	cfg.TickRate = flagFPS
	cfg.Logger = logger

	ctx := cmd.Context()

	if flagServeSpectate != "" {
		hub := spectate.NewHub(logger.WithPrefix("reveal-spectate"))
		go func() {
			if err := hub.ListenAndServe(ctx, flagServeSpectate); err != nil {
				logger.Error("spectator feed stopped", "error", err)
			}
		}()
		cfg.Publisher = hub
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Printf("Starting Block Reveal SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}

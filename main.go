package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/cobra"

	"github.com/dimaq12/termsweeper/config"
	"github.com/dimaq12/termsweeper/game"
	"github.com/dimaq12/termsweeper/models"
)

var (
	log = logrus.New()

	configPath string
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "minesweaper",
	Short: "Play Minesweeper in the terminal",
	Long: `Minesweeper on a grid of tiles, each of which hides a mine with the
given density (in percent). Moves are typed as [C|F][row][col]:
'C' clears a tile, 'F' toggles a flag, e.g. C5b.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PreRunE:      loadConfig,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file path")
	flags.IntVarP(&cfg.Rows, "rows", "r", cfg.Rows, "number of rows (at most 99)")
	flags.IntVarP(&cfg.Cols, "cols", "w", cfg.Cols, "number of columns (at most 26)")
	flags.Float64VarP(&cfg.Density, "density", "d", cfg.Density, "chance in percent that a tile holds a mine")
	flags.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for mine placement (0 picks one)")
	flags.BoolVar(&cfg.Plain, "plain", cfg.Plain, "line mode instead of the full-screen UI")
	flags.StringVar(&cfg.Log.File, "log-file", cfg.Log.File, "write logs to this file")
	flags.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
}

// loadConfig applies the config file, then re-applies any flags given on the
// command line so they win over the file.
func loadConfig(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		fromFlags := cfg
		if err := config.Load(configPath, &cfg); err != nil {
			return fmt.Errorf("unable to read config %s: %w", configPath, err)
		}
		flags := cmd.Flags()
		if flags.Changed("rows") {
			cfg.Rows = fromFlags.Rows
		}
		if flags.Changed("cols") {
			cfg.Cols = fromFlags.Cols
		}
		if flags.Changed("density") {
			cfg.Density = fromFlags.Density
		}
		if flags.Changed("seed") {
			cfg.Seed = fromFlags.Seed
		}
		if flags.Changed("plain") {
			cfg.Plain = fromFlags.Plain
		}
		if flags.Changed("log-file") {
			cfg.Log.File = fromFlags.Log.File
		}
		if flags.Changed("log-level") {
			cfg.Log.Level = fromFlags.Log.Level
		}
	}
	return cfg.Validate()
}

// setupLogging keeps the terminal for the game: without a log file all
// output is dropped.
func setupLogging() error {
	log.SetLevel(cfg.LogLevel())
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	log.SetOutput(io.Discard)

	if cfg.Log.File == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Level:      cfg.LogLevel(),
		Formatter:  &logrus.TextFormatter{DisableColors: true, FullTimestamp: true},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file %s: %w", cfg.Log.File, err)
	}
	log.AddHook(hook)
	return nil
}

func newBoard() (*models.Board, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.WithField("seed", seed).Debug("placing mines")
	return models.NewBoard(cfg.Rows, cfg.Cols, cfg.Density, rand.New(rand.NewPCG(seed, seed)))
}

func run(cmd *cobra.Command, args []string) error {
	if err := setupLogging(); err != nil {
		return err
	}
	log.WithFields(cfg.Fields()).Debug("config")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	board, err := newBoard()
	if err != nil {
		return err
	}

	if cfg.Plain {
		return playPlain(ctx, board, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	renderer := game.NewRenderer()
	session := game.NewSession(board, renderer, log)
	return game.NewGameController(session, renderer, log).StartGame(ctx)
}

func playPlain(ctx context.Context, board *models.Board, in io.Reader, out io.Writer) error {
	console := game.NewConsole(in, out, true)
	defer console.Close()

	session := game.NewSession(board, console, log)
	_, err := session.Run(ctx, console)
	if errors.Is(err, game.ErrInputClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

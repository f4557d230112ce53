package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimaq12/termsweeper/config"
	"github.com/dimaq12/termsweeper/game"
	"github.com/dimaq12/termsweeper/models"
)

func resetGlobals(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		cfg = config.Default()
		configPath = ""
		rootCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	})
}

func TestLoadConfigFlagsWinOverFile(t *testing.T) {
	resetGlobals(t)
	path := filepath.Join(t.TempDir(), "minesweaper.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rows: 12\ncols: 20\ndensity: 30\n"), 0o600))

	require.NoError(t, rootCmd.ParseFlags([]string{"--config", path, "--rows", "5"}))
	require.NoError(t, loadConfig(rootCmd, nil))

	assert.Equal(t, 5, cfg.Rows)
	assert.Equal(t, 20, cfg.Cols)
	assert.Equal(t, 30.0, cfg.Density)
}

func TestLoadConfigRejectsWideBoards(t *testing.T) {
	resetGlobals(t)
	require.NoError(t, rootCmd.ParseFlags([]string{"--cols", "30"}))
	assert.ErrorIs(t, loadConfig(rootCmd, nil), config.ErrInvalidConfig)
}

func TestNewBoardIsReproducible(t *testing.T) {
	resetGlobals(t)
	cfg.Seed = 1234
	cfg.Density = 40

	a, err := newBoard()
	require.NoError(t, err)
	b, err := newBoard()
	require.NoError(t, err)

	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			ta, _ := a.Tile(row, col)
			tb, _ := b.Tile(row, col)
			assert.Equal(t, ta.HasMine(), tb.HasMine())
		}
	}
}

func TestSetupLoggingWritesFile(t *testing.T) {
	resetGlobals(t)
	cfg.Log.File = filepath.Join(t.TempDir(), "minesweaper.log")
	require.NoError(t, setupLogging())

	log.Info("hello from the test")
	content, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from the test")
}

func TestPlayPlain(t *testing.T) {
	board, err := models.FromLayout([]string{
		"*..",
		"...",
		"...",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	err = playPlain(context.Background(), board, strings.NewReader("nope\nc3c\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), game.WinMessage)
	assert.Contains(t, out.String(), game.ErrInvalidMove.Error())
}

func TestPlayPlainInputEnds(t *testing.T) {
	board, err := models.FromLayout([]string{"*.."})
	require.NoError(t, err)

	var out bytes.Buffer
	assert.NoError(t, playPlain(context.Background(), board, strings.NewReader("f1a\n"), &out))
	assert.NotContains(t, out.String(), game.WinMessage)
}

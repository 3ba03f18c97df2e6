package main

import (
	"flag"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func loggerContext(level string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", level, "")
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
			assert.NoError(t, setupLogger(loggerContext(level)), level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(loggerContext("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "verbose")
	})
}

func TestSeedCommand_MissingInputFile(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Action: seedCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{Name: "db", Required: true},
					&cli.StringFlag{Name: "input", Required: true},
				),
			},
		},
	}

	err := app.Run([]string{"grocerypick", "seed",
		"--db", t.TempDir(),
		"--input", "/nonexistent/products.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input file")
}

func TestSeedCommand_EmptyInput(t *testing.T) {
	input := t.TempDir() + "/products.json"
	require.NoError(t, os.WriteFile(input, []byte("[]"), 0o644))

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Action: seedCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{Name: "db", Required: true},
					&cli.StringFlag{Name: "input", Required: true},
				),
			},
		},
	}

	err := app.Run([]string{"grocerypick", "seed",
		"--db", t.TempDir(),
		"--input", input})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no products")
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/curricle/contentkit/pkg/pipeline"
	"github.com/curricle/contentkit/pkg/schema"
	"github.com/curricle/contentkit/pkg/sheets"
	"github.com/curricle/contentkit/pkg/table"
)

// Config carries process-level settings from the environment. Per-invocation
// settings come from CLI flags instead.
type Config struct {
	FetchTimeout time.Duration `env:"SHEET_FETCH_TIMEOUT" envDefault:"30s"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
}

// CLI defines the command-line surface.
type CLI struct {
	Source  string `arg:"" help:"Google Sheets URL, or path to a local CSV file."`
	Tab     string `help:"Sheet tab name to validate (defaults to the first tab)." short:"t"`
	GID     string `help:"Sheet tab gid, as an alternative to --tab." name:"gid"`
	Mapping string `help:"YAML file remapping sheet headers to schema columns." short:"m" type:"existingfile"`
	JSON    string `help:"Write the machine-readable result to this file." name:"json" short:"j"`
	Quiet   bool   `help:"Suppress the human-readable summary." short:"q"`
}

func main() {
	cli := new(CLI)
	kctx := kong.Parse(
		cli,
		kong.Name("validate-sheet"),
		kong.Description("Validate a tabular content sheet and build its content document."),
	)
	kctx.FatalIfErrorf(run(cli))
}

func run(cli *CLI) error {
	// The .env file might not exist and that's ok
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("failed to parse environment config: %w", err)
	}

	logger := newLogger(cfg.LogLevel).With(slog.String("run_id", uuid.NewString()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()

	t, err := loadTable(ctx, cli, logger)
	if err != nil {
		return err
	}
	logger.Info("loaded source table",
		slog.Int("rows", t.Len()),
		slog.Int("columns", len(t.Headers())))

	sch := schema.Default()
	if cli.Mapping != "" {
		mapping, err := loadMapping(cli.Mapping, sch)
		if err != nil {
			return err
		}
		t = t.Renamed(mapping)
		logger.Info("applied header mapping", slog.Int("renames", len(mapping)))
	}

	result := pipeline.Run(t, sch)
	logger.Info("pipeline finished",
		slog.Bool("ok", result.OK),
		slog.Int("errors", result.ErrorCount),
		slog.Int("warnings", result.WarningCount))

	if !cli.Quiet {
		fmt.Print(result.Summary())
	}

	if cli.JSON != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		if err := os.WriteFile(cli.JSON, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write result file: %w", err)
		}
		logger.Info("wrote machine-readable result", slog.String("path", cli.JSON))
	}

	if !result.OK {
		return errors.New("validation failed")
	}
	return nil
}

// loadTable fetches the source, from a public sheet URL or a local CSV file.
func loadTable(ctx context.Context, cli *CLI, logger *slog.Logger) (*table.Table, error) {
	if key, err := sheets.ExtractKey(cli.Source); err == nil {
		client := sheets.NewClient()
		logger.Info("fetching public sheet", slog.String("key", key))
		if cli.Tab != "" {
			return client.FetchTabByName(ctx, key, cli.Tab)
		}
		return client.FetchTab(ctx, key, cli.GID)
	}

	f, err := os.Open(cli.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()
	return table.ReadCSV(f)
}

func loadMapping(path string, sch schema.Schema) (schema.Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping file: %w", err)
	}
	defer f.Close()
	return schema.LoadMapping(f, sch)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tablecast/internal/config"
	"tablecast/internal/logging"
	"tablecast/internal/web"

	"github.com/joho/godotenv"
	"github.com/kardianos/task"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	fInput := &task.Flag{Name: "input", Type: task.FlagString, Default: "", Usage: "Input file path."}
	fOutput := &task.Flag{Name: "output", Type: task.FlagString, Default: "", Usage: "Output file path."}
	fDelimiter := &task.Flag{Name: "delimiter", Type: task.FlagString, Default: cfg.Convert.Delimiter, Usage: "Field delimiter, a single character."}

	cmd := &task.Command{
		Usage: `tablecast converts tabular data between delimited text and JSON.

CSV rows map to JSON row-objects (or row-arrays with -array-format);
JSON arrays of objects or arrays map back to delimited text.`,
		Commands: []*task.Command{
			{
				Name:  "csv-to-json",
				Usage: "Convert a CSV file to a JSON document.",
				Flags: []*task.Flag{
					fInput, fOutput, fDelimiter,
					{Name: "array-format", Type: task.FlagBool, Default: false, Usage: "Emit an array of row-arrays instead of row-objects."},
					{Name: "has-headers", Type: task.FlagBool, Default: true, Usage: "Treat the first row as the header row."},
					{Name: "trim", Type: task.FlagBool, Default: false, Usage: "Trim whitespace from every field."},
				},
				Action: task.ActionFunc(func(ctx context.Context, st *task.State, sc task.Script) error {
					return runCSVToJSON(st)
				}),
			},
			{
				Name:  "json-to-csv",
				Usage: "Convert a JSON document to a CSV file.",
				Flags: []*task.Flag{
					fInput, fOutput, fDelimiter,
					{Name: "quote-all", Type: task.FlagBool, Default: false, Usage: "Quote every field regardless of content."},
				},
				Action: task.ActionFunc(func(ctx context.Context, st *task.State, sc task.Script) error {
					return runJSONToCSV(st)
				}),
			},
			{
				Name:  "xlsx-to-json",
				Usage: "Convert an Excel worksheet to a JSON document.",
				Flags: []*task.Flag{
					fInput, fOutput,
					{Name: "sheet", Type: task.FlagString, Default: "", Usage: "Worksheet name, defaults to the first sheet."},
					{Name: "array-format", Type: task.FlagBool, Default: false, Usage: "Emit an array of row-arrays instead of row-objects."},
					{Name: "has-headers", Type: task.FlagBool, Default: true, Usage: "Treat the first row as the header row."},
				},
				Action: task.ActionFunc(func(ctx context.Context, st *task.State, sc task.Script) error {
					return runXLSXToJSON(st)
				}),
			},
			{
				Name:  "serve",
				Usage: "Start the HTTP conversion API.",
				Action: task.ActionFunc(func(ctx context.Context, st *task.State, sc task.Script) error {
					return runServe(ctx, cfg)
				}),
			},
		},
	}

	st := task.DefaultState()
	return cmd.Exec(os.Args[1:]).Run(context.Background(), st, nil)
}

// runServe starts the HTTP API and blocks until shutdown.
func runServe(ctx context.Context, cfg *config.Config) error {
	server := web.NewServer(cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

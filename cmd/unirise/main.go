package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"unirise-backend/internal/bootstrap"
	"unirise-backend/internal/catalog"
	"unirise-backend/internal/cli"
	"unirise-backend/internal/export"
	"unirise-backend/internal/shared/config"
	"unirise-backend/internal/shared/telemetry"
)

func main() {
	// Keep stdout for command output.
	restore := telemetry.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	telemetry.Sync()
	restore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	config.LoadEnvFiles()

	app := &cli.App{
		Catalog:  catalog.Default(),
		Renderer: export.NewRenderer(os.Getenv("PDF_FONT_PATH")),
		Connect:  connect,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func connect(ctx context.Context) (cli.Predictor, func(context.Context) error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	built, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return built.Majors, built.Close, nil
}

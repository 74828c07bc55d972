package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/KRTNP/User-Management-System-For-Train/internal/app"
)

func main() {
	command := flag.String("command", "up", "migrate command (up|status|down)")
	timeout := flag.Duration("timeout", time.Minute, "command timeout")
	flag.Parse()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg, *command); err != nil {
		logger.Error("migration failed", slog.String("command", *command), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("migration command completed", slog.String("command", *command))
}

func run(ctx context.Context, cfg *app.Config, command string) error {
	db, err := sql.Open("pgx", cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("open sql connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, db, cfg.MigrationsDir)
	case "status":
		return goose.StatusContext(ctx, db, cfg.MigrationsDir)
	case "down":
		return goose.DownContext(ctx, db, cfg.MigrationsDir)
	default:
		return fmt.Errorf("unsupported command %q", command)
	}
}

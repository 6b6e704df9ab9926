package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erazemk/algorithmia/internal/api"
	"github.com/erazemk/algorithmia/internal/auth"
	"github.com/erazemk/algorithmia/internal/catalog"
	"github.com/erazemk/algorithmia/internal/config"
	"github.com/erazemk/algorithmia/internal/db"
	"github.com/erazemk/algorithmia/internal/logger"
	"github.com/erazemk/algorithmia/internal/progression"
	"github.com/erazemk/algorithmia/internal/store"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("algorithmia", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "")

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")

	fs.StringVar(&cfg.AdminEmail, "admin", cfg.AdminEmail, "")
	fs.StringVar(&cfg.AdminEmail, "u", cfg.AdminEmail, "")

	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "")
	fs.StringVar(&cfg.LogPath, "l", cfg.LogPath, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: algorithmia [flags]

Flags:
  -d, -db <path>          SQLite database path (env DB_PATH, default: algorithmia.sqlite3)
  -a, -addr <host:port>   listen address (env ADDR, default: :8080)
  -u, -admin <email>      admin email on first run (env ADMIN_EMAIL)
  -l, -log <path>         log file path (env LOG_PATH, default: stdout/stderr only)
  -h, -help               show this help and exit

Other settings are read from the environment or a .env file.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	closeLog, err := logger.Setup(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Path:        cfg.LogPath,
		ServiceName: "algorithmia",
		Version:     version,
		Environment: cfg.AppEnv,
		AddSource:   cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	if err := run(cfg); err != nil {
		slog.Error("fatal", "error", err)
		if closeLog != nil {
			closeLog()
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	if cfg.SeedCatalog {
		if _, err := catalog.Seed(ctx, database); err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
	}

	password, err := bootstrapAdmin(ctx, database, cfg.AdminEmail)
	if err != nil {
		return err
	}
	if password != "" {
		printAdminCredentials(cfg.AdminEmail, password)
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		if jwtSecret, err = store.GetJWTSecret(ctx, database); err != nil {
			return fmt.Errorf("loading JWT secret: %w", err)
		}
	}

	if n, err := store.PurgeRevokedTokens(ctx, database, time.Now()); err != nil {
		slog.Warn("failed to purge revoked tokens", "error", err)
	} else if n > 0 {
		slog.Info("purged expired revoked tokens", "count", n)
	}

	repo := store.NewRepository(database)
	cat := catalog.New(database, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	engine := progression.NewEngine(repo, cat, progression.WithRequiredItems(cfg.EnforceRequiredItems))

	handler := api.NewRouter(api.Deps{
		DB:        database,
		Engine:    engine,
		Catalog:   cat,
		Gate:      &auth.Gate{Secret: jwtSecret, Players: repo, Revoked: repo},
		JWTSecret: jwtSecret,
		TokenTTL:  cfg.TokenTTL,
		Dev:       cfg.IsDevelopment(),
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr, "env", cfg.AppEnv, "enforce_required_items", cfg.EnforceRequiredItems)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped, closing database")
	return nil
}

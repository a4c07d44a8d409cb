package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/nhcx-viewer/internal/config"
	"github.com/ehr/nhcx-viewer/internal/domain/bundles"
	"github.com/ehr/nhcx-viewer/internal/platform/db"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nhcx-viewer",
		Short:         "Interpret and classify NHCX FHIR bundles",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())
	return rootCmd
}

func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	if cfg != nil && cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return db.NewPool(ctx, db.PoolConfig{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
}

// source is the configured bundle repository. pool is set only for the
// postgres source and must be closed by the caller.
type source struct {
	repo bundles.Repository
	ids  []string
	pool *pgxpool.Pool
}

func (s *source) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func openSource(ctx context.Context, cfg *config.Config) (*source, error) {
	src := &source{ids: cfg.BundleIDs}
	switch cfg.DataSource {
	case config.SourceLocal:
		src.repo = bundles.NewFileRepository(cfg.DataDir)
	case config.SourceAPI:
		src.repo = bundles.NewHTTPRepository(cfg.APIBaseURL, cfg.APITimeout, cfg.APIToken)
	case config.SourcePostgres:
		pool, err := openPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store := bundles.NewPGRepository(pool)
		src.repo, src.pool = store, pool
		if len(src.ids) == 0 {
			ids, err := store.IDs(ctx)
			if err != nil {
				pool.Close()
				return nil, fmt.Errorf("list stored bundles: %w", err)
			}
			src.ids = ids
		}
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
	return src, nil
}

func newService(src *source, logger zerolog.Logger) *bundles.Service {
	return bundles.NewService(src.repo, src.ids, logger)
}

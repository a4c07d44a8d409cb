package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/ehr/nhcx-viewer/internal/config"
	"github.com/ehr/nhcx-viewer/internal/domain/bundles"
	"github.com/ehr/nhcx-viewer/internal/platform/auth"
	"github.com/ehr/nhcx-viewer/internal/platform/db"
	"github.com/ehr/nhcx-viewer/internal/platform/export"
	"github.com/ehr/nhcx-viewer/internal/platform/fhir"
	"github.com/ehr/nhcx-viewer/migrations"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// withService runs fn against the configured bundle source.
func withService(cmd *cobra.Command, fn func(ctx context.Context, svc *bundles.Service) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	src, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer src.Close()
	return fn(ctx, newService(src, newLogger(cfg, cmd.ErrOrStderr())))
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List and classify the available bundles",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return withService(cmd, func(ctx context.Context, svc *bundles.Service) error {
				items, err := svc.ListBundles(ctx)
				if err != nil {
					return fmt.Errorf("list bundles: %w", err)
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), items)
				}
				return writeList(cmd.OutOrStdout(), items)
			})
		},
	}
	cmd.Flags().Bool("json", false, "Print the listing as JSON")
	return cmd
}

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <bundle-id>",
		Short: "Interpret a single bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != "json" && format != "text" && format != "raw" {
				return fmt.Errorf("--format must be json, text, or raw, got %q", format)
			}
			return withService(cmd, func(ctx context.Context, svc *bundles.Service) error {
				if format == "raw" {
					data, err := svc.Raw(ctx, args[0])
					if err != nil {
						return err
					}
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				v, err := svc.GetBundle(ctx, args[0])
				if err != nil {
					return err
				}
				if format == "json" {
					return writeJSON(cmd.OutOrStdout(), v)
				}
				return writeView(cmd.OutOrStdout(), v)
			})
		},
	}
	cmd.Flags().String("format", "text", "Output format: text, json, or raw")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the bundle classifications to a parquet file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			return withService(cmd, func(ctx context.Context, svc *bundles.Service) error {
				items, err := svc.ListBundles(ctx)
				if err != nil {
					return fmt.Errorf("list bundles: %w", err)
				}

				w, err := export.Create(out)
				if err != nil {
					return err
				}
				now := time.Now().UTC()
				rows := make([]export.Row, 0, len(items))
				for _, it := range items {
					rows = append(rows, export.NewRow(it.ID, it.Name, it.Classification, now))
				}
				if err := w.Write(rows...); err != nil {
					w.Close()
					return err
				}
				if err := w.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bundle(s) to %s\n", w.Count(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringP("out", "o", "bundles.parquet", "Output parquet file")
	return cmd
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a directory of bundle files into the postgres store",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.DataDir
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())

			ctx := commandContext(cmd)
			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			records, err := loadRecords(ctx, bundles.NewFileRepository(dir), func(id string, err error) {
				logger.Warn().Err(err).Str("bundle_id", id).Msg("skipping unreadable bundle")
			})
			if err != nil {
				return err
			}

			store := bundles.NewPGRepository(pool)
			err = db.WithTx(ctx, pool, func(ctx context.Context) error {
				for _, rec := range records {
					if err := store.Put(ctx, rec); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bundle(s) from %s\n", len(records), dir)
			return nil
		},
	}
	cmd.Flags().String("dir", "", "Directory of <id>.json bundles (defaults to DATA_DIR)")
	return cmd
}

// loadRecords reads every bundle in repo. Files that are not JSON objects
// are reported to skip and left out. Known identifiers keep their default
// listing position; others follow in name order.
func loadRecords(ctx context.Context, repo *bundles.FileRepository, skip func(id string, err error)) ([]bundles.Record, error) {
	ids, err := repo.IDs(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]bundles.Record, 0, len(ids))
	for i, id := range ids {
		data, err := repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if _, err := fhir.ParseBundle(data); err != nil {
			skip(id, err)
			continue
		}
		order := slices.Index(bundles.DefaultBundleIDs, id)
		if order < 0 {
			order = len(bundles.DefaultBundleIDs) + i
		}
		records = append(records, bundles.Record{
			ID:    id,
			Name:  bundles.DisplayName(id),
			Order: order,
			Body:  data,
		})
	}
	return records, nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run bundle store migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *db.Migrator) error {
				count, err := m.Up(ctx)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) successfully.\n", count)
				return nil
			})
		},
	}
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd, func(ctx context.Context, m *db.Migrator) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}
				return writeMigrationStatus(cmd.OutOrStdout(), statuses)
			})
		},
	}
	cmd.AddCommand(statusCmd)

	return cmd
}

func withMigrator(cmd *cobra.Command, fn func(ctx context.Context, m *db.Migrator) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, db.NewMigrator(pool, migrations.FS))
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token for the bundle API",
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, _ := cmd.Flags().GetString("subject")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.AuthEnabled() {
				return errors.New("AUTH_SIGNING_KEY is not set")
			}
			tok, err := auth.IssueToken([]byte(cfg.AuthSigningKey), subject, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().String("subject", "nhcx-viewer-cli", "Token subject")
	cmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

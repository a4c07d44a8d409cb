package bundles

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/nhcx-viewer/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// PGRepository keeps bundles in the fhir_bundle table.
type PGRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *PGRepository) Get(ctx context.Context, id string) ([]byte, error) {
	var body []byte
	err := r.conn(ctx).QueryRow(ctx, `SELECT body FROM fhir_bundle WHERE id = $1`, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, classifyPGError(id, err)
	}
	return body, nil
}

func (r *PGRepository) Put(ctx context.Context, b Record) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO fhir_bundle (id, name, body, sort_order)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, body = EXCLUDED.body,
			sort_order = EXCLUDED.sort_order, updated_at = NOW()`,
		b.ID, b.Name, b.Body, b.Order)
	if err != nil {
		return classifyPGError(b.ID, err)
	}
	return nil
}

func (r *PGRepository) IDs(ctx context.Context) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id FROM fhir_bundle ORDER BY sort_order, id`)
	if err != nil {
		return nil, classifyPGError("", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan bundle ids: %w", err)
	}
	return ids, nil
}

func classifyPGError(id string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, id, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("bundle store %s: %w", id, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrNetwork, id, err)
}

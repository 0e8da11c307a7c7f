package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ads-dashboard/internal/core/port"
)

// foreignKeyViolation is the SQLSTATE raised when a referenced row is
// missing or a referencing row blocks a delete.
const foreignKeyViolation = "23503"

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx so the same queries run
// inside and outside a transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// HierarchyRepository implements port.HierarchyRepository using pgxpool for
// PostgreSQL.
type HierarchyRepository struct {
	pool *pgxpool.Pool
	db   dbtx
	inTx bool
}

// NewHierarchyRepository returns a new repository instance.
func NewHierarchyRepository(pool *pgxpool.Pool) *HierarchyRepository {
	return &HierarchyRepository{pool: pool, db: pool}
}

var _ port.HierarchyRepository = (*HierarchyRepository)(nil)

// WithinTx runs fn inside a read committed transaction. Nested calls share
// the outer transaction.
func (r *HierarchyRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, repo port.HierarchyRepository) error) (err error) {
	if r.inTx {
		return fn(ctx, r)
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if err = tx.Commit(ctx); err != nil {
			err = fmt.Errorf("commit tx: %w", err)
		}
	}()
	return fn(ctx, &HierarchyRepository{pool: r.pool, db: tx, inTx: true})
}

// isForeignKeyViolation reports whether err carries SQLSTATE 23503.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

// touchExpr keeps updated_at strictly increasing when the clock lags the
// stored value.
func touchExpr(placeholder int) string {
	return fmt.Sprintf("updated_at = GREATEST($%d, updated_at + interval '1 microsecond')", placeholder)
}

// setBuilder accumulates the SET clause of a partial update.
type setBuilder struct {
	cols []string
	args []any
}

func (b *setBuilder) add(col string, v any) {
	b.args = append(b.args, v)
	b.cols = append(b.cols, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

// build returns "UPDATE table SET ..., updated_at = ... WHERE id = $n
// RETURNING returning" and its arguments.
func (b *setBuilder) build(table string, id int64, at time.Time, returning string) (string, []any) {
	b.args = append(b.args, at)
	b.cols = append(b.cols, touchExpr(len(b.args)))
	b.args = append(b.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(b.cols, ", "), len(b.args), returning)
	return query, b.args
}

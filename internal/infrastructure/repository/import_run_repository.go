package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

var importRunErrorColumns = []string{"run_id", "ordinal", "kind", "row_number", "code", "field", "natural_key", "message"}

// ImportRunRepository writes the audit record of a run and bulk-copies its
// findings in one transaction.
type ImportRunRepository struct {
	pool *pgxpool.Pool
}

func NewImportRunRepository(pool *pgxpool.Pool) *ImportRunRepository {
	return &ImportRunRepository{pool: pool}
}

func (r *ImportRunRepository) Save(ctx context.Context, run batch.Run) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
INSERT INTO import_runs (
    id, entity, enterprise_id, actor_id, file_name, status,
    total_rows, valid_rows, created_count, updated_count, skipped_count, reactivated_count, invitations_sent,
    error_message, started_at, finished_at, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
`,
		run.ID, run.Entity, run.EnterpriseID, run.ActorID, run.FileName, string(run.Status),
		run.Report.TotalRows, run.Report.ValidRows,
		run.Result.Created, run.Result.Updated, run.Result.Skipped, run.Result.Reactivated, run.Result.InvitationsSent,
		nullableText(run.ErrorMessage), run.StartedAt, run.FinishedAt,
	); err != nil {
		return translate("insert import run", err)
	}

	findings := run.Findings()
	if len(findings) > 0 {
		rows := make([][]any, 0, len(findings))
		for i, f := range findings {
			rows = append(rows, []any{run.ID, i, f.Kind, f.RowNumber, f.Code, f.Field, f.NaturalKey, f.Message})
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"import_run_errors"}, importRunErrorColumns, pgx.CopyFromRows(rows)); err != nil {
			return translate("copy import run errors", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit import run: %w", err)
	}
	return nil
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

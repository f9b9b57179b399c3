package repository

//go:generate mockgen -source=import_run.go -destination=mocks/mock_import_run.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sellthrough-api/infrastructure/database/postgres"
	"github.com/vfg2006/sellthrough-api/internal/domain"
)

const (
	importRunsTable = "import_runs ir"
)

type ImportRunRepository interface {
	Save(ctx context.Context, run *domain.ImportRun) error
	GetByID(ctx context.Context, id string) (*domain.ImportRun, error)
	List(ctx context.Context, since *time.Time, limit int) ([]*domain.ImportRun, error)
}

type importRunRepository struct {
	conn postgres.Conn
}

func NewImportRunRepository(conn postgres.Conn) ImportRunRepository {
	return &importRunRepository{
		conn: conn,
	}
}

func (r *importRunRepository) Save(ctx context.Context, run *domain.ImportRun) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("import_runs").
		Columns(
			"id",
			"file_name",
			"source",
			"format_id",
			"state",
			"dry_run",
			"total_rows",
			"upserted",
			"skipped",
			"error_message",
			"started_at",
			"finished_at",
		).
		Values(
			run.ID,
			run.FileName,
			string(run.Source),
			run.FormatID,
			string(run.State),
			run.DryRun,
			run.TotalRows,
			run.Upserted,
			run.Skipped,
			run.ErrorMessage,
			run.StartedAt,
			run.FinishedAt,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				format_id = EXCLUDED.format_id,
				state = EXCLUDED.state,
				total_rows = EXCLUDED.total_rows,
				upserted = EXCLUDED.upserted,
				skipped = EXCLUDED.skipped,
				error_message = EXCLUDED.error_message,
				finished_at = EXCLUDED.finished_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapPqError("erro ao gravar execução de importação", err)
	}

	return nil
}

func (r *importRunRepository) GetByID(ctx context.Context, id string) (*domain.ImportRun, error) {
	query, args, err := r.selectRuns().
		Where(squirrel.Eq{"ir.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	run, err := scanImportRun(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear execução de importação: %w", err)
	}

	return run, nil
}

func (r *importRunRepository) List(ctx context.Context, since *time.Time, limit int) ([]*domain.ImportRun, error) {
	builder := r.selectRuns().OrderBy("ir.started_at DESC")
	if since != nil {
		builder = builder.Where(squirrel.GtOrEq{"ir.started_at": *since})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPqError("erro ao executar a query", err)
	}
	defer rows.Close()

	runs := make([]*domain.ImportRun, 0)
	for rows.Next() {
		run, err := scanImportRun(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear execução de importação: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return runs, nil
}

func (r *importRunRepository) selectRuns() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"ir.id",
			"ir.file_name",
			"ir.source",
			"ir.format_id",
			"ir.state",
			"ir.dry_run",
			"ir.total_rows",
			"ir.upserted",
			"ir.skipped",
			"ir.error_message",
			"ir.started_at",
			"ir.finished_at",
		).
		From(importRunsTable).
		PlaceholderFormat(squirrel.Dollar)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanImportRun(row scanner) (*domain.ImportRun, error) {
	run := &domain.ImportRun{}
	var source, state string
	var errorMessage sql.NullString

	err := row.Scan(
		&run.ID,
		&run.FileName,
		&source,
		&run.FormatID,
		&state,
		&run.DryRun,
		&run.TotalRows,
		&run.Upserted,
		&run.Skipped,
		&errorMessage,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Source = domain.ImportSource(source)
	run.State = domain.RunState(state)
	run.ErrorMessage = errorMessage.String

	return run, nil
}

package repository

//go:generate mockgen -source=import_error.go -destination=mocks/mock_import_error.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sellthrough-api/infrastructure/database/postgres"
	"github.com/vfg2006/sellthrough-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	importErrorsTable = "import_errors ie"

	// limite de parâmetros por INSERT para não estourar o máximo do Postgres
	importErrorsBatchSize = 500
)

type ImportErrorRepository interface {
	SaveBatch(ctx context.Context, errors []*domain.ImportError) error
	ListByRunID(ctx context.Context, runID string) ([]*domain.ImportError, error)
}

type importErrorRepository struct {
	conn postgres.Conn
}

func NewImportErrorRepository(conn postgres.Conn) ImportErrorRepository {
	return &importErrorRepository{
		conn: conn,
	}
}

func (r *importErrorRepository) SaveBatch(ctx context.Context, importErrors []*domain.ImportError) error {
	for start := 0; start < len(importErrors); start += importErrorsBatchSize {
		end := start + importErrorsBatchSize
		if end > len(importErrors) {
			end = len(importErrors)
		}

		builder := squirrel.StatementBuilder.
			Insert("import_errors").
			Columns("import_run_id", "import_channel", "row_number", "error_kind", "error_message", "error_data").
			PlaceholderFormat(squirrel.Dollar)

		for _, importErr := range importErrors[start:end] {
			data, err := json.Marshal(importErr.ErrorData)
			if err != nil {
				return fmt.Errorf("erro ao serializar error_data para JSON: %w", err)
			}
			builder = builder.Values(
				importErr.ImportRunID,
				importErr.ImportChannel,
				importErr.RowNumber,
				importErr.ErrorKind,
				importErr.ErrorMessage,
				data,
			)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
			return wrapPqError("erro ao gravar erros de importação", err)
		}
	}

	return nil
}

func (r *importErrorRepository) ListByRunID(ctx context.Context, runID string) ([]*domain.ImportError, error) {
	query, args, err := squirrel.
		Select("ie.id, ie.import_run_id, ie.import_channel, ie.row_number, ie.error_kind, ie.error_message, ie.error_data, ie.created_at").
		From(importErrorsTable).
		Where(squirrel.Eq{"ie.import_run_id": runID}).
		OrderBy("ie.row_number ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPqError("erro ao executar a query", err)
	}
	defer rows.Close()

	importErrors := make([]*domain.ImportError, 0)
	for rows.Next() {
		importErr := &domain.ImportError{}
		var data []byte
		err := rows.Scan(
			&importErr.ID,
			&importErr.ImportRunID,
			&importErr.ImportChannel,
			&importErr.RowNumber,
			&importErr.ErrorKind,
			&importErr.ErrorMessage,
			&data,
			&importErr.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear erro de importação: %w", err)
		}

		if len(data) > 0 {
			if err := json.Unmarshal(data, &importErr.ErrorData); err != nil {
				return nil, fmt.Errorf("erro ao deserializar error_data: %w", err)
			}
		}

		importErrors = append(importErrors, importErr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return importErrors, nil
}

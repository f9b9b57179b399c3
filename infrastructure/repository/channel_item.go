// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

//go:generate mockgen -source=channel_item.go -destination=mocks/mock_channel_item.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sellthrough-api/infrastructure/database/postgres"
	"github.com/vfg2006/sellthrough-api/internal/domain"
)

const (
	channelItemsTable = "channel_items ci"
)

type ChannelItemRepository interface {
	// GetOrCreate retorna o vínculo de (ChannelID, ChannelCode), criando vínculo e produto se não existirem
	GetOrCreate(ctx context.Context, item *domain.ChannelItem) (*domain.ChannelItem, error)
	ListByChannel(ctx context.Context, channelID int) ([]*domain.ChannelItem, error)
}

type channelItemRepository struct {
	conn postgres.Conn
}

func NewChannelItemRepository(conn postgres.Conn) ChannelItemRepository {
	return &channelItemRepository{
		conn: conn,
	}
}

// GetOrCreate usa INSERT ... ON CONFLICT para que duas importações concorrentes do mesmo
// código recebam a mesma linha. A linha conflitante fica travada até o commit, então o
// vínculo com o produto é feito por apenas uma das transações.
func (r *channelItemRepository) GetOrCreate(ctx context.Context, item *domain.ChannelItem) (*domain.ChannelItem, error) {
	result := &domain.ChannelItem{}

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query, args, err := upsertChannelItemQuery(item)
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		var itemID sql.NullInt64
		err = tx.QueryRowContext(ctx, query, args...).Scan(
			&result.ID,
			&result.ChannelID,
			&result.ChannelCode,
			&result.ChannelName,
			&itemID,
			&result.CreatedAt,
		)
		if err != nil {
			return wrapPqError("erro ao inserir channel item", err)
		}

		if itemID.Valid {
			result.ItemID = itemID.Int64
			return nil
		}

		linked, err := r.findOrCreateItem(ctx, tx, item.ChannelCode, item.ChannelName)
		if err != nil {
			return err
		}

		query, args, err = squirrel.StatementBuilder.
			Update("channel_items").
			Set("item_id", linked.ID).
			Where(squirrel.Eq{"id": result.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return wrapPqError("erro ao vincular produto ao channel item", err)
		}

		result.ItemID = linked.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// upsertChannelItemQuery não usa SELECT prévio; o conflito devolve a linha existente
func upsertChannelItemQuery(item *domain.ChannelItem) (string, []interface{}, error) {
	return squirrel.StatementBuilder.
		Insert("channel_items").
		Columns("channel_id", "channel_code", "channel_name").
		Values(item.ChannelID, item.ChannelCode, item.ChannelName).
		Suffix(`
			ON CONFLICT (channel_id, channel_code) DO UPDATE SET
				channel_code = EXCLUDED.channel_code
			RETURNING id, channel_id, channel_code, channel_name, item_id, created_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// findOrCreateItem reaproveita o produto cujo essor_code é o código do canal; o nome de
// um produto existente nunca é alterado
func (r *channelItemRepository) findOrCreateItem(ctx context.Context, tx postgres.Queryer, code, name string) (*domain.Item, error) {
	if name == "" {
		name = code
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("items").
		Columns("essor_code", "essor_name").
		Values(code, name).
		Suffix(`
			ON CONFLICT (essor_code) DO UPDATE SET
				essor_code = EXCLUDED.essor_code
			RETURNING id, essor_code, essor_name, brand_id, created_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	item := &domain.Item{}
	var brandID sql.NullInt64
	err = tx.QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&item.EssorCode,
		&item.EssorName,
		&brandID,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, wrapPqError("erro ao buscar ou criar produto", err)
	}

	if brandID.Valid {
		item.BrandID = &brandID.Int64
	}

	return item, nil
}

func (r *channelItemRepository) ListByChannel(ctx context.Context, channelID int) ([]*domain.ChannelItem, error) {
	query, args, err := squirrel.
		Select("ci.id, ci.channel_id, ci.channel_code, ci.channel_name, ci.item_id, ci.created_at").
		From(channelItemsTable).
		Where(squirrel.Eq{"ci.channel_id": channelID}).
		OrderBy("ci.channel_code ASC").
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

	items := make([]*domain.ChannelItem, 0)
	for rows.Next() {
		item := &domain.ChannelItem{}
		var itemID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.ChannelID, &item.ChannelCode, &item.ChannelName, &itemID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear channel item: %w", err)
		}
		item.ItemID = itemID.Int64
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}

func wrapPqError(msg string, err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return fmt.Errorf("%s: %w (código: %s)", msg, pqErr, pqErr.Code)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

package repository

//go:generate mockgen -source=sellthrough.go -destination=mocks/mock_sellthrough.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sellthrough-api/infrastructure/database/postgres"
	"github.com/vfg2006/sellthrough-api/internal/domain"
)

type SellthroughRepository interface {
	SaveOrUpdate(ctx context.Context, record *domain.SellthroughRecord) error
}

type sellthroughRepository struct {
	conn postgres.Conn
}

func NewSellthroughRepository(conn postgres.Conn) SellthroughRepository {
	return &sellthroughRepository{
		conn: conn,
	}
}

// SaveOrUpdate grava uma linha por (channel_id, item_id, date); a última escrita substitui as medidas
func (r *sellthroughRepository) SaveOrUpdate(ctx context.Context, record *domain.SellthroughRecord) error {
	query, args, err := upsertSellthroughQuery(record)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapPqError("erro ao gravar sell-through", err)
	}

	return nil
}

func upsertSellthroughQuery(record *domain.SellthroughRecord) (string, []interface{}, error) {
	return squirrel.StatementBuilder.
		Insert("sellthrough_data").
		Columns(
			"date",
			"channel_id",
			"item_id",
			"revenues",
			"units",
			"stores",
			"usd_pspw",
			"units_pspw",
			"in_stock_pct",
			"oos_pct",
			"import_run_id",
		).
		Values(
			record.Date.Format(time.DateOnly),
			record.ChannelID,
			record.ItemID,
			record.Revenues,
			record.Units,
			record.Stores,
			record.USDPerStorePerWeek,
			record.UnitsPerStorePerWeek,
			record.InStockPct,
			record.OutOfStockPct,
			record.ImportRunID,
		).
		Suffix(`
			ON CONFLICT (channel_id, item_id, date) DO UPDATE SET
				revenues = EXCLUDED.revenues,
				units = EXCLUDED.units,
				stores = EXCLUDED.stores,
				usd_pspw = EXCLUDED.usd_pspw,
				units_pspw = EXCLUDED.units_pspw,
				in_stock_pct = EXCLUDED.in_stock_pct,
				oos_pct = EXCLUDED.oos_pct,
				import_run_id = EXCLUDED.import_run_id,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SellthroughRecord é a linha canônica de sell-through, uma por (canal, produto, semana).
// InStockPct e OutOfStockPct são pontos percentuais (0-100) e nunca vêm preenchidos juntos.
type SellthroughRecord struct {
	Date                 time.Time        `json:"date"`
	ChannelID            int              `json:"channel_id"`
	ItemID               int64            `json:"item_id"`
	Revenues             decimal.Decimal  `json:"revenues"`
	Units                int64            `json:"units"`
	Stores               *int64           `json:"stores"`
	USDPerStorePerWeek   decimal.Decimal  `json:"usd_pspw"`
	UnitsPerStorePerWeek decimal.Decimal  `json:"units_pspw"`
	InStockPct           *decimal.Decimal `json:"in_stock_pct"`
	OutOfStockPct        *decimal.Decimal `json:"oos_pct"`
	ImportRunID          string           `json:"import_run_id"`
}

// ReportRow é uma linha de dados lida de um relatório de parceiro.
// Number é a linha no arquivo, com o cabeçalho na linha 1.
type ReportRow struct {
	Number int
	Values []string
}

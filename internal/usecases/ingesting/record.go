package ingesting

import (
	"fmt"
	"strings"

	"github.com/vfg2006/sellthrough-api/internal/domain"
)

// NormalizedRow é uma linha já convertida, ainda sem o produto interno resolvido
type NormalizedRow struct {
	Number      int
	ChannelID   int
	ProductCode string
	ProductName string
	Record      domain.SellthroughRecord
}

// RecordNormalizer converte os valores nativos de uma linha nos campos canônicos
type RecordNormalizer struct {
	catalog *domain.Catalog
}

func NewRecordNormalizer(catalog *domain.Catalog) *RecordNormalizer {
	return &RecordNormalizer{catalog: catalog}
}

// Normalize converte a linha seguindo o formato detectado. Erros retornados são sempre RowError.
func (n *RecordNormalizer) Normalize(format *domain.FormatSpec, columns ColumnIndex, row domain.ReportRow) (*NormalizedRow, error) {
	cols := format.Columns
	value := func(column string) string {
		return columns.Value(row.Values, column)
	}

	date, err := WeekStart(format.DateEncoding, value(cols.Date), n.catalog)
	if err != nil {
		return nil, err
	}

	channelID, err := n.channelID(format, value(cols.Geography))
	if err != nil {
		return nil, err
	}

	code := strings.TrimSpace(value(cols.ProductCode))
	if code == "" {
		return nil, NewRowError(ErrMissingField, "product_code", "", fmt.Sprintf("coluna %q vazia", cols.ProductCode))
	}

	record := domain.SellthroughRecord{
		Date:      date,
		ChannelID: channelID,
	}

	if record.Revenues, err = ParseMoney("revenues", value(cols.Revenues)); err != nil {
		return nil, err
	}
	if record.Units, err = ParseUnits("units", value(cols.Units)); err != nil {
		return nil, err
	}
	if record.Stores, err = ParseOptionalCount("stores", value(cols.Stores)); err != nil {
		return nil, err
	}
	if record.USDPerStorePerWeek, err = ParseMoney("usd_pspw", value(cols.USDPerStorePerWeek)); err != nil {
		return nil, err
	}
	// units_pspw é média e pode ter casas decimais
	if record.UnitsPerStorePerWeek, err = ParseMoney("units_pspw", value(cols.UnitsPerStorePerWeek)); err != nil {
		return nil, err
	}

	switch format.StockMetric {
	case domain.StockMetricInStock:
		record.InStockPct, err = ParsePercent("in_stock_pct", value(cols.StockPct), format.PercentAsFraction)
	case domain.StockMetricOutOfStock:
		record.OutOfStockPct, err = ParsePercent("oos_pct", value(cols.StockPct), format.PercentAsFraction)
	}
	if err != nil {
		return nil, err
	}

	return &NormalizedRow{
		Number:      row.Number,
		ChannelID:   channelID,
		ProductCode: code,
		ProductName: strings.TrimSpace(value(cols.ProductName)),
		Record:      record,
	}, nil
}

func (n *RecordNormalizer) channelID(format *domain.FormatSpec, geography string) (int, error) {
	switch format.ChannelSource {
	case domain.ChannelSourceFixed:
		return format.ChannelID, nil
	case domain.ChannelSourceGeography:
		label := strings.TrimSpace(geography)
		if label == "" {
			return 0, NewRowError(ErrMissingField, "geography", geography, "")
		}
		id, ok := n.catalog.Geographies[label]
		if !ok {
			return 0, NewRowError(ErrUnknownChannel, "geography", geography, "")
		}
		return id, nil
	}
	return 0, NewRowError(ErrUnknownChannel, "channel_source", string(format.ChannelSource), "origem de canal desconhecida")
}

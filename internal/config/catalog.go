package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sellthrough-api/internal/domain"
	"gopkg.in/yaml.v2"
)

var ErrInvalidCatalog = errors.New("invalid format catalog")

// LoadCatalog lê o catálogo de formatos em YAML. Sem caminho, usa o catálogo embutido.
func LoadCatalog(path string) (*domain.Catalog, error) {
	if path == "" {
		logrus.Info("Usando catálogo de formatos embutido")
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler catálogo %s: %w", path, err)
	}

	return ParseCatalog(data)
}

// ParseCatalog interpreta e valida um catálogo em YAML
func ParseCatalog(data []byte) (*domain.Catalog, error) {
	catalog := &domain.Catalog{}
	if err := yaml.UnmarshalStrict(data, catalog); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"formats":     len(catalog.Formats),
		"geographies": len(catalog.Geographies),
	}).Info("Catálogo de formatos carregado")

	return catalog, nil
}

// ValidateCatalog rejeita catálogos que tornariam a detecção ambígua ou o mapeamento incompleto
func ValidateCatalog(catalog *domain.Catalog) error {
	if err := validator.New().Struct(catalog); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	ids := make(map[string]bool, len(catalog.Formats))
	for _, format := range catalog.Formats {
		if ids[format.ID] {
			return fmt.Errorf("%w: formato %q duplicado", ErrInvalidCatalog, format.ID)
		}
		ids[format.ID] = true

		if err := validateMapping(format); err != nil {
			return err
		}

		if format.ChannelSource == domain.ChannelSourceGeography && len(catalog.Geographies) == 0 {
			return fmt.Errorf("%w: formato %q usa geografia mas o catálogo não tem geografias", ErrInvalidCatalog, format.ID)
		}
	}

	for label, channelID := range catalog.Geographies {
		if channelID <= 0 {
			return fmt.Errorf("%w: geografia %q com canal inválido %d", ErrInvalidCatalog, label, channelID)
		}
	}

	for i := range catalog.Formats {
		for j := range catalog.Formats {
			if i == j {
				continue
			}
			if isSubset(catalog.Formats[i].RequiredHeaders, catalog.Formats[j].RequiredHeaders) {
				return fmt.Errorf("%w: as colunas de %q estão contidas em %q",
					ErrInvalidCatalog, catalog.Formats[i].ID, catalog.Formats[j].ID)
			}
		}
	}

	return nil
}

// validateMapping exige que as colunas essenciais façam parte da assinatura do formato
func validateMapping(format domain.FormatSpec) error {
	required := map[string]string{
		"date":         format.Columns.Date,
		"product_code": format.Columns.ProductCode,
		"revenues":     format.Columns.Revenues,
		"units":        format.Columns.Units,
	}
	if format.ChannelSource == domain.ChannelSourceGeography {
		required["geography"] = format.Columns.Geography
	}
	if format.StockMetric != domain.StockMetricNone {
		required["stock_pct"] = format.Columns.StockPct
	}

	headers := make(map[string]bool, len(format.RequiredHeaders))
	for _, h := range format.RequiredHeaders {
		headers[h] = true
	}

	for field, column := range required {
		if column == "" {
			return fmt.Errorf("%w: formato %q sem coluna para %s", ErrInvalidCatalog, format.ID, field)
		}
		if !headers[column] {
			return fmt.Errorf("%w: formato %q mapeia %s para %q, que não está nas colunas obrigatórias",
				ErrInvalidCatalog, format.ID, field, column)
		}
	}

	return nil
}

func isSubset(a, b []string) bool {
	set := make(map[string]bool, len(b))
	for _, h := range b {
		set[h] = true
	}
	for _, h := range a {
		if !set[h] {
			return false
		}
	}
	return true
}

// DefaultCatalog é o catálogo usado quando nenhum arquivo é configurado
func DefaultCatalog() *domain.Catalog {
	return &domain.Catalog{
		YearWeekOffsetDays: 0,
		Channels: []domain.Channel{
			{ID: 1, Name: "Retail POS"},
			{ID: 2, Name: "Distribuidor Nacional"},
			{ID: 4, Name: "E-commerce"},
			{ID: 5, Name: "Sprouts Farmers Market"},
			{ID: 6, Name: "Whole Foods Market"},
			{ID: 7, Name: "Natural Grocers"},
		},
		Geographies: map[string]int{
			"SPROUTS FARMERS MARKET - TOTAL US W/O PL": 5,
			"WHOLE FOODS MARKET - TOTAL US":            6,
			"NATURAL GROCERS - TOTAL US":               7,
		},
		Formats: []domain.FormatSpec{
			{
				ID:              "pos_year_week",
				Name:            "Retail POS semanal (YYYYWW)",
				RequiredHeaders: []string{"Week", "Vendor Item Nbr", "Item Description", "POS Sales", "POS Qty", "In Stock %"},
				DateEncoding:    domain.DateEncodingYearWeek,
				ChannelSource:   domain.ChannelSourceFixed,
				ChannelID:       1,
				StockMetric:     domain.StockMetricInStock,
				Columns: domain.ColumnMapping{
					Date:                 "Week",
					ProductCode:          "Vendor Item Nbr",
					ProductName:          "Item Description",
					Revenues:             "POS Sales",
					Units:                "POS Qty",
					Stores:               "Store Count",
					USDPerStorePerWeek:   "$/Store/Week",
					UnitsPerStorePerWeek: "Units/Store/Week",
					StockPct:             "In Stock %",
				},
			},
			{
				ID:                "distributor_month_week",
				Name:              "Distribuidor (Mês Wk N Ano)",
				RequiredHeaders:   []string{"Period", "UPC", "Description", "Dollars", "Units", "OOS %"},
				DateEncoding:      domain.DateEncodingMonthWeek,
				ChannelSource:     domain.ChannelSourceFixed,
				ChannelID:         2,
				StockMetric:       domain.StockMetricOutOfStock,
				PercentAsFraction: true,
				Columns: domain.ColumnMapping{
					Date:                 "Period",
					ProductCode:          "UPC",
					ProductName:          "Description",
					Revenues:             "Dollars",
					Units:                "Units",
					Stores:               "Stores Selling",
					USDPerStorePerWeek:   "$/Store/Wk",
					UnitsPerStorePerWeek: "Units/Store/Wk",
					StockPct:             "OOS %",
				},
			},
			{
				ID:              "fiscal_week_geography",
				Name:            "Varejo natural por geografia (Fiscal Week Ending)",
				RequiredHeaders: []string{"Time", "Geography", "Product", "UPC 10 digit", "Dollars", "Units"},
				DateEncoding:    domain.DateEncodingFiscalWeekEnding,
				ChannelSource:   domain.ChannelSourceGeography,
				Columns: domain.ColumnMapping{
					Date:                 "Time",
					ProductCode:          "UPC 10 digit",
					ProductName:          "Product",
					Geography:            "Geography",
					Revenues:             "Dollars",
					Units:                "Units",
					Stores:               "Max # of Stores Selling",
					USDPerStorePerWeek:   "Dollars/Store/Week",
					UnitsPerStorePerWeek: "Units/Store/Week",
				},
			},
			{
				ID:              "ecommerce_serial_date",
				Name:            "E-commerce (data serial)",
				RequiredHeaders: []string{"Week Start", "SKU", "SKU Name", "Net Sales", "Qty Sold", "OOS Rate"},
				DateEncoding:    domain.DateEncodingSerialDate,
				ChannelSource:   domain.ChannelSourceFixed,
				ChannelID:       4,
				StockMetric:     domain.StockMetricOutOfStock,
				Columns: domain.ColumnMapping{
					Date:        "Week Start",
					ProductCode: "SKU",
					ProductName: "SKU Name",
					Revenues:    "Net Sales",
					Units:       "Qty Sold",
					StockPct:    "OOS Rate",
				},
			},
		},
	}
}

package domain

// DateEncoding identifica como um parceiro codifica a semana do relatório
type DateEncoding string

const (
	DateEncodingYearWeek         DateEncoding = "year_week"          // 202452
	DateEncodingMonthWeek        DateEncoding = "month_week"         // Dec Wk 5 2024
	DateEncodingFiscalWeekEnding DateEncoding = "fiscal_week_ending" // Fiscal Week Ending 01-07-2024
	DateEncodingSerialDate       DateEncoding = "serial_date"        // 45292
)

// StockMetric indica qual percentual de estoque o formato informa
type StockMetric string

const (
	StockMetricNone       StockMetric = ""
	StockMetricInStock    StockMetric = "in_stock"
	StockMetricOutOfStock StockMetric = "out_of_stock"
)

// ChannelSource indica de onde vem o canal de cada linha
type ChannelSource string

const (
	ChannelSourceFixed     ChannelSource = "fixed"
	ChannelSourceGeography ChannelSource = "geography"
)

// ColumnMapping associa cada campo canônico ao nome da coluna no arquivo do parceiro.
// Colunas opcionais vazias ou ausentes no arquivo são lidas como vazias.
type ColumnMapping struct {
	Date                 string `json:"date" yaml:"date" validate:"required"`
	ProductCode          string `json:"product_code" yaml:"product_code" validate:"required"`
	ProductName          string `json:"product_name,omitempty" yaml:"product_name"`
	Geography            string `json:"geography,omitempty" yaml:"geography"`
	Revenues             string `json:"revenues" yaml:"revenues" validate:"required"`
	Units                string `json:"units" yaml:"units" validate:"required"`
	Stores               string `json:"stores,omitempty" yaml:"stores"`
	USDPerStorePerWeek   string `json:"usd_pspw,omitempty" yaml:"usd_pspw"`
	UnitsPerStorePerWeek string `json:"units_pspw,omitempty" yaml:"units_pspw"`
	StockPct             string `json:"stock_pct,omitempty" yaml:"stock_pct"`
}

// FormatSpec descreve um layout de relatório de parceiro
type FormatSpec struct {
	ID                string        `json:"id" yaml:"id" validate:"required"`
	Name              string        `json:"name" yaml:"name"`
	RequiredHeaders   []string      `json:"required_headers" yaml:"required_headers" validate:"required,min=1,dive,required"`
	DateEncoding      DateEncoding  `json:"date_encoding" yaml:"date_encoding" validate:"required,oneof=year_week month_week fiscal_week_ending serial_date"`
	ChannelSource     ChannelSource `json:"channel_source" yaml:"channel_source" validate:"required,oneof=fixed geography"`
	ChannelID         int           `json:"channel_id,omitempty" yaml:"channel_id" validate:"required_if=ChannelSource fixed"`
	StockMetric       StockMetric   `json:"stock_metric,omitempty" yaml:"stock_metric" validate:"omitempty,oneof=in_stock out_of_stock"`
	PercentAsFraction bool          `json:"percent_as_fraction" yaml:"percent_as_fraction"`
	Columns           ColumnMapping `json:"columns" yaml:"columns"`
}

// Catalog é o conjunto imutável de formatos conhecidos e tabelas de apoio
type Catalog struct {
	YearWeekOffsetDays int            `json:"year_week_offset_days" yaml:"year_week_offset_days" validate:"gte=0,lte=6"`
	Channels           []Channel      `json:"channels" yaml:"channels" validate:"dive"`
	Geographies        map[string]int `json:"geographies" yaml:"geographies"`
	Formats            []FormatSpec   `json:"formats" yaml:"formats" validate:"required,min=1,dive"`
}

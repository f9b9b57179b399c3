package ingesting

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/sellthrough-api/internal/domain"
)

const (
	dateField = "date"

	// menor ano aceito nas datas dos relatórios
	minYear = 1900
)

var (
	yearWeekPattern         = regexp.MustCompile(`^(\d{4})(\d{2})$`)
	monthWeekPattern        = regexp.MustCompile(`(?i)^([a-z]+)\.?\s+wk\.?\s*(\d{1,2})\s+(\d{4})$`)
	fiscalWeekEndingPattern = regexp.MustCompile(`(?i)^fiscal\s+week\s+ending\s+(\d{1,2})-(\d{1,2})-(\d{4})$`)
)

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// Época das datas seriais de planilha (sistema 1900). O serial 60 é o 29/02/1900 fictício.
var (
	serialEpoch           = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	serialEpochBeforeLeap = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)
)

const (
	serialDigits        = 5
	serialFictitiousDay = 60
)

type weekStartParser func(raw string, catalog *domain.Catalog) (time.Time, error)

// weekStartParsers despacha pela codificação de data do formato
var weekStartParsers = map[domain.DateEncoding]weekStartParser{
	domain.DateEncodingYearWeek: func(raw string, catalog *domain.Catalog) (time.Time, error) {
		return YearWeekStart(raw, catalog.YearWeekOffsetDays)
	},
	domain.DateEncodingMonthWeek: func(raw string, _ *domain.Catalog) (time.Time, error) {
		return MonthWeekStart(raw)
	},
	domain.DateEncodingFiscalWeekEnding: func(raw string, _ *domain.Catalog) (time.Time, error) {
		return FiscalWeekEndingStart(raw)
	},
	domain.DateEncodingSerialDate: func(raw string, _ *domain.Catalog) (time.Time, error) {
		return SerialDateWeekStart(raw)
	},
}

// WeekStart converte a data nativa do parceiro na segunda-feira canônica da semana
func WeekStart(encoding domain.DateEncoding, raw string, catalog *domain.Catalog) (time.Time, error) {
	parse, ok := weekStartParsers[encoding]
	if !ok {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, fmt.Sprintf("codificação desconhecida %q", encoding))
	}
	return parse(raw, catalog)
}

// YearWeekStart interpreta YYYYWW. A semana 1 começa em 1º de janeiro + offsetDays e
// a semana WW começa (WW-1)*7 dias depois; retorna a segunda-feira dentro desses 7 dias.
func YearWeekStart(raw string, offsetDays int) (time.Time, error) {
	value := strings.TrimSpace(raw)
	m := yearWeekPattern.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, "esperado YYYYWW")
	}

	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	if year < minYear || week < 1 || week > 53 {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, "ano ou semana fora do intervalo")
	}

	start := time.Date(year, time.January, 1+offsetDays+(week-1)*7, 0, 0, 0, 0, time.UTC)
	if start.Year() != year {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, fmt.Sprintf("o ano %d não tem a semana %d", year, week))
	}

	return mondayWithin(start), nil
}

// MonthWeekStart interpreta "<Mês> Wk <N> <Ano>". O balde N começa no dia 1+(N-1)*7 do mês
// e sempre tem 7 dias, mesmo quando passa do fim do mês.
func MonthWeekStart(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	m := monthWeekPattern.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, "esperado <Mês> Wk <N> <Ano>")
	}

	month, ok := monthNames[strings.ToLower(m[1])]
	if !ok {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, fmt.Sprintf("mês desconhecido %q", m[1]))
	}
	bucket, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if bucket < 1 {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, "semana deve ser maior que zero")
	}
	if year < minYear {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, fmt.Sprintf("ano %d fora do intervalo", year))
	}

	start := time.Date(year, month, 1+(bucket-1)*7, 0, 0, 0, 0, time.UTC)
	if start.Month() != month {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, fmt.Sprintf("%s/%d não tem a semana %d", month, year, bucket))
	}

	return mondayWithin(start), nil
}

// FiscalWeekEndingStart interpreta "Fiscal Week Ending MM-DD-YYYY", onde a data é o último
// dia da semana. Retorna a segunda-feira da semana que contém essa data.
func FiscalWeekEndingStart(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	m := fiscalWeekEndingPattern.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, "esperado Fiscal Week Ending MM-DD-YYYY")
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	ending, ok := calendarDate(year, month, day)
	if !ok {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, "data inexistente")
	}

	return mondayOf(ending), nil
}

// SerialDateWeekStart interpreta os 5 primeiros caracteres como serial de planilha.
// Sufixos como ".0" ou " 00:00:00" são ignorados, mas um sexto dígito é rejeitado.
func SerialDateWeekStart(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if len(value) < serialDigits {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, "serial com menos de 5 dígitos")
	}
	if len(value) > serialDigits && isDigit(value[serialDigits]) {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, "serial com mais de 5 dígitos")
	}

	digits := value[:serialDigits]
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return time.Time{}, NewRowError(ErrDateParse, dateField, raw, "serial não numérico")
		}
	}

	serial, _ := strconv.Atoi(digits)
	date, ok := serialToDate(serial)
	if !ok {
		return time.Time{}, NewRowError(ErrDateParse, dateField, raw, "serial fora do calendário")
	}

	return mondayOf(date), nil
}

func serialToDate(serial int) (time.Time, bool) {
	switch {
	case serial <= 0, serial == serialFictitiousDay:
		return time.Time{}, false
	case serial < serialFictitiousDay:
		return serialEpochBeforeLeap.AddDate(0, 0, serial), true
	default:
		return serialEpoch.AddDate(0, 0, serial), true
	}
}

// mondayOf retorna a segunda-feira da semana (segunda a domingo) que contém t
func mondayOf(t time.Time) time.Time {
	return t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
}

// mondayWithin retorna a segunda-feira dentro dos 7 dias que começam em start
func mondayWithin(start time.Time) time.Time {
	return start.AddDate(0, 0, (int(time.Monday)-int(start.Weekday())+7)%7)
}

func calendarDate(year, month, day int) (time.Time, bool) {
	if year < minYear || month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t, t.Day() == day && int(t.Month()) == month
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

package ingesting

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	maxInt  = decimal.NewFromInt(math.MaxInt64)
	minInt  = decimal.NewFromInt(math.MinInt64)

	// Caracteres removidos antes da conversão: símbolo de moeda, separador de milhar e espaços
	moneyCleaner   = strings.NewReplacer("$", "", ",", "", " ", "", "\u00a0", "")
	percentCleaner = strings.NewReplacer("%", "", ",", "", " ", "", "\u00a0", "")
)

// ParseMoney converte valores como "$1,234.56" ou "(12.00)". Vazio ou "-" vira zero.
func ParseMoney(field, raw string) (decimal.Decimal, error) {
	value, blank, err := parseDecimal(field, raw, moneyCleaner)
	if err != nil {
		return decimal.Zero, err
	}
	if blank {
		return decimal.Zero, nil
	}
	return value, nil
}

// ParseUnits converte quantidades inteiras. Vazio vira zero; "12.00" é aceito, "12.5" não.
func ParseUnits(field, raw string) (int64, error) {
	value, blank, err := parseDecimal(field, raw, moneyCleaner)
	if err != nil {
		return 0, err
	}
	if blank {
		return 0, nil
	}
	return toInt64(field, raw, value)
}

// ParseOptionalCount converte contagens opcionais (lojas). Vazio vira nil.
func ParseOptionalCount(field, raw string) (*int64, error) {
	value, blank, err := parseDecimal(field, raw, moneyCleaner)
	if err != nil || blank {
		return nil, err
	}
	count, err := toInt64(field, raw, value)
	if err != nil {
		return nil, err
	}
	return &count, nil
}

// toInt64 exige um inteiro representável; IntPart truncaria valores fora do intervalo
func toInt64(field, raw string, value decimal.Decimal) (int64, error) {
	if !value.IsInteger() {
		return 0, NewRowError(ErrMalformedNumber, field, raw, "valor não inteiro")
	}
	if value.GreaterThan(maxInt) || value.LessThan(minInt) {
		return 0, NewRowError(ErrMalformedNumber, field, raw, "valor fora do intervalo")
	}
	return value.IntPart(), nil
}

// ParsePercent converte percentuais para pontos percentuais (0-100).
// Com asFraction o valor do arquivo é uma fração (0.985) e é multiplicado por 100.
func ParsePercent(field, raw string, asFraction bool) (*decimal.Decimal, error) {
	value, blank, err := parseDecimal(field, raw, percentCleaner)
	if err != nil || blank {
		return nil, err
	}
	if asFraction {
		value = value.Mul(hundred)
	}
	return &value, nil
}

func parseDecimal(field, raw string, cleaner *strings.Replacer) (decimal.Decimal, bool, error) {
	value := strings.TrimSpace(raw)
	if value == "" || value == "-" {
		return decimal.Zero, true, nil
	}

	negative := false
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		negative = true
		value = strings.TrimSpace(value[1 : len(value)-1])
		if strings.HasPrefix(value, "-") || strings.HasPrefix(value, "+") {
			return decimal.Zero, false, NewRowError(ErrMalformedNumber, field, raw, "sinal dentro de parênteses")
		}
	}

	value = cleaner.Replace(value)
	if value == "" {
		return decimal.Zero, false, NewRowError(ErrMalformedNumber, field, raw, "")
	}

	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false, NewRowError(ErrMalformedNumber, field, raw, "")
	}
	if negative {
		parsed = parsed.Neg()
	}

	return parsed, false, nil
}

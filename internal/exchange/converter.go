package exchange

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bexly/bexly-bot/internal/logger"
	"github.com/bexly/bexly-bot/internal/models"
)

// ErrNoRate is returned when neither the live API nor the fallback table
// covers a currency pair.
type ErrNoRate struct {
	From string
	To   string
}

func (e *ErrNoRate) Error() string {
	return fmt.Sprintf("no exchange rate available for %s to %s", e.From, e.To)
}

// fallbackRates are the emergency rates used when the API is unreachable.
// They mirror the app's own fallback table. Lookups try FROM_TO first,
// then the reciprocal of TO_FROM.
var fallbackRates = map[string]decimal.Decimal{
	"USD_VND": decimal.NewFromInt(25500),
	"VND_USD": decimal.RequireFromString("0.0000392"),
	"USD_EUR": decimal.RequireFromString("0.92"),
	"EUR_USD": decimal.RequireFromString("1.09"),
}

// Result carries a conversion outcome: the converted amount and the rate
// that produced it.
type Result struct {
	Amount decimal.Decimal
	Rate   decimal.Decimal
}

// Converter converts amounts between currencies, preferring a live
// RateSource and degrading to the fallback table.
type Converter struct {
	source RateSource
}

// NewConverter creates a Converter over the given source.
func NewConverter(source RateSource) *Converter {
	return &Converter{source: source}
}

// Convert converts amount from one currency to another at full decimal
// precision. Identical currencies short-circuit with rate 1 and no
// network call.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (Result, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if from == to {
		return Result{Amount: amount, Rate: decimal.NewFromInt(1)}, nil
	}

	rate, err := c.source.Rate(ctx, from, to)
	if err != nil {
		logger.Log.Warn().
			Err(err).
			Str("from", from).
			Str("to", to).
			Msg("Rate API failed, trying fallback table")

		rate, err = fallbackRate(from, to)
		if err != nil {
			return Result{}, err
		}
	}

	return Result{Amount: amount.Mul(rate), Rate: rate}, nil
}

// fallbackRate resolves a pair from the hardcoded table.
func fallbackRate(from, to string) (decimal.Decimal, error) {
	if rate, ok := fallbackRates[from+"_"+to]; ok {
		return rate, nil
	}
	if reverse, ok := fallbackRates[to+"_"+from]; ok {
		return decimal.NewFromInt(1).DivRound(reverse, 12), nil
	}
	return decimal.Zero, &ErrNoRate{From: from, To: to}
}

// ConversionNote builds the audit string stored on converted transactions.
// For tiny rates the inverse form reads better: a VND to USD conversion is
// shown as "1 USD = 25500 VND" rather than a rate of 0.0000392.
func ConversionNote(original decimal.Decimal, from string, rate decimal.Decimal, to string) string {
	if rate.LessThan(decimal.RequireFromString("0.01")) {
		inverse := decimal.NewFromInt(1).DivRound(rate, 0)
		return fmt.Sprintf(" (from %s @ 1 %s = %s %s)",
			models.FormatAmount(original, from), to, inverse, from)
	}
	return fmt.Sprintf(" (from %s)", models.FormatAmount(original, from))
}

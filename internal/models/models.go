// Package models contains the domain types shared across the bot.
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sentinel errors surfaced to handlers so they can pick a localized reply.
var (
	ErrNotLinked  = errors.New("platform account not linked")
	ErrNoWallet   = errors.New("no wallet found")
	ErrNoCategory = errors.New("no category found")
)

// TransactionType distinguishes money leaving a wallet from money entering it.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// BalanceDelta returns the signed change a transaction of this type applies
// to a wallet balance.
func (t TransactionType) BalanceDelta(amount decimal.Decimal) decimal.Decimal {
	if t == TypeIncome {
		return amount
	}
	return amount.Neg()
}

// SupportedCurrencies maps ISO currency codes to display symbols.
var SupportedCurrencies = map[string]string{
	"USD": "$",
	"VND": "₫",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"KRW": "₩",
	"THB": "฿",
	"SGD": "S$",
	"IDR": "Rp",
}

// zeroDecimalCurrencies are rendered without a fractional part.
var zeroDecimalCurrencies = map[string]bool{
	"VND": true,
	"JPY": true,
	"KRW": true,
	"IDR": true,
}

// ParsedTransaction is the normalized result of parsing one chat message.
// Currency is empty when the message carried no explicit currency, meaning
// the wallet's own currency applies.
type ParsedTransaction struct {
	Type        TransactionType
	Amount      decimal.Decimal
	Currency    string
	Category    string
	Description string
	Language    string
	TimeHint    string
}

// Category is a user-defined transaction category synced from the app.
type Category struct {
	ID              int64
	UserID          string
	Title           string
	TransactionType TransactionType
	LocalizedTitles map[string]string
	CreatedAt       time.Time
}

// LocalizedTitle returns the category title for the given language,
// falling back to English and then to the canonical title.
func (c *Category) LocalizedTitle(lang string) string {
	if c.LocalizedTitles != nil {
		if title := c.LocalizedTitles[lang]; title != "" {
			return title
		}
		if title := c.LocalizedTitles["en"]; title != "" {
			return title
		}
	}
	return c.Title
}

// Wallet is a user's money account.
type Wallet struct {
	ID        int64
	UserID    string
	Name      string
	Currency  string
	Balance   decimal.Decimal
	IsDefault bool
	CreatedAt time.Time
}

// Transaction is a committed ledger entry. Amount is always positive; the
// sign is carried by Type. Notes holds the conversion audit string when the
// entered currency differed from the wallet currency.
type Transaction struct {
	ID         uuid.UUID
	UserID     string
	WalletID   int64
	CategoryID int64
	Type       TransactionType
	Amount     decimal.Decimal
	Title      string
	Notes      string
	Date       time.Time
	Source     string
	CreatedAt  time.Time
}

// PlatformLink connects a chat-platform identity to a Bexly account.
type PlatformLink struct {
	Platform       string
	PlatformUserID string
	UserID         string
	CreatedAt      time.Time
}

// FormatAmount renders an amount for display the way the app does:
// "$20.00" for USD, "50.000 ₫" for VND, "12.34 XYZ" for unknown codes.
func FormatAmount(amount decimal.Decimal, currency string) string {
	currency = strings.ToUpper(currency)
	symbol, known := SupportedCurrencies[currency]

	places := int32(2)
	if zeroDecimalCurrencies[currency] {
		places = 0
	}
	rounded := amount.Round(places)

	neg := rounded.IsNegative()
	text := rounded.Abs().StringFixed(places)

	intPart := text
	fracPart := ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		intPart, fracPart = text[:i], text[i+1:]
	}

	sep := ","
	if currency == "VND" {
		sep = "."
	}
	grouped := groupDigits(intPart, sep)
	if fracPart != "" {
		grouped += "." + fracPart
	}
	if neg {
		grouped = "-" + grouped
	}

	switch {
	case currency == "VND":
		return grouped + " " + symbol
	case known:
		return symbol + grouped
	default:
		return grouped + " " + currency
	}
}

// groupDigits inserts sep between every group of three digits.
func groupDigits(digits, sep string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

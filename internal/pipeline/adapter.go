package pipeline

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/bexly/bexly-bot/internal/ai"
	"github.com/bexly/bexly-bot/internal/logger"
	"github.com/bexly/bexly-bot/internal/models"
)

// Parser runs one extraction attempt against the configured AI provider
// and falls back to the regex parser when the response is unusable.
type Parser struct {
	provider ai.Provider
}

// NewParser creates a Parser over the given provider.
func NewParser(provider ai.Provider) *Parser {
	return &Parser{provider: provider}
}

// Parse converts a chat message into a transaction proposal. It returns nil
// when the message carries no money intent. A "none" verdict from the model
// is final: the fallback parser only runs when the model produced no usable
// response at all.
func (p *Parser) Parse(
	ctx context.Context,
	text string,
	categories []models.Category,
	walletCurrency string,
) *models.ParsedTransaction {
	system := BuildPrompt(categories, walletCurrency)

	raw, err := p.provider.Complete(ctx, system, text)
	if err != nil {
		logger.Log.Debug().
			Err(err).
			Str("provider", p.provider.Name()).
			Msg("AI completion failed, using regex fallback")
		return ParseFallback(text)
	}

	payload, ok := extractJSON(raw)
	if !ok || !gjson.Valid(payload) {
		logger.Log.Debug().
			Str("provider", p.provider.Name()).
			Msg("AI response carried no JSON object, using regex fallback")
		return ParseFallback(text)
	}

	doc := gjson.Parse(payload)

	action := doc.Get("action").String()
	if action == "" || action == "none" {
		// The model saw no money event. Not a parse failure, so no fallback.
		return nil
	}

	amount := decimal.NewFromFloat(doc.Get("amount").Float())
	if !amount.IsPositive() {
		logger.Log.Debug().
			Str("provider", p.provider.Name()).
			Msg("AI returned non-positive amount, using regex fallback")
		return ParseFallback(text)
	}

	// Anything other than an explicit income action records as an expense,
	// so a novel action name from the model still captures the event.
	txType := models.TypeExpense
	if action == "create_income" {
		txType = models.TypeIncome
	}

	category := firstString(doc, "cat", "category")
	if strings.TrimSpace(category) == "" {
		if txType == models.TypeIncome {
			category = "Other Income"
		} else {
			category = "Other"
		}
	}

	language := firstString(doc, "lang", "language")
	if language == "" {
		language = "en"
	}

	return &models.ParsedTransaction{
		Type:        txType,
		Amount:      amount,
		Currency:    strings.ToUpper(doc.Get("currency").String()),
		Category:    category,
		Description: firstString(doc, "desc", "description"),
		Language:    language,
		TimeHint:    doc.Get("time").String(),
	}
}

// firstString returns the first non-empty value among the given keys.
func firstString(doc gjson.Result, keys ...string) string {
	for _, key := range keys {
		if value := doc.Get(key).String(); value != "" {
			return value
		}
	}
	return ""
}

// extractJSON pulls the first {...} object out of a model response,
// tolerating Markdown fences and pretty-printing.
func extractJSON(raw string) (string, bool) {
	cleaned := raw
	if strings.Contains(cleaned, "```") {
		cleaned = strings.ReplaceAll(cleaned, "```json", "")
		cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
		cleaned = strings.ReplaceAll(cleaned, "```", "")
	}
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.IndexByte(cleaned, '{')
	end := strings.LastIndexByte(cleaned, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return cleaned[start : end+1], true
}

package pipeline

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bexly/bexly-bot/internal/models"
)

// The regex fallback only understands English and Vietnamese. Messages in
// other languages rely on the AI path.
var (
	expenseIntentRe   = regexp.MustCompile(`spent|paid|bought|chi|mua|trả|for\s+\w+`)
	incomeIntentRe    = regexp.MustCompile(`received|earned|got|income|salary|nhận|lương|thu`)
	amountForRe       = regexp.MustCompile(`(?i)\$[\d,.]+\s*(for|on)|[\d,.]+k?\s*(for|on)`)
	vietnameseTextRe  = regexp.MustCompile(`(?i)[àáảãạăằắẳẵặâầấẩẫậèéẻẽẹêềếểễệìíỉĩịòóỏõọôồốổỗộơờớởỡợùúủũụưừứửữựỳýỷỹỵđ]|ăn|mua|chi|tiền|đồng|cho|của|được|vào|trong|ngoài|không|có`)
	currencySymbolRe  = regexp.MustCompile(`(?i)\$|usd|vnd|đ|¥|€|£|₩|฿`)
	viAmountSuffixRe  = regexp.MustCompile(`(?i)\d+\s*(tr|triệu|ngàn|nghìn)`)
	kAmountSuffixRe   = regexp.MustCompile(`(?i)\d+\s*k`)
	vndMentionRe      = regexp.MustCompile(`(?i)vnd|đồng|đ`)
	stripAmountRe     = regexp.MustCompile(`\$[\d,.]+`)
	stripNumberRe     = regexp.MustCompile(`(?i)[\d,.]+\s*(k|tr|usd|vnd|đ|dollars?|ngàn|nghìn|triệu)?`)
	stripKeywordRe    = regexp.MustCompile(`(?i)spent|paid|bought|received|earned|got|on|for|chi|mua|trả|nhận|lương|thu`)
	collapseSpacesRe  = regexp.MustCompile(`\s+`)
)

// Ordered: symbol-qualified and suffixed amounts must win over the bare
// number so "$20 for 2 people" picks 20, not 2.
var amountPatterns = []struct {
	re         *regexp.Regexp
	multiplier int64
	currency   string
}{
	{regexp.MustCompile(`\$\s*([\d,]+(?:\.\d{1,2})?)`), 1, "USD"},
	{regexp.MustCompile(`(?i)([\d,]+(?:\.\d{1,2})?)\s*(?:usd|dollars?)`), 1, "USD"},
	{regexp.MustCompile(`([\d,]+(?:\.\d{1,2})?)\s*(?:k|K|ngàn|nghìn)`), 1000, "VND"},
	{regexp.MustCompile(`([\d,]+(?:\.\d{1,2})?)\s*(?:tr|triệu)`), 1000000, "VND"},
	{regexp.MustCompile(`([\d,.]+)`), 1, ""},
}

// categoryKeywords maps canonical expense categories to trigger words.
var categoryKeywords = []struct {
	title    string
	keywords []string
}{
	{"Food & Drinks", []string{"lunch", "dinner", "breakfast", "food", "eat", "restaurant", "coffee", "ăn", "cơm", "phở", "cafe"}},
	{"Transportation", []string{"taxi", "uber", "grab", "bus", "gas", "fuel", "parking", "xe", "xăng"}},
	{"Shopping", []string{"buy", "bought", "shopping", "amazon", "mua", "sắm"}},
	{"Entertainment", []string{"movie", "netflix", "game", "concert", "phim", "giải trí"}},
	{"Bills & Utilities", []string{"bill", "electricity", "water", "internet", "phone", "điện", "nước", "wifi"}},
	{"Health", []string{"doctor", "medicine", "pharmacy", "hospital", "thuốc", "bệnh viện"}},
}

// ParseFallback is the deterministic regex parser used when the AI path
// yields no usable response. Returns nil when the text carries no money
// intent at all.
func ParseFallback(text string) *models.ParsedTransaction {
	lower := strings.ToLower(text)

	isExpense := expenseIntentRe.MatchString(lower)
	isIncome := incomeIntentRe.MatchString(lower)
	hasAmountFor := amountForRe.MatchString(text)

	if !isExpense && !isIncome && !hasAmountFor {
		return nil
	}

	txType := models.TypeExpense
	if isIncome {
		txType = models.TypeIncome
	}

	amount := decimal.Zero
	currency := "USD"
	for _, p := range amountPatterns {
		match := p.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		raw := strings.ReplaceAll(match[1], ",", "")
		parsed, err := decimal.NewFromString(strings.Trim(raw, "."))
		if err != nil {
			return nil
		}
		amount = parsed.Mul(decimal.NewFromInt(p.multiplier))
		if p.currency != "" {
			currency = p.currency
		} else if vndMentionRe.MatchString(text) {
			currency = "VND"
		}
		break
	}

	if !amount.IsPositive() {
		return nil
	}

	category := "Other"
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				category = entry.title
				break
			}
		}
		if category != "Other" {
			break
		}
	}

	description := stripAmountRe.ReplaceAllString(text, "")
	description = stripNumberRe.ReplaceAllString(description, "")
	description = stripKeywordRe.ReplaceAllString(description, "")
	description = strings.TrimSpace(collapseSpacesRe.ReplaceAllString(description, " "))
	if description == "" {
		description = category
	}

	hasVietnamese := vietnameseTextRe.MatchString(text)
	language := "en"
	if hasVietnamese {
		language = "vi"
	}

	// "tr"/"triệu"/"ngàn"/"nghìn" are Vietnamese-only shortcuts, always VND.
	// Bare "k" is ambiguous, only VND when the rest of the text reads Vietnamese.
	hasSymbol := currencySymbolRe.MatchString(text)
	impliesVND := viAmountSuffixRe.MatchString(text) ||
		(kAmountSuffixRe.MatchString(text) && hasVietnamese)
	finalCurrency := ""
	if hasSymbol || impliesVND {
		finalCurrency = currency
	}

	timeHint := ""
	switch {
	case strings.Contains(lower, "ăn sáng") || strings.Contains(lower, "breakfast"):
		timeHint = "morning"
	case strings.Contains(lower, "ăn trưa") || strings.Contains(lower, "lunch"):
		timeHint = "noon"
	case strings.Contains(lower, "ăn tối") || strings.Contains(lower, "dinner"):
		timeHint = "evening"
	case strings.Contains(lower, "hôm qua") || strings.Contains(lower, "yesterday"):
		timeHint = "yesterday"
	}

	return &models.ParsedTransaction{
		Type:        txType,
		Amount:      amount,
		Currency:    finalCurrency,
		Category:    category,
		Description: description,
		Language:    language,
		TimeHint:    timeHint,
	}
}

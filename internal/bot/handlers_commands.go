package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"github.com/bexly/bexly-bot/internal/i18n"
	"github.com/bexly/bexly-bot/internal/logger"
	"github.com/bexly/bexly-bot/internal/models"
)

const (
	periodToday = "today"
	periodWeek  = "week"
	periodMonth = "month"
)

// reportZone anchors day/week/month boundaries for summaries, matching the
// timezone transaction dates are resolved in.
var reportZone = time.FixedZone("ICT", 7*60*60)

// linkedAccount resolves the sender to a Bexly account, replying with the
// appropriate message when that fails. The third return reports success.
func (b *Bot) linkedAccount(
	ctx context.Context,
	tg TelegramAPI,
	chatID int64,
	from *tgmodels.User,
) (string, i18n.Strings, bool) {
	loc := i18n.Lookup(userLanguage(from))
	if from == nil {
		return "", loc, false
	}

	platformID := strconv.FormatInt(from.ID, 10)
	accountID, err := b.links.Lookup(ctx, platformTelegram, platformID)
	if errors.Is(err, models.ErrNotLinked) {
		b.reply(ctx, tg, chatID, loc.LinkFirst)
		return "", loc, false
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("Link lookup failed")
		b.reply(ctx, tg, chatID, loc.SaveFailed)
		return "", loc, false
	}
	return accountID, loc, true
}

// handleStart handles the /start command.
func (b *Bot) handleStart(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleStartCore(ctx, tgBot, update)
}

func (b *Bot) handleStartCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	loc := i18n.Lookup(userLanguage(update.Message.From))

	platformID := strconv.FormatInt(update.Message.From.ID, 10)
	accountID, err := b.links.Lookup(ctx, platformTelegram, platformID)
	if errors.Is(err, models.ErrNotLinked) {
		b.reply(ctx, tg, chatID, fmt.Sprintf(
			"👋 Welcome to Bexly!\n\n%s\n\nOpen the Bexly app and connect Telegram under Settings → Linked accounts.",
			loc.LinkFirst))
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("Link lookup failed")
		b.reply(ctx, tg, chatID, loc.SaveFailed)
		return
	}

	if err := b.categories.EnsureDefaults(ctx, accountID); err != nil {
		logger.Log.Error().
			Err(err).
			Str("account_hash", logger.HashAccountID(accountID)).
			Msg("Failed to seed default categories")
	}

	text := `👋 Welcome back!

Just tell me what you spent or received, in your own words:
• ` + "`50k lunch`" + `
• ` + "`nhận lương 10tr`" + `
• ` + "`spent $20 on taxi`" + `

I'll ask you to confirm before anything is saved.
Use /help to see all commands.`

	_, _ = tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: tgmodels.ParseModeMarkdown,
	})
}

// handleHelp handles the /help command.
func (b *Bot) handleHelp(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleHelpCore(ctx, tgBot, update)
}

func (b *Bot) handleHelpCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}

	text := `📚 *Available Commands*

*Recording:*
• Send any message like ` + "`50k lunch`" + ` or ` + "`received 500 usd salary`" + `
• Confirm with ✅ or dismiss with ❌

*Summaries:*
• ` + "`/balance`" + ` - Wallet balances
• ` + "`/today`" + ` - Today's transactions
• ` + "`/week`" + ` - This week's totals
• ` + "`/month`" + ` - This month's totals
• ` + "`/chart`" + ` - Weekly expense pie chart

*Account:*
• ` + "`/unlink`" + ` - Disconnect this Telegram account`

	_, _ = tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      text,
		ParseMode: tgmodels.ParseModeMarkdown,
	})
}

// handleBalance handles the /balance command.
func (b *Bot) handleBalance(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleBalanceCore(ctx, tgBot, update)
}

func (b *Bot) handleBalanceCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	accountID, loc, ok := b.linkedAccount(ctx, tg, chatID, update.Message.From)
	if !ok {
		return
	}

	wallets, err := b.wallets.ListByUser(ctx, accountID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Wallet list failed")
		b.reply(ctx, tg, chatID, loc.SaveFailed)
		return
	}
	if len(wallets) == 0 {
		b.reply(ctx, tg, chatID, loc.NoWallet)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("💼 <b>%s</b>\n\n", loc.Balance))
	for _, w := range wallets {
		marker := ""
		if w.IsDefault {
			marker = " ⭐"
		}
		sb.WriteString(fmt.Sprintf("• %s: <b>%s</b>%s\n",
			escapeHTML(w.Name), models.FormatAmount(w.Balance, w.Currency), marker))
	}

	_, _ = tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: tgmodels.ParseModeHTML,
	})
}

// handleToday handles the /today command.
func (b *Bot) handleToday(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleSummaryCore(ctx, tgBot, update, periodToday)
}

// handleWeek handles the /week command.
func (b *Bot) handleWeek(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleSummaryCore(ctx, tgBot, update, periodWeek)
}

// handleMonth handles the /month command.
func (b *Bot) handleMonth(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleSummaryCore(ctx, tgBot, update, periodMonth)
}

// handleSummaryCore renders income/expense totals for a period, plus the
// individual entries for /today.
func (b *Bot) handleSummaryCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update, period string) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	accountID, loc, ok := b.linkedAccount(ctx, tg, chatID, update.Message.From)
	if !ok {
		return
	}

	wallet, err := b.wallets.GetDefault(ctx, accountID)
	if errors.Is(err, models.ErrNoWallet) {
		b.reply(ctx, tg, chatID, loc.NoWallet)
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("Default wallet lookup failed")
		b.reply(ctx, tg, chatID, loc.SaveFailed)
		return
	}

	from, to := periodRange(period, time.Now())
	totals, err := b.ledger.SumByRange(ctx, accountID, from, to)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Summary query failed")
		b.reply(ctx, tg, chatID, loc.SaveFailed)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 <b>%s</b>\n\n", periodTitle(period)))
	sb.WriteString(fmt.Sprintf("💸 %s: <b>%s</b>\n",
		loc.Expense, models.FormatAmount(totals.Expense, wallet.Currency)))
	sb.WriteString(fmt.Sprintf("💰 %s: <b>%s</b>\n",
		loc.Income, models.FormatAmount(totals.Income, wallet.Currency)))

	if period == periodToday && totals.Count > 0 {
		txns, err := b.ledger.ListByRange(ctx, accountID, from, to, 10)
		if err == nil && len(txns) > 0 {
			sb.WriteString("\n")
			for _, txn := range txns {
				emoji := "💸"
				if txn.Type == models.TypeIncome {
					emoji = "💰"
				}
				sb.WriteString(fmt.Sprintf("%s %s: %s\n",
					emoji, escapeHTML(txn.Title), models.FormatAmount(txn.Amount, wallet.Currency)))
			}
		}
	}

	_, _ = tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: tgmodels.ParseModeHTML,
	})
}

// handleUnlink handles the /unlink command.
func (b *Bot) handleUnlink(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleUnlinkCore(ctx, tgBot, update)
}

func (b *Bot) handleUnlinkCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	loc := i18n.Lookup(userLanguage(update.Message.From))

	platformID := strconv.FormatInt(update.Message.From.ID, 10)
	removed, err := b.links.Delete(ctx, platformTelegram, platformID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Unlink failed")
		b.reply(ctx, tg, chatID, loc.SaveFailed)
		return
	}
	if !removed {
		b.reply(ctx, tg, chatID, loc.LinkFirst)
		return
	}
	b.reply(ctx, tg, chatID, "🔓 "+loc.Unlinked)
}

// periodRange returns the [from, to) bounds of a summary period around now.
func periodRange(period string, now time.Time) (time.Time, time.Time) {
	local := now.In(reportZone)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, reportZone)

	switch period {
	case periodWeek:
		// ISO week: Monday is day 0.
		offset := (int(local.Weekday()) + 6) % 7
		start := midnight.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case periodMonth:
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, reportZone)
		return start, start.AddDate(0, 1, 0)
	default:
		return midnight, midnight.AddDate(0, 0, 1)
	}
}

func periodTitle(period string) string {
	switch period {
	case periodWeek:
		return "This Week"
	case periodMonth:
		return "This Month"
	default:
		return "Today"
	}
}

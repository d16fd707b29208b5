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
	"github.com/google/uuid"

	"github.com/bexly/bexly-bot/internal/exchange"
	"github.com/bexly/bexly-bot/internal/i18n"
	"github.com/bexly/bexly-bot/internal/logger"
	"github.com/bexly/bexly-bot/internal/models"
	"github.com/bexly/bexly-bot/internal/pipeline"
)

// Callback data prefixes. Tokens are short enough that prefix+token always
// fits Telegram's 64-byte callback data limit.
const (
	confirmPrefix = "c_"
	cancelPrefix  = "x_"
)

// handleConfirmCallback commits a pending proposal.
func (b *Bot) handleConfirmCallback(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleConfirmCallbackCore(ctx, tgBot, update)
}

// handleConfirmCallbackCore is the testable implementation of handleConfirmCallback.
func (b *Bot) handleConfirmCallbackCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	chatID := cb.Message.Message.Chat.ID
	messageID := cb.Message.Message.ID
	token := strings.TrimPrefix(cb.Data, confirmPrefix)
	loc := i18n.Lookup(userLanguage(&cb.From))

	proposal, ok := b.pending.Take(token)
	if !ok {
		b.answer(ctx, tg, cb.ID, loc.Expired, true)
		b.editPlain(ctx, tg, chatID, messageID, loc.Expired)
		return
	}
	loc = i18n.Lookup(proposal.Parsed.Language)

	platformID := strconv.FormatInt(cb.From.ID, 10)
	accountID, err := b.links.Lookup(ctx, platformTelegram, platformID)
	if errors.Is(err, models.ErrNotLinked) {
		b.answer(ctx, tg, cb.ID, loc.LinkFirst, true)
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("Link lookup failed on confirm")
		b.pending.Restore(token, proposal)
		b.answer(ctx, tg, cb.ID, loc.SaveFailed, true)
		return
	}

	categories, err := b.categories.ListByUser(ctx, accountID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Category list failed on confirm")
		b.pending.Restore(token, proposal)
		b.answer(ctx, tg, cb.ID, loc.SaveFailed, true)
		return
	}
	category, err := pipeline.ResolveCategory(categories, proposal.Parsed.Category, proposal.Parsed.Type)
	if err != nil {
		b.answer(ctx, tg, cb.ID, loc.NoCategory, true)
		b.editPlain(ctx, tg, chatID, messageID, loc.NoCategory)
		return
	}

	wallet, err := b.wallets.GetDefault(ctx, accountID)
	if errors.Is(err, models.ErrNoWallet) {
		b.answer(ctx, tg, cb.ID, loc.NoWallet, true)
		b.editPlain(ctx, tg, chatID, messageID, loc.NoWallet)
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("Default wallet lookup failed on confirm")
		b.pending.Restore(token, proposal)
		b.answer(ctx, tg, cb.ID, loc.SaveFailed, true)
		return
	}

	// The preview resolved "no explicit currency" against the default
	// wallet at proposal time. Convert from that snapshot, not the wallet's
	// current currency, in case the default changed since.
	amount := proposal.Parsed.Amount
	fromCurrency := displayCurrency(&proposal.Parsed, proposal.WalletCurrency)
	note := ""
	converted := false
	if fromCurrency != wallet.Currency {
		result, convErr := b.converter.Convert(ctx, amount, fromCurrency, wallet.Currency)
		if convErr != nil {
			logger.Log.Warn().
				Err(convErr).
				Str("from", fromCurrency).
				Str("to", wallet.Currency).
				Msg("Conversion failed, keeping proposal for retry")
			b.pending.Restore(token, proposal)
			b.answer(ctx, tg, cb.ID, loc.ConversionFailed, true)
			return
		}
		note = strings.TrimSpace(exchange.ConversionNote(amount, fromCurrency, result.Rate, wallet.Currency))
		amount = result.Amount
		converted = true
	}

	id, err := uuid.NewV7()
	if err != nil {
		b.pending.Restore(token, proposal)
		b.answer(ctx, tg, cb.ID, loc.SaveFailed, true)
		return
	}

	title := proposal.Parsed.Description
	if title == "" {
		title = category.Title
	}

	txn := &models.Transaction{
		ID:         id,
		UserID:     accountID,
		WalletID:   wallet.ID,
		CategoryID: category.ID,
		Type:       proposal.Parsed.Type,
		Amount:     amount,
		Title:      title,
		Notes:      note,
		Date:       pipeline.ResolveTimeHint(proposal.Parsed.TimeHint, time.Now()),
		Source:     transactionSource,
	}
	if err := b.ledger.Commit(ctx, txn); err != nil {
		if errors.Is(err, models.ErrNoWallet) {
			b.answer(ctx, tg, cb.ID, loc.NoWallet, true)
			b.editPlain(ctx, tg, chatID, messageID, loc.NoWallet)
			return
		}
		logger.Log.Error().
			Err(err).
			Str("account_hash", logger.HashAccountID(accountID)).
			Msg("Ledger commit failed, keeping proposal for retry")
		b.pending.Restore(token, proposal)
		b.answer(ctx, tg, cb.ID, loc.SaveFailed, true)
		return
	}

	typeWord := loc.Expense
	if txn.Type == models.TypeIncome {
		typeWord = loc.Income
	}
	text := fmt.Sprintf("✅ <b>%s</b> %s", models.FormatAmount(amount, wallet.Currency), typeWord)
	if converted {
		text += fmt.Sprintf(" (%s %s)", loc.From, models.FormatAmount(proposal.Parsed.Amount, fromCurrency))
	}
	text += fmt.Sprintf(" → <b>%s</b>\n📁 %s",
		escapeHTML(wallet.Name),
		escapeHTML(category.LocalizedTitle(proposal.Parsed.Language)))

	_, err = tg.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: tgmodels.ParseModeHTML,
	})
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to edit confirmation message")
	}
	b.answer(ctx, tg, cb.ID, "✅ "+loc.Recorded, false)
}

// handleCancelCallback discards a pending proposal. Cancelling an already
// consumed or expired token still confirms the cancel to the user.
func (b *Bot) handleCancelCallback(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleCancelCallbackCore(ctx, tgBot, update)
}

// handleCancelCallbackCore is the testable implementation of handleCancelCallback.
func (b *Bot) handleCancelCallbackCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	token := strings.TrimPrefix(cb.Data, cancelPrefix)

	loc := i18n.Lookup(userLanguage(&cb.From))
	if proposal, ok := b.pending.Take(token); ok {
		loc = i18n.Lookup(proposal.Parsed.Language)
	}

	b.editPlain(ctx, tg, cb.Message.Message.Chat.ID, cb.Message.Message.ID, "❌ "+loc.Cancelled)
	b.answer(ctx, tg, cb.ID, loc.Cancelled, false)
}

// answer acknowledges a callback query. Every callback gets exactly one answer.
func (b *Bot) answer(ctx context.Context, tg TelegramAPI, callbackID, text string, alert bool) {
	_, err := tg.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to answer callback query")
	}
}

// editPlain replaces a message's text and drops its inline keyboard.
func (b *Bot) editPlain(ctx context.Context, tg TelegramAPI, chatID int64, messageID int, text string) {
	_, err := tg.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to edit message")
	}
}

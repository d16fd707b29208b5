package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"github.com/bexly/bexly-bot/internal/i18n"
	"github.com/bexly/bexly-bot/internal/logger"
	"github.com/bexly/bexly-bot/internal/models"
	"github.com/bexly/bexly-bot/internal/pending"
)

// handleFreeText turns a plain chat message into a transaction proposal.
func (b *Bot) handleFreeText(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleFreeTextCore(ctx, tgBot, update)
}

// handleFreeTextCore is the testable implementation of handleFreeText.
func (b *Bot) handleFreeTextCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	text := strings.TrimSpace(update.Message.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return
	}

	chatID := update.Message.Chat.ID
	loc := i18n.Lookup(userLanguage(update.Message.From))
	platformID := strconv.FormatInt(update.Message.From.ID, 10)

	accountID, err := b.links.Lookup(ctx, platformTelegram, platformID)
	if errors.Is(err, models.ErrNotLinked) {
		b.reply(ctx, tg, chatID, loc.LinkFirst)
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("Link lookup failed")
		b.reply(ctx, tg, chatID, loc.SaveFailed)
		return
	}

	// Parsing can take a couple of seconds with an LLM in the path.
	_, _ = tg.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: tgmodels.ChatActionTyping,
	})

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

	categories, err := b.categories.ListByUser(ctx, accountID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Category list failed")
		b.reply(ctx, tg, chatID, loc.SaveFailed)
		return
	}
	if len(categories) == 0 {
		b.reply(ctx, tg, chatID, loc.NoCategory)
		return
	}

	parsed := b.parser.Parse(ctx, text, categories, wallet.Currency)
	if parsed == nil {
		logger.Log.Debug().
			Str("user_hash", logger.HashPlatformID(update.Message.From.ID)).
			Msg("No financial intent detected")
		return
	}

	// Reply in the language the message was written in.
	loc = i18n.Lookup(parsed.Language)

	token := b.pending.Put(pending.Proposal{
		Parsed:         *parsed,
		WalletCurrency: wallet.Currency,
	})

	_, err = tg.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      proposalPreview(parsed, categories, wallet.Currency, loc),
		ParseMode: tgmodels.ParseModeHTML,
		ReplyMarkup: &tgmodels.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgmodels.InlineKeyboardButton{{
				{Text: "✅ " + loc.Confirm, CallbackData: confirmPrefix + token},
				{Text: "❌ " + loc.Cancel, CallbackData: cancelPrefix + token},
			}},
		},
	})
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to send proposal preview")
	}
}

// reply sends a plain text message, logging send failures.
func (b *Bot) reply(ctx context.Context, tg TelegramAPI, chatID int64, text string) {
	_, err := tg.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to send message")
	}
}

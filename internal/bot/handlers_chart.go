package bot

import (
	"bytes"
	"context"
	"time"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"github.com/bexly/bexly-bot/internal/logger"
)

// handleChart handles the /chart command with a weekly expense breakdown.
func (b *Bot) handleChart(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
	b.handleChartCore(ctx, tgBot, update)
}

func (b *Bot) handleChartCore(ctx context.Context, tg TelegramAPI, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	accountID, loc, ok := b.linkedAccount(ctx, tg, chatID, update.Message.From)
	if !ok {
		return
	}

	from, to := periodRange(periodWeek, time.Now())
	totals, err := b.ledger.ExpenseTotalsByCategory(ctx, accountID, from, to)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Category totals query failed")
		b.reply(ctx, tg, chatID, loc.SaveFailed)
		return
	}
	if len(totals) == 0 {
		b.reply(ctx, tg, chatID, "📊 No expenses recorded this week yet.")
		return
	}

	chart, err := GenerateExpenseChart(totals, "Expenses - This Week")
	if err != nil {
		logger.Log.Error().Err(err).Msg("Chart rendering failed")
		b.reply(ctx, tg, chatID, loc.SaveFailed)
		return
	}

	_, err = tg.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &tgmodels.InputFileUpload{
			Filename: chartFilename(from),
			Data:     bytes.NewReader(chart),
		},
		Caption: "📊 " + periodTitle(periodWeek),
	})
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to send chart")
	}
}

// Package bot provides the Telegram bot initialization and handlers.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bexly/bexly-bot/internal/ai"
	"github.com/bexly/bexly-bot/internal/config"
	"github.com/bexly/bexly-bot/internal/exchange"
	"github.com/bexly/bexly-bot/internal/logger"
	"github.com/bexly/bexly-bot/internal/models"
	"github.com/bexly/bexly-bot/internal/pending"
	"github.com/bexly/bexly-bot/internal/pipeline"
	"github.com/bexly/bexly-bot/internal/repository"
)

// platformTelegram tags platform_links rows and the transaction source.
const (
	platformTelegram  = "telegram"
	transactionSource = "telegram_bot"
)

// linkStore resolves platform identities to Bexly account IDs.
type linkStore interface {
	Lookup(ctx context.Context, platform, platformUserID string) (string, error)
	Delete(ctx context.Context, platform, platformUserID string) (bool, error)
}

// walletStore serves wallet reads. Balances change only through ledger commits.
type walletStore interface {
	GetDefault(ctx context.Context, userID string) (*models.Wallet, error)
	ListByUser(ctx context.Context, userID string) ([]models.Wallet, error)
}

type categoryStore interface {
	ListByUser(ctx context.Context, userID string) ([]models.Category, error)
	EnsureDefaults(ctx context.Context, userID string) error
}

type ledgerStore interface {
	Commit(ctx context.Context, txn *models.Transaction) error
	SumByRange(ctx context.Context, userID string, from, to time.Time) (*repository.PeriodTotals, error)
	ExpenseTotalsByCategory(ctx context.Context, userID string, from, to time.Time) ([]repository.CategoryTotal, error)
	ListByRange(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.Transaction, error)
}

// Compile-time checks that the repositories satisfy the store interfaces.
var (
	_ linkStore     = (*repository.LinkRepository)(nil)
	_ walletStore   = (*repository.WalletRepository)(nil)
	_ categoryStore = (*repository.CategoryRepository)(nil)
	_ ledgerStore   = (*repository.TransactionRepository)(nil)
)

// Bot wraps the Telegram bot with application dependencies.
type Bot struct {
	bot        *bot.Bot
	cfg        *config.Config
	links      linkStore
	wallets    walletStore
	categories categoryStore
	ledger     ledgerStore
	parser     *pipeline.Parser
	converter  *exchange.Converter
	pending    *pending.Store
}

// New creates a new Bot instance.
func New(cfg *config.Config, pool *pgxpool.Pool, provider ai.Provider, converter *exchange.Converter) (*Bot, error) {
	b := &Bot{
		cfg:        cfg,
		links:      repository.NewLinkRepository(pool),
		wallets:    repository.NewWalletRepository(pool),
		categories: repository.NewCategoryRepository(pool),
		ledger:     repository.NewTransactionRepository(pool),
		parser:     pipeline.NewParser(provider),
		converter:  converter,
		pending:    pending.NewStore(cfg.PendingTTL),
	}

	opts := []bot.Option{
		bot.WithMiddlewares(b.loggingMiddleware),
		bot.WithDefaultHandler(b.handleFreeText),
	}

	telegramBot, err := bot.New(cfg.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b.bot = telegramBot
	b.registerHandlers()

	return b, nil
}

// Start begins polling for updates.
func (b *Bot) Start(ctx context.Context) {
	logger.Log.Info().Msg("Bot started polling")
	b.bot.Start(ctx)
}

// registerHandlers sets up command and callback handlers.
func (b *Bot) registerHandlers() {
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, b.handleStart)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, b.handleHelp)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/balance", bot.MatchTypePrefix, b.handleBalance)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypePrefix, b.handleToday)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypePrefix, b.handleWeek)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/month", bot.MatchTypePrefix, b.handleMonth)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/chart", bot.MatchTypePrefix, b.handleChart)
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/unlink", bot.MatchTypePrefix, b.handleUnlink)

	b.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, confirmPrefix, bot.MatchTypePrefix, b.handleConfirmCallback)
	b.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cancelPrefix, bot.MatchTypePrefix, b.handleCancelCallback)
}

// loggingMiddleware logs every inbound update with hashed user identifiers.
func (b *Bot) loggingMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, tgBot *bot.Bot, update *tgmodels.Update) {
		switch {
		case update.Message != nil && update.Message.From != nil:
			logger.Log.Info().
				Str("user_hash", logger.HashPlatformID(update.Message.From.ID)).
				Str("text", logger.SanitizeText(update.Message.Text)).
				Msg("Incoming message")
		case update.CallbackQuery != nil:
			logger.Log.Info().
				Str("user_hash", logger.HashPlatformID(update.CallbackQuery.From.ID)).
				Str("data", update.CallbackQuery.Data).
				Msg("Incoming callback")
		}
		next(ctx, tgBot, update)
	}
}

// userLanguage maps a Telegram language code to a supported reply language.
func userLanguage(from *tgmodels.User) string {
	if from == nil || from.LanguageCode == "" {
		return "en"
	}
	lang, _, _ := strings.Cut(from.LanguageCode, "-")
	return strings.ToLower(lang)
}

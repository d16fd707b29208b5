package bot

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bexly/bexly-bot/internal/config"
	"github.com/bexly/bexly-bot/internal/exchange"
	"github.com/bexly/bexly-bot/internal/models"
	"github.com/bexly/bexly-bot/internal/pending"
	"github.com/bexly/bexly-bot/internal/pipeline"
	"github.com/bexly/bexly-bot/internal/repository"
)

// stubProvider returns a canned AI completion.
type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(_ context.Context, _, _ string) (string, error) {
	return s.response, s.err
}

// fakeLinks is an in-memory linkStore.
type fakeLinks struct {
	links map[string]string
	err   error
}

func (f *fakeLinks) Lookup(_ context.Context, platform, platformUserID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	userID, ok := f.links[platform+":"+platformUserID]
	if !ok {
		return "", models.ErrNotLinked
	}
	return userID, nil
}

func (f *fakeLinks) Delete(_ context.Context, platform, platformUserID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	key := platform + ":" + platformUserID
	if _, ok := f.links[key]; !ok {
		return false, nil
	}
	delete(f.links, key)
	return true, nil
}

// fakeWallets is an in-memory walletStore.
type fakeWallets struct {
	wallets []models.Wallet
	err     error
}

func (f *fakeWallets) GetDefault(_ context.Context, _ string) (*models.Wallet, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.wallets) == 0 {
		return nil, models.ErrNoWallet
	}
	return &f.wallets[0], nil
}

func (f *fakeWallets) ListByUser(_ context.Context, _ string) ([]models.Wallet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.wallets, nil
}

// fakeCategories is an in-memory categoryStore.
type fakeCategories struct {
	categories []models.Category
	ensured    []string
	err        error
}

func (f *fakeCategories) ListByUser(_ context.Context, _ string) ([]models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeCategories) EnsureDefaults(_ context.Context, userID string) error {
	f.ensured = append(f.ensured, userID)
	return f.err
}

// fakeLedger is an in-memory ledgerStore.
type fakeLedger struct {
	committed []*models.Transaction
	commitErr error

	totals    *repository.PeriodTotals
	catTotals []repository.CategoryTotal
	txns      []models.Transaction
	queryErr  error
}

func (f *fakeLedger) Commit(_ context.Context, txn *models.Transaction) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = append(f.committed, txn)
	return nil
}

func (f *fakeLedger) SumByRange(_ context.Context, _ string, _, _ time.Time) (*repository.PeriodTotals, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.totals == nil {
		return &repository.PeriodTotals{}, nil
	}
	return f.totals, nil
}

func (f *fakeLedger) ExpenseTotalsByCategory(_ context.Context, _ string, _, _ time.Time) ([]repository.CategoryTotal, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.catTotals, nil
}

func (f *fakeLedger) ListByRange(_ context.Context, _ string, _, _ time.Time, _ int) ([]models.Transaction, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.txns, nil
}

// fakeRateSource returns a fixed rate or error.
type fakeRateSource struct {
	rate decimal.Decimal
	err  error
}

func (f *fakeRateSource) Rate(_ context.Context, _, _ string) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.rate, nil
}

// testDeps bundles the fakes wired into a test bot.
type testDeps struct {
	links      *fakeLinks
	wallets    *fakeWallets
	categories *fakeCategories
	ledger     *fakeLedger
	provider   *stubProvider
	rates      *fakeRateSource
}

// defaultTestDeps models a linked Vietnamese user with a VND wallet.
func defaultTestDeps() *testDeps {
	return &testDeps{
		links: &fakeLinks{links: map[string]string{"telegram:100": "acct-1"}},
		wallets: &fakeWallets{wallets: []models.Wallet{{
			ID:        1,
			UserID:    "acct-1",
			Name:      "Main",
			Currency:  "VND",
			Balance:   decimal.NewFromInt(1000000),
			IsDefault: true,
		}}},
		categories: &fakeCategories{categories: []models.Category{
			{ID: 10, UserID: "acct-1", Title: "Food & Drinks", TransactionType: models.TypeExpense,
				LocalizedTitles: map[string]string{"vi": "Ăn uống"}},
			{ID: 11, UserID: "acct-1", Title: "Other", TransactionType: models.TypeExpense},
			{ID: 12, UserID: "acct-1", Title: "Salary", TransactionType: models.TypeIncome},
			{ID: 13, UserID: "acct-1", Title: "Other Income", TransactionType: models.TypeIncome},
		}},
		ledger:   &fakeLedger{},
		provider: &stubProvider{response: `{"action":"none"}`},
		rates:    &fakeRateSource{rate: decimal.NewFromInt(25500)},
	}
}

// newTestBot builds a Bot around the fakes, bypassing the Telegram client.
func newTestBot(t *testing.T, deps *testDeps) *Bot {
	t.Helper()

	return &Bot{
		cfg:        &config.Config{PendingTTL: time.Minute},
		links:      deps.links,
		wallets:    deps.wallets,
		categories: deps.categories,
		ledger:     deps.ledger,
		parser:     pipeline.NewParser(deps.provider),
		converter:  exchange.NewConverter(deps.rates),
		pending:    pending.NewStore(time.Minute),
	}
}

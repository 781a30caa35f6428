package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aurafin/aura-backend/internal/adapter/repository/memory"
	"github.com/aurafin/aura-backend/internal/domain"
	"github.com/aurafin/aura-backend/internal/usecase/seeder"
)

// MockIdentityUpdater is a mock implementation of IdentityUpdater for testing
type MockIdentityUpdater struct {
	mock.Mock
}

func (m *MockIdentityUpdater) UpdateRewardPoints(ctx context.Context, identityID string, points int) error {
	args := m.Called(ctx, identityID, points)
	return args.Error(0)
}

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func fixedPrice() decimal.Decimal {
	return decimal.NewFromInt(160)
}

// newActiveService returns a store activated for a non-master identity with
// the given wallets, persisting into a fresh in-memory repository.
func newActiveService(t *testing.T, wallets []domain.Wallet) (*Service, domain.SnapshotRepository) {
	t.Helper()

	repo := memory.NewSnapshotRepository()
	svc := NewService(repo, nil)
	svc.Now = fixedClock
	svc.Price = fixedPrice

	identity := &domain.Identity{ID: "u-test", Name: "Test User", Email: "test@example.com", RewardPoints: 1000}
	require.NoError(t, svc.Activate(context.Background(), identity))
	if wallets != nil {
		svc.UpdateWallets(context.Background(), wallets)
	}
	return svc, repo
}

func usdBalance(t *testing.T, svc *Service) decimal.Decimal {
	t.Helper()
	for _, w := range svc.Wallets() {
		if w.Currency == domain.CurrencyUSD {
			return w.Balance
		}
	}
	t.Fatal("no USD wallet")
	return decimal.Zero
}

func TestActivate_LoadsExistingSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()

	saved := &domain.Snapshot{
		User: &domain.Identity{ID: "u-test", Email: "Test@Example.com"},
		Wallets: []domain.Wallet{
			{ID: "usd-wallet", Currency: domain.CurrencyUSD, Balance: decimal.NewFromInt(42), Symbol: "$"},
		},
		Transactions: []domain.Transaction{},
		Investments:  []domain.Investment{},
		Cards:        []domain.Card{},
		Rewards:      []domain.Reward{{ID: "r-x", Brand: "Nike", Deal: "deal", Logo: "👟", Cost: 100}},
	}
	require.NoError(t, repo.Save(ctx, "aura_data_test@example.com", saved))

	svc := NewService(repo, nil)
	// Email case differs from the saved key; lookup is case-insensitive.
	require.NoError(t, svc.Activate(ctx, &domain.Identity{ID: "u-test", Email: "TEST@example.COM"}))

	require.Len(t, svc.Wallets(), 1)
	assert.True(t, usdBalance(t, svc).Equal(decimal.NewFromInt(42)))
	require.Len(t, svc.Rewards(), 1)
	assert.Equal(t, "Nike", svc.Rewards()[0].Brand)
}

func TestActivate_SnapshotWithNilCollectionsDefaults(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()
	require.NoError(t, repo.Save(ctx, "aura_data_test@example.com", &domain.Snapshot{
		Wallets: []domain.Wallet{{ID: "usd-wallet", Currency: domain.CurrencyUSD, Balance: decimal.NewFromInt(1)}},
	}))

	svc := NewService(repo, nil)
	require.NoError(t, svc.Activate(ctx, &domain.Identity{ID: "u-test", Email: "test@example.com"}))

	assert.Empty(t, svc.Transactions())
	assert.Empty(t, svc.Cards())
	// Missing rewards fall back to the seed set.
	assert.Len(t, svc.Rewards(), len(seeder.Rewards()))
}

func TestActivate_SeedsMasterIdentity(t *testing.T) {
	svc := NewService(memory.NewSnapshotRepository(), nil)
	require.NoError(t, svc.Activate(context.Background(), seeder.MasterIdentity()))

	assert.Len(t, svc.Wallets(), 3)
	assert.True(t, usdBalance(t, svc).Equal(decimal.NewFromFloat(12450.50)))
	assert.Len(t, svc.Transactions(), 5)
	assert.Len(t, svc.Investments(), 4)
	assert.Len(t, svc.Cards(), 2)
	assert.Len(t, svc.Rewards(), 5)
}

func TestActivate_DefaultsUnknownIdentity(t *testing.T) {
	svc := NewService(memory.NewSnapshotRepository(), nil)
	require.NoError(t, svc.Activate(context.Background(), &domain.Identity{ID: "u-new", Email: "new@example.com"}))

	assert.True(t, usdBalance(t, svc).Equal(decimal.NewFromInt(2500)))
	assert.Empty(t, svc.Transactions())
	assert.Empty(t, svc.Cards())
	for _, inv := range svc.Investments() {
		assert.True(t, inv.Holdings.IsZero())
		assert.True(t, inv.CurrentValue.IsZero())
	}
	assert.Len(t, svc.Rewards(), 5)
}

func TestActivate_SwitchingIdentitiesDiscardsState(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewSnapshotRepository(), nil)

	require.NoError(t, svc.Activate(ctx, seeder.MasterIdentity()))
	svc.AddMoney(ctx, decimal.NewFromInt(100), "Bank Transfer")
	require.Len(t, svc.Transactions(), 6)

	require.NoError(t, svc.Activate(ctx, &domain.Identity{ID: "u-other", Email: "other@example.com"}))
	assert.Empty(t, svc.Transactions(), "previous identity's state must be discarded")

	// Master's snapshot survives and reloads with the deposit intact.
	require.NoError(t, svc.Activate(ctx, seeder.MasterIdentity()))
	assert.Len(t, svc.Transactions(), 6)
}

func TestAddMoney(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActiveService(t, []domain.Wallet{
		{ID: "usd-wallet", Currency: domain.CurrencyUSD, Balance: decimal.NewFromInt(200), Symbol: "$"},
	})

	svc.AddMoney(ctx, decimal.NewFromInt(50), "Apple Pay")

	assert.True(t, usdBalance(t, svc).Equal(decimal.NewFromInt(250)))

	txs := svc.Transactions()
	require.NotEmpty(t, txs)
	head := txs[0]
	assert.Equal(t, "Deposit via Apple Pay", head.Title)
	assert.Equal(t, domain.EntryTypeCredit, head.Type)
	assert.True(t, head.Amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, domain.CategoryTransfer, head.Category)
	assert.Equal(t, "2024-06-01", head.Date)
}

func TestAddMoney_NoOpCases(t *testing.T) {
	ctx := context.Background()

	t.Run("non-positive amount", func(t *testing.T) {
		svc, _ := newActiveService(t, nil)
		before := len(svc.Transactions())
		svc.AddMoney(ctx, decimal.Zero, "Apple Pay")
		svc.AddMoney(ctx, decimal.NewFromInt(-10), "Apple Pay")
		assert.Len(t, svc.Transactions(), before)
	})

	t.Run("no USD wallet", func(t *testing.T) {
		svc, _ := newActiveService(t, []domain.Wallet{
			{ID: "gbp-wallet", Currency: domain.CurrencyGBP, Balance: decimal.NewFromInt(10), Symbol: "£"},
		})
		before := len(svc.Transactions())
		svc.AddMoney(ctx, decimal.NewFromInt(50), "Apple Pay")
		assert.Len(t, svc.Transactions(), before)
	})
}

func TestSendMoney_DebitsAndRecords(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActiveService(t, []domain.Wallet{
		{ID: "usd-wallet", Currency: domain.CurrencyUSD, Balance: decimal.NewFromInt(500), Symbol: "$"},
	})

	svc.SendMoney(ctx, decimal.NewFromInt(120), "Aura Tag", domain.CurrencyUSD, "dinner split")

	assert.True(t, usdBalance(t, svc).Equal(decimal.NewFromInt(380)))

	head := svc.Transactions()[0]
	assert.Equal(t, "Sent via Aura Tag", head.Title)
	assert.Equal(t, domain.EntryTypeDebit, head.Type)
	assert.True(t, head.Amount.Equal(decimal.NewFromInt(-120)))
	assert.Equal(t, "dinner split", head.Narrative)
}

func TestSendMoney_ClampsAtZero(t *testing.T) {
	// Over-withdrawal lands on exactly zero, never negative: the store
	// clamps instead of rejecting.
	ctx := context.Background()
	svc, _ := newActiveService(t, []domain.Wallet{
		{ID: "usd-wallet", Currency: domain.CurrencyUSD, Balance: decimal.NewFromInt(100), Symbol: "$"},
	})

	svc.SendMoney(ctx, decimal.NewFromInt(150), "X", domain.CurrencyUSD, "")

	assert.True(t, usdBalance(t, svc).IsZero(), "balance should clamp to exactly 0")

	head := svc.Transactions()[0]
	assert.True(t, head.Amount.Equal(decimal.NewFromInt(-150)), "transaction records the full attempted amount")
}

func TestSendMoney_PrependsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActiveService(t, []domain.Wallet{
		{ID: "usd-wallet", Currency: domain.CurrencyUSD, Balance: decimal.NewFromInt(100), Symbol: "$"},
	})

	svc.SendMoney(ctx, decimal.NewFromInt(10), "first", domain.CurrencyUSD, "")
	svc.SendMoney(ctx, decimal.NewFromInt(20), "second", domain.CurrencyUSD, "")

	txs := svc.Transactions()
	require.GreaterOrEqual(t, len(txs), 2)
	assert.Equal(t, "Sent via second", txs[0].Title)
	assert.Equal(t, "Sent via first", txs[1].Title)
}

func TestSendMoney_UnknownCurrencyWalletIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActiveService(t, []domain.Wallet{
		{ID: "usd-wallet", Currency: domain.CurrencyUSD, Balance: decimal.NewFromInt(100), Symbol: "$"},
	})

	before := len(svc.Transactions())
	svc.SendMoney(ctx, decimal.NewFromInt(10), "X", domain.CurrencyETH, "")
	assert.Len(t, svc.Transactions(), before)
	assert.True(t, usdBalance(t, svc).Equal(decimal.NewFromInt(100)))
}

func TestBuyAsset_AdjustsHoldingsAndValue(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewSnapshotRepository(), nil)
	svc.Price = fixedPrice
	require.NoError(t, svc.Activate(ctx, seeder.MasterIdentity()))

	svc.BuyAsset(ctx, "1", decimal.NewFromInt(800))

	var nvda domain.Investment
	for _, inv := range svc.Investments() {
		if inv.ID == "1" {
			nvda = inv
		}
	}
	// 800 / 160 = 5 units on top of the seeded 10.
	assert.True(t, nvda.Holdings.Equal(decimal.NewFromInt(15)), "holdings %s", nvda.Holdings)
	// Value grows by the traded USD amount, not by units x price.
	assert.True(t, nvda.CurrentValue.Equal(decimal.NewFromInt(10000)), "value %s", nvda.CurrentValue)
	assert.True(t, usdBalance(t, svc).Equal(decimal.NewFromFloat(11650.50)))

	// No transaction record is produced by trades.
	assert.Len(t, svc.Transactions(), 5)
}

func TestBuyAsset_CanOverdrawUSDWallet(t *testing.T) {
	// Unlike SendMoney, the buy-side USD debit has no floor. This asymmetry
	// is deliberate and pinned here.
	ctx := context.Background()
	svc := NewService(memory.NewSnapshotRepository(), nil)
	svc.Price = fixedPrice
	require.NoError(t, svc.Activate(ctx, &domain.Identity{ID: "u-test", Email: "test@example.com"}))

	svc.BuyAsset(ctx, "1", decimal.NewFromInt(4000))

	assert.True(t, usdBalance(t, svc).Equal(decimal.NewFromInt(-1500)), "balance %s", usdBalance(t, svc))
}

func TestSellAsset_MirrorsBuyWithClamping(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewSnapshotRepository(), nil)
	svc.Price = fixedPrice
	require.NoError(t, svc.Activate(ctx, seeder.MasterIdentity()))

	// Selling far more than the position is worth clamps both figures.
	svc.SellAsset(ctx, "3", decimal.NewFromInt(99999))

	var tsla domain.Investment
	for _, inv := range svc.Investments() {
		if inv.ID == "3" {
			tsla = inv
		}
	}
	assert.True(t, tsla.Holdings.IsZero())
	assert.True(t, tsla.CurrentValue.IsZero())
	assert.True(t, usdBalance(t, svc).Equal(decimal.NewFromFloat(12450.50+99999)))
}

func TestBuyThenSell_ValueAndHoldingsDrift(t *testing.T) {
	// Holdings move by units at the sampled price while value moves by the
	// USD amount, so the two legitimately drift from price x quantity.
	ctx := context.Background()
	svc := NewService(memory.NewSnapshotRepository(), nil)
	require.NoError(t, svc.Activate(ctx, &domain.Identity{ID: "u-test", Email: "test@example.com"}))

	svc.Price = func() decimal.Decimal { return decimal.NewFromInt(150) }
	svc.BuyAsset(ctx, "2", decimal.NewFromInt(300)) // +2 units, +300 value

	svc.Price = func() decimal.Decimal { return decimal.NewFromInt(200) }
	svc.SellAsset(ctx, "2", decimal.NewFromInt(200)) // -1 unit, -200 value

	var btc domain.Investment
	for _, inv := range svc.Investments() {
		if inv.ID == "2" {
			btc = inv
		}
	}
	assert.True(t, btc.Holdings.Equal(decimal.NewFromInt(1)), "holdings %s", btc.Holdings)
	assert.True(t, btc.CurrentValue.Equal(decimal.NewFromInt(100)), "value %s", btc.CurrentValue)
	// 1 unit at either sampled price is worth 150-200, yet recorded value
	// is 100: the additive ledger is not mark-to-market.
}

func TestBuySell_UnknownAssetIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewSnapshotRepository(), nil)
	require.NoError(t, svc.Activate(ctx, seeder.MasterIdentity()))

	before := usdBalance(t, svc)
	svc.BuyAsset(ctx, "no-such-asset", decimal.NewFromInt(100))
	svc.SellAsset(ctx, "no-such-asset", decimal.NewFromInt(100))
	assert.True(t, usdBalance(t, svc).Equal(before))
}

func TestToggleCardStatus_IsItsOwnInverse(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewSnapshotRepository(), nil)
	require.NoError(t, svc.Activate(ctx, seeder.MasterIdentity()))

	original := svc.Cards()[0].Status

	svc.ToggleCardStatus(ctx, "1")
	assert.NotEqual(t, original, svc.Cards()[0].Status)

	svc.ToggleCardStatus(ctx, "1")
	assert.Equal(t, original, svc.Cards()[0].Status)
}

func TestToggleCardStatus_UnknownCardIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewSnapshotRepository(), nil)
	require.NoError(t, svc.Activate(ctx, seeder.MasterIdentity()))

	before := svc.Cards()
	svc.ToggleCardStatus(ctx, "no-such-card")
	assert.Equal(t, before, svc.Cards())
}

func TestCreateCard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActiveService(t, nil)

	before := len(svc.Cards())
	card := svc.CreateCard(ctx)
	require.NotNil(t, card)

	assert.Len(t, svc.Cards(), before+1)
	assert.Equal(t, domain.CardTypeVirtual, card.Type)
	assert.Equal(t, domain.CardStatusActive, card.Status)
	assert.Equal(t, "05/29", card.Expiry)
	assert.NoError(t, card.Validate(), "lastFour must match the generated number")

	// 4 groups of 4 digits separated by spaces.
	assert.Len(t, card.CardNumber, 19)
}

func TestClaimReward(t *testing.T) {
	ctx := context.Background()

	newSvcWithPoints := func(t *testing.T, points int, updater IdentityUpdater) *Service {
		t.Helper()
		svc := NewService(memory.NewSnapshotRepository(), updater)
		identity := &domain.Identity{ID: "u-test", Email: "test@example.com", RewardPoints: points}
		require.NoError(t, svc.Activate(ctx, identity))
		return svc
	}

	t.Run("successful claim decrements points exactly", func(t *testing.T) {
		updater := new(MockIdentityUpdater)
		updater.On("UpdateRewardPoints", mock.Anything, "u-test", 0).Return(nil)

		// r4 costs 500; points exactly equal the cost.
		svc := newSvcWithPoints(t, 500, updater)
		assert.True(t, svc.ClaimReward(ctx, "r4"))
		assert.Equal(t, 0, svc.Identity().RewardPoints)

		for _, r := range svc.Rewards() {
			if r.ID == "r4" {
				assert.True(t, r.Claimed)
			}
		}
		updater.AssertExpectations(t)
	})

	t.Run("second claim returns false", func(t *testing.T) {
		svc := newSvcWithPoints(t, 2000, nil)
		require.True(t, svc.ClaimReward(ctx, "r4"))
		pointsAfter := svc.Identity().RewardPoints

		assert.False(t, svc.ClaimReward(ctx, "r4"))
		assert.Equal(t, pointsAfter, svc.Identity().RewardPoints, "failed claim must not change state")
	})

	t.Run("insufficient points returns false", func(t *testing.T) {
		svc := newSvcWithPoints(t, 499, nil)
		assert.False(t, svc.ClaimReward(ctx, "r4"))
		assert.Equal(t, 499, svc.Identity().RewardPoints)
		for _, r := range svc.Rewards() {
			assert.False(t, r.Claimed)
		}
	})

	t.Run("unknown reward returns false", func(t *testing.T) {
		svc := newSvcWithPoints(t, 10000, nil)
		assert.False(t, svc.ClaimReward(ctx, "no-such-reward"))
	})

	t.Run("no active identity returns false", func(t *testing.T) {
		svc := NewService(memory.NewSnapshotRepository(), nil)
		assert.False(t, svc.ClaimReward(ctx, "r4"))
	})
}

func TestAddNewRewards(t *testing.T) {
	ctx := context.Background()
	svc, _ := newActiveService(t, nil)
	seedCount := len(svc.Rewards())

	merged := svc.AddNewRewards(ctx, []domain.RewardDraft{
		{Brand: "Nike", Deal: "15% off", Logo: "👟", Cost: 900},
		{Brand: "", Deal: "malformed", Logo: "💥", Cost: 100}, // rejected
		{Brand: "Doordash", Deal: "Free delivery", Logo: "🍔", Cost: 650},
	})

	require.Len(t, merged, 2)
	rewards := svc.Rewards()
	require.Len(t, rewards, seedCount+2)

	// Prepended, in draft order, unclaimed, with fresh unique ids.
	assert.Equal(t, "Nike", rewards[0].Brand)
	assert.Equal(t, "Doordash", rewards[1].Brand)
	assert.False(t, rewards[0].Claimed)
	assert.NotEmpty(t, rewards[0].ID)
	assert.NotEqual(t, rewards[0].ID, rewards[1].ID)
}

func TestUpdateWallets_DoesNotEnforceCurrencyUniqueness(t *testing.T) {
	// Wholesale replacement trusts the caller: the store accepts a wallet
	// list that violates one-wallet-per-currency. The invariant is
	// caller-enforced, not store-enforced.
	ctx := context.Background()
	svc, _ := newActiveService(t, []domain.Wallet{
		{ID: "usd-wallet", Currency: domain.CurrencyUSD, Balance: decimal.NewFromInt(100), Symbol: "$"},
		{ID: "gbp-wallet", Currency: domain.CurrencyGBP, Balance: decimal.NewFromInt(50), Symbol: "£"},
	})

	svc.UpdateWallets(ctx, []domain.Wallet{
		{ID: "eur-1", Currency: domain.CurrencyEUR, Balance: decimal.NewFromInt(92), Symbol: "€"},
		{ID: "eur-2", Currency: domain.CurrencyEUR, Balance: decimal.NewFromInt(58), Symbol: "€"},
	})

	wallets := svc.Wallets()
	require.Len(t, wallets, 2)
	assert.False(t, domain.UniqueCurrencies(wallets))
}

func TestActivate_RestoresPersistedIdentity(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()
	svc := NewService(repo, nil)

	master := seeder.MasterIdentity()
	require.NoError(t, svc.Activate(ctx, master))
	require.True(t, svc.ClaimReward(ctx, "r4"))
	spent := svc.Identity().RewardPoints
	require.Less(t, spent, master.RewardPoints)

	// A later activation with the pristine login profile keeps the mutated
	// point balance from the snapshot.
	fresh := NewService(repo, nil)
	require.NoError(t, fresh.Activate(ctx, seeder.MasterIdentity()))
	assert.Equal(t, spent, fresh.Identity().RewardPoints)
}

func TestActivate_UsesInjectedRewardSeed(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewSnapshotRepository(), nil)
	svc.SeedRewards = func() []domain.Reward {
		return []domain.Reward{{ID: "c1", Brand: "Nike", Deal: "deal", Logo: "👟", Cost: 900}}
	}

	require.NoError(t, svc.Activate(ctx, &domain.Identity{ID: "u-test", Email: "test@example.com"}))
	require.Len(t, svc.Rewards(), 1)
	assert.Equal(t, "Nike", svc.Rewards()[0].Brand)
}

func TestMutations_PersistSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSnapshotRepository()
	svc := NewService(repo, nil)
	svc.Now = fixedClock
	require.NoError(t, svc.Activate(ctx, seeder.MasterIdentity()))

	svc.AddMoney(ctx, decimal.NewFromInt(100), "Bank Transfer")

	snap, err := repo.Load(ctx, SnapshotKey("RobertJWhite@dayrep.com"))
	require.NoError(t, err)
	assert.Equal(t, "Deposit via Bank Transfer", snap.Transactions[0].Title)
	assert.True(t, snap.Wallets[0].Balance.Equal(decimal.NewFromFloat(12550.50)))
	require.NotNil(t, snap.User)
	assert.Equal(t, seeder.MasterIdentityID, snap.User.ID)
}

func TestPersistenceFailure_IsSwallowed(t *testing.T) {
	ctx := context.Background()
	repo := new(failingSnapshotRepo)
	svc := NewService(repo, nil)

	require.NoError(t, svc.Activate(ctx, seeder.MasterIdentity()))

	// The save fails on every mutation; operations still apply in memory.
	svc.AddMoney(ctx, decimal.NewFromInt(100), "Bank Transfer")
	assert.True(t, usdBalance(t, svc).Equal(decimal.NewFromFloat(12550.50)))
}

func TestSnapshotKey_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "aura_data_robertjwhite@dayrep.com", SnapshotKey("RobertJWhite@dayrep.com"))
	assert.Equal(t, SnapshotKey("a@b.com"), SnapshotKey(" A@B.COM "))
}

// failingSnapshotRepo always errors, for exercising best-effort persistence.
type failingSnapshotRepo struct{}

func (r *failingSnapshotRepo) Save(context.Context, string, *domain.Snapshot) error {
	return assert.AnError
}

func (r *failingSnapshotRepo) Load(context.Context, string) (*domain.Snapshot, error) {
	return nil, domain.ErrSnapshotNotFound
}

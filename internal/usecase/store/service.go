// Package store implements the financial state store: the single source of
// truth for one identity's wallets, transactions, investments, cards and
// rewards. Every mutation leaves the collections consistent and is followed
// by a best-effort snapshot write.
package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aurafin/aura-backend/internal/domain"
	"github.com/aurafin/aura-backend/internal/usecase/seeder"
)

// snapshotKeyPrefix scopes persisted records; the full key is this prefix
// plus the lower-cased identity email.
const snapshotKeyPrefix = "aura_data_"

// cardExpiry is the fixed future expiry stamped on newly issued cards.
const cardExpiry = "05/29"

// newCardColor is the gradient applied to newly issued virtual cards.
const newCardColor = "from-blue-500 to-indigo-600"

// IdentityUpdater propagates reward point changes back to whatever owns the
// identity. The store never manages credentials or other profile fields.
type IdentityUpdater interface {
	UpdateRewardPoints(ctx context.Context, identityID string, points int) error
}

// PriceFunc samples a synthetic unit price for an asset trade.
type PriceFunc func() decimal.Decimal

// SyntheticPrice draws a unit price from the fixed demo range [150, 200).
func SyntheticPrice() decimal.Decimal {
	return decimal.NewFromFloat(150 + rand.Float64()*50)
}

// Service is the financial store for the currently active identity.
//
// All operations are synchronous and atomic with respect to each other; any
// processing delay shown to a user is a UI concern, never imposed here.
// Persistence is fire-and-forget: save failures are logged and swallowed,
// the snapshot is a best-effort cache rather than a ledger of record.
type Service struct {
	SnapshotRepo domain.SnapshotRepository
	Identities   IdentityUpdater

	// Price and Now are injectable for tests; the constructor sets the
	// synthetic defaults.
	Price PriceFunc
	Now   func() time.Time

	// SeedRewards supplies the reward set for fresh state, allowing an
	// external catalog to replace the built-in fixtures.
	SeedRewards func() []domain.Reward

	mu           sync.Mutex
	identity     *domain.Identity
	wallets      []domain.Wallet
	transactions []domain.Transaction
	investments  []domain.Investment
	cards        []domain.Card
	rewards      []domain.Reward
}

// NewService creates a new financial store backed by the given snapshot
// repository. identities may be nil when nothing needs to observe reward
// point changes.
func NewService(snapshotRepo domain.SnapshotRepository, identities IdentityUpdater) *Service {
	return &Service{
		SnapshotRepo: snapshotRepo,
		Identities:   identities,
		Price:        SyntheticPrice,
		Now:          time.Now,
		SeedRewards:  seeder.Rewards,
	}
}

// SnapshotKey returns the persistence key for an identity email,
// case-insensitive.
func SnapshotKey(email string) string {
	id := domain.Identity{Email: email}
	return snapshotKeyPrefix + id.EmailKey()
}

// Activate makes identity the active one, discarding any in-memory state.
// Population order:
//  1. a persisted snapshot for the identity's email, if one exists
//  2. the full demo fixtures, if this is the designated master identity
//  3. the minimal default set otherwise
func (s *Service) Activate(ctx context.Context, identity *domain.Identity) error {
	if identity == nil {
		return errors.New("identity cannot be nil")
	}
	if err := identity.Validate(); err != nil {
		return fmt.Errorf("invalid identity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owned := *identity
	s.identity = &owned

	snap, err := s.SnapshotRepo.Load(ctx, SnapshotKey(identity.Email))
	switch {
	case err == nil:
		// The persisted identity carries mutated fields like reward
		// points; prefer it over the login-supplied one.
		if snap.User != nil {
			restored := *snap.User
			s.identity = &restored
		}
		s.wallets = orEmptyWallets(snap.Wallets)
		s.transactions = orEmptyTransactions(snap.Transactions)
		s.investments = orEmptyInvestments(snap.Investments)
		s.cards = orEmptyCards(snap.Cards)
		if snap.Rewards != nil {
			s.rewards = snap.Rewards
		} else {
			s.rewards = s.SeedRewards()
		}
	case errors.Is(err, domain.ErrSnapshotNotFound):
		s.populateFresh()
	default:
		// Unreadable snapshots are treated like missing ones; the next
		// save overwrites them.
		zap.L().Warn("Snapshot load failed, seeding fresh state",
			zap.String("identity", identity.ID),
			zap.Error(err))
		s.populateFresh()
	}

	s.persist(ctx)
	return nil
}

func (s *Service) populateFresh() {
	if s.identity.ID == seeder.MasterIdentityID {
		s.wallets = seeder.Wallets()
		s.transactions = seeder.Transactions()
		s.investments = seeder.Investments()
		s.cards = seeder.Cards()
	} else {
		s.wallets = seeder.DefaultWallets()
		s.transactions = []domain.Transaction{}
		s.investments = seeder.ZeroedInvestments()
		s.cards = []domain.Card{}
	}
	s.rewards = s.SeedRewards()
}

// Deactivate discards all in-memory state. Nothing is persisted; switching
// identities always reloads from the snapshot.
func (s *Service) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.wallets = nil
	s.transactions = nil
	s.investments = nil
	s.cards = nil
	s.rewards = nil
}

// Identity returns a copy of the active identity, or nil when none is active.
func (s *Service) Identity() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	copied := *s.identity
	return &copied
}

// Wallets returns a copy of the wallet collection.
func (s *Service) Wallets() []domain.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Wallet(nil), s.wallets...)
}

// Transactions returns a copy of the transaction list, newest first.
func (s *Service) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Transaction(nil), s.transactions...)
}

// Investments returns a copy of the investment positions.
func (s *Service) Investments() []domain.Investment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Investment(nil), s.investments...)
}

// Cards returns a copy of the card collection.
func (s *Service) Cards() []domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Card(nil), s.cards...)
}

// Rewards returns a copy of the reward collection.
func (s *Service) Rewards() []domain.Reward {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Reward(nil), s.rewards...)
}

// AddMoney credits the USD wallet by amount and prepends a credit transaction
// dated today. No-op when amount is not positive or no USD wallet exists.
func (s *Service) AddMoney(ctx context.Context, amount decimal.Decimal, method string) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return
	}

	idx := s.walletIndex(domain.CurrencyUSD)
	if idx < 0 {
		return
	}
	s.wallets[idx].Balance = s.wallets[idx].Balance.Add(amount)

	tx := domain.NewTransaction("Deposit via "+method, amount, domain.CurrencyUSD, s.Now(), domain.CategoryTransfer, domain.EntryTypeCredit, "")
	s.prependTransaction(tx)
	s.persist(ctx)
}

// SendMoney debits the wallet matching currency by amount, clamped at zero,
// and prepends a debit transaction carrying the optional narrative.
//
// The store does not reject over-withdrawal: if amount exceeds the balance
// the wallet lands on exactly zero. Callers wanting insufficient-funds
// semantics must pre-validate. No-op when amount is not positive or no wallet
// matches the currency.
func (s *Service) SendMoney(ctx context.Context, amount decimal.Decimal, method string, currency domain.Currency, narrative string) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return
	}

	idx := s.walletIndex(currency)
	if idx < 0 {
		return
	}
	s.wallets[idx].Balance = clampZero(s.wallets[idx].Balance.Sub(amount))

	tx := domain.NewTransaction("Sent via "+method, amount, currency, s.Now(), domain.CategoryTransfer, domain.EntryTypeDebit, narrative)
	s.prependTransaction(tx)
	s.persist(ctx)
}

// BuyAsset spends usdAmount on the referenced position at a freshly sampled
// synthetic price: holdings grow by usdAmount/price and the recorded value
// grows by usdAmount. The two updates are independent and additive.
//
// The USD debit here is intentionally unclamped and can drive the wallet
// negative, unlike SendMoney. That asymmetry is observed product behavior
// and is kept as-is.
func (s *Service) BuyAsset(ctx context.Context, assetID string, usdAmount decimal.Decimal) {
	if usdAmount.LessThanOrEqual(decimal.Zero) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return
	}

	pos := s.investmentIndex(assetID)
	if pos < 0 {
		return
	}

	price := s.Price()
	units := usdAmount.Div(price)

	if idx := s.walletIndex(domain.CurrencyUSD); idx >= 0 {
		s.wallets[idx].Balance = s.wallets[idx].Balance.Sub(usdAmount)
	}

	s.investments[pos].Holdings = s.investments[pos].Holdings.Add(units)
	s.investments[pos].CurrentValue = s.investments[pos].CurrentValue.Add(usdAmount)
	s.persist(ctx)
}

// SellAsset is the mirror of BuyAsset: the USD wallet is credited by
// usdAmount while holdings shrink by usdAmount/price and the recorded value
// shrinks by usdAmount, both clamped at zero.
func (s *Service) SellAsset(ctx context.Context, assetID string, usdAmount decimal.Decimal) {
	if usdAmount.LessThanOrEqual(decimal.Zero) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return
	}

	pos := s.investmentIndex(assetID)
	if pos < 0 {
		return
	}

	price := s.Price()
	units := usdAmount.Div(price)

	if idx := s.walletIndex(domain.CurrencyUSD); idx >= 0 {
		s.wallets[idx].Balance = s.wallets[idx].Balance.Add(usdAmount)
	}

	s.investments[pos].Holdings = clampZero(s.investments[pos].Holdings.Sub(units))
	s.investments[pos].CurrentValue = clampZero(s.investments[pos].CurrentValue.Sub(usdAmount))
	s.persist(ctx)
}

// ToggleCardStatus flips the matching card between active and frozen. No-op
// when the card is unknown.
func (s *Service) ToggleCardStatus(ctx context.Context, cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return
	}

	for i := range s.cards {
		if s.cards[i].ID == cardID {
			s.cards[i].Status = s.cards[i].Status.Toggled()
			s.persist(ctx)
			return
		}
	}
}

// CreateCard issues a new active virtual card with a synthetic 16-digit
// number and appends it to the collection. The created card is returned.
func (s *Service) CreateCard(ctx context.Context) *domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}

	number := fmt.Sprintf("%d %d %d %d", cardGroup(), cardGroup(), cardGroup(), cardGroup())
	card := domain.Card{
		ID:         uuid.New().String(),
		CardNumber: number,
		LastFour:   number[len(number)-4:],
		Expiry:     cardExpiry,
		Type:       domain.CardTypeVirtual,
		Status:     domain.CardStatusActive,
		Color:      newCardColor,
	}
	s.cards = append(s.cards, card)
	s.persist(ctx)
	return &card
}

// ClaimReward marks the reward claimed and deducts its cost from the
// identity's reward points. Returns false, leaving all state unchanged, when
// no identity is active, the reward is unknown or already claimed, or the
// identity's points fall short of the cost.
func (s *Service) ClaimReward(ctx context.Context, rewardID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return false
	}

	for i := range s.rewards {
		if s.rewards[i].ID != rewardID {
			continue
		}
		if s.rewards[i].Claimed || s.identity.RewardPoints < s.rewards[i].Cost {
			return false
		}

		s.rewards[i].Claimed = true
		s.identity.RewardPoints -= s.rewards[i].Cost
		if s.Identities != nil {
			if err := s.Identities.UpdateRewardPoints(ctx, s.identity.ID, s.identity.RewardPoints); err != nil {
				zap.L().Warn("Reward point update not propagated",
					zap.String("identity", s.identity.ID),
					zap.Error(err))
			}
		}
		s.persist(ctx)
		return true
	}
	return false
}

// AddNewRewards validates the incoming drafts, assigns each a fresh id and
// an unclaimed flag, and prepends them to the reward collection. Malformed
// drafts are rejected rather than merged. The merged rewards are returned.
func (s *Service) AddNewRewards(ctx context.Context, drafts []domain.RewardDraft) []domain.Reward {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}

	merged := make([]domain.Reward, 0, len(drafts))
	for _, draft := range drafts {
		if err := draft.Validate(); err != nil {
			zap.L().Warn("Rejecting malformed reward draft",
				zap.String("brand", draft.Brand),
				zap.Error(err))
			continue
		}
		merged = append(merged, domain.Reward{
			ID:      uuid.New().String(),
			Brand:   draft.Brand,
			Deal:    draft.Deal,
			Logo:    draft.Logo,
			Color:   "bg-slate-800",
			Cost:    draft.Cost,
			Claimed: false,
		})
	}
	if len(merged) == 0 {
		return nil
	}

	s.rewards = append(append([]domain.Reward{}, merged...), s.rewards...)
	s.persist(ctx)
	return merged
}

// UpdateWallets replaces the wallet collection wholesale. The caller is
// responsible for the one-wallet-per-currency invariant; the store does not
// police it here.
func (s *Service) UpdateWallets(ctx context.Context, wallets []domain.Wallet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return
	}

	s.wallets = append([]domain.Wallet(nil), wallets...)
	s.persist(ctx)
}

// persist writes the full snapshot for the active identity. Callers must
// hold s.mu. Failures are logged and swallowed.
func (s *Service) persist(ctx context.Context) {
	if s.identity == nil || len(s.wallets) == 0 {
		return
	}

	owned := *s.identity
	snap := &domain.Snapshot{
		User:         &owned,
		Wallets:      s.wallets,
		Transactions: s.transactions,
		Investments:  s.investments,
		Cards:        s.cards,
		Rewards:      s.rewards,
	}
	if err := s.SnapshotRepo.Save(ctx, SnapshotKey(s.identity.Email), snap); err != nil {
		zap.L().Warn("Snapshot save skipped",
			zap.String("identity", s.identity.ID),
			zap.Error(err))
	}
}

func (s *Service) walletIndex(currency domain.Currency) int {
	for i := range s.wallets {
		if s.wallets[i].Currency == currency {
			return i
		}
	}
	return -1
}

func (s *Service) investmentIndex(assetID string) int {
	for i := range s.investments {
		if s.investments[i].ID == assetID {
			return i
		}
	}
	return -1
}

func (s *Service) prependTransaction(tx domain.Transaction) {
	s.transactions = append([]domain.Transaction{tx}, s.transactions...)
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func cardGroup() int {
	return 1000 + rand.Intn(9000)
}

func orEmptyWallets(w []domain.Wallet) []domain.Wallet {
	if w == nil {
		return []domain.Wallet{}
	}
	return w
}

func orEmptyTransactions(t []domain.Transaction) []domain.Transaction {
	if t == nil {
		return []domain.Transaction{}
	}
	return t
}

func orEmptyInvestments(i []domain.Investment) []domain.Investment {
	if i == nil {
		return []domain.Investment{}
	}
	return i
}

func orEmptyCards(c []domain.Card) []domain.Card {
	if c == nil {
		return []domain.Card{}
	}
	return c
}

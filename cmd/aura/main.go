package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/aurafin/aura-backend/internal/adapter/repository/memory"
	"github.com/aurafin/aura-backend/internal/adapter/repository/postgres"
	"github.com/aurafin/aura-backend/internal/adapter/repository/sqlite"
	"github.com/aurafin/aura-backend/internal/config"
	"github.com/aurafin/aura-backend/internal/domain"
	"github.com/aurafin/aura-backend/internal/receipt"
	"github.com/aurafin/aura-backend/internal/usecase/assistant"
	"github.com/aurafin/aura-backend/internal/usecase/dashboard"
	"github.com/aurafin/aura-backend/internal/usecase/exchange"
	"github.com/aurafin/aura-backend/internal/usecase/identity"
	"github.com/aurafin/aura-backend/internal/usecase/seeder"
	"github.com/aurafin/aura-backend/internal/usecase/store"
)

// app holds the wired services shared by every command
type app struct {
	cfg      *config.Config
	identity *identity.Service
	store    *store.Service
	close    func()
}

var cli struct {
	Login struct {
		Email    string `required:"" help:"Account email."`
		Password string `required:"" help:"Account password."`
	} `cmd:"" help:"Authenticate and start a session."`
	Logout struct{} `cmd:"" help:"End the active session."`
	Whoami struct{} `cmd:"" help:"Show the active identity."`

	Balances struct{} `cmd:"" help:"List wallet balances."`
	Deposit  struct {
		Amount string `arg:"" help:"USD amount to deposit."`
		Method string `default:"Bank Transfer" help:"Deposit method label."`
	} `cmd:"" help:"Add money to the USD wallet."`
	Send struct {
		Amount    string `arg:"" help:"Amount to send."`
		Method    string `default:"Aura Tag" help:"Transfer method label."`
		Currency  string `default:"USD" help:"Source wallet currency."`
		Narrative string `help:"Optional note attached to the transfer."`
	} `cmd:"" help:"Send money from a wallet."`
	Transactions struct{} `cmd:"" help:"List transactions, newest first."`
	Swap         struct {
		WalletID string `arg:"" help:"Wallet to convert to EUR."`
	} `cmd:"" help:"Convert a wallet to EUR at the current rates."`

	Invest struct {
		List struct{} `cmd:"" help:"List investment positions."`
		Buy  struct {
			AssetID string `arg:"" help:"Asset id."`
			Amount  string `arg:"" help:"USD amount to invest."`
		} `cmd:"" help:"Buy into an asset."`
		Sell struct {
			AssetID string `arg:"" help:"Asset id."`
			Amount  string `arg:"" help:"USD amount to divest."`
		} `cmd:"" help:"Sell out of an asset."`
	} `cmd:"" help:"Manage investments."`

	Cards struct {
		List   struct{} `cmd:"" help:"List cards."`
		New    struct{} `cmd:"" help:"Issue a new virtual card."`
		Toggle struct {
			CardID string `arg:"" help:"Card id."`
		} `cmd:"" help:"Freeze or unfreeze a card."`
	} `cmd:"" help:"Manage cards."`

	Rewards struct {
		List  struct{} `cmd:"" help:"List available rewards."`
		Claim struct {
			RewardID string `arg:"" help:"Reward id."`
		} `cmd:"" help:"Claim a reward with points."`
		Refresh struct{} `cmd:"" help:"Generate fresh deals via the assistant."`
	} `cmd:"" help:"Manage rewards."`

	Receipt struct {
		Share struct {
			TransactionID string `arg:"" help:"Transaction id."`
		} `cmd:"" help:"Print a shareable receipt link."`
		Show struct {
			Token string `arg:"" help:"Encoded receipt token or share URL fragment."`
		} `cmd:"" help:"Decode and render a shared receipt."`
	} `cmd:"" help:"Share and inspect transaction receipts."`

	Insight struct{} `cmd:"" help:"Generate AI insights over your finances."`
	Analyze struct {
		AssetID string `arg:"" help:"Asset id."`
	} `cmd:"" help:"Generate an AI analysis for one asset."`
	Chat struct {
		Message string `arg:"" help:"Message for the assistant."`
	} `cmd:"" help:"Talk to the ProBot assistant."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("aura"),
		kong.Description("Aura digital banking."))

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	a, err := newApp()
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer a.close()

	kctx.FatalIfErrorf(run(kctx, a))
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var (
		snapshots domain.SnapshotRepository
		sessions  domain.SessionRepository
		closeFn   = func() {}
	)
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		snapshots = memory.NewSnapshotRepository()
		sessions = memory.NewSessionRepository()
	case config.StorageSQLite:
		db, err := sqlite.NewDB(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		snapshots = sqlite.NewSnapshotRepository(db)
		sessions = sqlite.NewSessionRepository(db)
		closeFn = func() { db.Close() }
	case config.StoragePostgres:
		db, err := postgres.NewDB(cfg.Storage.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		snapshots = postgres.NewSnapshotRepository(db)
		sessions = postgres.NewSessionRepository(db)
		closeFn = func() { db.Close() }
	}

	identitySvc := identity.NewService(sessions)
	storeSvc := store.NewService(snapshots, identitySvc)

	if cfg.Rewards.CatalogPath != "" {
		catalog, err := seeder.LoadRewardCatalog(cfg.Rewards.CatalogPath)
		if err != nil {
			closeFn()
			return nil, fmt.Errorf("failed to load reward catalog: %w", err)
		}
		storeSvc.SeedRewards = func() []domain.Reward {
			rewards := make([]domain.Reward, len(catalog))
			copy(rewards, catalog)
			return rewards
		}
	}

	return &app{
		cfg:      cfg,
		identity: identitySvc,
		store:    storeSvc,
		close:    closeFn,
	}, nil
}

func run(kctx *kong.Context, a *app) error {
	ctx := context.Background()

	switch kctx.Command() {
	case "login":
		return a.login(ctx, cli.Login.Email, cli.Login.Password)
	case "logout":
		return a.identity.Logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "balances":
		return a.balances(ctx)
	case "deposit <amount>":
		return a.deposit(ctx, cli.Deposit.Amount, cli.Deposit.Method)
	case "send <amount>":
		return a.send(ctx, cli.Send.Amount, cli.Send.Method, cli.Send.Currency, cli.Send.Narrative)
	case "transactions":
		return a.transactions(ctx)
	case "swap <wallet-id>":
		return a.swap(ctx, cli.Swap.WalletID)
	case "invest list":
		return a.investList(ctx)
	case "invest buy <asset-id> <amount>":
		return a.trade(ctx, cli.Invest.Buy.AssetID, cli.Invest.Buy.Amount, true)
	case "invest sell <asset-id> <amount>":
		return a.trade(ctx, cli.Invest.Sell.AssetID, cli.Invest.Sell.Amount, false)
	case "cards list":
		return a.cardsList(ctx)
	case "cards new":
		return a.cardsNew(ctx)
	case "cards toggle <card-id>":
		return a.cardsToggle(ctx, cli.Cards.Toggle.CardID)
	case "rewards list":
		return a.rewardsList(ctx)
	case "rewards claim <reward-id>":
		return a.rewardsClaim(ctx, cli.Rewards.Claim.RewardID)
	case "rewards refresh":
		return a.rewardsRefresh(ctx)
	case "receipt share <transaction-id>":
		return a.receiptShare(ctx, cli.Receipt.Share.TransactionID)
	case "receipt show <token>":
		return a.receiptShow(cli.Receipt.Show.Token)
	case "insight":
		return a.insight(ctx)
	case "analyze <asset-id>":
		return a.analyze(ctx, cli.Analyze.AssetID)
	case "chat <message>":
		return a.chat(ctx, cli.Chat.Message)
	default:
		return fmt.Errorf("unknown command %q", kctx.Command())
	}
}

// activate restores the session and loads the financial store for it
func (a *app) activate(ctx context.Context) error {
	current, err := a.identity.Resume(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return fmt.Errorf("not logged in, run 'aura login' first: %w", err)
		}
		return fmt.Errorf("failed to resume session: %w", err)
	}
	return a.store.Activate(ctx, current)
}

func (a *app) login(ctx context.Context, email, password string) error {
	current, err := a.identity.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s <%s>\n", current.Name, current.Email)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	if err := a.activate(ctx); err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			fmt.Println("Not logged in.")
			return nil
		}
		return err
	}
	current := a.store.Identity()
	fmt.Printf("%s <%s>  %d points\n", current.Name, current.Email, current.RewardPoints)
	return nil
}

func (a *app) balances(ctx context.Context) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	for _, w := range a.store.Wallets() {
		fmt.Printf("%-14s %s %s\n", w.ID, w.Currency, receipt.FormatAmount(w.Balance, w.Currency))
	}
	return nil
}

func (a *app) deposit(ctx context.Context, amount, method string) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	value, err := parseAmount(amount)
	if err != nil {
		return err
	}
	a.store.AddMoney(ctx, value, method)
	return a.balances(ctx)
}

func (a *app) send(ctx context.Context, amount, method, currency, narrative string) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	value, err := parseAmount(amount)
	if err != nil {
		return err
	}
	cur := domain.Currency(currency)
	if !cur.Valid() {
		return fmt.Errorf("unknown currency %q", currency)
	}
	a.store.SendMoney(ctx, value, method, cur, narrative)
	return a.balances(ctx)
}

func (a *app) transactions(ctx context.Context) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	for _, tx := range a.store.Transactions() {
		fmt.Printf("%-38s %s  %-14s %s\n", tx.ID, tx.Date, tx.Category, receipt.FormatAmount(tx.Amount, tx.Currency))
	}
	return nil
}

func (a *app) swap(ctx context.Context, walletID string) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	a.store.UpdateWallets(ctx, exchange.ToEuro(a.store.Wallets(), walletID))
	return a.balances(ctx)
}

func (a *app) investList(ctx context.Context) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	for _, inv := range a.store.Investments() {
		fmt.Printf("%-4s %-14s %-6s holdings=%s value=$%s (%+.1f%%)\n",
			inv.ID, inv.Name, inv.Symbol, inv.Holdings, inv.CurrentValue, inv.Change24h)
	}
	return nil
}

func (a *app) trade(ctx context.Context, assetID, amount string, buy bool) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	value, err := parseAmount(amount)
	if err != nil {
		return err
	}
	if buy {
		a.store.BuyAsset(ctx, assetID, value)
	} else {
		a.store.SellAsset(ctx, assetID, value)
	}
	return a.investList(ctx)
}

func (a *app) cardsList(ctx context.Context) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	for _, c := range a.store.Cards() {
		fmt.Printf("%-38s **** %s  %s  %-8s %s\n", c.ID, c.LastFour, c.Expiry, c.Type, c.Status)
	}
	return nil
}

func (a *app) cardsNew(ctx context.Context) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	card := a.store.CreateCard(ctx)
	if card == nil {
		return errors.New("card not created")
	}
	fmt.Printf("Issued %s card %s (**** %s, expires %s)\n", card.Type, card.ID, card.LastFour, card.Expiry)
	return nil
}

func (a *app) cardsToggle(ctx context.Context, cardID string) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	a.store.ToggleCardStatus(ctx, cardID)
	return a.cardsList(ctx)
}

func (a *app) rewardsList(ctx context.Context) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	for _, r := range a.store.Rewards() {
		claimed := ""
		if r.Claimed {
			claimed = "  (claimed)"
		}
		fmt.Printf("%-38s %s %-10s %-32s %d pts%s\n", r.ID, r.Logo, r.Brand, r.Deal, r.Cost, claimed)
	}
	return nil
}

func (a *app) rewardsClaim(ctx context.Context, rewardID string) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	if !a.store.ClaimReward(ctx, rewardID) {
		return fmt.Errorf("reward %s could not be claimed", rewardID)
	}
	fmt.Printf("Claimed. %d points remaining.\n", a.store.Identity().RewardPoints)
	return nil
}

func (a *app) rewardsRefresh(ctx context.Context) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	drafts := a.assistant(ctx).GenerateDeals(ctx)
	if len(drafts) == 0 {
		fmt.Println("No new deals available.")
		return nil
	}
	added := a.store.AddNewRewards(ctx, drafts)
	fmt.Printf("Added %d new deals.\n", len(added))
	return a.rewardsList(ctx)
}

func (a *app) receiptShare(ctx context.Context, transactionID string) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	for _, tx := range a.store.Transactions() {
		if tx.ID != transactionID {
			continue
		}
		url, err := receipt.ShareURL(a.cfg.Share.BaseURL, tx)
		if err != nil {
			return fmt.Errorf("failed to build share link: %w", err)
		}
		fmt.Println(url)
		return nil
	}
	return fmt.Errorf("transaction %s not found", transactionID)
}

func (a *app) receiptShow(token string) error {
	// Accept a full share URL as well as the bare token.
	if i := strings.Index(token, receipt.FragmentPrefix); i >= 0 {
		token = token[i+len(receipt.FragmentPrefix):]
	}
	tx, err := receipt.Decode(token)
	if err != nil {
		return err
	}
	fmt.Println(receipt.Render(tx))
	return nil
}

func (a *app) insight(ctx context.Context) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	summary := dashboard.Summarize(a.store.Transactions(), a.store.Investments())
	fmt.Println(a.assistant(ctx).FinancialInsight(ctx, summary, a.store.Investments()))
	return nil
}

func (a *app) analyze(ctx context.Context, assetID string) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	for _, inv := range a.store.Investments() {
		if inv.ID == assetID {
			fmt.Println(a.assistant(ctx).AssetAnalysis(ctx, inv))
			return nil
		}
	}
	return fmt.Errorf("asset %s not found", assetID)
}

func (a *app) chat(ctx context.Context, message string) error {
	if err := a.activate(ctx); err != nil {
		return err
	}
	fmt.Println(a.assistant(ctx).Chat(ctx, nil, message))
	return nil
}

// assistant builds the AI service. A missing or misconfigured API key leaves
// the client nil and every surface degrades to its fallback response.
func (a *app) assistant(ctx context.Context) *assistant.Service {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		zap.L().Warn("assistant unavailable", zap.Error(err))
		client = nil
	}
	svc := assistant.NewService(client)
	if a.cfg.Ai.FlashModel != "" {
		svc.FlashModel = a.cfg.Ai.FlashModel
	}
	if a.cfg.Ai.ProModel != "" {
		svc.ProModel = a.cfg.Ai.ProModel
	}
	return svc
}

func parseAmount(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return value, nil
}

package main

import (
	"context"
	"fmt"

	identityapp "github.com/erp/pos/internal/application/identity"
	"github.com/erp/pos/internal/application/checkout"
	"github.com/erp/pos/internal/domain/catalog"
	"github.com/erp/pos/internal/domain/pricing"
	"github.com/erp/pos/internal/domain/shared/valueobject"
	"github.com/erp/pos/internal/infrastructure/config"
	"github.com/erp/pos/internal/infrastructure/credential"
	"github.com/erp/pos/internal/infrastructure/event"
	csvimport "github.com/erp/pos/internal/infrastructure/import"
	"github.com/erp/pos/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// till wires the configured catalog, tiers and credential store together
type till struct {
	cfg     *config.Config
	log     *zap.Logger
	auth    *identityapp.AuthService
	catalog *catalog.Catalog
	tiers   *pricing.TierSet
	events  *event.InMemoryEventBus
}

// setup loads configuration from configPath and builds the till. The
// interactive terminal logs to terminal.log_file instead of log.output,
// since the screen belongs to the UI while it runs.
func setup(ctx context.Context, configPath string, interactive bool) (*till, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	output := cfg.Log.Output
	if interactive {
		output = cfg.Terminal.LogFile
	}
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log = log.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))

	tiers, err := tierSet(cfg.Pricing.Tiers)
	if err != nil {
		return nil, err
	}

	delimiter, err := cfg.Catalog.DelimiterRune()
	if err != nil {
		return nil, err
	}
	currency, err := valueobject.ParseCurrency(cfg.Catalog.Currency)
	if err != nil {
		return nil, fmt.Errorf("catalog.currency: %w", err)
	}
	loader := &csvimport.CatalogLoader{
		Path:      cfg.Catalog.Path,
		Delimiter: delimiter,
		Currency:  currency,
	}
	products := csvimport.LoadCatalog(ctx, loader, logger.Named(log, "catalog"))

	store := credential.NewFileStore(cfg.Credentials.Path, logger.Named(log, "credentials"))

	events := event.NewInMemoryEventBus(logger.Named(log, "events"))
	events.Subscribe(event.NewJournalHandler(logger.Named(log, "journal")))

	return &till{
		cfg:     cfg,
		log:     log,
		auth:    identityapp.NewAuthService(store, logger.Named(log, "auth")),
		catalog: products,
		tiers:   tiers,
		events:  events,
	}, nil
}

// newSession starts a checkout session over the loaded catalog whose cart
// activity goes to the journal
func (t *till) newSession(log *zap.Logger) *checkout.Session {
	session := checkout.NewSession(t.catalog, t.tiers, logger.Named(log, "checkout"))
	session.SetEventPublisher(t.events)
	return session
}

func (t *till) close() {
	_ = logger.Sync(t.log)
}

// tierSet builds the configured tiers, or the standard ones when none are configured
func tierSet(configured []config.TierConfig) (*pricing.TierSet, error) {
	if len(configured) == 0 {
		return pricing.StandardTiers(), nil
	}

	tiers := make([]pricing.DiscountTier, 0, len(configured))
	for _, tc := range configured {
		rate, err := decimal.NewFromString(tc.Rate)
		if err != nil {
			return nil, fmt.Errorf("pricing tier %q: invalid rate %q", tc.Name, tc.Rate)
		}
		tier, err := pricing.NewDiscountTier(tc.Name, rate)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}
	return pricing.NewTierSet(tiers)
}

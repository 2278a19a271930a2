package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	staticauthz "github.com/bnema/ledger-guard/internal/adapters/authz/static"
	blocklistguard "github.com/bnema/ledger-guard/internal/adapters/guard/blocklist"
	throughputguard "github.com/bnema/ledger-guard/internal/adapters/guard/throughput"
	journalmem "github.com/bnema/ledger-guard/internal/adapters/journal/memory"
	ledgermem "github.com/bnema/ledger-guard/internal/adapters/ledger/memory"
	statusadapter "github.com/bnema/ledger-guard/internal/adapters/render/status"
	tomlrepo "github.com/bnema/ledger-guard/internal/adapters/repo/toml"
	"github.com/bnema/ledger-guard/internal/application"
	"github.com/bnema/ledger-guard/internal/domain"
	"github.com/bnema/ledger-guard/internal/ports"
)

const (
	adminsKey          = "admins"
	defaultCallerKey   = "caller.default"
	logLevelKey        = "log.level"
	throughputRateKey  = "throughput.rate"
	throughputBurstKey = "throughput.burst"
)

const (
	defaultAdmin           = "root"
	defaultThroughputRate  = 1000
	defaultThroughputBurst = 10000

	// ledgerToken is the caller identity the ledger stamps on guard
	// invocations; the rate limiter only answers checks that carry it.
	ledgerToken = "ledger"
)

type wireOptions struct {
	verbose bool
	caller  string
	at      string
}

type app struct {
	caller         domain.AccountID
	clock          ports.Clock
	limiter        *application.RateLimiter
	dispatcher     *application.Dispatcher
	ledger         *ledgermem.Ledger
	journal        *journalmem.Journal
	guards         map[string]ports.GuardModule
	statusRenderer func(application.StatusView, statusadapter.RenderOptions) (string, error)
	save           func(context.Context) error
}

// persist flushes the assembled state back to disk. It is a no-op on a
// partially wired app so the root PersistentPostRunE can call it blindly.
func (a *app) persist(ctx context.Context) error {
	if a.save == nil {
		return nil
	}

	return a.save(ctx)
}

func wireApp(opts wireOptions) (*app, error) {
	clock, err := wireClock(opts.at)
	if err != nil {
		return nil, err
	}

	cfg := viper.New()
	cfg.SetDefault(adminsKey, []string{defaultAdmin})
	cfg.SetDefault(logLevelKey, zerolog.LevelWarnValue)
	cfg.SetDefault(throughputRateKey, defaultThroughputRate)
	cfg.SetDefault(throughputBurstKey, defaultThroughputBurst)

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire state repository: %w", err)
	}

	logger, err := newLogger(cfg.GetString(logLevelKey), opts.verbose)
	if err != nil {
		return nil, err
	}

	state, err := repo.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load ledger state: %w", err)
	}

	caller := domain.AccountID(opts.caller)
	if caller == "" {
		caller = domain.AccountID(cfg.GetString(defaultCallerKey))
	}

	admins := make([]domain.AccountID, 0)
	for _, admin := range cfg.GetStringSlice(adminsKey) {
		admins = append(admins, domain.AccountID(admin))
	}

	authz := staticauthz.NewAuthorizer(admins, logger)
	journal := journalmem.NewJournal(state.Journal)
	dispatcher := application.NewDispatcher(authz, logger)
	ledger := ledgermem.NewLedger(state.Balances, dispatcher, journal, authz, clock, logger, ledgerToken)
	limiter := application.NewRateLimiter(state.Limiter, ledger, authz, clock, logger, ledgerToken)
	blocklist := blocklistguard.NewGuard(state.Blocklist, logger)
	throughput := throughputguard.NewGuard(
		rate.Limit(cfg.GetFloat64(throughputRateKey)),
		cfg.GetInt(throughputBurstKey),
		clock,
		logger,
	)

	guards := map[string]ports.GuardModule{
		limiter.Name():    limiter,
		blocklist.Name():  blocklist,
		throughput.Name(): throughput,
	}
	chain := make([]ports.GuardModule, 0, len(state.Guards))
	for _, name := range state.Guards {
		module, ok := guards[name]
		if !ok {
			logger.Warn().Str("module", name).Msg("state file names an unknown guard module, skipping")
			continue
		}
		chain = append(chain, module)
	}
	dispatcher.Restore(chain...)

	return &app{
		caller:         caller,
		clock:          clock,
		limiter:        limiter,
		dispatcher:     dispatcher,
		ledger:         ledger,
		journal:        journal,
		guards:         guards,
		statusRenderer: statusadapter.Render,
		save: func(ctx context.Context) error {
			decisions, err := journal.List(ctx)
			if err != nil {
				return fmt.Errorf("collect journal: %w", err)
			}

			state.Balances = ledger.Balances()
			state.Blocklist = blocklist.Blocked()
			state.Guards = dispatcher.Modules()
			state.Journal = decisions

			return repo.Save(ctx, state)
		},
	}, nil
}

func wireClock(at string) (ports.Clock, error) {
	if at == "" {
		return ports.SystemClock{}, nil
	}

	pinned, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return nil, fmt.Errorf("parse --at instant: %w", err)
	}

	return ports.FixedClock{At: pinned}, nil
}

func newLogger(level string, verbose bool) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", level, err)
	}
	if verbose {
		parsed = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}

	return zerolog.New(writer).With().Timestamp().Logger().Level(parsed), nil
}

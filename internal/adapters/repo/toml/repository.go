// Package toml persists the whole guard state, including the limiter
// bookkeeping, ledger balances, decision journal and guard chain, as a
// single versioned TOML file. Writes go through a temp file and rename
// so a crashed process never leaves a half-written state behind.
package toml

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/ledger-guard/internal/domain"
)

const (
	configName      = "config"
	configType      = "toml"
	configDirEnv    = "LEDGER_GUARD_CONFIG_DIR"
	statePathKey    = "state.path"
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	stateConfigDir  = ".ledger-guard"
	stateConfigFile = "state.toml"
	tempFilePattern = ".state-*.toml.tmp"
)

const (
	defaultWindow = 24 * time.Hour
	defaultLimit  = domain.Amount(1_000)
)

// State is everything the CLI persists between invocations.
type State struct {
	Limiter   *domain.LimiterState
	Balances  map[domain.AccountID]domain.Amount
	Blocklist []domain.AccountID
	Guards    []string
	Journal   []domain.Decision
}

// DefaultState is what a fresh install starts from: the stock default
// policy, an empty ledger and the rate limiter enabled.
func DefaultState() *State {
	return &State{
		Limiter:  domain.NewLimiterState(domain.Policy{Window: defaultWindow, Limit: defaultLimit}),
		Balances: map[domain.AccountID]domain.Amount{},
		Guards:   []string{"ratelimit"},
	}
}

type Repository struct {
	statePath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	configDir := os.Getenv(configDirEnv)
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, stateConfigDir)
	}

	defaultPath := filepath.Join(configDir, stateConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(configDir)
	cfg.SetDefault(statePathKey, defaultPath)

	err := cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	statePath := cfg.GetString(statePathKey)
	if statePath == "" {
		return nil, errors.New("state path is empty")
	}
	statePath, err = normalizeStatePath(statePath)
	if err != nil {
		return nil, err
	}

	return &Repository{statePath: statePath, mu: lockForPath(statePath)}, nil
}

// Load reads the persisted state. A missing file is not an error: it
// yields DefaultState, which is how a fresh install bootstraps itself.
func (r *Repository) Load(ctx context.Context) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultState(), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}
	file.applyDefaults()

	return fromSchema(file), nil
}

// Save replaces the persisted state wholesale.
func (r *Repository) Save(ctx context.Context, state *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(toSchema(state))
}

func normalizeStatePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve state path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.statePath), stateDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.statePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}

	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tempName, r.statePath); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.statePath, stateFileMode); err != nil {
		return fmt.Errorf("chmod state file: %w", err)
	}

	return nil
}

func toSchema(state *State) fileSchema {
	limiter := state.Limiter
	if limiter == nil {
		limiter = domain.NewLimiterState(domain.Policy{})
	}

	file := fileSchema{
		Version: currentSchemaVersion,
		Default: policySchema{
			WindowSeconds: int64(limiter.Default.Window / time.Second),
			Limit:         int64(limiter.Default.Limit),
		},
		Guards: slices.Clone(state.Guards),
	}

	for _, id := range slices.Sorted(maps.Keys(limiter.Accounts)) {
		row := limiter.Accounts[id]
		file.Accounts = append(file.Accounts, accountPolicySchema{
			ID:            string(id),
			WindowSeconds: int64(row.Window / time.Second),
			Limit:         int64(row.Limit),
			Status:        string(row.Status.Normalize()),
		})
	}

	for _, id := range slices.Sorted(maps.Keys(limiter.Usage)) {
		record := limiter.Usage[id]
		file.Usage = append(file.Usage, usageRecordSchema{
			ID:       string(id),
			Total:    int64(record.Total),
			WindowID: record.WindowID,
		})
	}

	for _, id := range slices.Sorted(maps.Keys(limiter.PendingOptOut)) {
		file.Pending = append(file.Pending, pendingOptSchema{
			ID:          string(id),
			Direction:   pendingDirectionOptOut,
			RequestedAt: formatTime(limiter.PendingOptOut[id]),
		})
	}

	for _, id := range slices.Sorted(maps.Keys(limiter.PendingOptIn)) {
		file.Pending = append(file.Pending, pendingOptSchema{
			ID:          string(id),
			Direction:   pendingDirectionOptIn,
			RequestedAt: formatTime(limiter.PendingOptIn[id]),
		})
	}

	for _, id := range slices.Sorted(maps.Keys(state.Balances)) {
		file.Balances = append(file.Balances, balanceSchema{
			ID:     string(id),
			Amount: int64(state.Balances[id]),
		})
	}

	for _, id := range state.Blocklist {
		file.Blocklist = append(file.Blocklist, string(id))
	}

	for _, decision := range state.Journal {
		file.Journal = append(file.Journal, decisionSchema{
			ID:        decision.ID,
			Sender:    string(decision.Transfer.Sender),
			Recipient: string(decision.Transfer.Recipient),
			Amount:    int64(decision.Transfer.Amount),
			Allowed:   decision.Allowed,
			Module:    decision.Module,
			Reason:    decision.Reason,
			At:        formatTime(decision.At),
		})
	}

	return file
}

func fromSchema(file fileSchema) *State {
	limiter := domain.NewLimiterState(domain.Policy{
		Window: time.Duration(file.Default.WindowSeconds) * time.Second,
		Limit:  domain.Amount(file.Default.Limit),
	})

	for _, row := range file.Accounts {
		limiter.Accounts[domain.AccountID(row.ID)] = domain.AccountPolicy{
			Window: time.Duration(row.WindowSeconds) * time.Second,
			Limit:  domain.Amount(row.Limit),
			Status: domain.AccountStatus(row.Status).Normalize(),
		}
	}

	for _, row := range file.Usage {
		limiter.Usage[domain.AccountID(row.ID)] = domain.UsageRecord{
			Total:    domain.Amount(row.Total),
			WindowID: row.WindowID,
		}
	}

	for _, row := range file.Pending {
		requestedAt := parseTime(row.RequestedAt)
		switch row.Direction {
		case pendingDirectionOptOut:
			limiter.PendingOptOut[domain.AccountID(row.ID)] = requestedAt
		case pendingDirectionOptIn:
			limiter.PendingOptIn[domain.AccountID(row.ID)] = requestedAt
		}
	}

	state := &State{
		Limiter:  limiter,
		Balances: make(map[domain.AccountID]domain.Amount, len(file.Balances)),
		Guards:   slices.Clone(file.Guards),
	}

	for _, row := range file.Balances {
		state.Balances[domain.AccountID(row.ID)] = domain.Amount(row.Amount)
	}

	for _, id := range file.Blocklist {
		state.Blocklist = append(state.Blocklist, domain.AccountID(id))
	}

	for _, entry := range file.Journal {
		state.Journal = append(state.Journal, domain.Decision{
			ID: entry.ID,
			Transfer: domain.Transfer{
				Sender:    domain.AccountID(entry.Sender),
				Recipient: domain.AccountID(entry.Recipient),
				Amount:    domain.Amount(entry.Amount),
			},
			Allowed: entry.Allowed,
			Module:  entry.Module,
			Reason:  entry.Reason,
			At:      parseTime(entry.At),
		})
	}

	return state
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// memState holds the tables of the memory store that a unit of work snapshots
type memState struct {
	config         *schema.RegistryConfig
	deposits       map[string]schema.DepositBalance
	whitelist      map[string]schema.WhitelistedContract
	tokens         map[string]schema.Token
	tokensByDef    map[string]string // contract/ticker -> ticker
	issuerConfigs  map[string]schema.IssuerConfig
	stats          map[string]schema.TokenStat
	ledgerBalances map[string]schema.LedgerBalance
	keyValues      map[string]string
}

func newMemState() *memState {
	return &memState{
		deposits:       make(map[string]schema.DepositBalance),
		whitelist:      make(map[string]schema.WhitelistedContract),
		tokens:         make(map[string]schema.Token),
		tokensByDef:    make(map[string]string),
		issuerConfigs:  make(map[string]schema.IssuerConfig),
		stats:          make(map[string]schema.TokenStat),
		ledgerBalances: make(map[string]schema.LedgerBalance),
		keyValues:      make(map[string]string),
	}
}

// clone deep-copies the state so a unit of work can be discarded
func (st *memState) clone() *memState {
	c := &memState{
		deposits:       make(map[string]schema.DepositBalance, len(st.deposits)),
		whitelist:      make(map[string]schema.WhitelistedContract, len(st.whitelist)),
		tokens:         make(map[string]schema.Token, len(st.tokens)),
		tokensByDef:    make(map[string]string, len(st.tokensByDef)),
		issuerConfigs:  make(map[string]schema.IssuerConfig, len(st.issuerConfigs)),
		stats:          make(map[string]schema.TokenStat, len(st.stats)),
		ledgerBalances: make(map[string]schema.LedgerBalance, len(st.ledgerBalances)),
		keyValues:      make(map[string]string, len(st.keyValues)),
	}
	if st.config != nil {
		cfg := copyRegistryConfig(*st.config)
		c.config = &cfg
	}
	for k, v := range st.deposits {
		c.deposits[k] = v
	}
	for k, v := range st.whitelist {
		c.whitelist[k] = v
	}
	for k, v := range st.tokens {
		c.tokens[k] = copyToken(v)
	}
	for k, v := range st.tokensByDef {
		c.tokensByDef[k] = v
	}
	for k, v := range st.issuerConfigs {
		c.issuerConfigs[k] = v
	}
	for k, v := range st.stats {
		c.stats[k] = v
	}
	for k, v := range st.ledgerBalances {
		c.ledgerBalances[k] = v
	}
	for k, v := range st.keyValues {
		c.keyValues[k] = v
	}
	return c
}

// memJournal is the append-only action journal. It is never snapshotted:
// a unit of work buffers its entries and appends them on commit.
type memJournal struct {
	entries    []schema.ActionJournal
	nextCursor int64
	eventIDs   map[string]struct{}
}

func newMemJournal() *memJournal {
	return &memJournal{
		nextCursor: 1,
		eventIDs:   make(map[string]struct{}),
	}
}

func (j *memJournal) append(entry schema.ActionJournal) {
	j.entries = append(j.entries, entry)
	j.eventIDs[entry.EventID] = struct{}{}
	j.nextCursor = entry.Cursor + 1
}

type memoryStore struct {
	mu      *sync.Mutex
	state   *memState
	journal *memJournal
	// pending holds the journal entries of an open unit of work
	pending []schema.ActionJournal
	inTx    bool
}

// NewMemoryStore creates a store kept entirely in process memory.
// Units of work are serialized and run against a copy of the state that
// replaces the committed state only when the unit succeeds.
func NewMemoryStore() Store {
	return &memoryStore{
		mu:      &sync.Mutex{},
		state:   newMemState(),
		journal: newMemJournal(),
	}
}

// Transaction runs fn against a private copy of the state and commits it on success
func (s *memoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memoryStore{
		mu:      s.mu,
		state:   s.state.clone(),
		journal: s.journal,
		inTx:    true,
	}
	if err := fn(tx); err != nil {
		return err
	}

	s.state = tx.state
	for _, entry := range tx.pending {
		s.journal.append(entry)
	}
	return nil
}

// view runs fn with the state, locking when called outside a unit of work
func (s *memoryStore) view(fn func(st *memState) error) error {
	if s.inTx {
		return fn(s.state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func tokenDefKey(contract, ticker string) string {
	return contract + "/" + ticker
}

func statKey(contract, symbolCode string) string {
	return contract + "/" + symbolCode
}

func ledgerKey(contract, account, symbolCode string) string {
	return contract + "/" + account + "/" + symbolCode
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyRegistryConfig(cfg schema.RegistryConfig) schema.RegistryConfig {
	cfg.DepositContract = copyString(cfg.DepositContract)
	cfg.DepositSymbol = copyString(cfg.DepositSymbol)
	cfg.FeeReceiver = copyString(cfg.FeeReceiver)
	cfg.RegTokenFee = copyString(cfg.RegTokenFee)
	return cfg
}

func copyToken(t schema.Token) schema.Token {
	t.Contract = copyString(t.Contract)
	return t
}

// GetRegistryConfig retrieves the registry configuration singleton
func (s *memoryStore) GetRegistryConfig(ctx context.Context) (*schema.RegistryConfig, error) {
	var result *schema.RegistryConfig
	err := s.view(func(st *memState) error {
		if st.config != nil {
			cfg := copyRegistryConfig(*st.config)
			result = &cfg
		}
		return nil
	})
	return result, err
}

// SaveRegistryConfig stores the registry configuration singleton
func (s *memoryStore) SaveRegistryConfig(ctx context.Context, cfg *schema.RegistryConfig) error {
	cfg.ID = schema.RegistryConfigID
	cfg.UpdatedAt = time.Now().UTC()
	return s.view(func(st *memState) error {
		stored := copyRegistryConfig(*cfg)
		st.config = &stored
		return nil
	})
}

// GetDepositBalance retrieves the deposit balance of an account
func (s *memoryStore) GetDepositBalance(ctx context.Context, account string) (*schema.DepositBalance, error) {
	var result *schema.DepositBalance
	err := s.view(func(st *memState) error {
		if b, ok := st.deposits[account]; ok {
			result = &b
		}
		return nil
	})
	return result, err
}

// SaveDepositBalance creates or updates a deposit balance
func (s *memoryStore) SaveDepositBalance(ctx context.Context, balance *schema.DepositBalance) error {
	if balance.Amount < 0 {
		return fmt.Errorf("failed to save deposit balance: negative amount for %s", balance.Account)
	}
	now := time.Now().UTC()
	balance.UpdatedAt = now
	return s.view(func(st *memState) error {
		if existing, ok := st.deposits[balance.Account]; ok {
			balance.CreatedAt = existing.CreatedAt
		} else if balance.CreatedAt.IsZero() {
			balance.CreatedAt = now
		}
		st.deposits[balance.Account] = *balance
		return nil
	})
}

// DeleteDepositBalance removes a deposit balance
func (s *memoryStore) DeleteDepositBalance(ctx context.Context, account string) error {
	return s.view(func(st *memState) error {
		delete(st.deposits, account)
		return nil
	})
}

// GetWhitelistedContract retrieves a whitelist entry
func (s *memoryStore) GetWhitelistedContract(ctx context.Context, account string) (*schema.WhitelistedContract, error) {
	var result *schema.WhitelistedContract
	err := s.view(func(st *memState) error {
		if c, ok := st.whitelist[account]; ok {
			result = &c
		}
		return nil
	})
	return result, err
}

// CreateWhitelistedContract inserts a whitelist entry
func (s *memoryStore) CreateWhitelistedContract(ctx context.Context, contract *schema.WhitelistedContract) error {
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = time.Now().UTC()
	}
	return s.view(func(st *memState) error {
		if _, ok := st.whitelist[contract.Account]; ok {
			return fmt.Errorf("failed to create whitelisted contract: %s already exists", contract.Account)
		}
		st.whitelist[contract.Account] = *contract
		return nil
	})
}

// DeleteWhitelistedContract removes a whitelist entry
func (s *memoryStore) DeleteWhitelistedContract(ctx context.Context, account string) error {
	return s.view(func(st *memState) error {
		delete(st.whitelist, account)
		return nil
	})
}

// ListWhitelistedContracts lists whitelist entries ordered by account
func (s *memoryStore) ListWhitelistedContracts(ctx context.Context) ([]schema.WhitelistedContract, error) {
	var result []schema.WhitelistedContract
	err := s.view(func(st *memState) error {
		result = make([]schema.WhitelistedContract, 0, len(st.whitelist))
		for _, c := range st.whitelist {
			result = append(result, c)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Account < result[j].Account })
	return result, err
}

// GetTokenByTicker retrieves a catalog entry by ticker
func (s *memoryStore) GetTokenByTicker(ctx context.Context, ticker string) (*schema.Token, error) {
	var result *schema.Token
	err := s.view(func(st *memState) error {
		if t, ok := st.tokens[ticker]; ok {
			t = copyToken(t)
			result = &t
		}
		return nil
	})
	return result, err
}

// GetTokenByContractTicker retrieves a catalog entry through the (contract, ticker) index
func (s *memoryStore) GetTokenByContractTicker(ctx context.Context, contract, ticker string) (*schema.Token, error) {
	var result *schema.Token
	err := s.view(func(st *memState) error {
		primary, ok := st.tokensByDef[tokenDefKey(contract, ticker)]
		if !ok {
			return nil
		}
		t, ok := st.tokens[primary]
		if !ok {
			return fmt.Errorf("failed to get token: index entry %s/%s has no row", contract, ticker)
		}
		t = copyToken(t)
		result = &t
		return nil
	})
	return result, err
}

// CreateToken inserts a catalog entry
func (s *memoryStore) CreateToken(ctx context.Context, token *schema.Token) error {
	now := time.Now().UTC()
	token.CreatedAt = now
	token.UpdatedAt = now
	return s.view(func(st *memState) error {
		if _, ok := st.tokens[token.Ticker]; ok {
			return fmt.Errorf("failed to create token: %s already exists", token.Ticker)
		}
		if token.IsBound() {
			key := tokenDefKey(*token.Contract, token.Ticker)
			if _, ok := st.tokensByDef[key]; ok {
				return fmt.Errorf("failed to create token: index entry %s already exists", key)
			}
			st.tokensByDef[key] = token.Ticker
		}
		st.tokens[token.Ticker] = copyToken(*token)
		return nil
	})
}

// SetTokenContract binds a catalog entry to an issuing contract
func (s *memoryStore) SetTokenContract(ctx context.Context, ticker, contract string) error {
	return s.view(func(st *memState) error {
		t, ok := st.tokens[ticker]
		if !ok {
			return fmt.Errorf("failed to set token contract: token %s does not exist", ticker)
		}
		if t.IsBound() {
			delete(st.tokensByDef, tokenDefKey(*t.Contract, ticker))
		}
		t.Contract = &contract
		t.UpdatedAt = time.Now().UTC()
		st.tokens[ticker] = t
		st.tokensByDef[tokenDefKey(contract, ticker)] = ticker
		return nil
	})
}

// DeleteToken removes a catalog entry
func (s *memoryStore) DeleteToken(ctx context.Context, ticker string) error {
	return s.view(func(st *memState) error {
		t, ok := st.tokens[ticker]
		if !ok {
			return nil
		}
		if t.IsBound() {
			delete(st.tokensByDef, tokenDefKey(*t.Contract, ticker))
		}
		delete(st.tokens, ticker)
		return nil
	})
}

// ListTokens lists catalog entries ordered by ticker
func (s *memoryStore) ListTokens(ctx context.Context) ([]schema.Token, error) {
	var result []schema.Token
	err := s.view(func(st *memState) error {
		result = make([]schema.Token, 0, len(st.tokens))
		for _, t := range st.tokens {
			result = append(result, copyToken(t))
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Ticker < result[j].Ticker })
	return result, err
}

// GetIssuerConfig retrieves the configuration of an issuing contract
func (s *memoryStore) GetIssuerConfig(ctx context.Context, contract string) (*schema.IssuerConfig, error) {
	var result *schema.IssuerConfig
	err := s.view(func(st *memState) error {
		if c, ok := st.issuerConfigs[contract]; ok {
			result = &c
		}
		return nil
	})
	return result, err
}

// SaveIssuerConfig creates or updates the configuration of an issuing contract
func (s *memoryStore) SaveIssuerConfig(ctx context.Context, cfg *schema.IssuerConfig) error {
	cfg.UpdatedAt = time.Now().UTC()
	return s.view(func(st *memState) error {
		st.issuerConfigs[cfg.Contract] = *cfg
		return nil
	})
}

// GetTokenStat retrieves the supply record of a symbol kept by a contract
func (s *memoryStore) GetTokenStat(ctx context.Context, contract, symbolCode string) (*schema.TokenStat, error) {
	var result *schema.TokenStat
	err := s.view(func(st *memState) error {
		if stat, ok := st.stats[statKey(contract, symbolCode)]; ok {
			result = &stat
		}
		return nil
	})
	return result, err
}

// SaveTokenStat creates or updates a supply record
func (s *memoryStore) SaveTokenStat(ctx context.Context, stat *schema.TokenStat) error {
	if stat.Supply < 0 || stat.Supply > stat.MaxSupply {
		return fmt.Errorf("failed to save token stat: supply %d out of range for %s", stat.Supply, stat.SymbolCode)
	}
	now := time.Now().UTC()
	stat.UpdatedAt = now
	return s.view(func(st *memState) error {
		key := statKey(stat.Contract, stat.SymbolCode)
		if existing, ok := st.stats[key]; ok {
			stat.CreatedAt = existing.CreatedAt
		} else if stat.CreatedAt.IsZero() {
			stat.CreatedAt = now
		}
		st.stats[key] = *stat
		return nil
	})
}

// GetLedgerBalance retrieves a balance kept by a token contract
func (s *memoryStore) GetLedgerBalance(ctx context.Context, contract, account, symbolCode string) (*schema.LedgerBalance, error) {
	var result *schema.LedgerBalance
	err := s.view(func(st *memState) error {
		if b, ok := st.ledgerBalances[ledgerKey(contract, account, symbolCode)]; ok {
			result = &b
		}
		return nil
	})
	return result, err
}

// SaveLedgerBalance creates or updates a balance kept by a token contract
func (s *memoryStore) SaveLedgerBalance(ctx context.Context, balance *schema.LedgerBalance) error {
	if balance.Amount < 0 {
		return fmt.Errorf("failed to save ledger balance: negative amount for %s", balance.Account)
	}
	now := time.Now().UTC()
	balance.UpdatedAt = now
	return s.view(func(st *memState) error {
		key := ledgerKey(balance.Contract, balance.Account, balance.SymbolCode)
		if existing, ok := st.ledgerBalances[key]; ok {
			balance.CreatedAt = existing.CreatedAt
			balance.Precision = existing.Precision
		} else if balance.CreatedAt.IsZero() {
			balance.CreatedAt = now
		}
		st.ledgerBalances[key] = *balance
		return nil
	})
}

// DeleteLedgerBalance removes a balance kept by a token contract
func (s *memoryStore) DeleteLedgerBalance(ctx context.Context, contract, account, symbolCode string) error {
	return s.view(func(st *memState) error {
		delete(st.ledgerBalances, ledgerKey(contract, account, symbolCode))
		return nil
	})
}

// ListLedgerBalances lists the balances of an account kept by a token contract, ordered by symbol code
func (s *memoryStore) ListLedgerBalances(ctx context.Context, contract, account string) ([]schema.LedgerBalance, error) {
	var result []schema.LedgerBalance
	err := s.view(func(st *memState) error {
		result = make([]schema.LedgerBalance, 0)
		for _, b := range st.ledgerBalances {
			if b.Contract == contract && b.Account == account {
				result = append(result, b)
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].SymbolCode < result[j].SymbolCode })
	return result, err
}

// CreateActionJournal appends an entry to the action journal and assigns its cursor
func (s *memoryStore) CreateActionJournal(ctx context.Context, entry *schema.ActionJournal) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return s.view(func(st *memState) error {
		if s.hasEvent(entry.EventID) {
			return fmt.Errorf("failed to create action journal: event %s already exists", entry.EventID)
		}
		entry.Cursor = s.journal.nextCursor + int64(len(s.pending))
		if s.inTx {
			s.pending = append(s.pending, *entry)
			return nil
		}
		s.journal.append(*entry)
		return nil
	})
}

// hasEvent reports whether an event id is committed or pending in this unit of work
func (s *memoryStore) hasEvent(eventID string) bool {
	if _, ok := s.journal.eventIDs[eventID]; ok {
		return true
	}
	for _, entry := range s.pending {
		if entry.EventID == eventID {
			return true
		}
	}
	return false
}

// GetActionJournal retrieves journal entries ordered by cursor along with the total count
func (s *memoryStore) GetActionJournal(ctx context.Context, filter ActionQueryFilter) ([]schema.ActionJournal, uint64, error) {
	limit := normalizeLimit(filter.Limit)

	var (
		result []schema.ActionJournal
		total  uint64
	)
	match := func(entry schema.ActionJournal) {
		if filter.Contract != "" && entry.Contract != filter.Contract {
			return
		}
		if filter.Action != "" && entry.Action != filter.Action {
			return
		}
		if entry.Cursor <= filter.Since {
			return
		}
		total++
		if len(result) < limit {
			result = append(result, entry)
		}
	}
	err := s.view(func(st *memState) error {
		result = make([]schema.ActionJournal, 0)
		for _, entry := range s.journal.entries {
			match(entry)
		}
		for _, entry := range s.pending {
			match(entry)
		}
		return nil
	})
	return result, total, err
}

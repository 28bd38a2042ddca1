package registry

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-token-registry/internal/adapter"
	"github.com/feral-file/ff-token-registry/internal/domain"
	"github.com/feral-file/ff-token-registry/internal/store"
	"github.com/feral-file/ff-token-registry/internal/store/schema"
)

// AddContract whitelists a contract for binding to tickers
func (r *Registry) AddContract(ctx context.Context, tx store.Store, signers domain.Signers, contract domain.Name) error {
	if err := domain.RequireAuth(signers, r.account); err != nil {
		return err
	}
	if !contract.Valid() {
		return fmt.Errorf("%w: invalid contract account %q", domain.ErrValidation, contract)
	}

	existing, err := tx.GetWhitelistedContract(ctx, contract.String())
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: contract %s is already registered", domain.ErrDuplicate, contract)
	}

	return tx.CreateWhitelistedContract(ctx, &schema.WhitelistedContract{Account: contract.String()})
}

// RemoveContract removes a contract from the whitelist
func (r *Registry) RemoveContract(ctx context.Context, tx store.Store, signers domain.Signers, contract domain.Name) error {
	if err := domain.RequireAuth(signers, r.account); err != nil {
		return err
	}

	existing, err := tx.GetWhitelistedContract(ctx, contract.String())
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: contract %s not found", domain.ErrNotFound, contract)
	}

	return tx.DeleteWhitelistedContract(ctx, contract.String())
}

// IsWhitelisted reports whether contract is in the whitelist
func (r *Registry) IsWhitelisted(ctx context.Context, tx store.Store, contract domain.Name) (bool, error) {
	existing, err := tx.GetWhitelistedContract(ctx, contract.String())
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// ListContracts lists the whitelisted contracts
func (r *Registry) ListContracts(ctx context.Context, tx store.Store) ([]domain.Name, error) {
	rows, err := tx.ListWhitelistedContracts(ctx)
	if err != nil {
		return nil, err
	}
	contracts := make([]domain.Name, 0, len(rows))
	for _, row := range rows {
		contracts = append(contracts, domain.Name(row.Account))
	}
	return contracts, nil
}

// SeedWhitelist adds every contract that is not yet whitelisted and returns how many were added
func (r *Registry) SeedWhitelist(ctx context.Context, tx store.Store, contracts []domain.Name) (int, error) {
	added := 0
	for _, contract := range contracts {
		ok, err := r.IsWhitelisted(ctx, tx, contract)
		if err != nil {
			return added, err
		}
		if ok {
			continue
		}
		if err := r.AddContract(ctx, tx, domain.Signers{r.account}, contract); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// WhitelistData represents the structure of the whitelist seed file
type WhitelistData struct {
	Version   int      `json:"version"`
	Contracts []string `json:"contracts"`
}

// WhitelistLoader loads whitelist seed files
type WhitelistLoader interface {
	// Load reads the contracts listed in a whitelist seed file
	Load(filePath string) ([]domain.Name, error)
}

type whitelistLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewWhitelistLoader creates a WhitelistLoader with injected dependencies
func NewWhitelistLoader(fs adapter.FileSystem, json adapter.JSON) WhitelistLoader {
	return &whitelistLoader{fs: fs, json: json}
}

// Load reads the contracts listed in a whitelist seed file
func (l *whitelistLoader) Load(filePath string) ([]domain.Name, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read whitelist file: %w", err)
	}

	var whitelist WhitelistData
	if err := l.json.Unmarshal(data, &whitelist); err != nil {
		return nil, fmt.Errorf("failed to parse whitelist JSON: %w", err)
	}

	seen := make(map[domain.Name]bool, len(whitelist.Contracts))
	contracts := make([]domain.Name, 0, len(whitelist.Contracts))
	for _, raw := range whitelist.Contracts {
		contract, err := domain.ParseName(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse whitelist entry: %w", err)
		}
		if seen[contract] {
			continue
		}
		seen[contract] = true
		contracts = append(contracts, contract)
	}

	return contracts, nil
}

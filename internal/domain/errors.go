package domain

import (
	"errors"
)

// ErrorKind classifies a domain error so callers can react without string matching
type ErrorKind string

const (
	// KindAuthorization is a missing required signer
	KindAuthorization ErrorKind = "authorization"
	// KindValidation is a malformed argument: bad amounts, symbol mismatches, ticker rule violations
	KindValidation ErrorKind = "validation"
	// KindStateConflict is an operation that conflicts with the current state
	KindStateConflict ErrorKind = "state_conflict"
	// KindNotFound is a missing ticker, contract or balance
	KindNotFound ErrorKind = "not_found"
	// KindInvariant is a violated conservation invariant
	KindInvariant ErrorKind = "invariant_violation"
)

// Error is a domain error carrying a stable code and a kind
type Error struct {
	Code    string
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, code, message string) *Error {
	return &Error{Code: code, Kind: kind, Message: message}
}

var (
	// ErrMissingAuthority is returned when a required signer is absent
	ErrMissingAuthority = newError(KindAuthorization, "missing_authority", "missing required authority")

	// ErrValidation is returned for malformed input that has no more specific error
	ErrValidation = newError(KindValidation, "validation_failed", "validation failed")
	// ErrWrongAsset is returned when a payment or deposit uses an asset other than the configured deposit asset
	ErrWrongAsset = newError(KindValidation, "wrong_asset", "incorrect asset")
	// ErrWrongAmount is returned when a payment does not equal the configured fee
	ErrWrongAmount = newError(KindValidation, "wrong_amount", "incorrect payment amount")
	// ErrInvalidSupply is returned when a max supply is not positive or malformed
	ErrInvalidSupply = newError(KindValidation, "invalid_supply", "invalid supply")
	// ErrEmptyAllocation is returned when a distribution has no allocations
	ErrEmptyAllocation = newError(KindValidation, "empty_allocation", "must provide at least one token allocation")

	// ErrDisabled is returned when the registry is not enabled
	ErrDisabled = newError(KindStateConflict, "disabled", "contract is disabled")
	// ErrRegistryNotSet is returned when an issuing contract has no registry configured
	ErrRegistryNotSet = newError(KindStateConflict, "registry_not_set", "registry contract not set")
	// ErrDuplicate is returned when a whitelist entry already exists
	ErrDuplicate = newError(KindStateConflict, "duplicate", "already registered")
	// ErrDuplicateTicker is returned when a ticker is already in the catalog
	ErrDuplicateTicker = newError(KindStateConflict, "duplicate_ticker", "token is already registered")
	// ErrAlreadyBound is returned when a ticker already has an issuing contract
	ErrAlreadyBound = newError(KindStateConflict, "already_bound", "token contract has already been set")
	// ErrNotWhitelisted is returned when binding a contract that is not whitelisted
	ErrNotWhitelisted = newError(KindStateConflict, "not_whitelisted", "contract is not whitelisted")
	// ErrNotBound is returned when a ticker is not bound to the calling issuing contract
	ErrNotBound = newError(KindStateConflict, "not_bound", "token is not registered to this contract")
	// ErrAlreadySet is returned when a supply record already exists
	ErrAlreadySet = newError(KindStateConflict, "already_set", "token supply has already been set")
	// ErrSupplyNotSet is returned when distributing a ticker whose supply is not established
	ErrSupplyNotSet = newError(KindStateConflict, "supply_not_set", "supply not established")
	// ErrAlreadyDistributed is returned when the escrow no longer holds the full supply
	ErrAlreadyDistributed = newError(KindStateConflict, "already_distributed", "token has already been distributed")
	// ErrAlreadyOpen is returned when opening a balance that exists
	ErrAlreadyOpen = newError(KindStateConflict, "already_open", "balance is already open")
	// ErrNotOpen is returned when closing a balance that does not exist
	ErrNotOpen = newError(KindStateConflict, "not_open", "balance does not exist")
	// ErrNonZeroBalance is returned when closing a balance that still holds funds
	ErrNonZeroBalance = newError(KindStateConflict, "non_zero_balance", "cannot close because the balance is not zero")
	// ErrBalanceNotOpen is returned when an allocation receiver has not opened a balance
	ErrBalanceNotOpen = newError(KindStateConflict, "balance_not_open", "balance must be opened first")

	// ErrNotFound is returned for a missing whitelist entry or record
	ErrNotFound = newError(KindNotFound, "not_found", "not found")
	// ErrTickerNotFound is returned when a ticker is not in the catalog
	ErrTickerNotFound = newError(KindNotFound, "ticker_not_found", "token is not registered in registry contract")
	// ErrSymbolNotFound is returned when a ledger has no stats for a symbol
	ErrSymbolNotFound = newError(KindNotFound, "symbol_not_found", "symbol does not exist")

	// ErrAllocationMismatch is returned when an allocation list does not add up to the supply
	ErrAllocationMismatch = newError(KindInvariant, "allocation_mismatch", "invalid token distribution")
	// ErrInsufficientBalance is returned when a balance cannot cover a debit
	ErrInsufficientBalance = newError(KindInvariant, "insufficient_balance", "insufficient balance")
)

// KindOf returns the kind of the first domain error in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// CodeOf returns the code of the first domain error in err's chain
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

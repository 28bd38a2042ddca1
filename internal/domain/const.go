package domain

const (
	// Transfer memos
	MEMO_REGISTRATION_FEE   = "token registration fee"
	MEMO_INITIAL_ALLOCATION = "initial token allocation"
	MEMO_WITHDRAW           = "withdraw"

	// MAX_MEMO_BYTES is the longest memo a transfer may carry
	MAX_MEMO_BYTES = 256

	// DEFAULT_MIN_TICKER_LENGTH is the ticker rule applied when none is configured
	DEFAULT_MIN_TICKER_LENGTH = 1
)

// DefaultStorageMarketAccounts are the gateway's internal accounts whose movements
// the registry ignores in its deposit handler
var DefaultStorageMarketAccounts = []Name{"eosio.ram", "eosio.ramfee"}

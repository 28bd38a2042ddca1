package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxPrecision is the largest number of decimal places a symbol may carry
const MaxPrecision = 18

// MaxAmount is the largest absolute amount an asset may hold
const MaxAmount int64 = (1 << 62) - 1

// symbolCodeRegex matches symbol codes: 1 to 7 uppercase letters
var symbolCodeRegex = regexp.MustCompile(`^[A-Z]{1,7}$`)

// SymbolCode is a ticker, the code part of a symbol
type SymbolCode string

// Valid checks if the code is a well-formed symbol code
func (c SymbolCode) Valid() bool {
	return symbolCodeRegex.MatchString(string(c))
}

// String returns the string representation of the symbol code
func (c SymbolCode) String() string {
	return string(c)
}

// ParseSymbolCode parses and validates a symbol code
func ParseSymbolCode(s string) (SymbolCode, error) {
	c := SymbolCode(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: invalid symbol name %q", ErrValidation, s)
	}
	return c, nil
}

// Symbol is a symbol code together with its decimal precision
type Symbol struct {
	Precision uint8
	Code      SymbolCode
}

// NewSymbol creates a symbol
func NewSymbol(code SymbolCode, precision uint8) Symbol {
	return Symbol{Precision: precision, Code: code}
}

// Valid checks the code and the precision
func (s Symbol) Valid() bool {
	return s.Code.Valid() && s.Precision <= MaxPrecision
}

// IsZero reports whether the symbol is unset
func (s Symbol) IsZero() bool {
	return s.Code == "" && s.Precision == 0
}

// String formats the symbol as "precision,CODE"
func (s Symbol) String() string {
	return fmt.Sprintf("%d,%s", s.Precision, s.Code)
}

// MarshalText implements encoding.TextMarshaler
func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Symbol) UnmarshalText(text []byte) error {
	parsed, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSymbol parses a symbol in "precision,CODE" form
func ParseSymbol(s string) (Symbol, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Symbol{}, fmt.Errorf("%w: invalid symbol format %q", ErrValidation, s)
	}

	precision, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 8)
	if err != nil || precision > MaxPrecision {
		return Symbol{}, fmt.Errorf("%w: invalid symbol precision %q", ErrValidation, parts[0])
	}

	code, err := ParseSymbolCode(strings.TrimSpace(parts[1]))
	if err != nil {
		return Symbol{}, err
	}

	return Symbol{Precision: uint8(precision), Code: code}, nil
}

// ExtendedSymbol is a symbol scoped to the contract that issues it
type ExtendedSymbol struct {
	Contract Name   `json:"contract"`
	Symbol   Symbol `json:"symbol"`
}

// Valid checks both the contract and the symbol
func (e ExtendedSymbol) Valid() bool {
	return e.Contract.Valid() && e.Symbol.Valid()
}

// String formats the extended symbol as "precision,CODE@contract"
func (e ExtendedSymbol) String() string {
	return fmt.Sprintf("%s@%s", e.Symbol, e.Contract)
}

// Asset is a fixed-point amount of a symbol
type Asset struct {
	Amount int64
	Symbol Symbol
}

// NewAsset creates an asset from a raw amount in the symbol's smallest unit
func NewAsset(amount int64, symbol Symbol) Asset {
	return Asset{Amount: amount, Symbol: symbol}
}

// IsAmountWithinRange reports whether the absolute amount does not exceed MaxAmount
func (a Asset) IsAmountWithinRange() bool {
	return a.Amount >= -MaxAmount && a.Amount <= MaxAmount
}

// Valid checks the amount range and the symbol
func (a Asset) Valid() bool {
	return a.IsAmountWithinRange() && a.Symbol.Valid()
}

// IsPositive reports whether the amount is strictly greater than zero
func (a Asset) IsPositive() bool {
	return a.Amount > 0
}

// Add returns a+b, failing on symbol mismatch or overflow
func (a Asset) Add(b Asset) (Asset, error) {
	if a.Symbol != b.Symbol {
		return Asset{}, fmt.Errorf("%w: attempt to add asset with different symbol", ErrValidation)
	}
	if (b.Amount > 0 && a.Amount > math.MaxInt64-b.Amount) || (b.Amount < 0 && a.Amount < math.MinInt64-b.Amount) {
		return Asset{}, fmt.Errorf("%w: addition overflow", ErrValidation)
	}
	sum := Asset{Amount: a.Amount + b.Amount, Symbol: a.Symbol}
	if !sum.IsAmountWithinRange() {
		return Asset{}, fmt.Errorf("%w: addition overflow", ErrValidation)
	}
	return sum, nil
}

// Sub returns a-b, failing on symbol mismatch or underflow
func (a Asset) Sub(b Asset) (Asset, error) {
	return a.Add(Asset{Amount: -b.Amount, Symbol: b.Symbol})
}

// Decimal returns the amount as a decimal number
func (a Asset) Decimal() decimal.Decimal {
	return decimal.New(a.Amount, -int32(a.Symbol.Precision))
}

// String formats the asset as "10.0000 SYS"
func (a Asset) String() string {
	return fmt.Sprintf("%s %s", a.Decimal().StringFixed(int32(a.Symbol.Precision)), a.Symbol.Code)
}

// MarshalText implements encoding.TextMarshaler
func (a Asset) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Asset) UnmarshalText(text []byte) error {
	parsed, err := ParseAsset(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// validAmount reports whether s is an optional '-' followed by digits with an
// optional non-empty fraction
func validAmount(s string) bool {
	s = strings.TrimPrefix(s, "-")
	whole, fraction, hasDot := strings.Cut(s, ".")
	if whole == "" || (hasDot && fraction == "") {
		return false
	}
	return allDigits(whole) && allDigits(fraction)
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ParseAsset parses an asset in "amount CODE" form, e.g. "10.0000 SYS".
// The precision is the number of digits after the decimal point.
func ParseAsset(s string) (Asset, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Asset{}, fmt.Errorf("%w: invalid asset format %q", ErrValidation, s)
	}

	code, err := ParseSymbolCode(fields[1])
	if err != nil {
		return Asset{}, err
	}

	if !validAmount(fields[0]) {
		return Asset{}, fmt.Errorf("%w: invalid asset amount %q", ErrValidation, fields[0])
	}
	amount, err := decimal.NewFromString(fields[0])
	if err != nil {
		return Asset{}, fmt.Errorf("%w: invalid asset amount %q", ErrValidation, fields[0])
	}

	precision := 0
	if dot := strings.IndexByte(fields[0], '.'); dot >= 0 {
		precision = len(fields[0]) - dot - 1
	}
	if precision > MaxPrecision {
		return Asset{}, fmt.Errorf("%w: precision exceeds %d", ErrValidation, MaxPrecision)
	}

	raw := amount.Shift(int32(precision))
	if raw.GreaterThan(decimal.NewFromInt(MaxAmount)) || raw.LessThan(decimal.NewFromInt(-MaxAmount)) {
		return Asset{}, fmt.Errorf("%w: magnitude of asset amount must be less than 2^62", ErrValidation)
	}

	return Asset{
		Amount: raw.IntPart(),
		Symbol: Symbol{Precision: uint8(precision), Code: code},
	}, nil
}

package domain

import (
	"fmt"
)

// Allocation is a receiver and the quantity it gets in an initial distribution
type Allocation struct {
	Receiver Name  `json:"receiver"`
	Quantity Asset `json:"quantity"`
}

// CheckAllocations validates a whole allocation list against a supply.
// Every quantity must be positive and carry the supply symbol, and the
// quantities must add up to the supply exactly.
func CheckAllocations(supply Asset, allocations []Allocation) error {
	if len(allocations) == 0 {
		return ErrEmptyAllocation
	}

	total := NewAsset(0, supply.Symbol)
	for i, allocation := range allocations {
		if !allocation.Receiver.Valid() {
			return fmt.Errorf("%w: invalid receiver %q at index %d", ErrAllocationMismatch, allocation.Receiver, i)
		}
		if !allocation.Quantity.IsAmountWithinRange() {
			return fmt.Errorf("%w: invalid quantity at index %d", ErrAllocationMismatch, i)
		}
		if !allocation.Quantity.IsPositive() {
			return fmt.Errorf("%w: must allocate an amount greater than zero", ErrAllocationMismatch)
		}
		if !allocation.Quantity.Symbol.Valid() {
			return fmt.Errorf("%w: invalid symbol name", ErrAllocationMismatch)
		}
		if allocation.Quantity.Symbol != supply.Symbol {
			return fmt.Errorf("%w: allocation symbol does not match supply symbol", ErrAllocationMismatch)
		}

		var err error
		total, err = total.Add(allocation.Quantity)
		if err != nil {
			return fmt.Errorf("%w: total allocations overflow", ErrAllocationMismatch)
		}
	}

	if total != supply {
		return fmt.Errorf("%w: total allocations must match the supply (%s != %s)", ErrAllocationMismatch, total, supply)
	}

	return nil
}

package domain

import "github.com/shopspring/decimal"

// ItemAllocation is the allocator's verdict for a single billable item.
type ItemAllocation struct {
	Item       BillableItem
	ShouldPay  bool
	FlagChange bool // persisted flag differs from the target
}

// Allocate distributes totalPaid across items oldest-first and decides
// which items should be marked paid. An item is covered only when the
// remaining funds fully cover its amount; the first item that fails to
// clear blocks every later item, even one cheap enough to fit the
// leftover. Partial and out-of-order settlement are disallowed.
//
// Pure function: identical inputs always produce identical output. The
// items slice must already be in allocation order (see SortItems).
func Allocate(totalPaid decimal.Decimal, items []BillableItem) []ItemAllocation {
	result := make([]ItemAllocation, 0, len(items))

	remaining := totalPaid
	blocked := false

	for _, it := range items {
		covered := false
		if !blocked && remaining.GreaterThanOrEqual(it.Amount) {
			remaining = remaining.Sub(it.Amount)
			covered = true
		} else {
			blocked = true
		}

		result = append(result, ItemAllocation{
			Item:       it,
			ShouldPay:  covered,
			FlagChange: covered != it.Paid,
		})
	}

	return result
}

// Changed filters an allocation down to the items whose persisted flag
// must be rewritten. This is the recalculator's write set.
func Changed(allocations []ItemAllocation) []ItemAllocation {
	changed := make([]ItemAllocation, 0, len(allocations))
	for _, a := range allocations {
		if a.FlagChange {
			changed = append(changed, a)
		}
	}
	return changed
}

package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BillableKind tags the record a billable item was derived from.
type BillableKind string

const (
	KindAppointment BillableKind = "appointment"
	KindLabWork     BillableKind = "lab_work"
)

// ItemRef uniquely identifies a billable item across both kinds.
type ItemRef struct {
	Kind BillableKind
	ID   string
}

// BillableItem is a chargeable obligation derived from an appointment or
// a lab-work record. It is never persisted on its own; Paid mirrors the
// flag currently stored on the underlying record.
type BillableItem struct {
	ID         string
	Kind       BillableKind
	Amount     decimal.Decimal
	OccurredOn time.Time
	Paid       bool
}

// Ref returns the item's cross-kind identity.
func (b BillableItem) Ref() ItemRef {
	return ItemRef{Kind: b.Kind, ID: b.ID}
}

// SortItems orders items ascending by occurrence date. On equal dates
// appointments come before lab work, then lower IDs first, so repeated
// runs allocate identically.
func SortItems(items []BillableItem) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.OccurredOn.Equal(b.OccurredOn) {
			return a.OccurredOn.Before(b.OccurredOn)
		}
		if a.Kind != b.Kind {
			return a.Kind == KindAppointment
		}
		return a.ID < b.ID
	})
}

// TotalAmount sums the amounts of the given items.
func TotalAmount(items []BillableItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

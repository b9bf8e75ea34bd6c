package domain

import "time"

// Patient is a clinic patient. Billing only ever reads patients; the
// record is owned by the practice-management side of the system.
type Patient struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

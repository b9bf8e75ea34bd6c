package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running recalculations from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// BalanceCacheTTL is how long computed balances are cached. Mutations
	// invalidate the key, the TTL only bounds staleness after missed
	// invalidations.
	BalanceCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyInFlight marks an idempotency key whose request is still
	// being processed and has no response to replay yet.
	IdempotencyInFlight = "in-flight"
)

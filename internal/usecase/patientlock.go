package usecase

import "sync"

// patientLocks serializes payment mutations per (tenantID, patientID).
// The balance check before a payment insert is optimistic; without a
// serialization point two concurrent creates can both pass the check and
// overpay the account. Entries are refcounted so the map does not grow
// with the patient population.
type patientLocks struct {
	mu    sync.Mutex
	locks map[string]*patientLock
}

type patientLock struct {
	mu   sync.Mutex
	refs int
}

func newPatientLocks() *patientLocks {
	return &patientLocks{locks: make(map[string]*patientLock)}
}

// Lock acquires the per-patient lock and returns its release func.
func (p *patientLocks) Lock(tenantID, patientID string) func() {
	key := tenantID + "/" + patientID

	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &patientLock{}
		p.locks[key] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, key)
		}
		p.mu.Unlock()
	}
}

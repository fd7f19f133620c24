// Package session holds the client-visible payment state of one application
// session: the amount the user entered and the last payment status.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Field names a store field in change notifications.
type Field string

const (
	FieldAmount        Field = "amount"
	FieldPaymentStatus Field = "payment_status"
)

// Snapshot is a consistent copy of the store fields.
type Snapshot struct {
	Amount        string `json:"amount"`
	PaymentStatus string `json:"paymentStatus"`
}

// Change describes one write to the store.
type Change struct {
	Field    Field
	Value    string
	Snapshot Snapshot
}

// Store is owned by the application session and passed by reference to
// every consumer. The two fields are independent: writing one never
// touches the other. Writes are last-write-wins.
type Store struct {
	id uuid.UUID

	mu            sync.RWMutex
	amount        string
	paymentStatus string

	subMu       sync.Mutex
	subscribers []subscriber
	nextSubID   uint64
}

type subscriber struct {
	id uint64
	fn func(Change)
}

// NewStore creates an empty store with a fresh session ID.
func NewStore() *Store {
	return &Store{id: uuid.New()}
}

// ID identifies the session the store belongs to.
func (s *Store) ID() uuid.UUID { return s.id }

func (s *Store) Amount() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.amount
}

func (s *Store) PaymentStatus() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paymentStatus
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Amount: s.amount, PaymentStatus: s.paymentStatus}
}

// SetAmount replaces the amount unconditionally.
func (s *Store) SetAmount(v string) {
	s.mu.Lock()
	s.amount = v
	snap := Snapshot{Amount: s.amount, PaymentStatus: s.paymentStatus}
	s.mu.Unlock()

	s.notify(Change{Field: FieldAmount, Value: v, Snapshot: snap})
}

// SetPaymentStatus replaces the payment status unconditionally.
func (s *Store) SetPaymentStatus(status string) {
	s.mu.Lock()
	s.paymentStatus = status
	snap := Snapshot{Amount: s.amount, PaymentStatus: s.paymentStatus}
	s.mu.Unlock()

	s.notify(Change{Field: FieldPaymentStatus, Value: status, Snapshot: snap})
}

// Subscribe registers fn to be called synchronously after every write, in
// subscription order. Calling the returned func removes the subscription;
// it is safe to call more than once.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subscribers {
				if sub.id == id {
					s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) notify(c Change) {
	s.subMu.Lock()
	subs := s.subscribers
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(c)
	}
}

package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Defaults(t *testing.T) {
	s := NewStore()

	assert.Equal(t, "", s.Amount())
	assert.Equal(t, "", s.PaymentStatus())
	assert.NotEqual(t, uuid.Nil, s.ID())
	assert.NotEqual(t, s.ID(), NewStore().ID())
}

func TestStore_SetAmount(t *testing.T) {
	tests := []string{"100", "", "-5", "12.50", "not a number", "支付"}

	for _, v := range tests {
		t.Run(v, func(t *testing.T) {
			s := NewStore()
			s.SetPaymentStatus("payment succeeded")

			s.SetAmount(v)

			assert.Equal(t, v, s.Amount())
			assert.Equal(t, "payment succeeded", s.PaymentStatus(), "status must not change")
		})
	}
}

func TestStore_SetPaymentStatus_LastWriteWins(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
	}{
		{"distinct values", "pending", "payment failed"},
		{"same value", "ok", "ok"},
		{"reset to empty", "invalid amount", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.SetAmount("42")

			s.SetPaymentStatus(tt.first)
			s.SetPaymentStatus(tt.second)

			assert.Equal(t, tt.second, s.PaymentStatus())
			assert.Equal(t, "42", s.Amount(), "amount must not change")
		})
	}
}

func TestStore_Snapshot(t *testing.T) {
	s := NewStore()
	s.SetAmount("100")
	s.SetPaymentStatus("payment succeeded")

	assert.Equal(t, Snapshot{Amount: "100", PaymentStatus: "payment succeeded"}, s.Snapshot())
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore()

	var changes []Change
	unsubscribe := s.Subscribe(func(c Change) {
		changes = append(changes, c)
	})

	s.SetAmount("100")
	s.SetPaymentStatus("payment succeeded")

	require.Len(t, changes, 2)
	assert.Equal(t, Change{
		Field:    FieldAmount,
		Value:    "100",
		Snapshot: Snapshot{Amount: "100"},
	}, changes[0])
	assert.Equal(t, Change{
		Field:    FieldPaymentStatus,
		Value:    "payment succeeded",
		Snapshot: Snapshot{Amount: "100", PaymentStatus: "payment succeeded"},
	}, changes[1])

	unsubscribe()
	unsubscribe()
	s.SetAmount("200")
	assert.Len(t, changes, 2)
}

func TestStore_SubscribersRunInOrder(t *testing.T) {
	s := NewStore()

	var order []int
	s.Subscribe(func(Change) { order = append(order, 1) })
	unsub := s.Subscribe(func(Change) { order = append(order, 2) })
	s.Subscribe(func(Change) { order = append(order, 3) })

	s.SetAmount("1")
	unsub()
	s.SetAmount("2")

	assert.Equal(t, []int{1, 2, 3, 1, 3}, order)
}

func TestStore_SubscriberCanReadStore(t *testing.T) {
	s := NewStore()

	var seen string
	s.Subscribe(func(c Change) {
		seen = s.PaymentStatus()
	})

	s.SetPaymentStatus("invalid amount")
	assert.Equal(t, "invalid amount", seen)
}

func TestStore_ConcurrentWrites(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SetAmount("1")
			s.SetPaymentStatus("done")
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, Snapshot{Amount: "1", PaymentStatus: "done"}, s.Snapshot())
}

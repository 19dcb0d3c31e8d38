package orders

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAppendAssignsSequentialIDs(t *testing.T) {
	l := NewLedger()

	first := l.Append(Order{UserID: 1})
	second := l.Append(Order{UserID: 2})
	third := l.Append(Order{UserID: 1})

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, int64(3), third.ID)
}

func TestLedgerGet(t *testing.T) {
	l := NewLedger()
	created := l.Append(Order{UserID: 7, ProductName: "Laptop"})

	got, err := l.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = l.Get(99)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestLedgerListByUser(t *testing.T) {
	l := NewLedger()
	l.Append(Order{UserID: 1})
	l.Append(Order{UserID: 2})
	l.Append(Order{UserID: 1})

	mine := l.ListByUser(1)
	require.Len(t, mine, 2)
	assert.Equal(t, int64(1), mine[0].ID)
	assert.Equal(t, int64(3), mine[1].ID, "insertion order must be preserved")

	assert.Empty(t, l.ListByUser(42))
	assert.NotNil(t, l.ListByUser(42))
}

// TestLedgerConcurrentAppends verifies IDs stay strictly increasing by one,
// with no duplicates or gaps, under concurrent appends.
func TestLedgerConcurrentAppends(t *testing.T) {
	l := NewLedger()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append(Order{UserID: 1})
		}()
	}
	wg.Wait()

	all := l.ListAll()
	require.Len(t, all, n)

	seen := make(map[int64]bool, n)
	for _, o := range all {
		assert.False(t, seen[o.ID], "duplicate id %d", o.ID)
		seen[o.ID] = true
	}
	for id := int64(1); id <= n; id++ {
		assert.True(t, seen[id], "missing id %d", id)
	}
}

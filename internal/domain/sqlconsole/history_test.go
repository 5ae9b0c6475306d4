package sqlconsole

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_NewestFirstAndBounded(t *testing.T) {
	h := NewHistory(3)
	assert.Empty(t, h.Entries())

	for i := 1; i <= 5; i++ {
		h.Add(Run{ID: fmt.Sprint(i)})
	}

	got := h.Entries()
	require.Len(t, got, 3)
	assert.Equal(t, "5", got[0].ID)
	assert.Equal(t, "4", got[1].ID)
	assert.Equal(t, "3", got[2].ID)
}

func TestHistory_DefaultSize(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < DefaultHistorySize+10; i++ {
		h.Add(Run{})
	}
	assert.Len(t, h.Entries(), DefaultHistorySize)
}

func TestHistory_ConcurrentAdd(t *testing.T) {
	h := NewHistory(50)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				h.Add(Run{})
				_ = h.Entries()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, h.Entries(), 50)
}

package id

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oklog/ulid/v2"
)

func TestNew(t *testing.T) {
	a := New()
	b := New()

	assert.NotEqual(t, a, b)
	_, err := ulid.ParseStrict(a)
	require.NoError(t, err)

	t.Run("lexicographic order", func(t *testing.T) {
		ids := make([]string, 100)
		for i := range ids {
			ids[i] = New()
		}
		assert.True(t, sort.StringsAreSorted(ids))
	})

	t.Run("concurrent use", func(t *testing.T) {
		const n = 50
		var wg sync.WaitGroup
		out := make(chan string, n)

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out <- New()
			}()
		}
		wg.Wait()
		close(out)

		seen := map[string]bool{}
		for id := range out {
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	})
}

package cache

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndSnapshot(t *testing.T) {
	c := NewMemCache()
	k := Key{Target: "10.0.0.5", Probe: "fan"}

	c.Set(k, "first")
	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "first", snap[k].Text)
	assert.False(t, snap[k].At.IsZero())

	// upsert replaces
	c.Set(k, "second")
	assert.Equal(t, "second", c.Snapshot()[k].Text)
	assert.Len(t, c.Snapshot(), 1)
}

func TestSnapshotIsCopy(t *testing.T) {
	c := NewMemCache()
	k := Key{Target: "a", Probe: "b"}
	c.Set(k, "x")

	snap := c.Snapshot()
	snap[k] = Entry{Text: "mutated"}
	assert.Equal(t, "x", c.Snapshot()[k].Text)
}

func TestSnapshotIdempotent(t *testing.T) {
	c := NewMemCache()
	c.Set(Key{Target: "a", Probe: "p1"}, "one")
	c.Set(Key{Target: "b", Probe: "p2"}, "two")

	assert.Equal(t, c.Snapshot(), c.Snapshot())
}

func TestDegradeAll(t *testing.T) {
	c := NewMemCache()
	c.Set(Key{Target: "a", Probe: "fan"}, "ok line")
	c.Set(Key{Target: "b", Probe: "cpu"}, "ok line")

	c.DegradeAll(func(k Key) string {
		return "error " + k.Target + "/" + k.Probe
	})

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "error a/fan", snap[Key{Target: "a", Probe: "fan"}].Text)
	assert.Equal(t, "error b/cpu", snap[Key{Target: "b", Probe: "cpu"}].Text)
}

// Concurrent writers on distinct keys plus concurrent full readers must
// never surface a torn value: every observed text is one writer's complete
// output.
func TestConcurrentAccess(t *testing.T) {
	c := NewMemCache()

	valid := func(s string) bool {
		if len(s) == 0 {
			return false
		}
		for i := 1; i < len(s); i++ {
			if s[i] != s[0] {
				return false
			}
		}
		return true
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			k := Key{Target: fmt.Sprintf("t%d", w), Probe: "p"}
			for i := 0; i < 500; i++ {
				ch := byte('a' + i%4)
				c.Set(k, strings.Repeat(string(ch), 64))
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				for _, e := range c.Snapshot() {
					if !valid(e.Text) {
						t.Error("torn cache value observed")
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commits struct {
	mu     sync.Mutex
	values []string
}

func (c *commits) add(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, v)
}

func (c *commits) get() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.values...)
}

func TestDebouncerCommitsLastValue(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var c commits

	for _, v := range []string{"d", "du", "dun", "dune"} {
		d.Trigger(v, c.add)
	}

	require.Eventually(t, func() bool { return len(c.get()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"dune"}, c.get())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var c commits

	d.Trigger("dune", c.add)
	d.Stop()
	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, c.get())
}

func TestDebouncerSeparatedBursts(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var c commits

	d.Trigger("a", c.add)
	require.Eventually(t, func() bool { return len(c.get()) == 1 }, time.Second, 2*time.Millisecond)
	d.Trigger("b", c.add)
	require.Eventually(t, func() bool { return len(c.get()) == 2 }, time.Second, 2*time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, c.get())
}

func TestNewDebouncerDefaultInterval(t *testing.T) {
	assert.Equal(t, DefaultDebounce, NewDebouncer(0).interval)
}

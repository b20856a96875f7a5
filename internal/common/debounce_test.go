package common

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_ReadyAndMark(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)
	now := time.Now()

	ready, _ := d.Ready(now)
	assert.True(t, ready, "未 Mark 之前应当就绪")

	d.Mark(now)
	ready, since := d.Ready(now.Add(50 * time.Millisecond))
	assert.False(t, ready)
	assert.Equal(t, 50*time.Millisecond, since)

	ready, _ = d.Ready(now.Add(100 * time.Millisecond))
	assert.True(t, ready)

	d.Reset()
	ready, _ = d.Ready(now)
	assert.True(t, ready)
}

func TestTextDebouncer_TrailingEdge(t *testing.T) {
	var mu sync.Mutex
	var got []string

	d := NewTextDebouncer(80*time.Millisecond, func(v string) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	defer d.Stop()

	// 快速连敲三次：只有最后一个值在静默期后发出
	d.Update("a")
	time.Sleep(20 * time.Millisecond)
	d.Update("ab")
	time.Sleep(20 * time.Millisecond)
	d.Update("abc")

	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0])
}

func TestTextDebouncer_StopCancelsPending(t *testing.T) {
	var mu sync.Mutex
	fired := false

	d := NewTextDebouncer(50*time.Millisecond, func(string) {
		mu.Lock()
		fired = true
		mu.Unlock()
	})

	d.Update("abc")
	d.Stop()
	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, fired)
}

func TestTextDebouncer_SeparateBursts(t *testing.T) {
	var mu sync.Mutex
	var got []string

	d := NewTextDebouncer(50*time.Millisecond, func(v string) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	defer d.Stop()

	d.Update("first")
	time.Sleep(120 * time.Millisecond)
	d.Update("second")
	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, got)
}

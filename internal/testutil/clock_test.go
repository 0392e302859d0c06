package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	c := NewFixedClock()
	assert.Equal(t, Epoch, c.Now())
	assert.Equal(t, Epoch, c.Now())
}

func TestStepClockAdvances(t *testing.T) {
	c := NewStepClock()

	assert.Equal(t, Epoch, c.Now())
	assert.Equal(t, Epoch.Add(time.Second), c.Now())
	assert.Equal(t, int64(2), c.Calls())
}

func TestStepClockReset(t *testing.T) {
	c := NewStepClock()
	c.Now()
	c.Now()

	c.Reset()
	assert.Equal(t, Epoch, c.Now())
	assert.Equal(t, int64(1), c.Calls())
}

func TestStepClockConcurrent(t *testing.T) {
	c := NewStepClock()

	var wg sync.WaitGroup
	seen := make(chan time.Time, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- c.Now()
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[time.Time]bool{}
	for ts := range seen {
		unique[ts] = true
	}
	assert.Len(t, unique, 100, "every call must observe a distinct instant")
}

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFPSLimiterPacesFrames(t *testing.T) {
	var f FPSLimiter
	start := time.Now()
	for range 5 {
		f.Wait(100)
	}
	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
}

func TestFPSLimiterDisabled(t *testing.T) {
	f := FPSLimiter{next: time.Now().Add(time.Hour)}
	start := time.Now()
	f.Wait(0)
	assert.Less(t, time.Since(start), 10*time.Millisecond)
	assert.True(t, f.next.IsZero())
}

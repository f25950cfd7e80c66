package ratelimit

import (
	"strconv"
	"testing"
	"time"
)

func TestNew_InvalidArgs(t *testing.T) {
	if New(0, 1, 0) != nil {
		t.Error("zero rps should yield nil limiter")
	}
	if New(1, 0, 0) != nil {
		t.Error("zero burst should yield nil limiter")
	}
}

func TestNilLimiterAllows(t *testing.T) {
	var l *MapLimiter
	if !l.Allow("10.0.0.1", time.Now()) {
		t.Error("nil limiter should allow")
	}
	if l.Len() != 0 {
		t.Error("nil limiter should track nothing")
	}
}

func TestAllow_Burst(t *testing.T) {
	l := New(1, 3, time.Minute)
	now := time.Unix(1_700_000_000, 0)

	for i := 0; i < 3; i++ {
		if !l.Allow("a", now) {
			t.Fatalf("request %d within burst was rejected", i+1)
		}
	}
	if l.Allow("a", now) {
		t.Error("request past burst should be rejected")
	}
	if !l.Allow("b", now) {
		t.Error("other key should have its own bucket")
	}
	if !l.Allow("a", now.Add(time.Second)) {
		t.Error("token should refill after one second at 1 rps")
	}
}

func TestAllow_BlankKey(t *testing.T) {
	l := New(1, 1, time.Minute)
	now := time.Now()
	for i := 0; i < 5; i++ {
		if !l.Allow("  ", now) {
			t.Fatal("blank key should never be limited")
		}
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestAllow_EvictsIdle(t *testing.T) {
	l := New(100, 100, time.Minute)
	start := time.Unix(1_700_000_000, 0)
	l.Allow("idle", start)

	later := start.Add(2 * time.Minute)
	for i := 0; i < sweepEvery; i++ {
		l.Allow("busy-"+strconv.Itoa(i%4), later)
	}
	if l.Len() != 4 {
		t.Errorf("Len() = %d, want 4 after evicting the idle key", l.Len())
	}
}

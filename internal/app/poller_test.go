package app

import (
	"context"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second},
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_KeepsLongInterval(t *testing.T) {
	if got := calculateBackoff(3, time.Minute); got != time.Minute {
		t.Fatalf("calculateBackoff(3, 1m) = %v, want 1m", got)
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 10 * time.Second
	for failures := 0; failures <= 70; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestStartPoller_ReloadsCurrentPage(t *testing.T) {
	srv, hits := newSongServer(t, 5)
	cat, store := newTestCatalogue(t, srv.URL, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat.Show(1)
	cat.Wait()
	StartPoller(ctx, cat, store, 20*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for hits.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("poller made %d requests, want at least 3", hits.Load())
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
}

func TestStartPoller_StopsOnCancel(t *testing.T) {
	srv, hits := newSongServer(t, 5)
	cat, store := newTestCatalogue(t, srv.URL, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	StartPoller(ctx, cat, store, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	if hits.Load() != 0 {
		t.Fatalf("cancelled poller made %d requests", hits.Load())
	}
}

package ui

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"github.com/five82/songmatch/internal/request"
	"github.com/five82/songmatch/internal/songs"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 0, ""},
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 2, "he"},
		{"ñandú ñandú", 6, "ñan..."},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.max); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle small limit = %q, want ab", got)
	}
	got := truncateMiddle("/home/user/music/recording.webm", 16)
	if len([]rune(got)) != 16 {
		t.Fatalf("truncateMiddle = %q (%d runes), want 16", got, len([]rune(got)))
	}
	if got[len(got)-4:] != "webm" {
		t.Fatalf("truncateMiddle = %q, want the file suffix kept", got)
	}
}

func TestClassifyConnectionError(t *testing.T) {
	refused := &request.Error{Kind: request.KindTransportFailure, Attempts: 3, Err: syscall.ECONNREFUSED}
	timeout := &request.Error{Kind: request.KindTransportFailure, Attempts: 3, Err: context.DeadlineExceeded}
	parse := &request.Error{Kind: request.KindParseFailure, Attempts: 1, Err: &request.DecodeError{Err: errors.New("bad")}}

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"refused", refused, "OFFLINE"},
		{"timeout", timeout, "TIMEOUT"},
		{"parse", parse, "BAD RESPONSE"},
		{"api", fmt.Errorf("load: %w", &songs.APIError{Status: 503}), "HTTP 503"},
		{"other", errors.New("boom"), "ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyConnectionError(tc.err); got != tc.want {
				t.Fatalf("classifyConnectionError = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	if got := formatTimestamp(time.Time{}, now); got != "" {
		t.Fatalf("zero time = %q, want empty", got)
	}
	if got := formatTimestamp(now.Add(-10*time.Second), now); got != "11:59:50 (now)" {
		t.Fatalf("recent = %q", got)
	}
	if got := formatTimestamp(now.Add(-5*time.Minute), now); got != "11:55:00 (5m ago)" {
		t.Fatalf("minutes = %q", got)
	}
	if got := formatTimestamp(now.Add(-3*time.Hour), now); got != "09:00:00 (3h ago)" {
		t.Fatalf("hours = %q", got)
	}
}

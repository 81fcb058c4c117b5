package app

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/songmatch/internal/songs"
	"github.com/five82/songmatch/internal/state"
)

func newTestActions(t *testing.T, handler http.HandlerFunc, onAdded func()) (*Actions, *state.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := songs.NewClient(srv.URL, time.Second, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	store := &state.Store{}
	actions := NewActions(client, store, zerolog.Nop(), onAdded)
	t.Cleanup(actions.Close)
	return actions, store
}

func TestActions_AddSongSuccessTriggersReload(t *testing.T) {
	var added atomic.Int32
	actions, store := newTestActions(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/songs" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
	}, func() { added.Add(1) })

	if err := actions.AddSong(" https://youtu.be/abc "); err != nil {
		t.Fatalf("AddSong returned error: %v", err)
	}
	actions.Wait()

	sub := store.Snapshot().Submission
	if !sub.Done || sub.Err != nil || sub.URL != "https://youtu.be/abc" {
		t.Fatalf("submission = %#v, want done", sub)
	}
	if added.Load() != 1 {
		t.Fatalf("onAdded calls = %d, want 1", added.Load())
	}
}

func TestActions_AddSongApplicationError(t *testing.T) {
	actions, store := newTestActions(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"song already exists"}`, http.StatusConflict)
	}, nil)

	if err := actions.AddSong("https://youtu.be/abc"); err != nil {
		t.Fatalf("AddSong returned error: %v", err)
	}
	actions.Wait()

	sub := store.Snapshot().Submission
	var apiErr *songs.APIError
	if !errors.As(sub.Err, &apiErr) || apiErr.Status != http.StatusConflict {
		t.Fatalf("submission err = %v, want 409 APIError", sub.Err)
	}
	if apiErr.Message != "song already exists" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestActions_AddSongRejectsInvalidURL(t *testing.T) {
	actions, store := newTestActions(t, func(http.ResponseWriter, *http.Request) {
		t.Errorf("invalid url must not reach the server")
	}, nil)

	err := actions.AddSong("https://example.com/x")
	if !errors.Is(err, songs.ErrInvalidSongURL) {
		t.Fatalf("AddSong error = %v, want ErrInvalidSongURL", err)
	}
	if sub := store.Snapshot().Submission; sub.URL != "" || sub.Loading {
		t.Fatalf("submission should be untouched: %#v", sub)
	}
}

func TestActions_AddSongBusyWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	actions, _ := newTestActions(t, func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusCreated)
	}, nil)

	if err := actions.AddSong("https://youtu.be/one"); err != nil {
		t.Fatalf("first AddSong: %v", err)
	}
	if err := actions.AddSong("https://youtu.be/two"); !errors.Is(err, ErrBusy) {
		t.Fatalf("second AddSong error = %v, want ErrBusy", err)
	}
	close(release)
	actions.Wait()
}

func TestActions_MatchUploadsFile(t *testing.T) {
	actions, store := newTestActions(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/match" {
			t.Errorf("path = %s, want /match", r.URL.Path)
		}
		file, header, err := r.FormFile("audio")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			http.Error(w, `{"error":"bad form"}`, http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if string(data) != "riff" || header.Filename != "clip.wav" {
			t.Errorf("upload = %q %q", header.Filename, data)
		}
		_, _ = w.Write([]byte(`{"song_id":3,"song_title":"Found It","song_url":"https://youtu.be/xyz"}`))
	}, nil)

	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("riff"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := actions.Match(path); err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	actions.Wait()

	m := store.Snapshot().Match
	if !m.HasSong || m.Song.Title != "Found It" || m.File != path {
		t.Fatalf("match = %#v, want Found It", m)
	}
}

func TestActions_MatchNoResult(t *testing.T) {
	actions, store := newTestActions(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"no match found"}`, http.StatusNotFound)
	}, nil)

	path := filepath.Join(t.TempDir(), "clip.webm")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := actions.Match(path); err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	actions.Wait()

	m := store.Snapshot().Match
	if m.HasSong || m.Err == nil || !strings.Contains(m.Err.Error(), "no match found") {
		t.Fatalf("match = %#v, want no match error", m)
	}
}

func TestActions_MatchMissingFile(t *testing.T) {
	actions, _ := newTestActions(t, func(http.ResponseWriter, *http.Request) {
		t.Errorf("missing file must not reach the server")
	}, nil)

	err := actions.Match(filepath.Join(t.TempDir(), "nope.webm"))
	if err == nil || !strings.Contains(err.Error(), "open audio") {
		t.Fatalf("Match error = %v, want open audio error", err)
	}
}

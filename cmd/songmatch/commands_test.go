package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newSongServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSongsCommand_PrintsPage(t *testing.T) {
	srv := newSongServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/songs" {
			t.Errorf("path = %q, want /songs", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("limit = %q, want 2", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"songs": []map[string]any{
				{"song_id": 3, "song_title": "Third", "song_url": "https://youtu.be/c"},
				{"song_id": 4, "song_title": "Fourth", "song_url": "https://youtu.be/d"},
			},
			"page":  2,
			"limit": 2,
			"total": 5,
		})
	})

	out, err := execute(t, "--server", srv.URL, "songs", "--page", "2", "--limit", "2")
	if err != nil {
		t.Fatalf("songs returned error: %v", err)
	}
	for _, want := range []string{"TITLE", "Third", "https://youtu.be/d", "page 2 of 3, 5 songs"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "3 ") {
		t.Fatalf("output should number the first row 3:\n%s", out)
	}
}

func TestSongsCommand_EmptyCatalogue(t *testing.T) {
	srv := newSongServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"songs":[],"page":1,"limit":14,"total":0}`))
	})

	out, err := execute(t, "--server", srv.URL, "songs")
	if err != nil {
		t.Fatalf("songs returned error: %v", err)
	}
	if strings.TrimSpace(out) != "no songs" {
		t.Fatalf("output = %q, want no songs", out)
	}
}

func TestAddCommand_SurfacesServerError(t *testing.T) {
	srv := newSongServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"song already exists"}`))
	})

	_, err := execute(t, "--server", srv.URL, "add", "https://youtu.be/abc")
	if err == nil {
		t.Fatal("expected error for conflict")
	}
	if !strings.Contains(err.Error(), "409") || !strings.Contains(err.Error(), "song already exists") {
		t.Fatalf("error = %v, want status and message", err)
	}
}

func TestAddCommand_Success(t *testing.T) {
	srv := newSongServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["song_url"] != "https://youtu.be/abc" {
			t.Errorf("song_url = %q", body["song_url"])
		}
		w.WriteHeader(http.StatusCreated)
	})

	out, err := execute(t, "--server", srv.URL, "add", "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if !strings.Contains(out, "added https://youtu.be/abc") {
		t.Fatalf("output = %q", out)
	}
}

func TestAddCommand_RejectsInvalidURL(t *testing.T) {
	_, err := execute(t, "--server", "127.0.0.1:1", "add", "https://example.com/watch")
	if err == nil || !strings.Contains(err.Error(), "invalid song url") {
		t.Fatalf("error = %v, want invalid song url", err)
	}
}

func TestMatchCommand_PrintsSong(t *testing.T) {
	srv := newSongServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/match" {
			t.Errorf("path = %q, want /match", r.URL.Path)
		}
		if _, _, err := r.FormFile("audio"); err != nil {
			t.Errorf("FormFile: %v", err)
		}
		_, _ = w.Write([]byte(`{"song_id":9,"song_title":"X","song_url":"https://youtu.be/xyz"}`))
	})

	clip := filepath.Join(t.TempDir(), "clip.webm")
	if err := os.WriteFile(clip, []byte("RIFFdata"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := execute(t, "--server", srv.URL, "match", clip)
	if err != nil {
		t.Fatalf("match returned error: %v", err)
	}
	for _, want := range []string{"title: X", "https://youtu.be/xyz", "https://www.youtube.com/embed/xyz"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMatchCommand_NoMatch(t *testing.T) {
	srv := newSongServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no match found"}`))
	})

	clip := filepath.Join(t.TempDir(), "clip.webm")
	if err := os.WriteFile(clip, []byte("RIFFdata"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := execute(t, "--server", srv.URL, "match", clip)
	if err == nil || !strings.Contains(err.Error(), "no match found") {
		t.Fatalf("error = %v, want no match found", err)
	}
}

func TestMatchCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "--server", "127.0.0.1:1", "match", filepath.Join(t.TempDir(), "missing.webm"))
	if err == nil || !strings.Contains(err.Error(), "open audio") {
		t.Fatalf("error = %v, want open audio failure", err)
	}
}

func TestRootCommand_RejectsArguments(t *testing.T) {
	_, err := execute(t, "unexpected")
	if err == nil {
		t.Fatal("expected error for unknown argument")
	}
}

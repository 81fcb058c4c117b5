package songs

import (
	"errors"
	"testing"

	"github.com/five82/songmatch/internal/request"
)

func TestSongPage_PageCount(t *testing.T) {
	tests := []struct {
		page SongPage
		want int
	}{
		{SongPage{Total: 0, Limit: 14}, 0},
		{SongPage{Total: 14, Limit: 14}, 1},
		{SongPage{Total: 15, Limit: 14}, 2},
		{SongPage{Total: 100, Limit: 0}, 0},
	}
	for _, tt := range tests {
		if got := tt.page.PageCount(); got != tt.want {
			t.Fatalf("PageCount(%+v) = %d, want %d", tt.page, got, tt.want)
		}
	}
}

func TestSongPage_FirstNumber(t *testing.T) {
	if got := (SongPage{Page: 3, Limit: 14}).FirstNumber(); got != 29 {
		t.Fatalf("FirstNumber = %d, want 29", got)
	}
	if got := (SongPage{}).FirstNumber(); got != 1 {
		t.Fatalf("FirstNumber zero = %d, want 1", got)
	}
}

func TestErrorMessage(t *testing.T) {
	if got := ErrorMessage(request.NewPayload([]byte("{\"error\":\"Invalid song url\"}\n"))); got != "Invalid song url" {
		t.Fatalf("ErrorMessage json = %q", got)
	}
	if got := ErrorMessage(request.NewPayload([]byte("Internal error occured\n"))); got != "Internal error occured" {
		t.Fatalf("ErrorMessage text = %q", got)
	}
	if got := ErrorMessage(request.NewPayload([]byte(`{"other":1}`))); got != `{"other":1}` {
		t.Fatalf("ErrorMessage without error field = %q", got)
	}
}

func TestDecodeSong_RejectsNonJSON(t *testing.T) {
	if _, err := DecodeSong(request.NewPayload([]byte("nope"))); !errors.Is(err, request.ErrNotJSON) {
		t.Fatalf("DecodeSong error = %v, want ErrNotJSON", err)
	}
}

func TestValidateSongURL(t *testing.T) {
	valid := []string{"https://youtu.be/abc123", " https://youtu.be/abc123?t=4 "}
	for _, raw := range valid {
		if err := ValidateSongURL(raw); err != nil {
			t.Fatalf("ValidateSongURL(%q) = %v, want nil", raw, err)
		}
	}
	invalid := []string{"", "youtu.be/abc", "https://youtube.com/watch?v=abc", "https://youtu.be/", "not a url"}
	for _, raw := range invalid {
		if err := ValidateSongURL(raw); !errors.Is(err, ErrInvalidSongURL) {
			t.Fatalf("ValidateSongURL(%q) = %v, want ErrInvalidSongURL", raw, err)
		}
	}
}

func TestEmbedURL(t *testing.T) {
	got, err := EmbedURL("https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("EmbedURL returned error: %v", err)
	}
	if got != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Fatalf("EmbedURL = %q", got)
	}
	if _, err := EmbedURL("https://youtu.be/"); err == nil {
		t.Fatalf("EmbedURL without id returned nil error")
	}
}

func TestAPIError_Message(t *testing.T) {
	err := NewAPIError(404, request.NewPayload([]byte(`{"error":"not found"}`)))
	if err.Error() != "server returned 404: not found" {
		t.Fatalf("Error() = %q", err.Error())
	}
	bare := &APIError{Status: 500}
	if bare.Error() != "server returned 500" {
		t.Fatalf("Error() = %q", bare.Error())
	}
}

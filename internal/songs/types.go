package songs

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/five82/songmatch/internal/request"
)

// DefaultPageLimit matches the page size the backend uses when none is given.
const DefaultPageLimit = 14

// Song mirrors a catalogue entry and the /match response.
type Song struct {
	ID    int    `json:"song_id"`
	Title string `json:"song_title"`
	URL   string `json:"song_url"`
}

// SongPage mirrors GET /songs.
type SongPage struct {
	Songs []Song `json:"songs"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int    `json:"total"`
}

// PageCount returns the number of pages in the catalogue.
func (p SongPage) PageCount() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// FirstNumber returns the 1-based catalogue position of the first song on the page.
func (p SongPage) FirstNumber() int {
	if p.Page <= 0 || p.Limit <= 0 {
		return 1
	}
	return (p.Page-1)*p.Limit + 1
}

// AddSongRequest is the body of POST /songs.
type AddSongRequest struct {
	SongURL string `json:"song_url"`
}

// ErrorResponse is the body of every backend error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DecodeSongPage decodes a catalogue page.
func DecodeSongPage(body request.Payload) (SongPage, error) {
	var page SongPage
	if err := body.Decode(&page); err != nil {
		return SongPage{}, fmt.Errorf("decode song page: %w", err)
	}
	return page, nil
}

// DecodeSong decodes a single song, as returned by /match.
func DecodeSong(body request.Payload) (Song, error) {
	var song Song
	if err := body.Decode(&song); err != nil {
		return Song{}, fmt.Errorf("decode song: %w", err)
	}
	return song, nil
}

// ErrorMessage extracts the message of an error body.
func ErrorMessage(body request.Payload) string {
	var resp ErrorResponse
	if err := body.Decode(&resp); err == nil && strings.TrimSpace(resp.Error) != "" {
		return resp.Error
	}
	return body.String()
}

// APIError is an application error reported by the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// NewAPIError builds an APIError from an error callback's arguments.
func NewAPIError(status int, body request.Payload) *APIError {
	return &APIError{Status: status, Message: ErrorMessage(body)}
}

// ErrInvalidSongURL is returned for links the backend cannot download.
var ErrInvalidSongURL = errors.New("invalid song url")

const songHost = "youtu.be"

// ValidateSongURL accepts absolute youtu.be links.
func ValidateSongURL(raw string) error {
	u, err := url.ParseRequestURI(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSongURL, err)
	}
	if u.Host != songHost {
		return fmt.Errorf("%w: host %q is not %s", ErrInvalidSongURL, u.Host, songHost)
	}
	if strings.Trim(u.Path, "/") == "" {
		return fmt.Errorf("%w: missing video id", ErrInvalidSongURL)
	}
	return nil
}

// EmbedURL converts a youtu.be link into its embeddable player URL.
func EmbedURL(songURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(songURL))
	if err != nil {
		return "", fmt.Errorf("parse song url: %w", err)
	}
	id := strings.Trim(u.Path, "/")
	if id == "" {
		return "", fmt.Errorf("song url %q has no video id", songURL)
	}
	return "https://www.youtube.com/embed/" + id, nil
}

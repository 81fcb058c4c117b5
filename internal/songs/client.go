package songs

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/songmatch/internal/request"
)

// Client builds coordinators for the song-matching API.
type Client struct {
	baseURL   *url.URL
	timeout   time.Duration
	transport request.Transport
	logger    zerolog.Logger
}

const (
	defaultServer = "127.0.0.1:3000"

	// maxAudioBytes mirrors the backend's multipart memory limit.
	maxAudioBytes = 10 << 20
)

// NewClient builds a Client for the given server address.
func NewClient(server string, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	base, err := parseBaseURL(server)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = request.DefaultTimeout
	}
	return &Client{
		baseURL:   base,
		timeout:   timeout,
		transport: request.NewHTTPTransport(&http.Client{}),
		logger:    logger.With().Str("component", "songs").Logger(),
	}, nil
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListSongs builds a coordinator for one catalogue page.
func (c *Client) ListSongs(page, limit int) *request.Coordinator {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("limit", strconv.Itoa(limit))
	return request.New(c.endpoint("/songs", values), c.options()...)
}

// AddSong builds a coordinator that submits songURL to the catalogue.
func (c *Client) AddSong(songURL string) (*request.Coordinator, error) {
	trimmed := strings.TrimSpace(songURL)
	if err := ValidateSongURL(trimmed); err != nil {
		return nil, err
	}
	return request.New(c.endpoint("/songs", nil), c.options(
		request.WithMethod(http.MethodPost),
		request.WithJSONBody(AddSongRequest{SongURL: trimmed}),
		// The backend acknowledges a new song with 201 and no body.
		request.WithEmptySuccess(),
	)...), nil
}

// MatchAudio builds a coordinator that uploads a recording for matching.
// The recording is read fully up front so every attempt resends it.
func (c *Client) MatchAudio(filename string, audio io.Reader) (*request.Coordinator, error) {
	if audio == nil {
		return nil, fmt.Errorf("audio is nil")
	}
	data, err := io.ReadAll(io.LimitReader(audio, maxAudioBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("audio is empty")
	}
	if len(data) > maxAudioBytes {
		return nil, fmt.Errorf("audio exceeds %d bytes", maxAudioBytes)
	}

	body, contentType, err := encodeAudioForm(filename, data)
	if err != nil {
		return nil, err
	}
	return request.New(c.endpoint("/match", nil), c.options(
		request.WithMethod(http.MethodPost),
		request.WithBody(body, contentType),
	)...), nil
}

func (c *Client) options(extra ...request.Option) []request.Option {
	opts := []request.Option{
		request.WithTransport(c.transport),
		request.WithTimeout(c.timeout),
		request.WithLogger(c.logger),
	}
	return append(opts, extra...)
}

func (c *Client) endpoint(path string, query url.Values) string {
	rel := &url.URL{Path: path}
	if len(query) > 0 {
		rel.RawQuery = query.Encode()
	}
	return c.baseURL.ResolveReference(rel).String()
}

func encodeAudioForm(filename string, data []byte) ([]byte, string, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "recording.webm"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio", name)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func parseBaseURL(server string) (*url.URL, error) {
	trimmed := strings.TrimSpace(server)
	if trimmed == "" {
		trimmed = defaultServer
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", server, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server url %q has no host", server)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/songmatch/internal/config"
	"github.com/five82/songmatch/internal/request"
	"github.com/five82/songmatch/internal/songs"
	"github.com/five82/songmatch/internal/state"
)

// ErrBusy is returned when a request of the same kind is still outstanding.
var ErrBusy = errors.New("request already in progress")

// Actions submits songs and audio matches on behalf of the UI.
type Actions struct {
	client  *songs.Client
	store   *state.Store
	logger  zerolog.Logger
	onAdded func()

	mu    sync.Mutex
	add   *request.Coordinator
	match *request.Coordinator
}

// NewActions builds an Actions. onAdded runs after a song is accepted; it
// may be nil.
func NewActions(client *songs.Client, store *state.Store, logger zerolog.Logger, onAdded func()) *Actions {
	return &Actions{
		client:  client,
		store:   store,
		logger:  logger.With().Str("component", "actions").Logger(),
		onAdded: onAdded,
	}
}

// AddSong validates songURL and submits it. Validation errors are returned
// directly; the request outcome lands in the store.
func (a *Actions) AddSong(songURL string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.add != nil && a.add.InFlight() {
		return ErrBusy
	}

	coord, err := a.client.AddSong(songURL)
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(songURL)
	a.store.SubmissionStarted(trimmed)

	coord.OnLoading(a.store.SubmissionLoading)
	coord.OnSuccess(func(request.Payload) {
		a.logger.Info().Str("song_url", trimmed).Msg("song added")
		a.store.SubmissionFinished(nil)
		if a.onAdded != nil {
			a.onAdded()
		}
	})
	coord.OnError(func(status int, body request.Payload) {
		a.store.SubmissionFinished(songs.NewAPIError(status, body))
	})
	coord.OnFail(a.store.SubmissionFinished)

	if a.add != nil {
		a.add.Close()
	}
	a.add = coord
	coord.Initiate()
	return nil
}

// Match uploads the audio file at path for identification.
func (a *Actions) Match(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.match != nil && a.match.InFlight() {
		return ErrBusy
	}

	resolved, err := config.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("resolve audio path: %w", err)
	}
	file, err := os.Open(resolved)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	defer file.Close()

	coord, err := a.client.MatchAudio(resolved, file)
	if err != nil {
		return err
	}
	a.store.MatchStarted(resolved)

	coord.OnLoading(a.store.MatchLoading)
	coord.OnSuccess(func(body request.Payload) {
		song, err := songs.DecodeSong(body)
		if err != nil {
			a.store.MatchFailed(err)
			return
		}
		a.logger.Info().Int("song_id", song.ID).Str("song_title", song.Title).Msg("audio matched")
		a.store.MatchFound(song)
	})
	coord.OnError(func(status int, body request.Payload) {
		a.store.MatchFailed(songs.NewAPIError(status, body))
	})
	coord.OnFail(a.store.MatchFailed)

	if a.match != nil {
		a.match.Close()
	}
	a.match = coord
	coord.Initiate()
	return nil
}

// Wait blocks until outstanding submissions and matches settle.
func (a *Actions) Wait() {
	a.mu.Lock()
	add, match := a.add, a.match
	a.mu.Unlock()
	if add != nil {
		add.Wait()
	}
	if match != nil {
		match.Wait()
	}
}

// Close disposes of outstanding coordinators.
func (a *Actions) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.add != nil {
		a.add.Close()
	}
	if a.match != nil {
		a.match.Close()
	}
}

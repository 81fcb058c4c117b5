package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/songmatch/internal/songs"
)

// Catalogue describes the song listing shown in the main view.
type Catalogue struct {
	Page                songs.SongPage
	HasPage             bool
	RequestedPage       int
	Loading             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed loads
}

// IsOffline returns true when the backend has been unreachable for multiple loads.
func (c Catalogue) IsOffline() bool {
	return c.ConsecutiveFailures >= 2
}

// Submission describes the most recent add-song request.
type Submission struct {
	URL      string
	Loading  bool
	Done     bool
	Err      error
	Finished time.Time
}

// Match describes the most recent audio match request.
type Match struct {
	File     string
	Loading  bool
	Song     songs.Song
	HasSong  bool
	Err      error
	Finished time.Time
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Catalogue  Catalogue
	Submission Submission
	Match      Match
}

// Loading reports whether any request is outstanding.
func (s Snapshot) Loading() bool {
	return s.Catalogue.Loading || s.Submission.Loading || s.Match.Loading
}

// Store coordinates concurrent updates to the snapshot. Request callbacks
// write into it from their own goroutines; the UI reads snapshots.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// CatalogueLoading marks a page load as started.
func (s *Store) CatalogueLoading(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Catalogue.RequestedPage = page
	s.snapshot.Catalogue.Loading = true
}

// CatalogueLoaded replaces the displayed page.
func (s *Store) CatalogueLoaded(page songs.SongPage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &s.snapshot.Catalogue
	c.Page = page
	c.Page.Songs = cloneSongs(page.Songs)
	c.HasPage = true
	c.Loading = false
	c.LastError = nil
	c.LastUpdated = time.Now()
	c.ConsecutiveFailures = 0
}

// CatalogueFailed records a failed load. The previous page is kept.
func (s *Store) CatalogueFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &s.snapshot.Catalogue
	c.Loading = false
	c.LastError = err
	c.LastUpdated = time.Now()
	c.ConsecutiveFailures++
}

// CatalogueAbandoned clears the loading flag without touching the outcome,
// used when a page request is superseded.
func (s *Store) CatalogueAbandoned() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Catalogue.Loading = false
}

// SubmissionStarted records a new add-song request.
func (s *Store) SubmissionStarted(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Submission = Submission{URL: url}
}

// SubmissionLoading marks the add-song request as outstanding.
func (s *Store) SubmissionLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Submission.Loading = true
}

// SubmissionFinished records the add-song outcome; err is nil on success.
func (s *Store) SubmissionFinished(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &s.snapshot.Submission
	sub.Loading = false
	sub.Done = true
	sub.Err = err
	sub.Finished = time.Now()
}

// MatchStarted records a new match request.
func (s *Store) MatchStarted(file string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Match = Match{File: file}
}

// MatchLoading marks the match request as outstanding.
func (s *Store) MatchLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Match.Loading = true
}

// MatchFound records the matched song.
func (s *Store) MatchFound(song songs.Song) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &s.snapshot.Match
	m.Loading = false
	m.Song = song
	m.HasSong = true
	m.Err = nil
	m.Finished = time.Now()
}

// MatchFailed records a failed match.
func (s *Store) MatchFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &s.snapshot.Match
	m.Loading = false
	m.HasSong = false
	m.Err = err
	m.Finished = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Catalogue.Page.Songs = cloneSongs(s.snapshot.Catalogue.Page.Songs)
	snap.Catalogue.LastError = cloneErr(s.snapshot.Catalogue.LastError)
	snap.Submission.Err = cloneErr(s.snapshot.Submission.Err)
	snap.Match.Err = cloneErr(s.snapshot.Match.Err)
	return snap
}

func cloneSongs(items []songs.Song) []songs.Song {
	if len(items) == 0 {
		return nil
	}
	dup := make([]songs.Song, len(items))
	copy(dup, items)
	return dup
}

func cloneErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w", err)
}

package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/songmatch/internal/songs"
	"github.com/five82/songmatch/internal/state"
)

func newSongServer(t *testing.T, total int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if page > 50 {
			http.Error(w, `{"error":"page out of range"}`, http.StatusBadRequest)
			return
		}
		listing := songs.SongPage{Page: page, Limit: limit, Total: total}
		for i := 0; i < limit && (page-1)*limit+i < total; i++ {
			id := (page-1)*limit + i + 1
			listing.Songs = append(listing.Songs, songs.Song{ID: id, Title: "Song " + strconv.Itoa(id)})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(listing)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestCatalogue(t *testing.T, server string, limit int) (*Catalogue, *state.Store) {
	t.Helper()
	client, err := songs.NewClient(server, time.Second, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	store := &state.Store{}
	cat := NewCatalogue(client, store, limit, zerolog.Nop())
	t.Cleanup(cat.Close)
	return cat, store
}

func TestCatalogue_ShowLoadsPageIntoStore(t *testing.T) {
	srv, hits := newSongServer(t, 30)
	cat, store := newTestCatalogue(t, srv.URL, 14)

	cat.Show(2)
	cat.Wait()

	snap := store.Snapshot().Catalogue
	if !snap.HasPage || snap.Page.Page != 2 {
		t.Fatalf("catalogue = %#v, want page 2", snap)
	}
	if len(snap.Page.Songs) != 14 || snap.Page.Songs[0].ID != 15 {
		t.Fatalf("songs = %#v, want 14 starting at id 15", snap.Page.Songs)
	}
	if snap.Loading {
		t.Fatalf("catalogue still loading after Wait")
	}
	if hits.Load() != 1 {
		t.Fatalf("hits = %d, want 1", hits.Load())
	}
}

func TestCatalogue_NextAndPrevRespectBounds(t *testing.T) {
	srv, _ := newSongServer(t, 20)
	cat, store := newTestCatalogue(t, srv.URL, 10)

	cat.Prev()
	if cat.Page() != 1 {
		t.Fatalf("Prev on first page moved to %d", cat.Page())
	}

	cat.Show(1)
	cat.Wait()
	cat.Next()
	cat.Wait()
	if cat.Page() != 2 {
		t.Fatalf("Page() = %d, want 2", cat.Page())
	}
	if got := store.Snapshot().Catalogue.Page.Page; got != 2 {
		t.Fatalf("stored page = %d, want 2", got)
	}

	cat.Next()
	if cat.Page() != 2 {
		t.Fatalf("Next past last page moved to %d", cat.Page())
	}

	cat.Prev()
	cat.Wait()
	if cat.Page() != 1 || store.Snapshot().Catalogue.Page.Page != 1 {
		t.Fatalf("Prev did not return to page 1")
	}
}

func TestCatalogue_ApplicationErrorRecorded(t *testing.T) {
	srv, _ := newSongServer(t, 20)
	cat, store := newTestCatalogue(t, srv.URL, 10)

	cat.Show(1)
	cat.Wait()
	cat.Show(99)
	cat.Wait()

	snap := store.Snapshot().Catalogue
	if snap.LastError == nil || snap.LastError.Error() != "server returned 400: page out of range" {
		t.Fatalf("LastError = %v, want page out of range", snap.LastError)
	}
	if snap.Page.Page != 1 {
		t.Fatalf("failed load replaced page: %d", snap.Page.Page)
	}
	if snap.RequestedPage != 99 {
		t.Fatalf("RequestedPage = %d, want 99", snap.RequestedPage)
	}
}

func TestCatalogue_UnreadablePageFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	t.Cleanup(srv.Close)
	cat, store := newTestCatalogue(t, srv.URL, 10)

	cat.Show(1)
	cat.Wait()

	snap := store.Snapshot().Catalogue
	if snap.LastError == nil || snap.HasPage {
		t.Fatalf("catalogue = %#v, want failure without page", snap)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
}

func TestCatalogue_ReloadWhileInFlightIsSingleFlight(t *testing.T) {
	release := make(chan struct{})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"songs":[],"page":1,"limit":10,"total":0}`))
	}))
	t.Cleanup(srv.Close)
	cat, store := newTestCatalogue(t, srv.URL, 10)

	cat.Show(1)
	cat.Reload()
	cat.Reload()
	if !store.Snapshot().Catalogue.Loading {
		t.Fatalf("catalogue should be loading")
	}
	close(release)
	cat.Wait()

	if hits.Load() != 1 {
		t.Fatalf("hits = %d, want 1", hits.Load())
	}
}

func TestCatalogue_PageChangeSupersedesOutstandingRequest(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "1" {
			<-release
		}
		_, _ = w.Write([]byte(`{"songs":[{"song_id":` + page + `}],"page":` + page + `,"limit":10,"total":30}`))
	}))
	t.Cleanup(srv.Close)
	cat, store := newTestCatalogue(t, srv.URL, 10)

	cat.Show(1)
	first := cat.current
	cat.Show(2)
	cat.Wait()
	close(release)
	first.Wait()

	snap := store.Snapshot().Catalogue
	if snap.Page.Page != 2 {
		t.Fatalf("stale page 1 response replaced page 2: %#v", snap.Page)
	}
}

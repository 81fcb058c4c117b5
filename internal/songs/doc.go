// Package songs talks to the song-matching backend.
//
// # Overview
//
// Every backend call is driven by a request.Coordinator. Client builds one
// coordinator per call site, bound to the endpoint, method, body and timeout
// of that call; the caller registers callbacks and calls Initiate:
//
//	client, err := songs.NewClient("127.0.0.1:3000", 5*time.Second, logger)
//	if err != nil {
//		return err
//	}
//	list := client.ListSongs(1, songs.DefaultPageLimit)
//	list.OnSuccess(func(body request.Payload) {
//		page, err := songs.DecodeSongPage(body)
//		...
//	})
//	list.Initiate()
//
// # API Endpoints
//
//   - GET /songs?page=N&limit=M: one catalogue page plus total count
//   - POST /songs: submit {"song_url": ...}; 201 when accepted
//   - POST /match: multipart form with an "audio" file; returns the best match
//
// Error responses carry {"error": "..."}; ErrorMessage extracts it and falls
// back to the raw text when the body is not JSON.
//
// # URL Construction
//
// The server address accepts the same forms as the config file:
//
//   - "127.0.0.1:3000" → http://127.0.0.1:3000
//   - "https://songs.example.com" → https://songs.example.com
//
// Any path, query or fragment on the address is dropped.
//
// # Validation
//
// The backend only downloads youtu.be links. AddSong applies the same rule
// before issuing a request so obviously bad input never leaves the machine.
package songs

// Package spotify provides a client for the Spotify Web API using the
// client-credentials flow.
//
// # Overview
//
// This package covers the slice of the Web API the album bot needs: app
// authentication and album search. It provides a type-safe API with context
// support, structured errors, and bounded retry logic, and is usable as a
// standalone SDK.
//
// # Quick Start
//
//	import "github.com/krlohnes/album-club-bot/pkg/spotify"
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	link, err := client.AlbumLink(ctx, "Syro", "Aphex Twin")
//
// Tokens are requested lazily and cached until shortly before expiry; no
// user authorization is involved (the client-credentials flow grants only
// app-level access, which is all search needs).
//
// # Error Handling
//
// API failures surface as *spotify.Error with the HTTP status and Spotify's
// message:
//
//	link, err := client.AlbumLink(ctx, title, artist)
//	if err != nil {
//	    var apiErr *spotify.Error
//	    if errors.As(err, &apiErr) && apiErr.Temporary() {
//	        // Retry later
//	    }
//	}
//
// A search that simply finds nothing returns ErrNotFound.
//
// # Configuration
//
// The HTTP client, API base URL, and token URL are all overridable, which
// is how the tests point the client at httptest servers:
//
//	client, err := spotify.NewClient(spotify.Config{
//	    ClientID:     "id",
//	    ClientSecret: "secret",
//	    HTTPClient:   &http.Client{Timeout: 10 * time.Second},
//	    BaseURL:      server.URL,
//	    AuthURL:      server.URL + "/token",
//	})
//
// # Spotify API Documentation
//
// https://developer.spotify.com/documentation/web-api
package spotify

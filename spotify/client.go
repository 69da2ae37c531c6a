package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"vibelist/config"
)

const searchBaseURL = "https://open.spotify.com/search/"

var ErrNoMatch = errors.New("no matching track on spotify")

// SearchURL links to the Spotify web search for a song. The query is a
// single escaped path segment, so titles like "AC/DC" stay intact.
func SearchURL(title, artist string) string {
	q := strings.TrimSpace(title + " " + artist)
	return searchBaseURL + url.PathEscape(q)
}

// Track is what a successful lookup adds on top of the search link.
type Track struct {
	URL      string
	ImageURL string
	Name     string
	Artists  []string
}

type Client struct {
	api *spotifyclient.Client
}

// NewClient authenticates with the client-credentials flow. It returns
// (nil, nil) when Spotify lookups are switched off.
func NewClient(ctx context.Context, cfg config.SpotifyConfig) (*Client, error) {
	if !cfg.HasCredentials() {
		log.Debug("Spotify lookups disabled")
		return nil, nil
	}

	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return newCredentialsClient(ctx, creds)
}

// newCredentialsClient checks the credentials once, then hands the API a
// client that fetches a fresh token whenever the current one expires.
func newCredentialsClient(ctx context.Context, creds *clientcredentials.Config, opts ...spotifyclient.ClientOption) (*Client, error) {
	if _, err := creds.Token(ctx); err != nil {
		sentry.CaptureException(err)
		return nil, err
	}
	return &Client{api: spotifyclient.New(creds.Client(ctx), opts...)}, nil
}

// newClientWithHTTP is used by tests to point the API at a local server.
func newClientWithHTTP(httpClient *http.Client, baseURL string) *Client {
	return &Client{api: spotifyclient.New(httpClient, spotifyclient.WithBaseURL(baseURL))}
}

// Resolve finds the best matching track for a generated song.
func (c *Client) Resolve(ctx context.Context, title, artist string) (*Track, error) {
	query := strings.TrimSpace(title + " " + artist)

	span := sentry.StartSpan(ctx, "spotify.search")
	span.Description = "Resolve song on Spotify"
	span.SetTag("query", query)
	defer span.Finish()

	results, err := c.api.Search(ctx, query, spotifyclient.SearchTypeTrack, spotifyclient.Limit(1))
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	if results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		log.Tracef("No Spotify match for %q", query)
		span.Status = sentry.SpanStatusNotFound
		return nil, ErrNoMatch
	}

	match := results.Tracks.Tracks[0]
	track := &Track{
		URL:  match.ExternalURLs["spotify"],
		Name: match.Name,
	}
	for _, a := range match.Artists {
		track.Artists = append(track.Artists, a.Name)
	}
	if len(match.Album.Images) > 0 {
		track.ImageURL = match.Album.Images[0].URL
	}

	log.Tracef("Resolved %q to %s", query, track.URL)
	span.Status = sentry.SpanStatusOK
	return track, nil
}

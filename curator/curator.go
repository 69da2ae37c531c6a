// Package curator runs one playlist request end to end: prompt, completion
// call, extraction and link building. It holds no state between requests.
package curator

import (
	"context"
	"errors"
	"fmt"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"vibelist/llm"
	"vibelist/playlist"
	"vibelist/sentryhelper"
	"vibelist/spotify"
	"vibelist/wikipedia"
)

// ErrCompletion wraps transport and auth failures of the completion call.
var ErrCompletion = errors.New("playlist generation failed")

// TrackResolver upgrades a search link to a direct track link.
type TrackResolver interface {
	Resolve(ctx context.Context, title, artist string) (*spotify.Track, error)
}

// ThumbnailSource looks up the header image.
type ThumbnailSource interface {
	Thumbnail(ctx context.Context, page string) string
}

// Song is a SongEntry with its outbound links attached.
type Song struct {
	playlist.SongEntry
	Position  int    `json:"position"`
	SearchURL string `json:"search_url"`
	TrackURL  string `json:"track_url,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Result is what the page renders for one request.
type Result struct {
	PlaylistTitle string   `json:"playlist_title"`
	VibeSummary   string   `json:"vibe_summary"`
	Tags          []string `json:"tags"`
	Songs         []Song   `json:"songs"`
}

type Curator struct {
	completer  llm.Completer
	resolver   TrackResolver
	thumbnails ThumbnailSource
}

type Option func(*Curator)

func WithResolver(r TrackResolver) Option {
	return func(c *Curator) { c.resolver = r }
}

func WithThumbnails(t ThumbnailSource) Option {
	return func(c *Curator) { c.thumbnails = t }
}

func New(completer llm.Completer, opts ...Option) *Curator {
	c := &Curator{completer: completer}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate asks the model for a playlist and returns it with links. A
// completion failure wraps ErrCompletion; a reply that breaks the JSON
// contract wraps playlist.ErrMalformedResponse.
func (c *Curator) Generate(ctx context.Context, req *playlist.PlaylistRequest) (*Result, error) {
	ctx, tx := sentryhelper.StartRequestTransaction(ctx, "playlist.generate", map[string]string{
		"mood":     string(req.Mood()),
		"activity": string(req.Activity()),
		"energy":   string(req.Energy()),
		"era":      string(req.Era()),
	})
	defer tx.Finish()

	logger := log.WithFields(log.Fields{"component": "curator", "mood": req.Mood(), "era": req.Era()})

	prompt, err := playlist.BuildUserPrompt(req)
	if err != nil {
		tx.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	span := sentryhelper.StartSpan(tx.Context(), "llm.complete", "Completion call")
	text, err := c.completer.Complete(span.Context(), playlist.SystemPrompt, prompt)
	span.Finish()
	if err != nil {
		logger.Errorf("Completion call failed: %v", err)
		sentryhelper.CaptureException(ctx, err)
		tx.Status = sentry.SpanStatusUnavailable
		return nil, fmt.Errorf("%w: %w", ErrCompletion, err)
	}
	sentryhelper.AddBreadcrumb(ctx, "llm", fmt.Sprintf("completion returned %d characters", len(text)))

	resp, err := playlist.Extract(text)
	if err != nil {
		logger.Warnf("Model reply did not contain a playlist: %v", err)
		sentryhelper.CaptureMessage(ctx, err.Error())
		tx.Status = sentry.SpanStatusDataLoss
		return nil, err
	}

	result := &Result{
		PlaylistTitle: resp.PlaylistTitle,
		VibeSummary:   resp.VibeSummary,
		Tags:          resp.Tags,
		Songs:         make([]Song, 0, len(resp.Songs)),
	}
	for i, entry := range resp.Songs {
		song := Song{
			SongEntry: entry,
			Position:  i + 1,
			SearchURL: spotify.SearchURL(entry.Title, entry.Artist),
		}
		c.resolve(ctx, &song)
		result.Songs = append(result.Songs, song)
	}

	logger.Infof("Generated %q with %d songs", result.PlaylistTitle, len(result.Songs))
	tx.Status = sentry.SpanStatusOK
	return result, nil
}

// resolve attaches a direct track link when a resolver is configured.
// Lookup failures leave the search link in place.
func (c *Curator) resolve(ctx context.Context, song *Song) {
	if c.resolver == nil || song.Title == "" {
		return
	}
	track, err := c.resolver.Resolve(ctx, song.Title, song.Artist)
	if err != nil {
		if !errors.Is(err, spotify.ErrNoMatch) {
			log.Warnf("Spotify lookup failed for %q: %v", song.Title, err)
		}
		return
	}
	song.TrackURL = track.URL
	song.ImageURL = track.ImageURL
}

// Thumbnail returns the header image for a request, or "" when the request
// doesn't call for one or no source is configured.
func (c *Curator) Thumbnail(ctx context.Context, req *playlist.PlaylistRequest) string {
	if c.thumbnails == nil || !req.WantsThumbnail() {
		return ""
	}
	return c.thumbnails.Thumbnail(ctx, wikipedia.ThumbnailPage)
}

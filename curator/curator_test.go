package curator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vibelist/playlist"
	"vibelist/spotify"
)

type fakeCompleter struct {
	reply  string
	err    error
	system string
	user   string
	calls  int
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.system = system
	f.user = user
	return f.reply, f.err
}

type fakeResolver struct {
	tracks map[string]*spotify.Track
	err    error
}

func (f *fakeResolver) Resolve(_ context.Context, title, _ string) (*spotify.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.tracks[title]; ok {
		return t, nil
	}
	return nil, spotify.ErrNoMatch
}

type fakeThumbnails struct {
	pages []string
}

func (f *fakeThumbnails) Thumbnail(_ context.Context, page string) string {
	f.pages = append(f.pages, page)
	return "https://img.example/" + page + ".jpg"
}

const reply = `Here's your playlist!
{"playlist_title":"Glitter Sprint","vibe_summary":"Sparkly cardio.","tags":["pop","run"],"songs":[
{"title":"Love Story","artist":"Taylor Swift","reason":"A classic."},
{"title":"Dancing Queen","artist":"ABBA","reason":"Pure joy."}]}
Enjoy your run!`

func mustRequest(t *testing.T, in playlist.Input) *playlist.PlaylistRequest {
	t.Helper()
	req, err := playlist.NewPlaylistRequest(in)
	if err != nil {
		t.Fatalf("NewPlaylistRequest() error = %v", err)
	}
	return req
}

func TestGenerate(t *testing.T) {
	completer := &fakeCompleter{reply: reply}
	c := New(completer)

	result, err := c.Generate(context.Background(), mustRequest(t, playlist.Input{Mood: "Happy", NumSongs: 10}))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if completer.calls != 1 {
		t.Errorf("Complete called %d times, want 1", completer.calls)
	}
	if completer.system != playlist.SystemPrompt {
		t.Error("system prompt not passed through")
	}
	if !strings.Contains(completer.user, `"mood": "Happy"`) || !strings.Contains(completer.user, `"num_songs": 10`) {
		t.Errorf("user prompt missing request payload:\n%s", completer.user)
	}

	if result.PlaylistTitle != "Glitter Sprint" || result.VibeSummary != "Sparkly cardio." {
		t.Errorf("result = %+v", result)
	}
	if len(result.Tags) != 2 {
		t.Errorf("Tags = %v", result.Tags)
	}
	if len(result.Songs) != 2 {
		t.Fatalf("got %d songs, want 2", len(result.Songs))
	}
	first := result.Songs[0]
	if first.Position != 1 || first.Title != "Love Story" || first.Artist != "Taylor Swift" {
		t.Errorf("Songs[0] = %+v", first)
	}
	if first.SearchURL != spotify.SearchURL("Love Story", "Taylor Swift") {
		t.Errorf("SearchURL = %q", first.SearchURL)
	}
	if first.TrackURL != "" {
		t.Errorf("TrackURL = %q without a resolver", first.TrackURL)
	}
	if result.Songs[1].Position != 2 || result.Songs[1].Title != "Dancing Queen" {
		t.Errorf("Songs[1] = %+v", result.Songs[1])
	}
}

func TestGenerateCompletionError(t *testing.T) {
	upstream := errors.New("401 invalid api key")
	c := New(&fakeCompleter{err: upstream})

	_, err := c.Generate(context.Background(), playlist.DefaultRequest())
	if !errors.Is(err, ErrCompletion) {
		t.Errorf("error = %v, want ErrCompletion", err)
	}
	if !errors.Is(err, upstream) {
		t.Errorf("error = %v, want it to wrap the upstream error", err)
	}
}

func TestGenerateMalformedResponse(t *testing.T) {
	c := New(&fakeCompleter{reply: "Sorry, I can't help with that."})

	_, err := c.Generate(context.Background(), playlist.DefaultRequest())
	if !errors.Is(err, playlist.ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestGenerateWithResolver(t *testing.T) {
	resolver := &fakeResolver{tracks: map[string]*spotify.Track{
		"Love Story": {URL: "https://open.spotify.com/track/abc", ImageURL: "https://i.scdn.co/image/x"},
	}}
	c := New(&fakeCompleter{reply: reply}, WithResolver(resolver))

	result, err := c.Generate(context.Background(), playlist.DefaultRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Songs[0].TrackURL != "https://open.spotify.com/track/abc" || result.Songs[0].ImageURL == "" {
		t.Errorf("Songs[0] = %+v", result.Songs[0])
	}
	if result.Songs[1].TrackURL != "" {
		t.Errorf("unmatched song got TrackURL %q", result.Songs[1].TrackURL)
	}
	if result.Songs[1].SearchURL == "" {
		t.Error("unmatched song lost its search link")
	}
}

func TestGenerateResolverFailureKeepsSearchLinks(t *testing.T) {
	c := New(&fakeCompleter{reply: reply}, WithResolver(&fakeResolver{err: errors.New("rate limited")}))

	result, err := c.Generate(context.Background(), playlist.DefaultRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, s := range result.Songs {
		if s.SearchURL == "" || s.TrackURL != "" {
			t.Errorf("song = %+v", s)
		}
	}
}

func TestThumbnail(t *testing.T) {
	f := false
	tests := []struct {
		name string
		in   playlist.Input
		want bool
	}{
		{"taylor inspired", playlist.Input{}, true},
		{"themed era", playlist.Input{TaylorInspired: &f, Era: "Lover 🩷"}, true},
		{"plain", playlist.Input{TaylorInspired: &f}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thumbs := &fakeThumbnails{}
			c := New(&fakeCompleter{}, WithThumbnails(thumbs))
			got := c.Thumbnail(context.Background(), mustRequest(t, tt.in))
			if (got != "") != tt.want {
				t.Errorf("Thumbnail() = %q, want image: %v", got, tt.want)
			}
			if tt.want && (len(thumbs.pages) != 1 || thumbs.pages[0] != "Taylor_Swift") {
				t.Errorf("pages looked up = %v", thumbs.pages)
			}
		})
	}

	if got := New(&fakeCompleter{}).Thumbnail(context.Background(), playlist.DefaultRequest()); got != "" {
		t.Errorf("Thumbnail() without source = %q", got)
	}
}

package playlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *PlaylistResponse
	}{
		{
			name: "prose around object",
			text: `Sure! {"playlist_title":"Neon","songs":[]}  Enjoy!`,
			want: &PlaylistResponse{PlaylistTitle: "Neon", Tags: []string{}, Songs: []SongEntry{}},
		},
		{
			name: "markdown fence",
			text: "```json\n{\"playlist_title\":\"Glitter Run\",\"vibe_summary\":\"sparkly\",\"tags\":[\"pop\"],\"songs\":[{\"title\":\"Shake It Off\",\"artist\":\"Taylor Swift\",\"reason\":\"Bouncy.\"}]}\n```",
			want: &PlaylistResponse{
				PlaylistTitle: "Glitter Run",
				VibeSummary:   "sparkly",
				Tags:          []string{"pop"},
				Songs:         []SongEntry{{Title: "Shake It Off", Artist: "Taylor Swift", Reason: "Bouncy."}},
			},
		},
		{
			name: "missing tags and vibe summary",
			text: `{"playlist_title":"Late Drive","songs":[{"title":"Style","artist":"Taylor Swift","reason":"Night roads."}]}`,
			want: &PlaylistResponse{
				PlaylistTitle: "Late Drive",
				VibeSummary:   "",
				Tags:          []string{},
				Songs:         []SongEntry{{Title: "Style", Artist: "Taylor Swift", Reason: "Night roads."}},
			},
		},
		{
			name: "missing title falls back",
			text: `{"vibe_summary":"calm"}`,
			want: &PlaylistResponse{PlaylistTitle: DefaultTitle, VibeSummary: "calm", Tags: []string{}, Songs: []SongEntry{}},
		},
		{
			name: "null title falls back",
			text: `{"playlist_title":null}`,
			want: &PlaylistResponse{PlaylistTitle: DefaultTitle, Tags: []string{}, Songs: []SongEntry{}},
		},
		{
			name: "empty title is kept",
			text: `{"playlist_title":""}`,
			want: &PlaylistResponse{PlaylistTitle: "", Tags: []string{}, Songs: []SongEntry{}},
		},
		{
			name: "song fields default to empty",
			text: `{"songs":[{"title":"Clean"},{"artist":"HAIM","reason":"Harmonies."},{}]}`,
			want: &PlaylistResponse{
				PlaylistTitle: DefaultTitle,
				Tags:          []string{},
				Songs: []SongEntry{
					{Title: "Clean"},
					{Artist: "HAIM", Reason: "Harmonies."},
					{},
				},
			},
		},
		{
			name: "unknown keys ignored",
			text: `{"playlist_title":"X","mood":"Sad","songs":[{"title":"a","artist":"b","reason":"c","year":1989}]}`,
			want: &PlaylistResponse{
				PlaylistTitle: "X",
				Tags:          []string{},
				Songs:         []SongEntry{{Title: "a", Artist: "b", Reason: "c"}},
			},
		},
		{
			name: "keys are case sensitive",
			text: `{"PLAYLIST_TITLE":"Shouted","Vibe_Summary":"loud","TAGS":["x"],"songs":[{"Title":"T","ARTIST":"A","Reason":"R"}]}`,
			want: &PlaylistResponse{
				PlaylistTitle: DefaultTitle,
				Tags:          []string{},
				Songs:         []SongEntry{{}},
			},
		},
		{
			name: "differently cased duplicate ignored",
			text: `{"playlist_title":"First","Playlist_Title":"Second"}`,
			want: &PlaylistResponse{PlaylistTitle: "First", Tags: []string{}, Songs: []SongEntry{}},
		},
		{
			name: "capitalised songs key ignored",
			text: `{"playlist_title":"X","Songs":[{"title":"a"}]}`,
			want: &PlaylistResponse{PlaylistTitle: "X", Tags: []string{}, Songs: []SongEntry{}},
		},
		{
			name: "null song and null fields",
			text: `{"tags":null,"songs":[null,{"title":null,"artist":"B"}]}`,
			want: &PlaylistResponse{
				PlaylistTitle: DefaultTitle,
				Tags:          []string{},
				Songs:         []SongEntry{{}, {Artist: "B"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.text)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no braces", "I couldn't come up with a playlist, sorry."},
		{"json null", "null"},
		{"json array", `[{"title":"a"}]`},
		{"json scalar", `"playlist"`},
		{"only opening brace", `here you go: {"playlist_title":"Cut off`},
		{"braces reversed", `} nothing here {`},
		{"invalid json inside braces", `{"playlist_title": "Neon",}`},
		{"stray brace in prose", `Use {curly} quotes! {"playlist_title":"Neon"}`},
		{"wrong field type", `{"playlist_title": 42}`},
		{"songs not a list", `{"songs": "none"}`},
		{"song not an object", `{"songs": ["Love Story"]}`},
		{"song field wrong type", `{"songs": [{"title": 7}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.text)
			if err == nil {
				t.Fatalf("Extract() = %+v, want error", got)
			}
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("Extract() error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestExtractMatchesPlainParse(t *testing.T) {
	payload := `{"playlist_title":"Golden Hour","vibe_summary":"warm","tags":["indie","sunset"],"songs":[{"title":"Gold Rush","artist":"Taylor Swift","reason":"Dreamy."}]}`
	plain, err := Extract(payload)
	if err != nil {
		t.Fatalf("Extract(plain) error = %v", err)
	}

	wrappers := []struct{ prefix, suffix string }{
		{"", ""},
		{"Here is your playlist:\n", ""},
		{"", "\nLet me know if you want changes."},
		{"  \n\t", "\n\n"},
		{"```json\n", "\n```"},
		{"Okay!!! :) ", " (hope you like it)"},
	}
	for _, w := range wrappers {
		got, err := Extract(w.prefix + payload + w.suffix)
		if err != nil {
			t.Errorf("Extract(%q...%q) error = %v", w.prefix, w.suffix, err)
			continue
		}
		if !reflect.DeepEqual(got, plain) {
			t.Errorf("Extract(%q...%q) = %+v, want %+v", w.prefix, w.suffix, got, plain)
		}
	}
}

func TestExtractPreservesSongOrder(t *testing.T) {
	text := `{"songs":[
		{"title":"One","artist":"A"},
		{"title":"Two","artist":"B"},
		{"title":"Three","artist":"C"},
		{"title":"Four","artist":"D"},
		{"title":"Five","artist":"E"}
	]}`
	got, err := Extract(text)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := []string{"One", "Two", "Three", "Four", "Five"}
	if len(got.Songs) != len(want) {
		t.Fatalf("got %d songs, want %d", len(got.Songs), len(want))
	}
	for i, title := range want {
		if got.Songs[i].Title != title {
			t.Errorf("Songs[%d].Title = %q, want %q", i, got.Songs[i].Title, title)
		}
	}
}

func TestExtractRoundTrip(t *testing.T) {
	original := &PlaylistResponse{
		PlaylistTitle: "Midnight Rain Run",
		VibeSummary:   "Moody synths for a 2am jog.",
		Tags:          []string{"synth-pop", "night", "running"},
		Songs: []SongEntry{
			{Title: "Midnight Rain", Artist: "Taylor Swift", Reason: "Sets the tone."},
			{Title: "Blinding Lights", Artist: "The Weeknd", Reason: "Keeps the pace up."},
			{Title: "Green Light", Artist: "Lorde", Reason: "Big release {on} the chorus."},
		},
	}
	body, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	for _, wrap := range []string{"%s", "  %s  ", "Here you go:\n%s\nEnjoy!"} {
		text := fmt.Sprintf(wrap, string(body))
		got, err := Extract(text)
		if err != nil {
			t.Fatalf("Extract(%q) error = %v", wrap, err)
		}
		if !reflect.DeepEqual(got, original) {
			t.Errorf("Extract(%q) = %+v, want %+v", wrap, got, original)
		}
	}
}

func TestTrimToObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no braces", "hello", "hello"},
		{"object only", `{"a":1}`, `{"a":1}`},
		{"surrounding text", `x {"a":1} y`, `{"a":1}`},
		{"nested", `pre {"a":{"b":2}} post`, `{"a":{"b":2}}`},
		{"opening only", `pre {"a":1`, `pre {"a":1`},
		{"closing only", `"a":1} post`, `"a":1} post`},
		{"reversed", `} mid {`, `} mid {`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trimToObject(tt.text); got != tt.want {
				t.Errorf("trimToObject(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

package playlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse means the completion text did not contain a JSON
// object, i.e. the model ignored the output contract.
var ErrMalformedResponse = errors.New("malformed playlist response")

// DefaultTitle is shown when the model omits playlist_title.
const DefaultTitle = "Your Playlist"

type PlaylistResponse struct {
	PlaylistTitle string      `json:"playlist_title"`
	VibeSummary   string      `json:"vibe_summary"`
	Tags          []string    `json:"tags"`
	Songs         []SongEntry `json:"songs"`
}

type SongEntry struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Reason string `json:"reason"`
}

// object is a decoded JSON object. Keys are matched exactly, unlike
// struct decoding which folds case.
type object map[string]json.RawMessage

// field decodes key into dst. An absent or null key leaves dst untouched.
func (o object) field(key string, dst any) error {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// trimToObject isolates the span from the first '{' to the last '}'.
// It is a best-effort heuristic: prose containing stray braces outside the
// real object will widen the span and make parsing fail.
func trimToObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}

// Extract parses the playlist object embedded in raw completion text,
// ignoring any prose or markdown fences around it.
func Extract(text string) (*PlaylistResponse, error) {
	var obj object
	if err := json.Unmarshal([]byte(trimToObject(text)), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse)
	}

	resp := &PlaylistResponse{
		PlaylistTitle: DefaultTitle,
		Tags:          []string{},
		Songs:         []SongEntry{},
	}
	var songs []json.RawMessage
	for _, f := range []struct {
		key string
		dst any
	}{
		{"playlist_title", &resp.PlaylistTitle},
		{"vibe_summary", &resp.VibeSummary},
		{"tags", &resp.Tags},
		{"songs", &songs},
	} {
		if err := obj.field(f.key, f.dst); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}

	for i, raw := range songs {
		song, err := parseSong(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: songs[%d]: %v", ErrMalformedResponse, i, err)
		}
		resp.Songs = append(resp.Songs, song)
	}

	return resp, nil
}

// parseSong reads one songs element. A null element yields an empty entry.
func parseSong(raw json.RawMessage) (SongEntry, error) {
	var song SongEntry
	if isNull(raw) {
		return song, nil
	}
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return song, err
	}
	for key, dst := range map[string]*string{
		"title":  &song.Title,
		"artist": &song.Artist,
		"reason": &song.Reason,
	} {
		if err := obj.field(key, dst); err != nil {
			return song, err
		}
	}
	return song, nil
}

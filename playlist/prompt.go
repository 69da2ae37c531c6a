package playlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const SystemPrompt = `You are a music curator. Create playlists that match the user's mood, activity, energy, and aesthetic.
Return strictly valid JSON with keys: playlist_title, vibe_summary, tags, songs.
songs must be a list of objects with keys: title, artist, reason.
reason should be 1-2 short sentences.`

const promptInstructions = `Create a playlist.
- Avoid repeating artists too much.
- If explicit_ok is false, avoid explicit songs.
- If taylor_inspired is true, include some Taylor Swift songs but not all.
- Make the playlist title short and aesthetic.
Return JSON only.

User request:
`

// BuildUserPrompt renders the user half of the completion call: the
// curation rules followed by the request as indented JSON.
func BuildUserPrompt(req *PlaylistRequest) (string, error) {
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(req.payload()); err != nil {
		return "", fmt.Errorf("failed to encode playlist request: %w", err)
	}
	return promptInstructions + strings.TrimRight(body.String(), "\n"), nil
}

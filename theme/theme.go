package theme

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"

	"vibelist/playlist"
)

// Palette holds the three colours an era theme is built from.
type Palette struct {
	Accent     string
	Accent2    string
	Background string
}

var palettes = map[playlist.Era]Palette{
	"Default":       {"#ff4fb3", "#ffd6ff", "#0b0b12"},
	"Showgirl 🪩✨":   {"#ff4fb3", "#ffd6ff", "#06060e"},
	"TTPD 🩶":        {"#cfcfcf", "#ffffff", "#0a0a0b"},
	"Midnights 💙":   {"#6b7bff", "#c6d0ff", "#07091a"},
	"Lover 🩷":       {"#ff4fb3", "#ffb3d9", "#0b0610"},
	"Reputation 🖤":  {"#b8ff6a", "#ffffff", "#07070b"},
	"1989 🩵":        {"#35d0ff", "#b8f3ff", "#061018"},
	"Red ❤️":        {"#ff3b3b", "#ffd0d0", "#12060a"},
	"Folklore 🤍":    {"#d9d9d9", "#ffffff", "#0a0a0d"},
	"Evermore 🤎":    {"#c58b5a", "#ffe0c7", "#0d0806"},
}

// For returns the palette of an era, falling back to Default.
func For(era playlist.Era) Palette {
	if p, ok := palettes[era]; ok {
		return p
	}
	return palettes[playlist.DefaultEra]
}

var stylesheet = template.Must(template.New("theme").Parse(`
body {
	background:
		radial-gradient(circle at 18% 18%, {{.Accent}}33 0%, transparent 42%),
		radial-gradient(circle at 82% 24%, {{.Accent2}}22 0%, transparent 40%),
		linear-gradient(180deg, {{.Background}} 0%, #04040a 100%);
	background-attachment: fixed;
	color: #f4f4f8;
}

button, .button {
	background: linear-gradient(90deg, {{.Accent}} 0%, {{.Accent2}} 55%, {{.Accent}} 100%);
	color: white;
	border-radius: 999px;
	font-weight: bold;
	border: none;
}

h1 {
	text-shadow: 0 0 18px {{.Accent}}88;
}

a {
	color: {{.Accent2}};
}

.tag {
	border: 1px solid {{.Accent}};
}
`))

var minifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	return m
}()

// CSS renders the minified stylesheet for an era.
func CSS(era playlist.Era) ([]byte, error) {
	var buf bytes.Buffer
	if err := stylesheet.Execute(&buf, For(era)); err != nil {
		return nil, fmt.Errorf("failed to render theme: %w", err)
	}

	var out bytes.Buffer
	if err := minifier.Minify("text/css", &out, &buf); err != nil {
		return nil, fmt.Errorf("failed to minify theme: %w", err)
	}
	return out.Bytes(), nil
}

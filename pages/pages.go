package pages

import "html/template"

var Layout = `
{{define "index"}}<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>AI Playlist Generator</title>
    <link rel="icon" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='.9em' font-size='90'>🪩</text></svg>">
    <style>
        body {
            font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif;
            line-height: 1.6;
            max-width: 760px;
            margin: 0 auto;
            padding: 24px;
            min-height: 100vh;
        }
        form { display: grid; gap: 14px; }
        .row { display: grid; grid-template-columns: 1fr 1fr; gap: 14px; }
        label { display: block; font-weight: 600; }
        select, input[type=text] { width: 100%; padding: 8px; border-radius: 8px; border: 1px solid #444; background: #111; color: inherit; }
        button { padding: 10px 22px; cursor: pointer; font-size: 1rem; }
        .error { background: #3a0d12; border: 1px solid #ff5c70; padding: 10px 14px; border-radius: 8px; }
        .thumb { width: 140px; border-radius: 12px; }
        .tag { display: inline-block; padding: 2px 10px; margin: 0 6px 6px 0; border-radius: 999px; font-size: .85rem; }
        .song { margin: 18px 0; }
        .song img { width: 48px; height: 48px; border-radius: 6px; float: left; margin-right: 10px; }
        hr { border: none; border-top: 1px solid #333; margin: 24px 0; }
    </style>
    <link id="theme" rel="stylesheet" href="/theme.css?era={{.Request.Era}}">
</head>
<body>
    <h1>🪩✨ AI Playlist Generator</h1>
    {{template "form" .}}
    {{if .Error}}<p class="error" role="alert">Error: {{.Error}}</p>{{end}}
    {{with .Result}}{{template "result" .}}{{end}}
    <script>
        document.getElementById('era').addEventListener('change', function (e) {
            document.getElementById('theme').href = '/theme.css?era=' + encodeURIComponent(e.target.value);
        });
        document.getElementById('num_songs').addEventListener('input', function (e) {
            document.getElementById('num_songs_value').textContent = e.target.value;
        });
        document.querySelector('form').addEventListener('submit', function () {
            var b = document.querySelector('form button');
            b.disabled = true;
            b.textContent = 'Curating your playlist...';
        });
    </script>
</body>
</html>{{end}}
`

var Form = `
{{define "form"}}<form method="post" action="/playlist">
    <div class="row">
        <div>
            <label for="mood">Mood</label>
            <select id="mood" name="mood">
                {{range .Moods}}<option value="{{.}}"{{if eq . $.Request.Mood}} selected{{end}}>{{.}}</option>{{end}}
            </select>
        </div>
        <div>
            <label for="era">Era</label>
            <select id="era" name="era">
                {{range .Eras}}<option value="{{.}}"{{if eq . $.Request.Era}} selected{{end}}>{{.}}</option>{{end}}
            </select>
        </div>
    </div>
    <div>
        <label for="activity">Activity</label>
        <select id="activity" name="activity">
            {{range .Activities}}<option value="{{.}}"{{if eq . $.Request.Activity}} selected{{end}}>{{.}}</option>{{end}}
        </select>
    </div>
    <div>
        <label>Energy</label>
        {{range .Energies}}<label style="display:inline; font-weight:normal; margin-right:14px;"><input type="radio" name="energy" value="{{.}}"{{if eq . $.Request.Energy}} checked{{end}}> {{.}}</label>{{end}}
    </div>
    <div>
        <label style="font-weight:normal;"><input type="checkbox" name="taylor_inspired"{{if .Request.TaylorInspired}} checked{{end}}> Taylor Swift inspired</label>
        <label style="font-weight:normal;"><input type="checkbox" name="explicit_ok"{{if .Request.ExplicitOK}} checked{{end}}> Allow explicit songs</label>
    </div>
    {{if .Thumbnail}}<img class="thumb" src="{{.Thumbnail}}" alt="">{{end}}
    <div>
        <label for="vibe_note">Optional vibe note</label>
        <input type="text" id="vibe_note" name="vibe_note" value="{{.Request.VibeNote}}">
    </div>
    <div>
        <label for="num_songs">Number of songs: <span id="num_songs_value">{{.Request.NumSongs}}</span></label>
        <input type="range" id="num_songs" name="num_songs" min="{{.MinSongs}}" max="{{.MaxSongs}}" value="{{.Request.NumSongs}}">
    </div>
    <hr>
    <div><button type="submit">Generate playlist</button></div>
</form>{{end}}
`

var Result = `
{{define "result"}}<section>
    <h2>{{.PlaylistTitle}}</h2>
    {{if .VibeSummary}}<p>{{.VibeSummary}}</p>{{end}}
    {{if .Tags}}<div>{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</div>{{end}}
    {{range .Songs}}<div class="song">
        {{if .ImageURL}}<img src="{{.ImageURL}}" alt="">{{end}}
        <strong>{{.Position}}. {{.Title}} — {{.Artist}}</strong><br>
        {{.Reason}}<br>
        <a href="{{.SearchURL}}" target="_blank" rel="noopener">🎧 Listen on Spotify</a>{{if .TrackURL}} · <a href="{{.TrackURL}}" target="_blank" rel="noopener">Open track</a>{{end}}
    </div>{{end}}
</section>{{end}}
`

// Templates parses every page template into one set.
func Templates() *template.Template {
	t := template.New("pages")
	for _, src := range []string{Layout, Form, Result} {
		template.Must(t.Parse(src))
	}
	return t
}

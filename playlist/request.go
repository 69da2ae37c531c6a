package playlist

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidRequest is returned when user input falls outside the choices
// offered by the form.
var ErrInvalidRequest = errors.New("invalid playlist request")

type Mood string
type Activity string
type Energy string
type Era string

var Moods = []Mood{"Confident", "Happy", "Chill", "Focused", "Romantic", "Sad", "Hyped"}

var Activities = []Activity{"Running", "Driving", "Getting Ready", "Studying", "Gym"}

var Energies = []Energy{"Low", "Medium", "High"}

const DefaultEra Era = "Default"

var Eras = []Era{
	DefaultEra,
	"Showgirl 🪩✨",
	"TTPD 🩶",
	"Midnights 💙",
	"Lover 🩷",
	"Reputation 🖤",
	"1989 🩵",
	"Red ❤️",
	"Folklore 🤍",
	"Evermore 🤎",
}

const (
	MinSongs     = 8
	MaxSongs     = 20
	DefaultSongs = 12
)

// Input is the raw, unvalidated set of form values. Zero values mean
// "not provided" and are replaced with the form defaults.
type Input struct {
	Mood           string `json:"mood"`
	Activity       string `json:"activity"`
	Energy         string `json:"energy"`
	Era            string `json:"era"`
	TaylorInspired *bool  `json:"taylor_inspired"`
	ExplicitOK     *bool  `json:"explicit_ok"`
	VibeNote       string `json:"vibe_note"`
	NumSongs       int    `json:"num_songs"`
}

// PlaylistRequest is a validated set of preferences. It cannot be changed
// once built.
type PlaylistRequest struct {
	mood           Mood
	activity       Activity
	energy         Energy
	era            Era
	taylorInspired bool
	explicitOK     bool
	vibeNote       string
	numSongs       int
}

// DefaultRequest mirrors the initial state of the form.
func DefaultRequest() *PlaylistRequest {
	return &PlaylistRequest{
		mood:           Moods[0],
		activity:       Activities[0],
		energy:         "Medium",
		era:            DefaultEra,
		taylorInspired: true,
		explicitOK:     false,
		numSongs:       DefaultSongs,
	}
}

func NewPlaylistRequest(in Input) (*PlaylistRequest, error) {
	req := DefaultRequest()

	if in.Mood != "" {
		if !slices.Contains(Moods, Mood(in.Mood)) {
			return nil, fmt.Errorf("%w: unknown mood %q", ErrInvalidRequest, in.Mood)
		}
		req.mood = Mood(in.Mood)
	}
	if in.Activity != "" {
		if !slices.Contains(Activities, Activity(in.Activity)) {
			return nil, fmt.Errorf("%w: unknown activity %q", ErrInvalidRequest, in.Activity)
		}
		req.activity = Activity(in.Activity)
	}
	if in.Energy != "" {
		if !slices.Contains(Energies, Energy(in.Energy)) {
			return nil, fmt.Errorf("%w: unknown energy %q", ErrInvalidRequest, in.Energy)
		}
		req.energy = Energy(in.Energy)
	}
	if in.Era != "" {
		if !slices.Contains(Eras, Era(in.Era)) {
			return nil, fmt.Errorf("%w: unknown era %q", ErrInvalidRequest, in.Era)
		}
		req.era = Era(in.Era)
	}
	if in.TaylorInspired != nil {
		req.taylorInspired = *in.TaylorInspired
	}
	if in.ExplicitOK != nil {
		req.explicitOK = *in.ExplicitOK
	}
	if in.NumSongs != 0 {
		if in.NumSongs < MinSongs || in.NumSongs > MaxSongs {
			return nil, fmt.Errorf("%w: num_songs must be between %d and %d, got %d",
				ErrInvalidRequest, MinSongs, MaxSongs, in.NumSongs)
		}
		req.numSongs = in.NumSongs
	}
	req.vibeNote = strings.TrimSpace(in.VibeNote)

	return req, nil
}

func (r *PlaylistRequest) Mood() Mood           { return r.mood }
func (r *PlaylistRequest) Activity() Activity   { return r.activity }
func (r *PlaylistRequest) Energy() Energy       { return r.energy }
func (r *PlaylistRequest) Era() Era             { return r.era }
func (r *PlaylistRequest) TaylorInspired() bool { return r.taylorInspired }
func (r *PlaylistRequest) ExplicitOK() bool     { return r.explicitOK }
func (r *PlaylistRequest) VibeNote() string     { return r.vibeNote }
func (r *PlaylistRequest) NumSongs() int        { return r.numSongs }

// WantsThumbnail reports whether the header image should be shown.
func (r *PlaylistRequest) WantsThumbnail() bool {
	return r.taylorInspired || r.era != DefaultEra
}

// payload is the wire form embedded in the user prompt.
type payload struct {
	Mood           Mood     `json:"mood"`
	Activity       Activity `json:"activity"`
	Energy         Energy   `json:"energy"`
	TaylorInspired bool     `json:"taylor_inspired"`
	ExplicitOK     bool     `json:"explicit_ok"`
	VibeNote       string   `json:"vibe_note"`
	NumSongs       int      `json:"num_songs"`
	Era            Era      `json:"era"`
}

func (r *PlaylistRequest) payload() payload {
	return payload{
		Mood:           r.mood,
		Activity:       r.activity,
		Energy:         r.energy,
		TaylorInspired: r.taylorInspired,
		ExplicitOK:     r.explicitOK,
		VibeNote:       r.vibeNote,
		NumSongs:       r.numSongs,
		Era:            r.era,
	}
}

// Package handlers serves the playlist form, the generated result and the
// era stylesheet. Every failure is rendered back to the user; nothing here
// crashes the process.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"vibelist/curator"
	"vibelist/pages"
	"vibelist/playlist"
	"vibelist/theme"
)

// Generator is the part of the curator the handlers depend on.
type Generator interface {
	Generate(ctx context.Context, req *playlist.PlaylistRequest) (*curator.Result, error)
	Thumbnail(ctx context.Context, req *playlist.PlaylistRequest) string
}

type Manager struct {
	generator Generator
}

type pageData struct {
	Moods      []playlist.Mood
	Activities []playlist.Activity
	Energies   []playlist.Energy
	Eras       []playlist.Era
	MinSongs   int
	MaxSongs   int

	Request   formValues
	Thumbnail string
	Error     string
	Result    *curator.Result
}

func NewManager(generator Generator) *Manager {
	return &Manager{generator: generator}
}

// Register mounts all routes and the page templates on the router.
func (m *Manager) Register(router *gin.Engine) {
	router.SetHTMLTemplate(pages.Templates())

	router.GET("/", m.handleIndex)
	router.POST("/playlist", m.handleForm)
	router.POST("/api/playlist", m.handleAPI)
	router.GET("/theme.css", m.handleTheme)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

// formValues is what the form shows as selected. Unlike a PlaylistRequest
// it may hold values that failed validation.
type formValues struct {
	Mood           playlist.Mood
	Activity       playlist.Activity
	Energy         playlist.Energy
	Era            playlist.Era
	TaylorInspired bool
	ExplicitOK     bool
	VibeNote       string
	NumSongs       int
}

func valuesOf(req *playlist.PlaylistRequest) formValues {
	return formValues{
		Mood:           req.Mood(),
		Activity:       req.Activity(),
		Energy:         req.Energy(),
		Era:            req.Era(),
		TaylorInspired: req.TaylorInspired(),
		ExplicitOK:     req.ExplicitOK(),
		VibeNote:       req.VibeNote(),
		NumSongs:       req.NumSongs(),
	}
}

// submittedValues echoes a rejected submission, defaults filling the gaps.
func submittedValues(in playlist.Input) formValues {
	v := valuesOf(playlist.DefaultRequest())
	if in.Mood != "" {
		v.Mood = playlist.Mood(in.Mood)
	}
	if in.Activity != "" {
		v.Activity = playlist.Activity(in.Activity)
	}
	if in.Energy != "" {
		v.Energy = playlist.Energy(in.Energy)
	}
	if in.Era != "" {
		v.Era = playlist.Era(in.Era)
	}
	if in.TaylorInspired != nil {
		v.TaylorInspired = *in.TaylorInspired
	}
	if in.ExplicitOK != nil {
		v.ExplicitOK = *in.ExplicitOK
	}
	v.VibeNote = in.VibeNote
	if in.NumSongs != 0 {
		v.NumSongs = in.NumSongs
	}
	return v
}

func newPageData(values formValues) pageData {
	return pageData{
		Moods:      playlist.Moods,
		Activities: playlist.Activities,
		Energies:   playlist.Energies,
		Eras:       playlist.Eras,
		MinSongs:   playlist.MinSongs,
		MaxSongs:   playlist.MaxSongs,
		Request:    values,
	}
}

func (m *Manager) handleIndex(c *gin.Context) {
	req := playlist.DefaultRequest()
	data := newPageData(valuesOf(req))
	data.Thumbnail = m.generator.Thumbnail(c.Request.Context(), req)
	c.HTML(http.StatusOK, "index", data)
}

func (m *Manager) handleForm(c *gin.Context) {
	logger := requestLogger(c)

	in, err := inputFromForm(c)
	var req *playlist.PlaylistRequest
	if err == nil {
		req, err = playlist.NewPlaylistRequest(in)
	}
	if err != nil {
		logger.Infof("Rejected form submission: %v", err)
		data := newPageData(submittedValues(in))
		data.Error = err.Error()
		c.HTML(http.StatusBadRequest, "index", data)
		return
	}

	data := newPageData(valuesOf(req))
	data.Thumbnail = m.generator.Thumbnail(c.Request.Context(), req)

	result, err := m.generator.Generate(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("Playlist generation failed: %v", err)
		data.Error = err.Error()
		c.HTML(statusFor(err), "index", data)
		return
	}

	data.Result = result
	c.HTML(http.StatusOK, "index", data)
}

func (m *Manager) handleAPI(c *gin.Context) {
	logger := requestLogger(c)

	var in playlist.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req, err := playlist.NewPlaylistRequest(in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := m.generator.Generate(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("Playlist generation failed: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (m *Manager) handleTheme(c *gin.Context) {
	css, err := theme.CSS(playlist.Era(c.Query("era")))
	if err != nil {
		log.Errorf("Failed to render theme: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/css; charset=utf-8", css)
}

// inputFromForm reads an HTML form post. Unchecked checkboxes are absent
// from the body, so both toggles are always set explicitly.
func inputFromForm(c *gin.Context) (playlist.Input, error) {
	taylor := isChecked(c.PostForm("taylor_inspired"))
	explicit := isChecked(c.PostForm("explicit_ok"))

	in := playlist.Input{
		Mood:           c.PostForm("mood"),
		Activity:       c.PostForm("activity"),
		Energy:         c.PostForm("energy"),
		Era:            c.PostForm("era"),
		TaylorInspired: &taylor,
		ExplicitOK:     &explicit,
		VibeNote:       c.PostForm("vibe_note"),
	}

	if raw := strings.TrimSpace(c.PostForm("num_songs")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return in, errors.Join(playlist.ErrInvalidRequest, errors.New("num_songs must be a number"))
		}
		in.NumSongs = n
	}
	return in, nil
}

func isChecked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, playlist.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, playlist.ErrMalformedResponse), errors.Is(err, curator.ErrCompletion):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

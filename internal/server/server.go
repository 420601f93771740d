// Package server exposes recolor sessions over HTTP, standing in for an
// interactive UI: a client uploads an image, reports taps in its own
// display coordinates, and fetches the repainted result.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/okral/repaint/internal/color"
	"github.com/okral/repaint/internal/imaging"
	"github.com/okral/repaint/internal/session"
)

// maxUploadBytes bounds the request body size for image uploads.
const maxUploadBytes = 32 << 20

// Server manages recolor sessions keyed by id.
type Server struct {
	cfg    session.Config
	maxDim int

	mu       sync.Mutex
	sessions map[string]*session.Session
	nextID   uint64
}

// New creates a Server. Uploaded images are downsampled so neither
// dimension exceeds maxDim (0 disables the bound).
func New(cfg session.Config, maxDim int) *Server {
	return &Server{
		cfg:      cfg,
		maxDim:   maxDim,
		sessions: make(map[string]*session.Session),
	}
}

// Router returns the HTTP handler for the session API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/sessions", s.handleCreate)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/image", s.handleImage)
		r.Post("/fill", s.handleFill)
		r.Post("/recolor", s.handleRecolor)
		r.Delete("/", s.handleDelete)
	})
	return r
}

type fillRequest struct {
	SurfaceWidth  int     `json:"surfaceWidth"`
	SurfaceHeight int     `json:"surfaceHeight"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Color         string  `json:"color"`
}

type recolorRequest struct {
	Color string `json:"color"`
}

type sessionResponse struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	img, err := imaging.Decode(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding upload: %v", err))
		return
	}

	sess := session.New(imaging.Downsample(img, s.maxDim), s.cfg)

	s.mu.Lock()
	s.nextID++
	id := strconv.FormatUint(s.nextID, 10)
	s.sessions[id] = sess
	s.mu.Unlock()

	b := sess.Bounds()
	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:     id,
		Width:  b.Dx(),
		Height: b.Dy(),
	})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	// Encode errors after the header is written can only be dropped;
	// middleware.Logger records the aborted response.
	_ = png.Encode(w, sess.Current())
}

func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	var req fillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding request: %v", err))
		return
	}
	if req.SurfaceWidth <= 0 || req.SurfaceHeight <= 0 {
		writeError(w, http.StatusBadRequest, "surfaceWidth and surfaceHeight must be positive")
		return
	}
	c, err := color.ParseHex(req.Color)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err = sess.FillAt(req.SurfaceWidth, req.SurfaceHeight, req.X, req.Y, c)
	if errors.Is(err, session.ErrOutsideImage) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	seed, _ := sess.Seed()
	writeJSON(w, http.StatusOK, map[string]any{
		"seedX": seed.X,
		"seedY": seed.Y,
	})
}

func (s *Server) handleRecolor(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	var req recolorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding request: %v", err))
		return
	}
	c, err := color.ParseHex(req.Color)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err = sess.Recolor(c)
	if errors.Is(err, session.ErrNoPriorFill) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookup(r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

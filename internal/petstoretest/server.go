// Package petstoretest runs an in-process fake of the public petstore API.
// It reproduces the status codes and bodies recorded from the live service so
// the suite runs without network access.
package petstoretest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/petstore-api-tests/internal/pets"
)

// BasePath is where the pet routes are mounted, matching the live API root.
const BasePath = "/v2"

// firstGeneratedID mimics the large ids the live API hands out when a body
// has no id.
const firstGeneratedID int64 = 9_223_372_036_854_000_000

// APIResponse is the petstore's generic status envelope.
type APIResponse struct {
	Code    int32  `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Request is a captured inbound request.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Server is the fake petstore.
type Server struct {
	store      *Store
	engine     *gin.Engine
	middleware []gin.HandlerFunc
	lastID     atomic.Int64

	mu       sync.Mutex
	requests []Request

	httpServer *httptest.Server
}

// Option configures a Server.
type Option func(*Server)

// WithReadLag makes the first n reads of a newly created pet answer 404,
// like the live API right after a write.
func WithReadLag(n int) Option {
	return func(s *Server) {
		s.store.setReadLag(n)
	}
}

// WithMiddleware installs handlers ahead of the pet routes.
func WithMiddleware(handlers ...gin.HandlerFunc) Option {
	return func(s *Server) {
		s.middleware = append(s.middleware, handlers...)
	}
}

// New builds the fake with its routes registered.
func New(opts ...Option) *Server {
	s := &Server{store: NewStore()}
	s.lastID.Store(firstGeneratedID)
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.capture)
	engine.Use(s.middleware...)
	api := engine.Group(BasePath)
	api.POST("/pet", s.addPet)
	api.PUT("/pet", s.updatePet)
	api.GET("/pet/:petId", s.getPetByID)
	api.DELETE("/pet/:petId", s.deletePet)
	s.engine = engine
	return s
}

// Start runs the fake on a local listener for the duration of the test.
func Start(t testing.TB, opts ...Option) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := New(opts...)
	s.httpServer = httptest.NewServer(s.engine)
	t.Cleanup(s.httpServer.Close)
	return s
}

// Handler exposes the router for callers managing their own listener.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// URL returns the server root; empty unless started with Start.
func (s *Server) URL() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.URL
}

// BaseURL returns the API root clients should use.
func (s *Server) BaseURL() string {
	return s.URL() + BasePath
}

// Store exposes the backing catalog for seeding and inspection.
func (s *Server) Store() *Store {
	return s.store
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request{}, s.requests...)
}

func (s *Server) capture(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	s.mu.Unlock()
	c.Next()
}

// Post /v2/pet
func (s *Server) addPet(c *gin.Context) {
	pet, ok := s.bindPet(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.store.Save(pet))
}

// Put /v2/pet
func (s *Server) updatePet(c *gin.Context) {
	pet, ok := s.bindPet(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.store.Save(pet))
}

// Get /v2/pet/:petId
func (s *Server) getPetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	pet, err := s.store.Get(id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, APIResponse{Code: 1, Type: "error", Message: "Pet not found"})
		return
	}
	c.JSON(http.StatusOK, pet)
}

// Delete /v2/pet/:petId
func (s *Server) deletePet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := s.store.Delete(id); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Code: http.StatusOK, Type: "unknown", Message: strconv.FormatInt(id, 10)})
}

// wirePet keeps the raw id so missing and wrong-typed ids can be told apart.
type wirePet struct {
	ID        json.RawMessage `json:"id"`
	Category  *pets.Category  `json:"category"`
	Name      string          `json:"name"`
	PhotoURLs []string        `json:"photoUrls"`
	Tags      []pets.Tag      `json:"tags"`
	Status    pets.Status     `json:"status"`
}

func (s *Server) bindPet(c *gin.Context) (pets.Pet, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(raw) {
		c.JSON(http.StatusBadRequest, APIResponse{Code: http.StatusBadRequest, Type: "unknown", Message: "bad input"})
		return pets.Pet{}, false
	}
	var in wirePet
	if err := json.Unmarshal(raw, &in); err != nil {
		respondServerError(c)
		return pets.Pet{}, false
	}
	id, err := s.resolveID(in.ID)
	if err != nil {
		respondServerError(c)
		return pets.Pet{}, false
	}
	return pets.Pet{
		ID:        id,
		Category:  in.Category,
		Name:      in.Name,
		PhotoURLs: in.PhotoURLs,
		Tags:      in.Tags,
		Status:    in.Status,
	}, true
}

// resolveID accepts integers and integer strings; anything else fails the
// way the live API does. A missing id gets a server-assigned one.
func (s *Server) resolveID(raw json.RawMessage) (int64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return s.lastID.Add(1), nil
	}
	text := string(trimmed)
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return 0, err
		}
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("pet id %s: %w", trimmed, err)
	}
	return id, nil
}

func parseIDParam(c *gin.Context) (int64, bool) {
	raw := c.Param("petId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, APIResponse{
			Code:    http.StatusNotFound,
			Type:    "unknown",
			Message: fmt.Sprintf("java.lang.NumberFormatException: For input string: %q", raw),
		})
		return 0, false
	}
	return id, true
}

func respondServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, APIResponse{Code: http.StatusInternalServerError, Type: "unknown", Message: "something bad happened"})
}

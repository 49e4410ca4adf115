// Package server exposes the orchestrator as a small JSON API for a browser
// front end. The server is stateless apart from the advisory session cache;
// concurrent searches are safe, last write wins on the cache.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/buywise/buywise/internal/analyze"
	"github.com/buywise/buywise/internal/listing"
	"github.com/buywise/buywise/internal/platform"
	"github.com/buywise/buywise/internal/reconcile"
	"github.com/buywise/buywise/internal/session"
)

// Searcher is what the server needs from the orchestrator; tests substitute
// a fake.
type Searcher interface {
	Search(ctx context.Context, query, platform string) (listing.Result, error)
}

type Server struct {
	echo     *echo.Echo
	searcher Searcher
	store    session.Store
}

type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i interface{}) error {
	if err := rv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Please enter a product name to find the best deals.")
	}
	return nil
}

func New(searcher Searcher, store session.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Validator = &requestValidator{v: validator.New()}

	s := &Server{echo: e, searcher: searcher, store: store}

	e.POST("/api/search", s.handleSearch)
	e.GET("/api/platforms", s.handlePlatforms)
	e.GET("/api/session", s.handleSession)
	e.GET("/api/search-url", s.handleSearchURL)
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return s
}

type searchRequest struct {
	Query    string `json:"query" validate:"required,min=2"`
	Platform string `json:"platform"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) handleSearch(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "Please enter a product name to find the best deals.",
			Kind:  string(analyze.KindInvalidQuery),
		})
	}

	res, err := s.searcher.Search(c.Request().Context(), req.Query, req.Platform)
	if err != nil {
		kind := analyze.KindOf(err)
		log.Warn().Err(err).Str("kind", string(kind)).Str("platform", req.Platform).Msg("search failed")
		return c.JSON(statusForKind(kind), errorResponse{Error: err.Error(), Kind: string(kind)})
	}

	if err := session.Save(s.store, res); err != nil {
		log.Warn().Err(err).Msg("session save failed")
	}
	return c.JSON(http.StatusOK, res)
}

func statusForKind(kind analyze.Kind) int {
	switch kind {
	case analyze.KindInvalidQuery:
		return http.StatusBadRequest
	case analyze.KindNoMatchingListings:
		return http.StatusNotFound
	case analyze.KindProviderFailure, analyze.KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handlePlatforms(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"platforms": platform.Catalogue})
}

// handleSession replays the cached last result, 204 when there is none.
func (s *Server) handleSession(c echo.Context) error {
	res, ok := session.Load(s.store)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, res)
}

// handleSearchURL returns the merchant-agnostic escape-hatch search link.
func (s *Server) handleSearchURL(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "query parameter q is required"})
	}
	return c.JSON(http.StatusOK, map[string]string{"url": reconcile.UniversalSearchURL(q)})
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Package web serves the form and results grid as a single local HTML
// window.
//
// The window is one HTML form; every button submits all of it to its own
// route, which applies the action to the Form and redirects back to the
// window (post/redirect/get). Notices raised
// by an action are shown on the next render of the window and then
// dropped.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/roach88/healthrec/internal/form"
)

// Server drives one Form from HTTP requests.
type Server struct {
	// mu serializes handlers onto the form; net/http runs them concurrently.
	mu   sync.Mutex
	form *form.Form
	echo *echo.Echo
}

// New builds the window server around f.
func New(f *form.Form) (*Server, error) {
	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "session", f.Session()}
			if v.Error != nil {
				slog.Error("request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			slog.Debug("request", attrs...)
			return nil
		},
	}))

	s := &Server{form: f, echo: e}

	e.GET("/", s.handleWindow)
	e.POST("/add", s.handleAdd)
	e.POST("/search", s.handleSearch)
	e.POST("/select", s.handleSelect)
	e.POST("/cure", s.handleCure)
	e.POST("/deselect", s.handleDeselect)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr and blocks until the server stops.
// Returns nil after a graceful Shutdown.
func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleWindow(c echo.Context) error {
	s.mu.Lock()
	data := snapshot(s.form)
	s.mu.Unlock()
	return c.Render(http.StatusOK, "window.html", data)
}

func (s *Server) handleAdd(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.captureFields(c); err != nil {
		return err
	}
	if err := s.form.Add(c.Request().Context()); err != nil {
		return err
	}
	return backToWindow(c)
}

func (s *Server) handleSearch(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.captureFields(c); err != nil {
		return err
	}
	if err := s.form.Search(c.Request().Context()); err != nil {
		return err
	}
	return backToWindow(c)
}

func (s *Server) handleSelect(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.captureFields(c); err != nil {
		return err
	}
	if err := s.selectRow(c.FormValue("row")); err != nil {
		return err
	}
	return backToWindow(c)
}

func (s *Server) handleDeselect(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.captureFields(c); err != nil {
		return err
	}
	s.form.ClearSelection()
	return backToWindow(c)
}

// handleCure highlights the submitted row, if any, then marks the
// highlighted row cured. Without a submitted row the current highlight
// (possibly none) is used.
func (s *Server) handleCure(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.captureFields(c); err != nil {
		return err
	}
	if row := c.FormValue("row"); row != "" {
		if err := s.selectRow(row); err != nil {
			return err
		}
	}
	if err := s.form.MarkSelectedCured(c.Request().Context()); err != nil {
		return err
	}
	return backToWindow(c)
}

// captureFields copies the text fields sent with a request into the form.
// Every button submits the whole window, so the form always holds what is
// currently typed. Fields absent from the request keep their value.
func (s *Server) captureFields(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fields := []struct {
		key string
		dst *string
	}{
		{"name", &s.form.Name},
		{"code", &s.form.Code},
		{"details", &s.form.Details},
		{"query", &s.form.Query},
	}
	for _, f := range fields {
		if vals, ok := params[f.key]; ok && len(vals) > 0 {
			*f.dst = vals[0]
		}
	}
	return nil
}

func (s *Server) selectRow(raw string) error {
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid row %q", raw))
	}
	if err := s.form.Select(idx); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func backToWindow(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}

// Package server exposes the listing, article, editor and engagement
// endpoints over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mohammad-safakhou/technote/internal/article"
	"github.com/mohammad-safakhou/technote/internal/editor"
	"github.com/mohammad-safakhou/technote/internal/engagement"
	"github.com/mohammad-safakhou/technote/internal/render"
	"github.com/mohammad-safakhou/technote/internal/search"
)

// Articles is the read side of the article store.
type Articles interface {
	Snapshot() []article.Article
	GetByID(id string) (article.Article, error)
}

// Deps are the components the HTTP surface is wired to.
type Deps struct {
	Articles   Articles
	Renderer   *render.Renderer
	Negotiator *render.Negotiator
	Search     *search.Index
	Workspace  *editor.Workspace
	Drafts     *editor.Drafts
	Publisher  *editor.Publisher
	Toggles    *engagement.Toggles
	Comments   *engagement.Comments
	Metrics    http.Handler
	PageSize   int
	Debug      bool
	Now        func() time.Time

	// AllowedOrigins lists CORS origins; empty means any.
	AllowedOrigins []string
}

const localeKey = "locale"

// NewEcho builds the router with every handler registered.
func NewEcho(d Deps) *echo.Echo {
	if d.Now == nil {
		d.Now = time.Now
	}
	if len(d.AllowedOrigins) == 0 {
		d.AllowedOrigins = []string{"*"}
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = d.Debug
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if d.Debug {
		e.Use(middleware.Logger())
	}
	e.HTTPErrorHandler = jsonErrorHandler(log.New(log.Writer(), "[HTTP] ", log.LstdFlags))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: d.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Accept-Language"},
	}))
	if d.Negotiator != nil {
		e.Use(withLocale(d.Negotiator))
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}

	api := e.Group("/api")
	pages := e.Group("")

	tabs := &TabsHandler{Articles: d.Articles, Renderer: d.Renderer, PageSize: d.PageSize}
	tabs.Register(api, pages)

	articles := &ArticlesHandler{Articles: d.Articles, Renderer: d.Renderer, Search: d.Search, Toggles: d.Toggles}
	articles.Register(api, pages)

	ed := &EditorHandler{Workspace: d.Workspace, Drafts: d.Drafts, Publisher: d.Publisher, Now: d.Now}
	ed.Register(api.Group("/editor"))

	eng := &EngagementHandler{Articles: d.Articles, Renderer: d.Renderer, Toggles: d.Toggles, Comments: d.Comments}
	eng.Register(api)

	return e
}

// NewMetricsEcho serves only /metrics, for the dedicated metrics listener.
func NewMetricsEcho(h http.Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.GET("/metrics", echo.WrapHandler(h))
	return e
}

// jsonErrorHandler logs every failed request and answers with {"error": msg}.
func jsonErrorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		logger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
}

// withLocale picks the response locale from ?lang= or Accept-Language.
func withLocale(n *render.Negotiator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			locale := n.Match(c.Request().Header.Get("Accept-Language"))
			if q := c.QueryParam("lang"); q != "" {
				locale = render.Parse(q)
			}
			c.Set(localeKey, locale)
			return next(c)
		}
	}
}

func localeOf(c echo.Context) render.Locale {
	if l, ok := c.Get(localeKey).(render.Locale); ok {
		return l
	}
	return render.LocaleJA
}

func pageParam(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		return 1
	}
	return n
}

// Serve runs e on addr until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

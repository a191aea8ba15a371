package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/technote/internal/article"
	"github.com/mohammad-safakhou/technote/internal/engagement"
	"github.com/mohammad-safakhou/technote/internal/ranking"
	"github.com/mohammad-safakhou/technote/internal/render"
	"github.com/mohammad-safakhou/technote/internal/search"
)

type ArticlesHandler struct {
	Articles Articles
	Renderer *render.Renderer
	Search   *search.Index
	Toggles  *engagement.Toggles
}

func (h *ArticlesHandler) Register(api, pages *echo.Group) {
	api.GET("/articles/:id", h.apiDetail)
	api.GET("/search", h.search)
	pages.GET("/article", h.htmlDetail)
}

// DetailResponse is the article page plus the visitor's toggle state.
type DetailResponse struct {
	render.DetailView
	Liked      bool `json:"liked"`
	Bookmarked bool `json:"bookmarked"`
}

// ErrorResponse carries the error panel alongside the plain message.
type ErrorResponse struct {
	Error string           `json:"error"`
	Panel render.ErrorView `json:"panel"`
}

// lookup resolves id to an article or to the error panel and status to show.
func (h *ArticlesHandler) lookup(id string) (article.Article, int, render.ErrorKind) {
	if strings.TrimSpace(id) == "" {
		return article.Article{}, http.StatusBadRequest, render.ErrorMissingID
	}
	a, err := h.Articles.GetByID(id)
	if errors.Is(err, article.ErrArticleNotFound) {
		return article.Article{}, http.StatusNotFound, render.ErrorNotFound
	}
	if err != nil {
		return article.Article{}, http.StatusInternalServerError, render.ErrorLoadFailed
	}
	return a, http.StatusOK, ""
}

func (h *ArticlesHandler) apiDetail(c echo.Context) error {
	locale := localeOf(c)
	a, status, kind := h.lookup(c.Param("id"))
	if status != http.StatusOK {
		panel := h.Renderer.Error(kind, locale)
		return c.JSON(status, ErrorResponse{Error: panel.Message, Panel: panel})
	}
	v, err := h.Renderer.Detail(a, locale)
	if err != nil {
		panel := h.Renderer.Error(render.ErrorLoadFailed, locale)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Panel: panel})
	}
	resp := DetailResponse{DetailView: v}
	if h.Toggles != nil {
		ctx := c.Request().Context()
		resp.Liked, _ = h.Toggles.IsSet(ctx, engagement.KindLike, a.ID)
		resp.Bookmarked, _ = h.Toggles.IsSet(ctx, engagement.KindBookmark, a.ID)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ArticlesHandler) htmlDetail(c echo.Context) error {
	locale := localeOf(c)
	var buf bytes.Buffer
	a, status, kind := h.lookup(c.QueryParam("id"))
	if status == http.StatusOK {
		v, err := h.Renderer.Detail(a, locale)
		if err == nil {
			if err := render.WriteDetail(&buf, v); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			return c.HTMLBlob(http.StatusOK, buf.Bytes())
		}
		status, kind = http.StatusInternalServerError, render.ErrorLoadFailed
	}
	if err := render.WriteError(&buf, h.Renderer.Error(kind, locale)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTMLBlob(status, buf.Bytes())
}

// SearchResponse lists matching articles as cards.
type SearchResponse struct {
	Query   string            `json:"query"`
	Results []render.CardView `json:"results"`
}

func (h *ArticlesHandler) search(c echo.Context) error {
	if h.Search == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search disabled")
	}
	q := c.QueryParam("q")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	hits, err := h.Search.Search(q, limit)
	if errors.Is(err, search.ErrNotReady) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	resp := SearchResponse{Query: q, Results: make([]render.CardView, 0, len(hits))}
	locale := localeOf(c)
	for _, hit := range hits {
		a, err := h.Articles.GetByID(hit.ID)
		if err != nil {
			// index lags a refresh by one listener call
			continue
		}
		resp.Results = append(resp.Results, h.Renderer.Card(ranking.Entry{Article: a, AIBadge: a.IsAIGenerated()}, locale))
	}
	return c.JSON(http.StatusOK, resp)
}

package server

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/technote/internal/pagination"
	"github.com/mohammad-safakhou/technote/internal/ranking"
	"github.com/mohammad-safakhou/technote/internal/render"
)

// RankingSize is how many entries the sidebar ranking shows.
const RankingSize = 10

type TabsHandler struct {
	Articles Articles
	Renderer *render.Renderer
	PageSize int
}

func (h *TabsHandler) Register(api, pages *echo.Group) {
	api.GET("/tabs", h.list)
	api.GET("/tabs/:tab", h.apiTab)
	api.GET("/ranking", h.apiRanking)
	pages.GET("/tabs/:tab", h.htmlTab)
	pages.GET("/ranking", h.htmlRanking)
}

func (h *TabsHandler) list(c echo.Context) error {
	return c.JSON(http.StatusOK, ranking.Tabs)
}

func (h *TabsHandler) view(c echo.Context) (render.TabView, error) {
	tab, err := ranking.ParseTab(c.Param("tab"))
	if err != nil {
		return render.TabView{}, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	size := h.PageSize
	if size <= 0 {
		size = pagination.DefaultPageSize
	}
	proj := ranking.Project(h.Articles.Snapshot(), tab)
	return h.Renderer.Tab(proj, pageParam(c), size, localeOf(c)), nil
}

func (h *TabsHandler) apiTab(c echo.Context) error {
	v, err := h.view(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

func (h *TabsHandler) htmlTab(c echo.Context) error {
	v, err := h.view(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := render.WriteTab(&buf, v); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *TabsHandler) rankingView(c echo.Context) render.RankingView {
	return h.Renderer.Ranking(ranking.Ranking(h.Articles.Snapshot(), RankingSize), localeOf(c))
}

func (h *TabsHandler) apiRanking(c echo.Context) error {
	return c.JSON(http.StatusOK, h.rankingView(c))
}

func (h *TabsHandler) htmlRanking(c echo.Context) error {
	var buf bytes.Buffer
	if err := render.WriteRanking(&buf, h.rankingView(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

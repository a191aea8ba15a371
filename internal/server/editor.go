package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/technote/internal/editor"
	"github.com/mohammad-safakhou/technote/internal/render"
)

type EditorHandler struct {
	Workspace *editor.Workspace
	Drafts    *editor.Drafts
	Publisher *editor.Publisher
	Now       func() time.Time
}

func (h *EditorHandler) Register(g *echo.Group) {
	g.GET("/draft", h.openDraft)
	g.PUT("/draft", h.saveDraft)
	g.DELETE("/draft", h.discardDraft)
	g.PUT("/form", h.updateForm)
	g.GET("/categories", h.categories)
	g.POST("/preview", h.preview)
	g.POST("/tools/:action", h.tool)
	g.POST("/publish", h.publish)
}

func (h *EditorHandler) openDraft(c echo.Context) error {
	offer, err := h.Drafts.Open(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, offer)
}

func (h *EditorHandler) saveDraft(c echo.Context) error {
	var f editor.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.Drafts.Save(c.Request().Context(), f, editor.TriggerManual)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *EditorHandler) discardDraft(c echo.Context) error {
	if err := h.Drafts.Discard(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// updateForm records the live form for the autosaver and returns the counters.
func (h *EditorHandler) updateForm(c echo.Context) error {
	var f editor.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if h.Workspace != nil {
		h.Workspace.Update(f)
	}
	return c.JSON(http.StatusOK, editor.Count(f))
}

type categoryOption struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

func (h *EditorHandler) categories(c echo.Context) error {
	out := make([]categoryOption, 0, len(editor.Categories))
	for _, slug := range editor.Categories {
		out = append(out, categoryOption{Value: slug, Name: editor.CategoryName(slug)})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EditorHandler) preview(c echo.Context) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	html, err := editor.Preview(req.Content)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"html":  html,
		"stats": editor.Count(editor.Form{Content: req.Content}),
	})
}

func (h *EditorHandler) tool(c echo.Context) error {
	var req struct {
		Selection string `json:"selection"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ins, err := editor.ApplyTool(editor.Tool(c.Param("action")), req.Selection)
	if errors.Is(err, editor.ErrUnknownTool) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ins)
}

func (h *EditorHandler) publish(c echo.Context) error {
	var f editor.Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, msgs, err := h.Publisher.Publish(c.Request().Context(), f, h.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(msgs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{"errors": msgs})
	}
	if h.Workspace != nil {
		h.Workspace.Reset()
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"article": a,
		"url":     render.ArticlePath(a.ID),
	})
}

package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/technote/internal/article"
	"github.com/mohammad-safakhou/technote/internal/engagement"
	"github.com/mohammad-safakhou/technote/internal/render"
)

type EngagementHandler struct {
	Articles Articles
	Renderer *render.Renderer
	Toggles  *engagement.Toggles
	Comments *engagement.Comments
}

func (h *EngagementHandler) Register(api *echo.Group) {
	api.POST("/articles/:id/like", h.toggleArticle(engagement.KindLike))
	api.POST("/articles/:id/bookmark", h.toggleArticle(engagement.KindBookmark))
	api.POST("/authors/:name/follow", h.follow)
	api.GET("/engagement/:kind", h.state)
	api.GET("/articles/:id/comments", h.listComments)
	api.POST("/articles/:id/comments", h.addComment)
	api.POST("/articles/:id/comments/:cid/like", h.likeComment)
	api.GET("/articles/:id/share", h.share)
}

// ToggleResponse reports the new state of a toggle.
type ToggleResponse struct {
	ID     string          `json:"id"`
	Kind   engagement.Kind `json:"kind"`
	Active bool            `json:"active"`
}

func (h *EngagementHandler) article(c echo.Context) (article.Article, error) {
	a, err := h.Articles.GetByID(c.Param("id"))
	if errors.Is(err, article.ErrArticleNotFound) {
		return article.Article{}, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return article.Article{}, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return a, nil
}

func (h *EngagementHandler) toggleArticle(kind engagement.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, err := h.article(c)
		if err != nil {
			return err
		}
		on, err := h.Toggles.Toggle(c.Request().Context(), kind, a.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, ToggleResponse{ID: a.ID, Kind: kind, Active: on})
	}
}

func (h *EngagementHandler) follow(c echo.Context) error {
	name := c.Param("name")
	on, err := h.Toggles.Toggle(c.Request().Context(), engagement.KindFollow, name)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ToggleResponse{ID: name, Kind: engagement.KindFollow, Active: on})
}

func (h *EngagementHandler) state(c echo.Context) error {
	kind, err := engagement.ParseKind(c.Param("kind"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	st, err := h.Toggles.State(c.Request().Context(), kind)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, st)
}

func (h *EngagementHandler) listComments(c echo.Context) error {
	a, err := h.article(c)
	if err != nil {
		return err
	}
	list, err := h.Comments.List(c.Request().Context(), a.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

func (h *EngagementHandler) addComment(c echo.Context) error {
	a, err := h.article(c)
	if err != nil {
		return err
	}
	var req struct {
		Author  string `json:"author"`
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cm, err := h.Comments.Add(c.Request().Context(), a.ID, req.Author, req.Content)
	switch {
	case errors.Is(err, engagement.ErrEmptyComment), errors.Is(err, engagement.ErrCommentTooLong):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, cm)
}

func (h *EngagementHandler) likeComment(c echo.Context) error {
	cm, err := h.Comments.Like(c.Request().Context(), c.Param("id"), c.Param("cid"))
	if errors.Is(err, engagement.ErrCommentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, cm)
}

func (h *EngagementHandler) share(c echo.Context) error {
	a, err := h.article(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engagement.ShareLink(a, h.Renderer.ArticleURL(a.ID)))
}

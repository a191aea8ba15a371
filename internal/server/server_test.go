package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/technote/internal/article"
	"github.com/mohammad-safakhou/technote/internal/editor"
	"github.com/mohammad-safakhou/technote/internal/engagement"
	"github.com/mohammad-safakhou/technote/internal/kv"
	"github.com/mohammad-safakhou/technote/internal/render"
	"github.com/mohammad-safakhou/technote/internal/search"
)

type articlesStub struct {
	list []article.Article
}

func (s *articlesStub) Snapshot() []article.Article { return s.list }

func (s *articlesStub) GetByID(id string) (article.Article, error) {
	return article.Find(s.list, id)
}

var fixedNow = time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

func fixtures() []article.Article {
	return []article.Article{
		{ID: "a1", Title: "Kubernetes in production", Summary: "ops", Content: "Rolling out clusters.", Category: "programming", Author: "Kenji", PublishDate: "2024-03-01T09:00:00", Views: 100, Likes: 10, Comments: 2},
		{ID: "auto_2", Title: "Quantum notes", Summary: "physics", Content: "Qubits.", Category: "ai", Author: "Bot", PublishDate: "2024-03-02T09:00:00", Views: 50, Likes: 1},
	}
}

func newTestEcho(t *testing.T) (*echo.Echo, kv.Store) {
	t.Helper()
	local := kv.NewMemory()
	list := fixtures()
	index := search.New()
	if err := index.Rebuild(list); err != nil {
		t.Fatalf("rebuild index: %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })
	drafts := editor.NewDrafts(local)
	e := NewEcho(Deps{
		Articles:   &articlesStub{list: list},
		Renderer:   render.New(render.Options{BaseURL: "https://technote.example", Now: func() time.Time { return fixedNow }}),
		Negotiator: render.NewNegotiator([]string{"ja", "en"}, "ja"),
		Search:     index,
		Workspace:  editor.NewWorkspace(),
		Drafts:     drafts,
		Publisher:  editor.NewPublisher(local, drafts),
		Toggles:    engagement.NewToggles(local),
		Comments:   engagement.NewComments(local),
		PageSize:   10,
		Now:        func() time.Time { return fixedNow },
	})
	return e, local
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestTabEndpointOrdersLatest(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := do(e, http.MethodGet, "/api/tabs/latest", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var v render.TabView
	decode(t, rec, &v)
	if len(v.Cards) != 2 || v.Cards[0].ID != "auto_2" || v.Cards[1].ID != "a1" {
		t.Fatalf("unexpected cards: %+v", v.Cards)
	}
	if v.Locale != render.LocaleJA {
		t.Fatalf("expected ja locale, got %q", v.Locale)
	}
}

func TestAIBadgeOnlyOnAIGeneratedTab(t *testing.T) {
	e, _ := newTestEcho(t)
	var latest render.TabView
	decode(t, do(e, http.MethodGet, "/api/tabs/latest", ""), &latest)
	for _, c := range latest.Cards {
		if c.AIBadge {
			t.Fatalf("latest card %s should not carry the AI badge", c.ID)
		}
	}

	var ai render.TabView
	decode(t, do(e, http.MethodGet, "/api/tabs/ai-generated", ""), &ai)
	if len(ai.Cards) != 1 || ai.Cards[0].ID != "auto_2" || !ai.Cards[0].AIBadge {
		t.Fatalf("unexpected ai-generated cards: %+v", ai.Cards)
	}
}

func TestTabEndpointLocaleOverride(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := do(e, http.MethodGet, "/api/tabs/trending?lang=en", "")
	var v render.TabView
	decode(t, rec, &v)
	if v.Locale != render.LocaleEN {
		t.Fatalf("expected en locale, got %q", v.Locale)
	}
}

func TestUnknownTabIs404(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := do(e, http.MethodGet, "/api/tabs/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["error"] == "" {
		t.Fatalf("expected error message, got %v", body)
	}
}

func TestTabPageRendersHTML(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := do(e, http.MethodGet, "/tabs/latest", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Kubernetes in production") {
		t.Fatalf("card title missing from page")
	}
}

func TestRankingEndpoint(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := do(e, http.MethodGet, "/api/ranking", "")
	var v render.RankingView
	decode(t, rec, &v)
	if len(v.Items) != 2 || v.Items[0].Rank != 1 || v.Items[0].ID != "auto_2" {
		t.Fatalf("unexpected ranking: %+v", v.Items)
	}
}

func TestArticleDetail(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := do(e, http.MethodGet, "/api/articles/a1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var v DetailResponse
	decode(t, rec, &v)
	if v.Title != "Kubernetes in production" || v.Liked {
		t.Fatalf("unexpected detail: %+v", v)
	}
	if !strings.Contains(v.ShareURL, "a1") {
		t.Fatalf("share url %q does not point at the article", v.ShareURL)
	}
}

func TestArticleDetailErrors(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := do(e, http.MethodGet, "/api/articles/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp ErrorResponse
	decode(t, rec, &resp)
	if resp.Panel.BackURL == "" || resp.Error == "" {
		t.Fatalf("expected error panel, got %+v", resp)
	}

	rec = do(e, http.MethodGet, "/article", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing id, got %d", rec.Code)
	}
	rec = do(e, http.MethodGet, "/article?id=missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 page, got %d", rec.Code)
	}
	rec = do(e, http.MethodGet, "/article?id=a1", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Rolling out clusters.") {
		t.Fatalf("detail page missing body: %d", rec.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := do(e, http.MethodGet, "/api/search?q=kubernetes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp SearchResponse
	decode(t, rec, &resp)
	if len(resp.Results) != 1 || resp.Results[0].ID != "a1" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}

func TestPublishValidationAndSuccess(t *testing.T) {
	e, local := newTestEcho(t)
	rec := do(e, http.MethodPost, "/api/editor/publish", `{"title":""}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var invalid map[string][]string
	decode(t, rec, &invalid)
	if len(invalid["errors"]) == 0 {
		t.Fatalf("expected validation messages")
	}

	form := editor.Form{
		Title:    "新しい記事",
		Category: "programming",
		Author:   "花子",
		Content:  strings.Repeat("本文です。", 25),
	}
	payload, _ := json.Marshal(form)
	rec = do(e, http.MethodPost, "/api/editor/publish", string(payload))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Article article.Article `json:"article"`
		URL     string          `json:"url"`
	}
	decode(t, rec, &created)
	if !strings.HasPrefix(created.Article.ID, article.PrefixUser) {
		t.Fatalf("expected user id, got %q", created.Article.ID)
	}
	if created.URL != render.ArticlePath(created.Article.ID) {
		t.Fatalf("unexpected url %q", created.URL)
	}
	var published []article.Article
	if ok, err := kv.GetJSON(context.Background(), local, kv.KeyPublishedArticles, &published); err != nil || !ok {
		t.Fatalf("published list not stored: ok=%v err=%v", ok, err)
	}
	if len(published) != 1 || published[0].ID != created.Article.ID {
		t.Fatalf("unexpected published list: %+v", published)
	}
}

func TestEditorToolUnknownAction(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := do(e, http.MethodPost, "/api/editor/tools/blink", `{"selection":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := do(e, http.MethodPut, "/api/editor/draft", `{"title":"下書き"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save draft: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(e, http.MethodGet, "/api/editor/draft", "")
	if !strings.Contains(rec.Body.String(), "下書き") {
		t.Fatalf("draft not offered: %s", rec.Body.String())
	}
	rec = do(e, http.MethodDelete, "/api/editor/draft", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("discard draft: %d", rec.Code)
	}
}

func TestLikeToggles(t *testing.T) {
	e, _ := newTestEcho(t)
	for i, want := range []bool{true, false} {
		rec := do(e, http.MethodPost, "/api/articles/a1/like", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle %d: status %d", i, rec.Code)
		}
		var resp ToggleResponse
		decode(t, rec, &resp)
		if resp.Active != want || resp.Kind != engagement.KindLike {
			t.Fatalf("toggle %d: got %+v", i, resp)
		}
	}
	rec := do(e, http.MethodPost, "/api/articles/missing/bookmark", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown article, got %d", rec.Code)
	}
	rec = do(e, http.MethodGet, "/api/engagement/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown kind, got %d", rec.Code)
	}
}

func TestComments(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := do(e, http.MethodPost, "/api/articles/a1/comments", `{"content":"   "}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty comment, got %d", rec.Code)
	}
	rec = do(e, http.MethodPost, "/api/articles/a1/comments", `{"content":"<b>良い</b>記事"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var c engagement.Comment
	decode(t, rec, &c)
	if c.Content != "良い記事" {
		t.Fatalf("comment not sanitized: %q", c.Content)
	}

	rec = do(e, http.MethodPost, "/api/articles/a1/comments/"+c.ID+"/like", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("like comment: %d", rec.Code)
	}
	rec = do(e, http.MethodPost, "/api/articles/a1/comments/nope/like", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown comment, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/api/articles/a1/comments", "")
	var list []engagement.Comment
	decode(t, rec, &list)
	if len(list) != 1 || !list[0].Liked {
		t.Fatalf("unexpected comments: %+v", list)
	}
}

func TestShareLink(t *testing.T) {
	e, _ := newTestEcho(t)
	rec := do(e, http.MethodGet, "/api/articles/a1/share", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var s engagement.Share
	decode(t, rec, &s)
	if !strings.HasPrefix(s.URL, "https://technote.example/article") {
		t.Fatalf("unexpected share url %q", s.URL)
	}
}

func TestMetricsRouting(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("technote_up 1\n"))
	})

	e, _ := newTestEcho(t)
	if rec := do(e, http.MethodGet, "/metrics", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("main listener without metrics: expected 404, got %d", rec.Code)
	}

	shared := NewEcho(Deps{Metrics: metrics})
	if rec := do(shared, http.MethodGet, "/metrics", ""); rec.Code != http.StatusOK {
		t.Fatalf("shared listener: expected 200, got %d", rec.Code)
	}

	dedicated := NewMetricsEcho(metrics)
	rec := do(dedicated, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "technote_up") {
		t.Fatalf("metrics listener: unexpected response %d %q", rec.Code, rec.Body.String())
	}
	if rec := do(dedicated, http.MethodGet, "/api/tabs/latest", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("metrics listener should not serve the api, got %d", rec.Code)
	}
}

func TestDebugFlag(t *testing.T) {
	if NewEcho(Deps{}).Debug {
		t.Fatal("debug should be off by default")
	}
	if !NewEcho(Deps{Debug: true}).Debug {
		t.Fatal("debug flag not applied")
	}
}

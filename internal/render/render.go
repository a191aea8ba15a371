// Package render turns articles and projections into typed view models and
// HTML fragments.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/mohammad-safakhou/technote/internal/article"
	"github.com/mohammad-safakhou/technote/internal/pagination"
	"github.com/mohammad-safakhou/technote/internal/ranking"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("render").ParseFS(templateFS, "templates/*.html"))

// ErrorKind selects the message shown in an error panel.
type ErrorKind string

const (
	ErrorMissingID  ErrorKind = "missing_id"
	ErrorNotFound   ErrorKind = "not_found"
	ErrorLoadFailed ErrorKind = "load_failed"
)

// Options configures a Renderer.
type Options struct {
	// Location is the display timezone for absolute dates.
	Location *time.Location
	// BaseURL prefixes share links.
	BaseURL string
	// ListURL is the target of the error panel's back link.
	ListURL string
	// Now is the clock used for relative times.
	Now func() time.Time
	// NextPublication reports the next scheduled auto-post after a time.
	// The latest tab shows it when set.
	NextPublication func(time.Time) time.Time
}

// Renderer builds view models and writes fragments.
type Renderer struct {
	loc     *time.Location
	baseURL string
	listURL string
	now     func() time.Time
	nextPub func(time.Time) time.Time
}

// New returns a Renderer with defaults applied to opts.
func New(opts Options) *Renderer {
	r := &Renderer{
		loc:     opts.Location,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		listURL: opts.ListURL,
		now:     opts.Now,
		nextPub: opts.NextPublication,
	}
	if r.loc == nil {
		r.loc = time.UTC
	}
	if r.listURL == "" {
		r.listURL = "/"
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// ArticlePath is the detail link for id.
func ArticlePath(id string) string {
	return "/article?id=" + url.QueryEscape(id)
}

// ArticleURL is the absolute detail link used for sharing.
func (r *Renderer) ArticleURL(id string) string {
	return r.baseURL + ArticlePath(id)
}

// Card builds the card view for one projected entry.
func (r *Renderer) Card(e ranking.Entry, locale Locale) CardView {
	a := e.Article
	published := a.PublishedAt()
	v := CardView{
		ID:           a.ID,
		URL:          ArticlePath(a.ID),
		Title:        a.Title,
		Summary:      a.Summary,
		Category:     a.Category,
		Tags:         a.Tags,
		Author:       a.Author,
		AuthorRole:   a.AuthorRole,
		AuthorAvatar: a.AuthorAvatar,
		TimeAgo:      RelativeTime(published, r.now(), locale, r.loc),
		Likes:        FormatCount(a.Likes),
		Comments:     FormatCount(a.Comments),
		Views:        ViewCount(a.Views),
		Score:        e.Score,
		Featured:     a.Featured,
		AIBadge:      e.AIBadge,
		TrendingMark: MessagesFor(locale).TrendingMark,
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if !published.IsZero() {
		v.PublishedAt = published.Format(time.RFC3339)
	}
	return v
}

// Tab builds one page of a projection. page is clamped.
func (r *Renderer) Tab(p ranking.Projection, page, pageSize int, locale Locale) TabView {
	m := MessagesFor(locale)
	v := TabView{Tab: p.Tab, Locale: locale, Cards: []CardView{}}
	if p.Empty != nil {
		text := m.EmptyFor(p.Empty.Tab, p.Empty.Reason)
		v.Empty = &EmptyView{Icon: p.Empty.Icon, Title: text.Title, Message: text.Message}
		return v
	}
	pg := pagination.Paginate(len(p.Entries), pageSize, page)
	for _, e := range pagination.Slice(p.Entries, pg) {
		v.Cards = append(v.Cards, r.Card(e, locale))
	}
	v.Pagination = r.Pagination(pg, locale)
	if p.Tab == ranking.TabLatest {
		v.Info = append(v.Info, fmt.Sprintf(m.LatestInfo, len(p.Entries)))
		if r.nextPub != nil {
			if next := r.nextPub(r.now()); !next.IsZero() {
				v.Info = append(v.Info, fmt.Sprintf(m.NextPostAt, AbsoluteTime(next, locale, r.loc)))
			}
		}
	}
	return v
}

// Pagination builds the control bar for pg, or nil when one page suffices.
func (r *Renderer) Pagination(pg pagination.Page, locale Locale) *PaginationView {
	controls := pagination.Controls(pg)
	if len(controls) == 0 {
		return nil
	}
	m := MessagesFor(locale)
	v := &PaginationView{Page: pg, Range: m.RangeText(pg.Total, pg.Start, pg.End)}
	for _, c := range controls {
		cv := ControlView{Kind: string(c.Kind), Page: c.Page, Active: c.Active}
		switch c.Kind {
		case pagination.ControlPrev:
			cv.Label = m.Prev
		case pagination.ControlNext:
			cv.Label = m.Next
		default:
			cv.Label = fmt.Sprint(c.Page)
		}
		v.Controls = append(v.Controls, cv)
	}
	return v
}

// Detail builds the article page, rendering the markdown body.
func (r *Renderer) Detail(a article.Article, locale Locale) (DetailView, error) {
	body, err := Markdown(a.Content)
	if err != nil {
		return DetailView{}, err
	}
	m := MessagesFor(locale)
	card := r.Card(ranking.Entry{Article: a, AIBadge: a.IsAIGenerated()}, locale)
	card.Views = FormatCount(a.Views)
	return DetailView{
		CardView:    card,
		Date:        LongDate(a.PublishedAt(), locale, r.loc),
		Body:        body,
		ReadingTime: fmt.Sprintf(m.ReadingTime, max(article.ReadingMinutes(a.Content), 1)),
		LikeLabel:   m.Like,
		ShareLabel:  m.Share,
		ShareURL:    r.ArticleURL(a.ID),
	}, nil
}

// Error builds the error panel for kind.
func (r *Renderer) Error(kind ErrorKind, locale Locale) ErrorView {
	m := MessagesFor(locale)
	msg := m.LoadFailed
	switch kind {
	case ErrorMissingID:
		msg = m.MissingID
	case ErrorNotFound:
		msg = m.NotFound
	}
	return ErrorView{Title: m.ErrorTitle, Message: msg, BackLabel: m.BackToList, BackURL: r.listURL}
}

// Ranking builds the sidebar list.
func (r *Renderer) Ranking(items []ranking.RankItem, locale Locale) RankingView {
	m := MessagesFor(locale)
	v := RankingView{Items: make([]RankingItemView, 0, len(items))}
	for _, it := range items {
		v.Items = append(v.Items, RankingItemView{
			Rank:  it.Rank,
			ID:    it.Article.ID,
			URL:   ArticlePath(it.Article.ID),
			Title: it.Article.Title,
			Label: m.RankingLabel,
		})
	}
	if len(v.Items) == 0 {
		v.Empty = m.NoRanking
	}
	return v
}

// WriteCard writes a card fragment.
func WriteCard(w io.Writer, v CardView) error { return execute(w, "card", v) }

// WriteTab writes a tab page fragment.
func WriteTab(w io.Writer, v TabView) error { return execute(w, "tab", v) }

// WriteDetail writes the article page fragment.
func WriteDetail(w io.Writer, v DetailView) error { return execute(w, "detail", v) }

// WriteError writes the error panel fragment.
func WriteError(w io.Writer, v ErrorView) error { return execute(w, "error", v) }

// WriteRanking writes the sidebar ranking fragment.
func WriteRanking(w io.Writer, v RankingView) error { return execute(w, "ranking", v) }

func execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

package editor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mohammad-safakhou/technote/internal/article"
	"github.com/mohammad-safakhou/technote/internal/kv"
	"github.com/mohammad-safakhou/technote/internal/telemetry"
)

// ContributorRole is the author role given to reader-submitted articles.
const ContributorRole = "寄稿者"

// Publisher writes validated forms to the local store as user articles.
type Publisher struct {
	Store  kv.Store
	Drafts *Drafts
	// Snapshot, when set, seeds user_articles with the current listing
	// before the new article is prepended.
	Snapshot func() []article.Article

	logger *log.Logger
}

// NewPublisher returns a publisher that also clears drafts on success.
func NewPublisher(s kv.Store, drafts *Drafts) *Publisher {
	return &Publisher{
		Store:  s,
		Drafts: drafts,
		logger: log.New(log.Writer(), "[PUBLISH] ", log.LstdFlags),
	}
}

// Build turns a valid form into an article published at now.
func Build(f Form, now time.Time) article.Article {
	f = f.Trimmed()
	summary := f.Summary
	if summary == "" {
		summary = fmt.Sprintf("%sについて、詳しく解説します。", f.Title)
	}
	return article.Article{
		ID:            fmt.Sprintf("%s%d", article.PrefixUser, now.UnixMilli()),
		Title:         f.Title,
		Summary:       summary,
		Content:       f.Content,
		Category:      CategoryName(f.Category),
		Tags:          NormalizeTags(f.Tags),
		Author:        f.Author,
		AuthorRole:    ContributorRole,
		AuthorAvatar:  Initials(f.Author),
		PublishDate:   article.FormatPublishDate(now),
		UserGenerated: true,
	}
}

// Publish validates f and, when valid, prepends the new article to the
// user_articles and published_articles lists in one write and discards the
// draft.
// Validation failures come back as messages with a nil error and nothing
// is written.
func (p *Publisher) Publish(ctx context.Context, f Form, now time.Time) (article.Article, []string, error) {
	if errs := Validate(f); len(errs) > 0 {
		return article.Article{}, errs, nil
	}
	a := Build(f, now)

	var published []article.Article
	if _, err := kv.GetJSON(ctx, p.Store, kv.KeyPublishedArticles, &published); err != nil {
		return article.Article{}, nil, err
	}
	for {
		if _, err := article.Find(published, a.ID); err != nil {
			break
		}
		now = now.Add(time.Millisecond)
		a.ID = fmt.Sprintf("%s%d", article.PrefixUser, now.UnixMilli())
	}

	var base []article.Article
	if p.Snapshot != nil {
		base = p.Snapshot()
	} else if _, err := kv.GetJSON(ctx, p.Store, kv.KeyUserArticles, &base); err != nil {
		return article.Article{}, nil, err
	}
	user := append([]article.Article{a}, base...)
	published = append([]article.Article{a}, published...)
	if err := kv.SetJSONMany(ctx, p.Store, map[string]interface{}{
		kv.KeyUserArticles:      user,
		kv.KeyPublishedArticles: published,
	}); err != nil {
		return article.Article{}, nil, err
	}

	if p.Drafts != nil {
		if err := p.Drafts.Discard(ctx); err != nil {
			p.logf("discard draft after publish: %v", err)
		}
	}
	telemetry.RecordPublished(ctx, a.Category)
	p.logf("published %s %q", a.ID, a.Title)
	return a, nil, nil
}

func (p *Publisher) logf(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

// Package search keeps a full-text index over the current article snapshot.
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/blevesearch/bleve"

	"github.com/mohammad-safakhou/technote/internal/article"
)

// DefaultLimit caps results when the caller passes no limit.
const DefaultLimit = 20

// ErrNotReady is returned before the first snapshot has been indexed.
var ErrNotReady = errors.New("search index not built")

type document struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Tags     string `json:"tags"`
	Author   string `json:"author"`
}

// Hit is one matching article.
type Hit struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

// Index is an in-memory bleve index rebuilt wholesale on every snapshot.
type Index struct {
	mu     sync.RWMutex
	idx    bleve.Index
	titles map[string]string
	logger *log.Logger
}

// New returns an empty, unbuilt index.
func New() *Index {
	return &Index{logger: log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)}
}

// Rebuild replaces the index with one built from articles.
func (x *Index) Rebuild(articles []article.Article) error {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	titles := make(map[string]string, len(articles))
	batch := idx.NewBatch()
	for _, a := range articles {
		titles[a.ID] = a.Title
		doc := document{
			Title:    a.Title,
			Summary:  a.Summary,
			Content:  a.Content,
			Category: a.Category,
			Tags:     strings.Join(a.Tags, " "),
			Author:   a.Author,
		}
		if err := batch.Index(a.ID, doc); err != nil {
			_ = idx.Close()
			return fmt.Errorf("index %s: %w", a.ID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return fmt.Errorf("apply batch: %w", err)
	}

	x.mu.Lock()
	old := x.idx
	x.idx = idx
	x.titles = titles
	x.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// OnSnapshot is a store listener that rebuilds the index.
func (x *Index) OnSnapshot(_ context.Context, articles []article.Article) {
	if err := x.Rebuild(articles); err != nil {
		x.logger.Printf("rebuild failed: %v", err)
		return
	}
	x.logger.Printf("indexed %d articles", len(articles))
}

// Search returns up to limit articles matching q by relevance. A blank query
// matches nothing.
func (x *Index) Search(q string, limit int) ([]Hit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []Hit{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.idx == nil {
		return nil, ErrNotReady
	}
	query := bleve.NewMatchQuery(q)
	req := bleve.NewSearchRequestOptions(query, limit, 0, false)
	res, err := x.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}
	out := make([]Hit, 0, len(res.Hits))
	for i, h := range res.Hits {
		out = append(out, Hit{ID: h.ID, Title: x.titles[h.ID], Score: h.Score, Rank: i + 1})
	}
	return out, nil
}

// Close releases the current index.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.idx == nil {
		return nil
	}
	err := x.idx.Close()
	x.idx = nil
	return err
}

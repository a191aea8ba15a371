package store

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/mohammad-safakhou/technote/config"
	"github.com/mohammad-safakhou/technote/internal/article"
	"github.com/mohammad-safakhou/technote/internal/kv"
	"github.com/mohammad-safakhou/technote/internal/telemetry"
)

// Outcome of a load cycle.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
)

// Listener is notified with every new snapshot.
type Listener func(ctx context.Context, snapshot []article.Article)

// Options configures a Store.
type Options struct {
	// Fallback is config.FallbackEmpty or config.FallbackDemo.
	Fallback string
	// IncludeLocal unions user articles persisted under kv.KeyPublishedArticles.
	IncludeLocal bool
	// Local is required when IncludeLocal is set.
	Local  kv.Store
	Logger *log.Logger
}

// Store holds the current article snapshot. Each Load replaces it whole.
type Store struct {
	source Source
	opts   Options
	logger *log.Logger

	mu        sync.RWMutex
	snapshot  []article.Article
	byID      map[string]int
	listeners []Listener
}

// New builds a Store around source.
func New(source Source, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "[STORE] ", log.LstdFlags)
	}
	if opts.Fallback == "" {
		opts.Fallback = config.FallbackEmpty
	}
	return &Store{source: source, opts: opts, logger: logger, byID: map[string]int{}}
}

// SourceFromConfig picks the HTTP source when a URL is configured, else the file.
func SourceFromConfig(cfg config.ArticlesConfig) Source {
	if cfg.SourceURL != "" {
		return NewHTTPSource(cfg.SourceURL, cfg.FetchTimeout)
	}
	return FileSource{Path: cfg.SourcePath}
}

// Subscribe registers fn to run after every Load.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Load fetches and decodes the document, substituting the fallback set on any
// failure. It only returns an error when even the fallback cannot be built.
func (s *Store) Load(ctx context.Context) ([]article.Article, error) {
	list, outcome := s.fetch(ctx)
	if outcome == OutcomeFallback {
		fb, err := s.fallback()
		if err != nil {
			return nil, err
		}
		list = fb
	}
	if s.opts.IncludeLocal && s.opts.Local != nil {
		list = s.unionLocal(ctx, list)
	}

	s.mu.Lock()
	s.snapshot = list
	s.byID = make(map[string]int, len(list))
	for i, a := range list {
		s.byID[a.ID] = i
	}
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	telemetry.RecordRefresh(ctx, outcome, len(list))
	for _, fn := range listeners {
		fn(ctx, list)
	}
	return list, nil
}

func (s *Store) fetch(ctx context.Context) ([]article.Article, string) {
	if s.source == nil {
		s.logger.Printf("no article source configured, using %s fallback", s.opts.Fallback)
		return nil, OutcomeFallback
	}
	raw, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Printf("article load failed, using %s fallback: %v", s.opts.Fallback, err)
		return nil, OutcomeFallback
	}
	list, err := article.DecodeList(raw)
	if err != nil {
		s.logger.Printf("article document rejected, using %s fallback: %v", s.opts.Fallback, err)
		return nil, OutcomeFallback
	}
	return list, OutcomeOK
}

func (s *Store) fallback() ([]article.Article, error) {
	if s.opts.Fallback == config.FallbackDemo {
		list, err := article.DemoArticles()
		if err != nil {
			return nil, fmt.Errorf("demo fallback: %w", err)
		}
		return list, nil
	}
	return []article.Article{}, nil
}

// unionLocal adds locally published articles whose ids are not already remote,
// then re-sorts newest first.
func (s *Store) unionLocal(ctx context.Context, remote []article.Article) []article.Article {
	var local []article.Article
	found, err := kv.GetJSON(ctx, s.opts.Local, kv.KeyPublishedArticles, &local)
	if err != nil {
		s.logger.Printf("local articles unavailable: %v", err)
		return remote
	}
	if !found || len(local) == 0 {
		return remote
	}
	seen := make(map[string]struct{}, len(remote))
	for _, a := range remote {
		seen[a.ID] = struct{}{}
	}
	merged := make([]article.Article, 0, len(remote)+len(local))
	merged = append(merged, remote...)
	for _, a := range article.Dedupe(local) {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		merged = append(merged, a)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return article.NewerFirst(merged[i].PublishedAt(), merged[j].PublishedAt())
	})
	return merged
}

// Snapshot returns the current snapshot. Callers must not modify the records.
func (s *Store) Snapshot() []article.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// GetByID looks an article up in the current snapshot.
func (s *Store) GetByID(id string) (article.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return article.Article{}, article.ErrArticleNotFound
	}
	return s.snapshot[i], nil
}

package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Well-known keys shared with the site pages.
const (
	KeyLikedArticles      = "likedArticles"
	KeyBookmarkedArticles = "bookmarkedArticles"
	KeyFollowedAuthors    = "followedAuthors"
	KeyArticleComments    = "articleComments"
	KeyPublishedArticles  = "published_articles"
	KeyUserArticles       = "user_articles"
	KeyArticleDraft       = "article-draft"
)

// Store is a flat string key/value store. Values are JSON-encoded by callers.
// Writes are last-write-wins. SetMany applies every entry or none.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, entries []Entry) error
	Delete(ctx context.Context, key string) error
}

// Entry is one key/value pair of a SetMany write.
type Entry struct {
	Key   string
	Value string
}

var logger = log.New(log.Writer(), "[KV] ", log.LstdFlags)

// GetJSON decodes the value under key into dst. A malformed value is logged,
// the key is reset, and the call reports found=false without an error.
func GetJSON(ctx context.Context, s Store, key string, dst interface{}) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Printf("malformed value under %q, resetting: %v", key, err)
		if derr := s.Delete(ctx, key); derr != nil {
			return false, fmt.Errorf("reset %s: %w", key, derr)
		}
		return false, nil
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// SetJSONMany encodes every value in values before writing, then stores
// them all with one SetMany. Nothing is written if any value fails to encode.
func SetJSONMany(ctx context.Context, s Store, values map[string]interface{}) error {
	entries := make([]Entry, 0, len(values))
	for key, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Value: string(b)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	if err := s.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("set %d keys: %w", len(entries), err)
	}
	return nil
}

// Memory is an in-process Store.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) SetMany(_ context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		m.data[e.Key] = e.Value
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

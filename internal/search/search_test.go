package search

import (
	"context"
	"errors"
	"testing"

	"github.com/mohammad-safakhou/technote/internal/article"
)

func fixtures() []article.Article {
	return []article.Article{
		{ID: "auto_1", Title: "Kubernetes operators in practice", Summary: "Reconcile loops", Tags: []string{"kubernetes", "go"}},
		{ID: "auto_2", Title: "Rust ownership", Summary: "Borrow checker basics", Tags: []string{"rust"}},
		{ID: "user_3", Title: "Writing Go services", Summary: "HTTP servers with echo", Author: "kenji", Tags: []string{"go"}},
	}
}

func TestSearchBeforeBuild(t *testing.T) {
	if _, err := New().Search("go", 5); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestSearchMatchesFields(t *testing.T) {
	x := New()
	defer x.Close()
	if err := x.Rebuild(fixtures()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	hits, err := x.Search("kubernetes", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "auto_1" || hits[0].Rank != 1 {
		t.Fatalf("hits = %+v", hits)
	}

	hits, err = x.Search("kenji", 10)
	if err != nil || len(hits) != 1 || hits[0].ID != "user_3" || hits[0].Title != "Writing Go services" {
		t.Fatalf("author search = %+v %v", hits, err)
	}

	hits, err = x.Search("borrow", 10)
	if err != nil || len(hits) != 1 || hits[0].ID != "auto_2" {
		t.Fatalf("summary search = %+v %v", hits, err)
	}

	if hits, _ := x.Search("   ", 10); len(hits) != 0 {
		t.Fatalf("blank query should match nothing, got %+v", hits)
	}
}

func TestRebuildReplacesSnapshot(t *testing.T) {
	x := New()
	defer x.Close()
	x.OnSnapshot(context.Background(), fixtures())
	x.OnSnapshot(context.Background(), []article.Article{{ID: "demo_1", Title: "Quantum computing"}})

	hits, err := x.Search("kubernetes", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("old snapshot still indexed: %+v", hits)
	}
	if hits, _ := x.Search("quantum", 10); len(hits) != 1 {
		t.Fatalf("new snapshot not indexed: %+v", hits)
	}
}

package article

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestProvenanceOf(t *testing.T) {
	cases := map[string]Provenance{
		"auto_42":  ProvenanceAuto,
		"demo_001": ProvenanceDemo,
		"user_42":  ProvenanceUser,
		"42":       ProvenanceUnknown,
		"AUTO_1":   ProvenanceUnknown,
	}
	for id, want := range cases {
		if got := ProvenanceOf(id); got != want {
			t.Fatalf("ProvenanceOf(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestParsePublishDate(t *testing.T) {
	naive := ParsePublishDate("2024-01-15 09:00")
	if !naive.Equal(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("naive date should be read as UTC, got %v", naive)
	}
	withOffset := ParsePublishDate("2024-01-15T09:00:00+09:00")
	if !withOffset.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("offset must be honored, got %v", withOffset.UTC())
	}
	if d := ParsePublishDate("2024-01-15"); d.Hour() != 0 || d.Day() != 15 {
		t.Fatalf("date-only layout not parsed: %v", d)
	}
	if !ParsePublishDate("yesterday").IsZero() {
		t.Fatal("garbage should parse to zero time")
	}
	if !ParsePublishDate("").IsZero() {
		t.Fatal("empty should parse to zero time")
	}
}

func TestNewerFirstSortsZeroLast(t *testing.T) {
	now := time.Now()
	if !NewerFirst(now, now.Add(-time.Hour)) {
		t.Fatal("later date should come first")
	}
	if !NewerFirst(now.Add(-time.Hour), time.Time{}) {
		t.Fatal("zero date should come last")
	}
	if NewerFirst(time.Time{}, now) {
		t.Fatal("zero date should not precede a real date")
	}
}

func TestDecodeListDefaultsAndDedupe(t *testing.T) {
	doc := []byte(`[
		{"id":"auto_1","title":"A","views":null,"likes":-3},
		{"id":"auto_1","title":"duplicate"},
		{"id":"user_2","title":"B","tags":["x","y"],"comments":4}
	]`)
	list, err := DecodeList(doc)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 articles after dedupe, got %d", len(list))
	}
	if list[0].Title != "A" || list[0].Views != 0 || list[0].Likes != 0 {
		t.Fatalf("unexpected first article: %+v", list[0])
	}
	if list[0].Tags == nil {
		t.Fatal("tags should default to an empty slice")
	}
	if list[1].Comments != 4 || len(list[1].Tags) != 2 {
		t.Fatalf("unexpected second article: %+v", list[1])
	}
}

func TestClampCount(t *testing.T) {
	cases := map[int]int{-5: 0, 0: 0, 42: 42, MaxCount: MaxCount, MaxCount + 1: MaxCount}
	for in, want := range cases {
		if got := ClampCount(in); got != want {
			t.Fatalf("ClampCount(%d) = %d, want %d", in, got, want)
		}
	}
	list := Dedupe([]Article{{ID: "auto_1", Views: MaxCount + 10, Likes: -1}})
	if list[0].Views != MaxCount || list[0].Likes != 0 {
		t.Fatalf("counters not clamped: %+v", list[0])
	}
}

func TestDecodeListRejectsHugeCounter(t *testing.T) {
	if _, err := DecodeList([]byte(`[{"id":"auto_1","views":9007199254740992}]`)); err == nil {
		t.Fatal("expected a counter above the maximum to be rejected")
	}
}

func TestDecodeListRejectsMalformed(t *testing.T) {
	for name, doc := range map[string]string{
		"not json":     `{"id":`,
		"object":       `{"id":"a"}`,
		"missing id":   `[{"title":"x"}]`,
		"wrong type":   `[{"id":"a","title":"x","views":"many"}]`,
		"empty":        ``,
		"empty string": `[{"id":"","title":"x"}]`,
	} {
		if _, err := DecodeList([]byte(doc)); !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("%s: expected ErrInvalidDocument, got %v", name, err)
		}
	}
}

func TestDemoArticles(t *testing.T) {
	list, err := DemoArticles()
	if err != nil {
		t.Fatalf("DemoArticles: %v", err)
	}
	if len(list) == 0 {
		t.Fatal("expected a non-empty demo set")
	}
	for _, a := range list {
		if ProvenanceOf(a.ID) != ProvenanceDemo {
			t.Fatalf("demo article %q lacks demo prefix", a.ID)
		}
		if a.PublishedAt().IsZero() {
			t.Fatalf("demo article %q has unparseable date", a.ID)
		}
	}
	list[0].Title = "mutated"
	again, _ := DemoArticles()
	if again[0].Title == "mutated" {
		t.Fatal("DemoArticles must return a fresh copy")
	}
}

func TestFind(t *testing.T) {
	list := []Article{{ID: "a"}, {ID: "b", Title: "B"}}
	got, err := Find(list, "b")
	if err != nil || got.Title != "B" {
		t.Fatalf("Find(b) = %+v, %v", got, err)
	}
	if _, err := Find(list, "zzz"); !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestReadingMinutes(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 400: 1, 401: 2, 1200: 3}
	for n, want := range cases {
		text := strings.Repeat("あ", n)
		if got := ReadingMinutes(text); got != want {
			t.Fatalf("ReadingMinutes(%d runes) = %d, want %d", n, got, want)
		}
	}
}

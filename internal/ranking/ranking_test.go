package ranking

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/mohammad-safakhou/technote/internal/article"
)

func TestScores(t *testing.T) {
	a := article.Article{Views: 100, Likes: 10, Comments: 2}
	if got := TrendingScore(a); got != 140 {
		t.Fatalf("trending score = %d, want 140", got)
	}
	if got := PopularScore(a); got != 126 {
		t.Fatalf("popular score = %d, want 126", got)
	}
}

func TestScoresSaturateHugeCounters(t *testing.T) {
	huge := article.Article{ID: "auto_huge", Views: math.MaxInt64 - 1, Likes: math.MaxInt64, Comments: math.MaxInt64}
	if got := TrendingScore(huge); got <= 0 {
		t.Fatalf("trending score overflowed: %d", got)
	}
	if got := PopularScore(huge); got <= 0 {
		t.Fatalf("popular score overflowed: %d", got)
	}
	in := append(zeroArticles(5), huge)
	for _, tab := range []Tab{TabPopular, TabTrending} {
		p := Project(in, tab)
		if len(p.Entries) != 1 || p.Entries[0].Article.ID != "auto_huge" {
			t.Fatalf("%s: expected only the huge article, got %v", tab, ids(p))
		}
	}
}

func ids(p Projection) []string {
	out := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		out = append(out, e.Article.ID)
	}
	return out
}

func TestLatestSortsNewestFirst(t *testing.T) {
	in := []article.Article{
		{ID: "a", PublishDate: "2024-01-01 10:00"},
		{ID: "b", PublishDate: "2024-01-03 10:00"},
		{ID: "c", PublishDate: "garbage"},
		{ID: "d", PublishDate: "2024-01-02T10:00:00+09:00"},
	}
	p := Project(in, TabLatest)
	if got, want := ids(p), []string{"b", "d", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("latest order = %v, want %v", got, want)
	}
	if p.Empty != nil {
		t.Fatal("non-empty projection must not carry an empty state")
	}
	if in[0].ID != "a" {
		t.Fatal("input slice must not be reordered")
	}
}

func TestLatestIsNonIncreasing(t *testing.T) {
	var in []article.Article
	for i := 0; i < 40; i++ {
		in = append(in, article.Article{
			ID:          fmt.Sprintf("auto_%d", i),
			PublishDate: fmt.Sprintf("2024-02-%02d %02d:00", (i*7)%28+1, (i*5)%24),
		})
	}
	p := Project(in, TabLatest)
	for i := 1; i < len(p.Entries); i++ {
		prev := p.Entries[i-1].Article.PublishedAt()
		cur := p.Entries[i].Article.PublishedAt()
		if cur.After(prev) {
			t.Fatalf("entry %d (%v) is newer than entry %d (%v)", i, cur, i-1, prev)
		}
	}
}

func TestTrendingOrderAndTieBreak(t *testing.T) {
	in := []article.Article{
		{ID: "old-tie", Views: 10, PublishDate: "2024-01-01 00:00"},
		{ID: "top", Views: 1, Likes: 2, Comments: 3},
		{ID: "new-tie", Views: 10, PublishDate: "2024-01-05 00:00"},
		{ID: "zero-1"}, {ID: "zero-2"}, {ID: "zero-3"},
	}
	p := Project(in, TabTrending)
	if got, want := ids(p), []string{"top", "new-tie", "old-tie"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("trending order = %v, want %v", got, want)
	}
	if p.Entries[0].Score != 22 {
		t.Fatalf("expected trending score 22, got %d", p.Entries[0].Score)
	}
}

func TestPopularUsesPopularWeights(t *testing.T) {
	in := []article.Article{
		{ID: "likes", Likes: 10},      // trending 30, popular 20
		{ID: "views", Views: 25},      // 25 for both
		{ID: "comments", Comments: 5}, // trending 25, popular 15
	}
	if got, want := ids(Project(in, TabPopular)), []string{"views", "likes", "comments"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("popular order = %v, want %v", got, want)
	}
	if got := ids(Project(in, TabTrending))[0]; got != "likes" {
		t.Fatalf("trending leader = %s, want likes", got)
	}
}

func zeroArticles(n int) []article.Article {
	out := make([]article.Article, n)
	for i := range out {
		out[i] = article.Article{ID: fmt.Sprintf("auto_%d", i)}
	}
	return out
}

func TestZeroScoreExclusionBoundary(t *testing.T) {
	for _, tab := range []Tab{TabPopular, TabTrending} {
		six := Project(zeroArticles(6), tab)
		if len(six.Entries) != 0 || six.Empty == nil {
			t.Fatalf("%s: 6 zero-score articles should yield an empty state, got %v", tab, ids(six))
		}
		if six.Empty.Reason != EmptyNothingYet {
			t.Fatalf("%s: expected nothing-yet reason, got %s", tab, six.Empty.Reason)
		}
		five := Project(zeroArticles(5), tab)
		if len(five.Entries) != 5 {
			t.Fatalf("%s: 5 zero-score articles should all be shown, got %d", tab, len(five.Entries))
		}
		four := Project(zeroArticles(4), tab)
		if len(four.Entries) != 4 || four.Empty != nil {
			t.Fatalf("%s: 4 zero-score articles should all be shown", tab)
		}
	}
}

func TestAIGeneratedFilter(t *testing.T) {
	in := []article.Article{{ID: "auto_42"}, {ID: "user_42"}, {ID: "demo_1"}}
	p := Project(in, TabAIGenerated)
	if got, want := ids(p), []string{"auto_42"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ai projection = %v, want %v", got, want)
	}
	if !p.Entries[0].AIBadge {
		t.Fatal("ai entries must carry the badge")
	}
	if Project(in, TabLatest).Entries[0].AIBadge {
		t.Fatal("latest entries must not carry the badge")
	}
}

func TestUnknownTabIsEmpty(t *testing.T) {
	p := Project([]article.Article{{ID: "auto_1"}}, Tab("bogus"))
	if len(p.Entries) != 0 {
		t.Fatalf("unknown tab should be empty, got %v", ids(p))
	}
	if _, err := ParseTab("bogus"); err == nil {
		t.Fatal("ParseTab should reject unknown tabs")
	}
	if tab, err := ParseTab("ai-generated"); err != nil || tab != TabAIGenerated {
		t.Fatalf("ParseTab(ai-generated) = %v, %v", tab, err)
	}
}

func TestEmptyInputYieldsNoArticlesState(t *testing.T) {
	for _, tab := range Tabs {
		p := Project(nil, tab)
		if p.Empty == nil || p.Empty.Reason != EmptyNoArticles {
			t.Fatalf("%s: expected no-articles empty state, got %+v", tab, p.Empty)
		}
		if p.Empty.Icon == "" {
			t.Fatalf("%s: empty state needs an icon", tab)
		}
	}
}

func TestProjectionDoesNotMutateInput(t *testing.T) {
	in := []article.Article{{ID: "a", Views: 3}, {ID: "b", Views: 9}}
	before := append([]article.Article(nil), in...)
	Project(in, TabTrending)
	Project(in, TabPopular)
	if !reflect.DeepEqual(in, before) {
		t.Fatal("projection mutated its input")
	}
}

func TestRanking(t *testing.T) {
	in := []article.Article{
		{ID: "a", PublishDate: "2024-01-01 00:00"},
		{ID: "b", PublishDate: "2024-01-02 00:00"},
		{ID: "c", PublishDate: "2024-01-03 00:00"},
	}
	got := Ranking(in, 2)
	if len(got) != 2 || got[0].Rank != 1 || got[0].Article.ID != "c" || got[1].Article.ID != "b" {
		t.Fatalf("unexpected ranking: %+v", got)
	}
	if len(Ranking(in, 0)) != 3 {
		t.Fatal("n <= 0 should return all")
	}
}

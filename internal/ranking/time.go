package ranking

import (
	"time"

	"github.com/mohammad-safakhou/technote/internal/article"
)

// publishTimes parses every publish date once, keyed by id, so comparators do
// not reparse on each call.
func publishTimes(entries []Entry) map[string]time.Time {
	out := make(map[string]time.Time, len(entries))
	for _, e := range entries {
		out[e.Article.ID] = e.Article.PublishedAt()
	}
	return out
}

func newer(dates map[string]time.Time, entries []Entry, i, j int) bool {
	return article.NewerFirst(dates[entries[i].Article.ID], dates[entries[j].Article.ID])
}

// RankItem is one row of the sidebar ranking list.
type RankItem struct {
	Rank    int
	Article article.Article
}

// Ranking returns up to n entries of the latest order with 1-based ranks.
// n <= 0 means all.
func Ranking(articles []article.Article, n int) []RankItem {
	entries := latest(articles)
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	out := make([]RankItem, 0, len(entries))
	for i, e := range entries {
		out = append(out, RankItem{Rank: i + 1, Article: e.Article})
	}
	return out
}

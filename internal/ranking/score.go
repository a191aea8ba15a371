package ranking

import "github.com/mohammad-safakhou/technote/internal/article"

// TrendingScore weights interaction heavier than PopularScore. Counters are
// clamped to article.MaxCount first.
func TrendingScore(a article.Article) int {
	return article.ClampCount(a.Views) + article.ClampCount(a.Likes)*3 + article.ClampCount(a.Comments)*5
}

// PopularScore is the engagement key for the popular tab.
func PopularScore(a article.Article) int {
	return article.ClampCount(a.Views) + article.ClampCount(a.Likes)*2 + article.ClampCount(a.Comments)*3
}

// Scorer maps an article to its ordering key.
type Scorer func(article.Article) int

// SmallListThreshold is the list size at or below which zero-score articles
// stay in score-ordered tabs.
const SmallListThreshold = 5

package render

import (
	"fmt"
	"time"

	"github.com/mohammad-safakhou/technote/internal/ranking"
)

// EmptyText is the heading and body of an empty-state panel.
type EmptyText struct {
	Title   string
	Message string
}

// Messages is the string catalogue for one locale.
type Messages struct {
	JustNow    string
	MinutesAgo string
	HoursAgo   string
	DaysAgo    string
	DateLayout func(time.Time) string
	LongDate   func(time.Time) string

	Empty map[ranking.Tab]map[ranking.EmptyReason]EmptyText

	ErrorTitle   string
	BackToList   string
	MissingID    string
	NotFound     string
	LoadFailed   string
	Prev         string
	Next         string
	Range        string
	LatestInfo   string
	NextPostAt   string
	RankingLabel string
	NoRanking    string
	TrendingMark string
	Like         string
	Share        string
	ReadingTime  string
}

var catalogues = map[Locale]Messages{
	LocaleJA: {
		JustNow:    "今",
		MinutesAgo: "%d分前",
		HoursAgo:   "%d時間前",
		DaysAgo:    "%d日前",
		DateLayout: func(t time.Time) string { return t.Format("2006/1/2") },
		LongDate:   func(t time.Time) string { return t.Format("2006年1月2日") },
		Empty: map[ranking.Tab]map[ranking.EmptyReason]EmptyText{
			ranking.TabLatest: {
				ranking.EmptyNoArticles: {"新着記事がありません", "新しい記事の投稿をお待ちください。"},
				ranking.EmptyNothingYet: {"新着記事がありません", "新しい記事の投稿をお待ちください。"},
			},
			ranking.TabTrending: {
				ranking.EmptyNoArticles: {"トレンド記事がありません", "記事のエンゲージメントが蓄積されるとトレンドが表示されます。"},
				ranking.EmptyNothingYet: {"トレンド記事を準備中", "記事への反応（いいね・コメント・ビュー）が増えるとトレンドとして表示されます。"},
			},
			ranking.TabPopular: {
				ranking.EmptyNoArticles: {"人気記事がありません", "記事が増えるまでお待ちください。"},
				ranking.EmptyNothingYet: {"人気記事を準備中", "記事へのいいねやコメントが増えると人気記事として表示されます。"},
			},
			ranking.TabAIGenerated: {
				ranking.EmptyNoArticles: {"AI記事がありません", "AI自動生成機能は準備中です。"},
				ranking.EmptyNothingYet: {"AI記事がありません", "AI自動生成機能は準備中です。"},
			},
		},
		ErrorTitle:   "エラー",
		BackToList:   "記事一覧に戻る",
		MissingID:    "記事IDが指定されていません。",
		NotFound:     "指定された記事が見つかりません。",
		LoadFailed:   "記事の読み込みに失敗しました。",
		Prev:         "前へ",
		Next:         "次へ",
		Range:        "全%d件中 %d-%d件を表示",
		LatestInfo:   "現在%d件の記事があります。",
		NextPostAt:   "次の自動投稿: %s",
		RankingLabel: "新着",
		NoRanking:    "記事がありません",
		TrendingMark: "トレンド",
		Like:         "いいね",
		Share:        "シェア",
		ReadingTime:  "約%d分で読めます",
	},
	LocaleEN: {
		JustNow:    "just now",
		MinutesAgo: "%dm ago",
		HoursAgo:   "%dh ago",
		DaysAgo:    "%dd ago",
		DateLayout: func(t time.Time) string { return t.Format("Jan 2, 2006") },
		LongDate:   func(t time.Time) string { return t.Format("January 2, 2006") },
		Empty: map[ranking.Tab]map[ranking.EmptyReason]EmptyText{
			ranking.TabLatest: {
				ranking.EmptyNoArticles: {"No new articles", "Check back soon for new posts."},
				ranking.EmptyNothingYet: {"No new articles", "Check back soon for new posts."},
			},
			ranking.TabTrending: {
				ranking.EmptyNoArticles: {"No trending articles", "Trends appear once articles gather engagement."},
				ranking.EmptyNothingYet: {"Trending is warming up", "Articles show up here as likes, comments and views come in."},
			},
			ranking.TabPopular: {
				ranking.EmptyNoArticles: {"No popular articles", "Wait for a few more articles."},
				ranking.EmptyNothingYet: {"Popular is warming up", "Articles show up here as likes and comments come in."},
			},
			ranking.TabAIGenerated: {
				ranking.EmptyNoArticles: {"No AI articles", "Automatic generation is not running yet."},
				ranking.EmptyNothingYet: {"No AI articles", "Automatic generation is not running yet."},
			},
		},
		ErrorTitle:   "Error",
		BackToList:   "Back to articles",
		MissingID:    "No article id was given.",
		NotFound:     "The requested article was not found.",
		LoadFailed:   "The article could not be loaded.",
		Prev:         "Prev",
		Next:         "Next",
		Range:        "Showing %[2]d-%[3]d of %[1]d",
		LatestInfo:   "%d articles so far.",
		NextPostAt:   "Next automatic post: %s",
		RankingLabel: "New",
		NoRanking:    "No articles",
		TrendingMark: "Trending",
		Like:         "Like",
		Share:        "Share",
		ReadingTime:  "%d min read",
	},
}

// MessagesFor returns the catalogue for l, defaulting to Japanese.
func MessagesFor(l Locale) Messages {
	if m, ok := catalogues[l]; ok {
		return m
	}
	return catalogues[LocaleJA]
}

// EmptyFor returns the empty-state text for a tab and reason.
func (m Messages) EmptyFor(tab ranking.Tab, reason ranking.EmptyReason) EmptyText {
	if byReason, ok := m.Empty[tab]; ok {
		if text, ok := byReason[reason]; ok {
			return text
		}
	}
	return EmptyText{Title: m.NoRanking}
}

// RangeText renders the "showing a-b of n" line.
func (m Messages) RangeText(total, start, end int) string {
	return fmt.Sprintf(m.Range, total, start, end)
}

package ranking

import (
	"fmt"
	"sort"

	"github.com/mohammad-safakhou/technote/internal/article"
)

// Tab identifies one listing projection.
type Tab string

const (
	TabLatest      Tab = "latest"
	TabPopular     Tab = "popular"
	TabTrending    Tab = "trending"
	TabAIGenerated Tab = "ai-generated"
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabLatest, TabTrending, TabPopular, TabAIGenerated}

// ParseTab validates a tab id.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Entry is one projected article with its derived values.
type Entry struct {
	Article article.Article
	Score   int
	AIBadge bool
}

// EmptyReason tells the renderer which empty message to show.
type EmptyReason string

const (
	// EmptyNoArticles means the whole snapshot is empty.
	EmptyNoArticles EmptyReason = "no_articles"
	// EmptyNothingYet means articles exist but none qualify for the tab.
	EmptyNothingYet EmptyReason = "nothing_yet"
)

// EmptyState describes the placeholder shown instead of an empty list.
type EmptyState struct {
	Tab    Tab
	Icon   string
	Reason EmptyReason
}

// Projection is the ordered result for one tab.
type Projection struct {
	Tab     Tab
	Entries []Entry
	Empty   *EmptyState
}

var tabIcons = map[Tab]string{
	TabLatest:      "fa-clock",
	TabPopular:     "fa-star",
	TabTrending:    "fa-fire",
	TabAIGenerated: "fa-robot",
}

// Project orders and filters articles for tab. The input slice and its
// records are left untouched.
func Project(articles []article.Article, tab Tab) Projection {
	var entries []Entry
	switch tab {
	case TabLatest:
		entries = latest(articles)
	case TabPopular:
		entries = byScore(articles, PopularScore)
	case TabTrending:
		entries = byScore(articles, TrendingScore)
	case TabAIGenerated:
		entries = aiGenerated(articles)
	default:
		return Projection{Tab: tab, Entries: []Entry{}}
	}
	p := Projection{Tab: tab, Entries: entries}
	if len(entries) == 0 {
		reason := EmptyNothingYet
		if len(articles) == 0 {
			reason = EmptyNoArticles
		}
		p.Empty = &EmptyState{Tab: tab, Icon: tabIcons[tab], Reason: reason}
	}
	return p
}

func latest(articles []article.Article) []Entry {
	entries := make([]Entry, 0, len(articles))
	for _, a := range articles {
		entries = append(entries, Entry{Article: a})
	}
	sortNewestFirst(entries)
	return entries
}

func byScore(articles []article.Article, score Scorer) []Entry {
	keepZero := len(articles) <= SmallListThreshold
	entries := make([]Entry, 0, len(articles))
	for _, a := range articles {
		s := score(a)
		if s <= 0 && !keepZero {
			continue
		}
		entries = append(entries, Entry{Article: a, Score: s})
	}
	dates := publishTimes(entries)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return newer(dates, entries, i, j)
	})
	return entries
}

func aiGenerated(articles []article.Article) []Entry {
	entries := make([]Entry, 0)
	for _, a := range articles {
		if a.IsAIGenerated() {
			entries = append(entries, Entry{Article: a, AIBadge: true})
		}
	}
	return entries
}

func sortNewestFirst(entries []Entry) {
	dates := publishTimes(entries)
	sort.SliceStable(entries, func(i, j int) bool { return newer(dates, entries, i, j) })
}

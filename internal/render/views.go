package render

import (
	"html/template"

	"github.com/mohammad-safakhou/technote/internal/pagination"
	"github.com/mohammad-safakhou/technote/internal/ranking"
)

// CardView is the listing card for one article. All fields are plain text;
// escaping happens in the template.
type CardView struct {
	ID           string   `json:"id"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	Author       string   `json:"author"`
	AuthorRole   string   `json:"author_role"`
	AuthorAvatar string   `json:"author_avatar"`
	PublishedAt  string   `json:"published_at,omitempty"`
	TimeAgo      string   `json:"time_ago"`
	Likes        string   `json:"likes"`
	Comments     string   `json:"comments"`
	Views        string   `json:"views"`
	Score        int      `json:"score,omitempty"`
	Featured     bool     `json:"featured"`
	AIBadge      bool     `json:"ai_badge"`
	TrendingMark string   `json:"-"`
}

// EmptyView is the placeholder panel shown instead of an empty list.
type EmptyView struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ErrorView is the error panel with a way back to the listing.
type ErrorView struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	BackLabel string `json:"back_label"`
	BackURL   string `json:"back_url"`
}

// ControlView is one rendered page control.
type ControlView struct {
	Kind   string `json:"kind"`
	Page   int    `json:"page"`
	Label  string `json:"label"`
	Active bool   `json:"active,omitempty"`
}

// PaginationView is the page control bar plus the range line.
type PaginationView struct {
	Page     pagination.Page `json:"page"`
	Controls []ControlView   `json:"controls"`
	Range    string          `json:"range"`
}

// TabView is one rendered page of a listing tab.
type TabView struct {
	Tab        ranking.Tab     `json:"tab"`
	Locale     Locale          `json:"locale"`
	Cards      []CardView      `json:"cards"`
	Empty      *EmptyView      `json:"empty,omitempty"`
	Pagination *PaginationView `json:"pagination,omitempty"`
	Info       []string        `json:"info,omitempty"`
}

// DetailView is the full article page.
type DetailView struct {
	CardView
	Date        string        `json:"date"`
	Body        template.HTML `json:"body"`
	ReadingTime string        `json:"reading_time"`
	LikeLabel   string        `json:"-"`
	ShareLabel  string        `json:"-"`
	ShareURL    string        `json:"share_url"`
}

// RankingItemView is one sidebar ranking row.
type RankingItemView struct {
	Rank  int    `json:"rank"`
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
	Label string `json:"label"`
}

// RankingView is the sidebar ranking list.
type RankingView struct {
	Items []RankingItemView `json:"items"`
	Empty string            `json:"empty,omitempty"`
}

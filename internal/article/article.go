package article

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrArticleNotFound is returned when no article matches an id.
	ErrArticleNotFound = errors.New("article not found")
	// ErrInvalidDocument is returned when an article document fails validation.
	ErrInvalidDocument = errors.New("invalid article document")
)

// Id prefixes tagging where an article came from.
const (
	PrefixAuto = "auto_"
	PrefixDemo = "demo_"
	PrefixUser = "user_"
)

// Provenance is the origin implied by an article id prefix.
type Provenance string

const (
	ProvenanceAuto    Provenance = "auto"
	ProvenanceDemo    Provenance = "demo"
	ProvenanceUser    Provenance = "user"
	ProvenanceUnknown Provenance = "unknown"
)

// Article is a single published entry as it appears in the article document.
type Article struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Summary       string   `json:"summary" yaml:"summary"`
	Content       string   `json:"content" yaml:"content"`
	Category      string   `json:"category" yaml:"category"`
	Tags          []string `json:"tags" yaml:"tags"`
	Author        string   `json:"author" yaml:"author"`
	AuthorRole    string   `json:"author_role" yaml:"author_role"`
	AuthorAvatar  string   `json:"author_avatar" yaml:"author_avatar"`
	PublishDate   string   `json:"publish_date" yaml:"publish_date"`
	Views         int      `json:"views" yaml:"views"`
	Likes         int      `json:"likes" yaml:"likes"`
	Comments      int      `json:"comments" yaml:"comments"`
	Featured      bool     `json:"featured" yaml:"featured"`
	UserGenerated bool     `json:"user_generated,omitempty" yaml:"user_generated,omitempty"`
}

// ProvenanceOf classifies an id by prefix.
func ProvenanceOf(id string) Provenance {
	switch {
	case strings.HasPrefix(id, PrefixAuto):
		return ProvenanceAuto
	case strings.HasPrefix(id, PrefixDemo):
		return ProvenanceDemo
	case strings.HasPrefix(id, PrefixUser):
		return ProvenanceUser
	default:
		return ProvenanceUnknown
	}
}

// IsAIGenerated reports whether the article was produced by the auto-post pipeline.
func (a Article) IsAIGenerated() bool {
	return ProvenanceOf(a.ID) == ProvenanceAuto
}

// PublishedAt parses PublishDate; see ParsePublishDate.
func (a Article) PublishedAt() time.Time {
	return ParsePublishDate(a.PublishDate)
}

// MaxCount is the largest counter value kept; it is the largest integer a
// JSON number holds exactly, so weighted score sums cannot overflow int64.
const MaxCount = 1<<53 - 1

// ClampCount limits a counter to [0, MaxCount].
func ClampCount(n int) int {
	switch {
	case n < 0:
		return 0
	case n > MaxCount:
		return MaxCount
	}
	return n
}

// normalize clamps counters and fills nil slices.
func (a Article) normalize() Article {
	a.Views = ClampCount(a.Views)
	a.Likes = ClampCount(a.Likes)
	a.Comments = ClampCount(a.Comments)
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return a
}

// Find returns the article with id.
func Find(articles []Article, id string) (Article, error) {
	for _, a := range articles {
		if a.ID == id {
			return a, nil
		}
	}
	return Article{}, ErrArticleNotFound
}

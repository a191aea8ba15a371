package engagement

import (
	"net/url"

	"github.com/mohammad-safakhou/technote/internal/article"
)

// Share is what the share button hands to the platform share sheet, with
// fallbacks for networks that take a URL parameter.
type Share struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
}

// ShareLink builds the share targets for a. articleURL is the absolute
// detail URL.
func ShareLink(a article.Article, articleURL string) Share {
	q := url.QueryEscape(articleURL)
	return Share{
		Title:    a.Title,
		URL:      articleURL,
		Twitter:  "https://twitter.com/share?url=" + q,
		Facebook: "https://www.facebook.com/sharer.php?u=" + q,
	}
}

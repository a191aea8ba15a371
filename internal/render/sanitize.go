package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy

	articlePolicyOnce sync.Once
	articlePolicy     *bluemonday.Policy
)

// StrictPolicy strips every element and attribute.
func StrictPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// ArticlePolicy allows the markup produced by the markdown renderer for
// article bodies: headings, lists, tables, code blocks, quotes, links and
// images over http(s). Event handlers and script URLs are removed.
func ArticlePolicy() *bluemonday.Policy {
	articlePolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
		policy.AllowURLSchemes("http", "https", "mailto")
		policy.AllowRelativeURLs(true)
		policy.RequireParseableURLs(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		articlePolicy = policy
	})
	return articlePolicy
}

// PlainText reduces s to trimmed, unescaped text with all markup removed.
// The result still needs escaping on output.
func PlainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(StrictPolicy().Sanitize(s)))
}

// SafeArticleHTML cleans rendered article markup with ArticlePolicy.
func SafeArticleHTML(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(ArticlePolicy().Sanitize(s))
}

// Package editor implements the article editor: validation, drafts with
// autosave, markdown tooling and publishing to the local store.
package editor

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Limits enforced by Validate.
const (
	MaxTitleLength   = 100
	MaxSummaryLength = 160
	MinContentLength = 100
	MaxTags          = 10
)

// Form is the editor's field state. Tags is the raw comma separated input.
type Form struct {
	Title              string `json:"title"`
	Summary            string `json:"summary"`
	Category           string `json:"category"`
	Tags               string `json:"tags"`
	Author             string `json:"author"`
	Content            string `json:"content"`
	AllowComments      bool   `json:"allowComments"`
	PublishImmediately bool   `json:"publishImmediately"`
	SEOOptimize        bool   `json:"seoOptimize"`
}

// DefaultForm is the state of a freshly opened editor.
func DefaultForm() Form {
	return Form{AllowComments: true, PublishImmediately: true}
}

// Trimmed returns f with surrounding whitespace removed from the text inputs.
// Content is kept verbatim.
func (f Form) Trimmed() Form {
	f.Title = strings.TrimSpace(f.Title)
	f.Summary = strings.TrimSpace(f.Summary)
	f.Category = strings.TrimSpace(f.Category)
	f.Tags = strings.TrimSpace(f.Tags)
	f.Author = strings.TrimSpace(f.Author)
	return f
}

// HasContent reports whether the form is worth autosaving.
func (f Form) HasContent() bool {
	return strings.TrimSpace(f.Title) != "" || f.Content != ""
}

// Validate returns every problem with f as a user-facing message. An empty
// result means f can be published.
func Validate(f Form) []string {
	f = f.Trimmed()
	var errs []string
	switch {
	case f.Title == "":
		errs = append(errs, "記事タイトルは必須です")
	case utf8.RuneCountInString(f.Title) > MaxTitleLength:
		errs = append(errs, "タイトルは100文字以内で入力してください")
	}
	if f.Author == "" {
		errs = append(errs, "著者名は必須です")
	}
	if f.Category == "" {
		errs = append(errs, "カテゴリを選択してください")
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Content)) < MinContentLength {
		errs = append(errs, "記事の内容は100文字以上で入力してください")
	}
	if utf8.RuneCountInString(f.Summary) > MaxSummaryLength {
		errs = append(errs, "概要は160文字以内で入力してください")
	}
	if len(splitTags(f.Tags)) > MaxTags {
		errs = append(errs, "タグは10個以内で入力してください")
	}
	return errs
}

func splitTags(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '，' || r == '、'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(norm.NFKC.String(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeTags splits raw on ASCII and Japanese commas, trims each tag,
// drops empties and keeps at most MaxTags.
func NormalizeTags(raw string) []string {
	tags := splitTags(raw)
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}

var categoryNames = map[string]string{
	"programming": "プログラミング",
	"ai":          "AI・機械学習",
	"business":    "ビジネス",
	"design":      "デザイン",
	"lifestyle":   "ライフスタイル",
	"finance":     "投資・副業",
	"career":      "キャリア",
	"other":       "その他",
}

// Categories lists the selectable category slugs.
var Categories = []string{"programming", "ai", "business", "design", "lifestyle", "finance", "career", "other"}

// CategoryName maps a category slug to its display name. Unknown slugs are
// shown as "other".
func CategoryName(slug string) string {
	if name, ok := categoryNames[slug]; ok {
		return name
	}
	return categoryNames["other"]
}

// Initials takes the first letter of each space separated word, upper-cased.
func Initials(author string) string {
	var b strings.Builder
	for _, w := range strings.Fields(author) {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

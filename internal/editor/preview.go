package editor

import (
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/mohammad-safakhou/technote/internal/article"
	"github.com/mohammad-safakhou/technote/internal/render"
)

// PreviewPlaceholder is shown when there is nothing to preview.
const PreviewPlaceholder = `<p class="preview-placeholder">プレビューするコンテンツがありません。エディタに内容を入力してください。</p>`

// Preview renders markdown the way the article page will.
func Preview(markdown string) (template.HTML, error) {
	if strings.TrimSpace(markdown) == "" {
		return template.HTML(PreviewPlaceholder), nil
	}
	return render.Markdown(markdown)
}

// Stats are the editor's live counters.
type Stats struct {
	Chars          int `json:"chars"`
	Lines          int `json:"lines"`
	ReadingMinutes int `json:"reading_minutes"`
	TitleChars     int `json:"title_chars"`
	SummaryChars   int `json:"summary_chars"`
}

// Count computes the counters for f.
func Count(f Form) Stats {
	return Stats{
		Chars:          utf8.RuneCountInString(f.Content),
		Lines:          strings.Count(f.Content, "\n") + 1,
		ReadingMinutes: article.ReadingMinutes(f.Content),
		TitleChars:     utf8.RuneCountInString(f.Title),
		SummaryChars:   utf8.RuneCountInString(f.Summary),
	}
}

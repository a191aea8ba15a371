package editor

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnknownTool is returned for an unrecognised toolbar action.
var ErrUnknownTool = errors.New("unknown toolbar action")

// Tool is a markdown toolbar action.
type Tool string

const (
	ToolBold    Tool = "bold"
	ToolItalic  Tool = "italic"
	ToolHeading Tool = "heading"
	ToolLink    Tool = "link"
	ToolImage   Tool = "image"
	ToolCode    Tool = "code"
	ToolList    Tool = "list"
	ToolQuote   Tool = "quote"
)

// Insertion is the text a toolbar action inserts. Cursor is the rune offset
// inside Text where the caret lands, so placeholder text can be typed over.
type Insertion struct {
	Text             string `json:"text"`
	Cursor           int    `json:"cursor"`
	ReplaceSelection bool   `json:"replace_selection"`
}

type toolTemplate struct {
	wrap        func(sel string) string
	placeholder string
	// back is how far the caret moves back from the end of the placeholder
	back int
	// selBack is the same for a wrapped selection
	selBack int
}

var tools = map[Tool]toolTemplate{
	ToolBold:    {wrap: func(s string) string { return "**" + s + "**" }, placeholder: "**太字**", back: 2},
	ToolItalic:  {wrap: func(s string) string { return "*" + s + "*" }, placeholder: "*斜体*", back: 1},
	ToolHeading: {wrap: func(s string) string { return "## " + s }, placeholder: "## 見出し", back: 2},
	ToolLink:    {wrap: func(s string) string { return "[" + s + "](URL)" }, placeholder: "[リンクテキスト](URL)", back: 13, selBack: 4},
	ToolImage:   {placeholder: "![画像の説明](画像URL)", back: 6},
	ToolCode:    {wrap: func(s string) string { return "`" + s + "`" }, placeholder: "`コード`", back: 1},
	ToolList:    {wrap: func(s string) string { return "- " + s }, placeholder: "- リスト項目", back: 4},
	ToolQuote:   {wrap: func(s string) string { return "> " + s }, placeholder: "> 引用文", back: 3},
}

// ApplyTool computes the insertion for action given the selected text.
func ApplyTool(action Tool, selection string) (Insertion, error) {
	tpl, ok := tools[action]
	if !ok {
		return Insertion{}, fmt.Errorf("%w: %q", ErrUnknownTool, action)
	}
	if action == ToolCode && strings.Contains(selection, "\n") {
		text := "```\n" + selection + "\n```"
		return Insertion{Text: text, Cursor: utf8.RuneCountInString(text), ReplaceSelection: true}, nil
	}
	if selection == "" || tpl.wrap == nil {
		n := utf8.RuneCountInString(tpl.placeholder)
		return Insertion{Text: tpl.placeholder, Cursor: n - tpl.back, ReplaceSelection: selection != ""}, nil
	}
	text := tpl.wrap(selection)
	return Insertion{Text: text, Cursor: utf8.RuneCountInString(text) - tpl.selBack, ReplaceSelection: true}, nil
}

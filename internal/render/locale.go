package render

import (
	"golang.org/x/text/language"
)

// Locale selects the message catalogue used for a response.
type Locale string

const (
	LocaleJA Locale = "ja"
	LocaleEN Locale = "en"
)

// Negotiator picks a supported locale from an Accept-Language header.
type Negotiator struct {
	matcher   language.Matcher
	supported []Locale
	fallback  Locale
}

// NewNegotiator builds a negotiator over supported. fallback is used when the
// header is empty, unparseable or matches nothing; it is added to the
// supported set when missing.
func NewNegotiator(supported []string, fallback string) *Negotiator {
	n := &Negotiator{fallback: Locale(fallback)}
	if n.fallback == "" {
		n.fallback = LocaleJA
	}
	// the first tag passed to NewMatcher is the matcher's own default
	tags := []language.Tag{language.Make(string(n.fallback))}
	n.supported = []Locale{n.fallback}
	for _, s := range supported {
		if Locale(s) == n.fallback || s == "" {
			continue
		}
		tags = append(tags, language.Make(s))
		n.supported = append(n.supported, Locale(s))
	}
	n.matcher = language.NewMatcher(tags)
	return n
}

// Match returns the best supported locale for an Accept-Language value.
func (n *Negotiator) Match(acceptLanguage string) Locale {
	if acceptLanguage == "" {
		return n.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return n.fallback
	}
	_, idx, conf := n.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(n.supported) {
		return n.fallback
	}
	return n.supported[idx]
}

// Parse maps a locale name to a known catalogue, falling back to Japanese.
func Parse(s string) Locale {
	base, _ := language.Make(s).Base()
	switch base.String() {
	case "en":
		return LocaleEN
	default:
		return LocaleJA
	}
}

package article

import (
	"fmt"
	"sync"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed demo_articles.yaml
var demoArticlesYAML []byte

var (
	demoOnce     sync.Once
	demoArticles []Article
	demoErr      error
)

// DemoArticles returns the literal fallback set used when the document cannot
// be loaded and the demo fallback is configured. Callers get their own copy.
func DemoArticles() ([]Article, error) {
	demoOnce.Do(func() {
		var list []Article
		if err := yaml.Unmarshal(demoArticlesYAML, &list); err != nil {
			demoErr = fmt.Errorf("decode demo articles: %w", err)
			return
		}
		demoArticles = Dedupe(list)
	})
	if demoErr != nil {
		return nil, demoErr
	}
	out := make([]Article, len(demoArticles))
	copy(out, demoArticles)
	return out, nil
}

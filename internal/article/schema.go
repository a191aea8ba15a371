package article

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed articles_schema.json
var articlesSchemaJSON string

var (
	compileOnce    sync.Once
	articlesSchema *jsonschema.Schema
	compileErr     error
)

// DocumentSchema returns the compiled JSON Schema for the article document.
func DocumentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("articles_schema.json", strings.NewReader(articlesSchemaJSON)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, err := compiler.Compile("articles_schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile articles schema: %w", err)
			return
		}
		articlesSchema = schema
	})
	return articlesSchema, compileErr
}

// DecodeList validates data against the document schema and decodes it.
// Duplicate ids keep their first occurrence.
func DecodeList(data []byte) ([]Article, error) {
	schema, err := DocumentSchema()
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	var raw []Article
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return Dedupe(raw), nil
}

// Dedupe normalizes records and drops repeated ids, keeping the first.
func Dedupe(in []Article) []Article {
	seen := make(map[string]struct{}, len(in))
	out := make([]Article, 0, len(in))
	for _, a := range in {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a.normalize())
	}
	return out
}

// Package importer extracts recipe candidates from web pages that
// carry schema.org Recipe markup as JSON-LD. The result is a plain
// field map ready for the recipe service, which applies the usual
// schema validation — the importer itself does no sanitizing.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoRecipe is returned when a page carries no recognizable recipe markup.
var ErrNoRecipe = fmt.Errorf("no schema.org Recipe found in document")

// FromURL fetches a page and extracts a recipe candidate from it.
func FromURL(ctx context.Context, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}

	return FromHTML(resp.Body)
}

// FromHTML extracts a recipe candidate from an HTML document. It scans
// every JSON-LD block for a Recipe node, including nodes nested in
// arrays or @graph containers.
func FromHTML(r io.Reader) (map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var node map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return true // malformed block, keep scanning
		}
		if found := findRecipeNode(payload); found != nil {
			node = found
			return false
		}
		return true
	})

	if node == nil {
		return nil, ErrNoRecipe
	}
	return candidateFromNode(node), nil
}

// findRecipeNode walks a decoded JSON-LD payload looking for an object
// whose @type is (or contains) "Recipe".
func findRecipeNode(payload any) map[string]any {
	switch v := payload.(type) {
	case map[string]any:
		if isRecipeType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return findRecipeNode(graph)
		}
	case []any:
		for _, item := range v {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

// candidateFromNode maps schema.org Recipe properties onto the recipe
// field set.
func candidateFromNode(node map[string]any) map[string]any {
	candidate := map[string]any{}

	if name, ok := node["name"].(string); ok {
		candidate["name"] = name
	}
	if ingredients := stringList(node["recipeIngredient"]); len(ingredients) > 0 {
		candidate["ingredients"] = ingredients
	}
	if instructions := instructionsText(node["recipeInstructions"]); instructions != "" {
		candidate["instructions"] = instructions
	}
	if category := firstString(node["recipeCategory"]); category != "" {
		candidate["category"] = category
	}
	if tags := keywordList(node["keywords"]); len(tags) > 0 {
		candidate["tags"] = tags
	}

	return candidate
}

// instructionsText flattens recipeInstructions, which may be a plain
// string, a list of strings, or a list of HowToStep objects.
func instructionsText(v any) string {
	switch steps := v.(type) {
	case string:
		return steps
	case []any:
		var lines []string
		for _, step := range steps {
			switch s := step.(type) {
			case string:
				lines = append(lines, s)
			case map[string]any:
				if text, ok := s["text"].(string); ok {
					lines = append(lines, text)
				}
			}
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func stringList(v any) []string {
	switch list := v.(type) {
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{list}
	}
	return nil
}

// keywordList splits schema.org keywords, which arrive either as a
// comma-separated string or as a list.
func keywordList(v any) []string {
	if s, ok := v.(string); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}
	return stringList(v)
}

func firstString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []any:
		if len(s) > 0 {
			if first, ok := s[0].(string); ok {
				return first
			}
		}
	}
	return ""
}

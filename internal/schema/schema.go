// Package schema validates and sanitizes recipe input against the fixed
// recipe field set. Validation has two modes: create mode enforces
// required fields and fills zero-value defaults so every new recipe
// carries the complete field set; update mode is lenient and produces a
// partial field set for merging. In both modes keys outside the schema
// are silently dropped.
package schema

import (
	"github.com/recipevault/recipevault/internal/types"
)

// Kind is the value type a schema field accepts.
type Kind int

const (
	// KindString accepts a plain string.
	KindString Kind = iota

	// KindStringList accepts an ordered list of strings.
	KindStringList
)

// Rule describes one schema field.
type Rule struct {
	Name     string
	Kind     Kind
	Required bool
}

// Fields is the recipe schema. Only these keys are ever copied from
// input; required fields are enforced in create mode only.
var Fields = []Rule{
	{Name: "name", Kind: KindString, Required: true},
	{Name: "ingredients", Kind: KindStringList, Required: true},
	{Name: "instructions", Kind: KindString, Required: true},
	{Name: "category", Kind: KindString, Required: false},
	{Name: "tags", Kind: KindStringList, Required: false},
}

// ValidateCreate sanitizes input for a new recipe. A missing required
// field fails the whole validation. A present but wrong-typed value is
// coerced to its kind's zero value rather than rejected. Every schema
// field absent from the input is defaulted, so the result always has
// the full field set. The returned recipe has no id; the service
// assigns one.
func ValidateCreate(input map[string]any) (types.Recipe, bool) {
	fields := make(map[string]any, len(Fields))
	for _, rule := range Fields {
		raw, present := input[rule.Name]
		if !present {
			if rule.Required {
				return types.Recipe{}, false
			}
			fields[rule.Name] = zeroValue(rule.Kind)
			continue
		}
		fields[rule.Name] = coerce(rule.Kind, raw)
	}

	var r types.Recipe
	Apply(&r, fields)
	r.Canonicalize()
	return r, true
}

// ValidateUpdate sanitizes a partial update. Missing keys are omitted
// from the result, and a present but wrong-typed value is dropped
// rather than coerced, so a bad update never blanks an existing field.
// The name key is excluded: update preserves record identity.
func ValidateUpdate(input map[string]any) map[string]any {
	fields := make(map[string]any, len(input))
	for _, rule := range Fields {
		if rule.Name == "name" {
			continue
		}
		raw, present := input[rule.Name]
		if !present {
			continue
		}
		v, ok := convert(rule.Kind, raw)
		if !ok {
			continue
		}
		fields[rule.Name] = v
	}
	return fields
}

// Apply merges a validated field set into a recipe. Fields absent from
// the set keep their prior values.
func Apply(r *types.Recipe, fields map[string]any) {
	if v, ok := fields["name"]; ok {
		r.Name = v.(string)
	}
	if v, ok := fields["ingredients"]; ok {
		r.Ingredients = v.([]string)
	}
	if v, ok := fields["instructions"]; ok {
		r.Instructions = v.(string)
	}
	if v, ok := fields["category"]; ok {
		r.Category = v.(string)
	}
	if v, ok := fields["tags"]; ok {
		r.Tags = v.([]string)
	}
}

// convert attempts a strict conversion of raw to the rule kind.
func convert(kind Kind, raw any) (any, bool) {
	switch kind {
	case KindString:
		s, ok := raw.(string)
		return s, ok
	case KindStringList:
		switch v := raw.(type) {
		case []string:
			return append([]string(nil), v...), true
		case []any:
			// JSON-decoded lists arrive as []any; keep the string
			// elements and skip the rest.
			out := make([]string, 0, len(v))
			for _, e := range v {
				if s, ok := e.(string); ok {
					out = append(out, s)
				}
			}
			return out, true
		}
	}
	return nil, false
}

// coerce converts raw to the rule kind, falling back to the kind's zero
// value on a type mismatch (create-mode leniency).
func coerce(kind Kind, raw any) any {
	if v, ok := convert(kind, raw); ok {
		return v
	}
	return zeroValue(kind)
}

func zeroValue(kind Kind) any {
	if kind == KindStringList {
		return []string{}
	}
	return ""
}

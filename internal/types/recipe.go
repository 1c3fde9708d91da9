package types

import "strings"

// Recipe represents a single recipe record in the collection.
type Recipe struct {
	// ID is assigned on creation and is unique within the collection.
	ID int64 `json:"id" bson:"id"`

	// Name is the effective primary key: update and delete locate
	// records by trimmed, case-insensitive name.
	Name string `json:"name" bson:"name"`

	// Ingredients is the ordered ingredient list.
	Ingredients []string `json:"ingredients" bson:"ingredients"`

	// Instructions is the preparation text.
	Instructions string `json:"instructions" bson:"instructions"`

	// Category is optional and defaults to the empty string.
	Category string `json:"category" bson:"category"`

	// Tags is optional and defaults to the empty list.
	Tags []string `json:"tags" bson:"tags"`
}

// NameMatches reports whether two recipe names are equal under the
// collection's uniqueness rule: surrounding whitespace ignored,
// case-insensitive.
func NameMatches(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Canonicalize replaces nil slices with empty ones so the persisted
// form always carries the complete field set ([] rather than null).
func (r *Recipe) Canonicalize() {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
}

// CanonicalizeAll canonicalizes every record and guarantees a non-nil
// collection.
func CanonicalizeAll(recipes []Recipe) []Recipe {
	if recipes == nil {
		return []Recipe{}
	}
	for i := range recipes {
		recipes[i].Canonicalize()
	}
	return recipes
}

// Clone returns a copy with its own slice backing.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	c.Tags = append([]string(nil), r.Tags...)
	c.Canonicalize()
	return c
}

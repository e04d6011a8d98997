package domain

import "strings"

// Categories is the fixed set every expense and budget must use.
var Categories = []string{
	"food",
	"transportation",
	"housing",
	"utilities",
	"entertainment",
	"healthcare",
	"education",
	"shopping",
	"travel",
	"other",
}

var categorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// NormalizeCategory lowercases and trims a category name, returning
// "" when the result is not one of the known categories.
func NormalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := categorySet[s]; !ok {
		return ""
	}
	return s
}

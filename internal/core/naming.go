package core

import (
	"path/filepath"
	"strings"
	"unicode"
)

// KebabCase turns a pascal name into its kebab form: FooBar -> foo-bar.
func KebabCase(pascalName string) string {
	var b strings.Builder
	runes := []rune(pascalName)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ChunkNameFor returns the registry chunk name, deriving it from the kebab
// name when discovery left it blank.
func ChunkNameFor(c Component) string {
	if c.ChunkName != "" {
		return c.ChunkName
	}

	name := c.KebabName
	if name == "" {
		name = KebabCase(c.PascalName)
	}
	name = strings.Trim(filepath.ToSlash(name), "/")
	if name == "" {
		return "components/component"
	}
	return "components/" + name
}

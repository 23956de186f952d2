package core

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSString renders s as a double-quoted JavaScript string literal.
func JSString(s string) string {
	out, err := marshalJSON(s, "")
	if err != nil {
		return `""`
	}
	return out
}

var singleQuoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// JSSingleQuoted renders s as a single-quoted JavaScript string literal.
func JSSingleQuoted(s string) string {
	return "'" + singleQuoteReplacer.Replace(s) + "'"
}

// SafeComment keeps s from terminating the block comment it is placed in.
func SafeComment(s string) string {
	return strings.ReplaceAll(s, "*/", `*\/`)
}

type DynamicImportOptions struct {
	Comment string
	// NoWrapper drops the `() => ` thunk, for type positions.
	NoWrapper bool
}

func DynamicImport(specifier string, opts DynamicImportOptions) string {
	var b strings.Builder
	if !opts.NoWrapper {
		b.WriteString("() => ")
	}
	b.WriteString("import(")
	b.WriteString(JSString(specifier))
	if opts.Comment != "" {
		b.WriteString(" /* ")
		b.WriteString(SafeComment(opts.Comment))
		b.WriteString(" */")
	}
	b.WriteString(")")
	return b.String()
}

// ImportMagicComments builds the bundler directives attached to an island's
// dynamic import.
func ImportMagicComments(c Component) string {
	parts := []string{"webpackChunkName: " + JSString(ChunkNameFor(c))}
	if v, ok := c.Prefetch.Directive(); ok {
		parts = append(parts, "webpackPrefetch: "+v)
	}
	if v, ok := c.Preload.Directive(); ok {
		parts = append(parts, "webpackPreload: "+v)
	}
	return strings.Join(parts, ", ")
}

// MarshalJS encodes v the way JSON.stringify does: no HTML escaping and, with
// an empty indent, no whitespace.
func MarshalJS(v any, indent string) (string, error) {
	return marshalJSON(v, indent)
}

func marshalJSON(v any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

package core

import (
	"path"
	"path/filepath"
	"strings"
)

func isAbsolute(p string) bool {
	if strings.HasPrefix(p, "/") || filepath.IsAbs(p) {
		return true
	}
	// Windows drive paths show up in registries produced on another host.
	return len(p) >= 3 && p[1] == ':' && (p[2] == '/' || p[2] == '\\')
}

// TypeImportPath is the specifier used in a component's type reference:
// relative to buildDir for absolute paths, with any non-.vue extension removed.
func TypeImportPath(buildDir, filePath string) string {
	p := filePath
	if isAbsolute(filePath) && buildDir != "" {
		if rel, err := filepath.Rel(filepath.FromSlash(buildDir), filepath.FromSlash(filePath)); err == nil {
			p = filepath.ToSlash(rel)
		}
	}
	return StripNonVueExt(p)
}

// StripNonVueExt removes a trailing `.ext` unless the extension starts with
// "vue". The dot must follow a word character and the extension must be made
// of word characters only.
func StripNonVueExt(p string) string {
	ext := path.Ext(p)
	if len(ext) < 2 {
		return p
	}
	name := ext[1:]
	if strings.HasPrefix(name, "vue") || !isWord(name) {
		return p
	}
	dot := len(p) - len(ext)
	if dot == 0 || !isWordByte(p[dot-1]) {
		return p
	}
	return p[:dot]
}

func isWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

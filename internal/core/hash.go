package core

import "fmt"

// HashContent fingerprints registry bytes so unchanged saves can be skipped.
func HashContent(content []byte) string {
	result := 0
	for _, b := range content {
		result = (result*31 + int(b)) % 1000000007
	}
	return fmt.Sprintf("%d", result)
}

// RenderHash fingerprints a full set of rendered files.
func RenderHash(files []RenderedFile) string {
	var buf []byte
	for _, f := range files {
		buf = append(buf, f.Filename...)
		buf = append(buf, 0)
		buf = append(buf, f.Contents...)
		buf = append(buf, 0)
	}
	return HashContent(buf)
}

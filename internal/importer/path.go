package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/MimeLyc/flicks/pkg/file"
)

// sanitize replaces filesystem-hostile characters and ASCII control
// characters with underscores, then trims trailing spaces and dots.
func sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case strings.ContainsRune(`/<>:"\|?*`, r):
			b.WriteRune('_')
		case r < 0x20 || r == 0x7f:
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " .")
}

// MoviePath returns the library-relative "<sanitized>/<sanitized>.<ext>"
// path for a movie titled primaryTitle released in year.
func MoviePath(primaryTitle string, year uint16, ext string) string {
	cleaned := sanitize(fmt.Sprintf("%s (%d)", primaryTitle, year))
	dotted := strings.ReplaceAll(cleaned, " ", ".")
	return filepath.Join(dotted, fmt.Sprintf("%s.%s", dotted, strings.ToLower(ext)))
}

// SubtitlePath replaces moviePath's extension with "<lang>.<ext>", so a
// subtitle sits beside its movie under the same stem.
func SubtitlePath(moviePath, lang, ext string) string {
	return file.ReplaceExt(moviePath, fmt.Sprintf("%s.%s", lang, ext))
}

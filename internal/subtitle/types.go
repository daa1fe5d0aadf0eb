// Package subtitle analyzes a candidate subtitle file: it detects the
// subtitle format and text encoding, extracts and language-detects the
// dialogue text, and fingerprints the raw bytes.
package subtitle

import "strings"

// Format is the normalized 3-letter subtitle format tag.
type Format string

const (
	FormatSRT Format = "srt"
	FormatSUB Format = "sub"
	FormatSSA Format = "ssa"
	FormatASS Format = "ass"
)

// Analysis is the result of a successful subtitle analysis.
type Analysis struct {
	Format      Format
	Lang        string
	Fingerprint string
	Size        int64
}

var extensionFormats = map[string]Format{
	"srt": FormatSRT,
	"sub": FormatSUB,
	"ssa": FormatSSA,
	"ass": FormatASS,
}

// IsSubtitleExt reports whether ext (without leading dot) names a
// recognized subtitle extension.
func IsSubtitleExt(ext string) bool {
	_, ok := extensionFormats[normalizeExt(ext)]
	return ok
}

func normalizeExt(ext string) string {
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	return strings.ToLower(ext)
}

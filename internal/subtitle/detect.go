package subtitle

import "bytes"

// vobSubPackHeader is the MPEG program stream pack start code that opens
// every .sub companion of a VobSub .idx pair. VobSub subtitles are
// rendered bitmaps, not text, so they are rejected rather than parsed.
var vobSubPackHeader = []byte{0x00, 0x00, 0x01, 0xBA}

// detectFormat classifies a candidate subtitle by extension, sniffing
// head (the file's first bytes) to reject a VobSub .sub masquerading
// under the same extension as MicroDVD-style text subtitles.
func detectFormat(ext string, head []byte) (Format, bool) {
	format, ok := extensionFormats[normalizeExt(ext)]
	if !ok {
		return "", false
	}

	if format == FormatSUB && looksLikeVobSub(head) {
		return "", false
	}

	return format, true
}

func looksLikeVobSub(head []byte) bool {
	if bytes.Contains(head, vobSubPackHeader) {
		return true
	}
	return !looksLikeText(head)
}

// looksLikeText is a cheap heuristic: text subtitle files are printable
// ASCII/UTF-8 aside from the usual whitespace control characters. A
// binary VobSub stream is dense with other control bytes.
func looksLikeText(head []byte) bool {
	if len(head) == 0 {
		return true
	}
	nonText := 0
	for _, b := range head {
		if b == '\n' || b == '\r' || b == '\t' {
			continue
		}
		if b < 0x20 || b == 0x7f {
			nonText++
		}
	}
	return float64(nonText)/float64(len(head)) < 0.05
}

package subtitle

import (
	"regexp"
	"strings"
)

var (
	srtTimeLine   = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}[,.]\d{3}\s*-->\s*\d{2}:\d{2}:\d{2}[,.]\d{3}`)
	srtIndexLine  = regexp.MustCompile(`^\d+$`)
	subFrameLine  = regexp.MustCompile(`^\{\d+\}\{\d+\}`)
	assOverrideRe = regexp.MustCompile(`\{[^}]*\}`)
)

// extractText pulls the dialogue text out of decoded subtitle content,
// dropping indices, timestamps, and markup, leaving plain prose suitable
// for language detection.
func extractText(format Format, decoded string) string {
	switch format {
	case FormatSRT:
		return extractSRT(decoded)
	case FormatSUB:
		return extractMicroDVD(decoded)
	case FormatSSA, FormatASS:
		return extractSSA(decoded)
	default:
		return ""
	}
}

func extractSRT(decoded string) string {
	var b strings.Builder
	for _, line := range strings.Split(decoded, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || srtIndexLine.MatchString(line) || srtTimeLine.MatchString(line) {
			continue
		}
		b.WriteString(line)
		b.WriteByte(' ')
	}
	return strings.TrimSpace(b.String())
}

func extractMicroDVD(decoded string) string {
	var b strings.Builder
	for _, line := range strings.Split(decoded, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = subFrameLine.ReplaceAllString(line, "")
		line = strings.ReplaceAll(line, "|", " ")
		b.WriteString(line)
		b.WriteByte(' ')
	}
	return strings.TrimSpace(b.String())
}

func extractSSA(decoded string) string {
	var b strings.Builder
	for _, line := range strings.Split(decoded, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Dialogue:") {
			continue
		}
		fields := strings.SplitN(strings.TrimPrefix(line, "Dialogue:"), ",", 10)
		if len(fields) < 10 {
			continue
		}
		text := fields[9]
		text = assOverrideRe.ReplaceAllString(text, "")
		text = strings.ReplaceAll(text, `\N`, " ")
		text = strings.ReplaceAll(text, `\n`, " ")
		b.WriteString(strings.TrimSpace(text))
		b.WriteByte(' ')
	}
	return strings.TrimSpace(b.String())
}

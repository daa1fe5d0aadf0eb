package subtitle

import (
	"fmt"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
)

// decodeText detects buf's encoding with a chardet-style heuristic, maps
// the result to a WHATWG label, and decodes to UTF-8 text.
func decodeText(buf []byte) (string, error) {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return "", fmt.Errorf("detect charset: %w", err)
	}

	enc, err := htmlindex.Get(strings.ToLower(result.Charset))
	if err != nil {
		return "", fmt.Errorf("unsupported charset %q: %w", result.Charset, err)
	}

	decoded, err := enc.NewDecoder().Bytes(buf)
	if err != nil {
		return "", fmt.Errorf("decode as %q: %w", result.Charset, err)
	}

	return string(decoded), nil
}

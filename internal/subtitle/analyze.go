package subtitle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MimeLyc/flicks/internal/fingerprint"
	"github.com/abadojack/whatlanggo"
)

const sniffSize = 512

// ErrRejected is returned for content the analyzer deliberately refuses
// to treat as a subtitle: an image-based VobSub track, or text that
// yields no dialogue once markup is stripped.
var ErrRejected = errors.New("subtitle: rejected")

// Analyze reads path, detects its format and encoding, extracts and
// language-detects the dialogue text, and fingerprints the raw bytes.
// ext is the file's extension without a leading dot.
func Analyze(path, ext string) (*Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	head := make([]byte, sniffSize)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	head = head[:n]

	format, ok := detectFormat(ext, head)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized or image-based subtitle format", ErrRejected)
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf := append(head, rest...)

	decoded, err := decodeText(buf)
	if err != nil {
		return nil, err
	}

	text := extractText(format, decoded)
	if text == "" {
		return nil, fmt.Errorf("%w: no dialogue text extracted", ErrRejected)
	}

	info := whatlanggo.Detect(text)
	lang := info.Lang.Iso6393()

	return &Analysis{
		Format:      format,
		Lang:        lang,
		Fingerprint: fingerprint.Bytes(buf),
		Size:        int64(len(buf)),
	}, nil
}

package subtitle

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:04,000
Hello there, this is a test subtitle.

2
00:00:05,000 --> 00:00:08,000
It contains enough English text for language detection to work reliably.
`

func TestAnalyzeSRT(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Movie.en.srt")
	if err := os.WriteFile(path, []byte(sampleSRT), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Analyze(path, "srt")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got.Format != FormatSRT {
		t.Fatalf("Format = %v, want srt", got.Format)
	}
	if got.Lang != "eng" {
		t.Fatalf("Lang = %q, want eng", got.Lang)
	}
	if len(got.Fingerprint) != 64 {
		t.Fatalf("Fingerprint length = %d, want 64", len(got.Fingerprint))
	}
}

func TestAnalyzeRejectsVobSubMasqueradingAsSub(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Movie.sub")

	data := append([]byte{0x00, 0x00, 0x01, 0xBA}, make([]byte, 600)...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Analyze(path, "sub"); err == nil {
		t.Fatalf("expected VobSub content to be rejected")
	}
}

func TestAnalyzeMicroDVDSub(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Movie.sub")
	content := "{0}{100}Hello there, this is a test.|And a second line.\n{101}{200}More English dialogue follows here.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Analyze(path, "sub")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got.Format != FormatSUB {
		t.Fatalf("Format = %v, want sub", got.Format)
	}
}

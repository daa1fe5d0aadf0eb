package transfer

import (
	"os"
	"path/filepath"
	"testing"
)

func drive(t *testing.T, m *Manager) {
	t.Helper()
	for !m.Done() {
		if _, err := m.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
}

func TestHardlinkTransferCompletes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mkv")
	dst := filepath.Join(dir, "out", "dst.mkv")
	if err := os.WriteFile(src, []byte("movie bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	m.AddTransfer(src, dst)
	drive(t, m)

	tr := m.Transfers()[0]
	if tr.State != StateHardlinked {
		t.Fatalf("state = %v, want Hardlinked", tr.State)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("expected dst to exist: %v", err)
	}
}

func TestTransferIdempotentOnRerun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mkv")
	dst := filepath.Join(dir, "dst.mkv")
	if err := os.WriteFile(src, []byte("same length content"), 0o644); err != nil {
		t.Fatal(err)
	}

	m1 := NewManager()
	m1.AddTransfer(src, dst)
	drive(t, m1)

	m2 := NewManager()
	m2.AddTransfer(src, dst)
	drive(t, m2)

	tr := m2.Transfers()[0]
	if tr.State != StateCopied && tr.State != StateHardlinked {
		t.Fatalf("rerun state = %v, want Copied or Hardlinked via short-circuit", tr.State)
	}
}

func TestResumeAfterCrashReplacesShortDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mkv")
	dst := filepath.Join(dir, "dst.mkv")
	if err := os.WriteFile(src, []byte("0123456789"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Simulate a crash mid-copy: a partial destination of different length.
	if err := os.WriteFile(dst, []byte("012"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	m.AddTransfer(src, dst)
	drive(t, m)

	content, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "0123456789" {
		t.Fatalf("dst content = %q, want full source content after resume", content)
	}
}

func TestTryCancelRemovesOnlyInProgressDestination(t *testing.T) {
	dir := t.TempDir()
	src1 := filepath.Join(dir, "a.mkv")
	dst1 := filepath.Join(dir, "a-out.mkv")
	src2 := filepath.Join(dir, "b.mkv")
	dst2 := filepath.Join(dir, "b-out.mkv")
	if err := os.WriteFile(src1, []byte("aaa"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src2, []byte("bbb"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	m.AddTransfer(src1, dst1)
	m.AddTransfer(src2, dst2)

	// Finish the first transfer only.
	if _, err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if m.Transfers()[0].State != StateHardlinked {
		t.Fatalf("first transfer state = %v, want Hardlinked", m.Transfers()[0].State)
	}

	m.TryCancel()

	if m.Transfers()[0].State != StateHardlinked {
		t.Fatalf("completed transfer was rolled back to %v", m.Transfers()[0].State)
	}
	if _, err := os.Stat(dst1); err != nil {
		t.Fatalf("completed destination should remain on disk: %v", err)
	}
	if m.Transfers()[1].State != StateCancelled {
		t.Fatalf("queued transfer state = %v, want Cancelled", m.Transfers()[1].State)
	}
}

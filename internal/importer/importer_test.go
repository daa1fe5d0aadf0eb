package importer

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MimeLyc/flicks/internal/catalog"
	"github.com/MimeLyc/flicks/internal/library"
	"github.com/MimeLyc/flicks/internal/scan"
)

func writeGzTSV(t *testing.T, path string, rows []string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gz := gzip.NewWriter(f)
	defer gz.Close()
	if _, err := gz.Write([]byte(strings.Join(rows, "\n") + "\n")); err != nil {
		t.Fatal(err)
	}
}

func buildFixtureIndex(t *testing.T) *catalog.Index {
	t.Helper()
	dir := t.TempDir()
	writeGzTSV(t, filepath.Join(dir, "title.ratings.tsv.gz"), []string{
		"tconst\taverageRating\tnumVotes",
		"tt0133093\t8.7\t1900000",
	})
	writeGzTSV(t, filepath.Join(dir, "title.basics.tsv.gz"), []string{
		"tconst\ttitleType\tprimaryTitle\toriginalTitle\tisAdult\tstartYear\tendYear\truntimeMinutes\tgenres",
		"tt0133093\tmovie\tThe Matrix\tThe Matrix\t0\t1999\t\\N\t136\tAction",
	})
	idx, err := catalog.Build(dir)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx
}

func TestImportTransfersAndRegisters(t *testing.T) {
	root := t.TempDir()
	libRoot := t.TempDir()

	srcMovie := filepath.Join(root, "Matrix.1999.mkv")
	srcSub := filepath.Join(root, "Matrix.1999.en.srt")
	if err := os.WriteFile(srcMovie, []byte("movie bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(srcSub, []byte("1\n00:00:01,000 --> 00:00:02,000\nHello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	idx := buildFixtureIndex(t)
	lib, err := library.Open(filepath.Join(libRoot, ".meta", "library.db"))
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })

	identity, ok := catalog.NewScored(0.95, scan.MovieIdentity{TitleID: 133093, Title: "The Matrix"})
	if !ok {
		t.Fatal("NewScored rejected a valid score")
	}
	matches := []scan.MovieFile{
		{
			Path:        srcMovie,
			Fingerprint: "fp-matrix",
			Identity:    &identity,
			Subtitles: []scan.SubtitleFile{
				{Path: srcSub, Lang: "eng", Ext: "srt", Fingerprint: "fp-sub-matrix"},
			},
		},
	}

	ctx := context.Background()
	if err := Import(ctx, idx, lib, libRoot, matches, func() bool { return false }, nil); err != nil {
		t.Fatalf("Import: %v", err)
	}

	wantMovie := filepath.Join(libRoot, "The.Matrix.(1999)", "The.Matrix.(1999).mkv")
	if _, err := os.Stat(wantMovie); err != nil {
		t.Fatalf("expected movie at %s: %v", wantMovie, err)
	}
	wantSub := filepath.Join(libRoot, "The.Matrix.(1999)", "The.Matrix.(1999).eng.srt")
	if _, err := os.Stat(wantSub); err != nil {
		t.Fatalf("expected subtitle at %s: %v", wantSub, err)
	}

	has, err := lib.HasFingerprint(ctx, "fp-matrix")
	if err != nil {
		t.Fatalf("HasFingerprint: %v", err)
	}
	if !has {
		t.Fatalf("expected library to register the imported movie's fingerprint")
	}

	count, err := lib.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Count() = %d, want 1", count)
	}

	movies, err := lib.AllMovies(ctx)
	if err != nil {
		t.Fatalf("AllMovies: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("AllMovies() = %d movies, want 1", len(movies))
	}
	wantRelPath := filepath.Join("The.Matrix.(1999)", "The.Matrix.(1999).mkv")
	if movies[0].File.Path != wantRelPath {
		t.Fatalf("File.Path = %q, want library-relative %q", movies[0].File.Path, wantRelPath)
	}
	if strings.HasPrefix(movies[0].File.Path, string(filepath.Separator)) {
		t.Fatalf("File.Path = %q, must not be absolute", movies[0].File.Path)
	}
}

func TestImportDisambiguatesSameLanguageSubtitles(t *testing.T) {
	root := t.TempDir()
	libRoot := t.TempDir()

	srcMovie := filepath.Join(root, "Matrix.1999.mkv")
	srcSubA := filepath.Join(root, "Matrix.1999.eng.srt")
	srcSubB := filepath.Join(root, "Matrix.1999.eng.forced.srt")
	for _, f := range []string{srcMovie, srcSubA, srcSubB} {
		if err := os.WriteFile(f, []byte("bytes-"+f), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	idx := buildFixtureIndex(t)
	lib, err := library.Open(filepath.Join(libRoot, ".meta", "library.db"))
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })

	identity, _ := catalog.NewScored(0.95, scan.MovieIdentity{TitleID: 133093, Title: "The Matrix"})
	matches := []scan.MovieFile{
		{
			Path:        srcMovie,
			Fingerprint: "fp-matrix",
			Identity:    &identity,
			Subtitles: []scan.SubtitleFile{
				{Path: srcSubA, Lang: "eng", Ext: "srt", Fingerprint: "fp-sub-a"},
				{Path: srcSubB, Lang: "eng", Ext: "srt", Fingerprint: "fp-sub-b"},
			},
		},
	}

	ctx := context.Background()
	if err := Import(ctx, idx, lib, libRoot, matches, func() bool { return false }, nil); err != nil {
		t.Fatalf("Import: %v", err)
	}

	wantSubA := filepath.Join(libRoot, "The.Matrix.(1999)", "The.Matrix.(1999).eng.srt")
	wantSubB := filepath.Join(libRoot, "The.Matrix.(1999)", "The.Matrix.(1999).eng.1.srt")
	if _, err := os.Stat(wantSubA); err != nil {
		t.Fatalf("expected first subtitle at %s: %v", wantSubA, err)
	}
	if _, err := os.Stat(wantSubB); err != nil {
		t.Fatalf("expected second subtitle at a disambiguated path %s: %v", wantSubB, err)
	}

	hasA, err := lib.HasFingerprint(ctx, "fp-sub-a")
	if err != nil {
		t.Fatalf("HasFingerprint: %v", err)
	}
	hasB, err := lib.HasFingerprint(ctx, "fp-sub-b")
	if err != nil {
		t.Fatalf("HasFingerprint: %v", err)
	}
	if !hasA || !hasB {
		t.Fatalf("expected both subtitle fingerprints registered, got hasA=%v hasB=%v", hasA, hasB)
	}
}

func TestImportSkipsAlreadyIngestedFingerprint(t *testing.T) {
	root := t.TempDir()
	libRoot := t.TempDir()

	srcMovie := filepath.Join(root, "Matrix.1999.mkv")
	if err := os.WriteFile(srcMovie, []byte("movie bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	idx := buildFixtureIndex(t)
	lib, err := library.Open(filepath.Join(libRoot, ".meta", "library.db"))
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })

	ctx := context.Background()
	if err := lib.SaveMovie(ctx, library.Movie{
		File:         library.File{Path: "already/here.mkv", Fingerprint: "fp-matrix"},
		IMDbID:       133093,
		PrimaryTitle: "The Matrix",
		Year:         1999,
	}); err != nil {
		t.Fatalf("seed SaveMovie: %v", err)
	}

	identity, _ := catalog.NewScored(0.95, scan.MovieIdentity{TitleID: 133093, Title: "The Matrix"})
	matches := []scan.MovieFile{{Path: srcMovie, Fingerprint: "fp-matrix", Identity: &identity}}

	if err := Import(ctx, idx, lib, libRoot, matches, func() bool { return false }, nil); err != nil {
		t.Fatalf("Import: %v", err)
	}

	if _, err := os.Stat(filepath.Join(libRoot, "The.Matrix.(1999)")); err == nil {
		t.Fatalf("expected no transfer for an already-ingested fingerprint")
	}
}

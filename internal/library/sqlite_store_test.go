package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MimeLyc/flicks/internal/catalogjob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreSaveMovieRoundTrip(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	m := Movie{
		File:         File{Path: "The.Matrix.(1999)/The.Matrix.(1999).mkv", Fingerprint: "abc123"},
		IMDbID:       133093,
		PrimaryTitle: "The Matrix",
		Year:         1999,
		Subtitles: []Subtitle{{
			Lang:        "eng",
			Path:        "The.Matrix.(1999)/The.Matrix.(1999).eng.srt",
			Fingerprint: "abc123-sub",
		}},
	}
	require.NoError(t, store.SaveMovie(ctx, m))

	has, err := store.HasFingerprint(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = store.HasTitle(ctx, 133093)
	require.NoError(t, err)
	assert.True(t, has)

	movies, err := store.AllMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "The Matrix", movies[0].PrimaryTitle)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStoreSaveMovieUpsertIsIdempotent(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	m := Movie{
		File:         File{Path: "Foo/Foo.mkv", Fingerprint: "fp1"},
		IMDbID:       42,
		PrimaryTitle: "Foo",
		Year:         2001,
	}
	require.NoError(t, store.SaveMovie(ctx, m))
	require.NoError(t, store.SaveMovie(ctx, m))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "re-saving the same movie must not duplicate it")
}

func TestStoreQueryFiltersByTitleAndYear(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveMovie(ctx, Movie{
		File: File{Path: "a.mkv", Fingerprint: "fp-a"}, IMDbID: 1, PrimaryTitle: "Alpha", Year: 1990,
	}))
	require.NoError(t, store.SaveMovie(ctx, Movie{
		File: File{Path: "b.mkv", Fingerprint: "fp-b"}, IMDbID: 2, PrimaryTitle: "Beta", Year: 2000,
	}))

	results, err := store.Query(ctx, QueryFilter{Title: "alph"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Alpha", results[0].PrimaryTitle)

	results, err = store.Query(ctx, QueryFilter{HasYearGTE: true, YearGTE: 1995})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Beta", results[0].PrimaryTitle)
}

func TestStoreSyncRemovesMissingFiles(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	libRoot := t.TempDir()
	moviePath := filepath.Join(libRoot, "movie.mkv")
	require.NoError(t, os.WriteFile(moviePath, []byte("hello"), 0o644))

	require.NoError(t, store.SaveMovie(ctx, Movie{
		File: File{Path: "movie.mkv", Fingerprint: "fp-sync"}, IMDbID: 7, PrimaryTitle: "Gone", Year: 2005,
	}))

	require.NoError(t, os.Remove(moviePath))

	removed, err := store.Sync(ctx, libRoot)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStoreRehashUpdatesChangedFingerprint(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	libRoot := t.TempDir()
	moviePath := filepath.Join(libRoot, "movie.mkv")
	require.NoError(t, os.WriteFile(moviePath, []byte("hello"), 0o644))

	require.NoError(t, store.SaveMovie(ctx, Movie{
		File: File{Path: "movie.mkv", Fingerprint: "stale-fp"}, IMDbID: 9, PrimaryTitle: "Changed", Year: 2010,
	}))

	require.NoError(t, os.WriteFile(moviePath, []byte("hello, but different now"), 0o644))

	changed, err := store.Rehash(ctx, libRoot)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	movies, err := store.AllMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.NotEqual(t, "stale-fp", movies[0].File.Fingerprint)
}

func TestStoreSatisfiesCatalogjobStore(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()
	var _ catalogjob.Store = store

	job := &catalogjob.RefreshJob{
		ID:        "job-1",
		DedupeKey: "/data",
		DataDir:   "/data",
		Status:    catalogjob.StatusPending,
	}
	require.NoError(t, store.UpsertJob(ctx, job))

	jobs, err := store.LoadJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, catalogjob.StatusPending, jobs[0].Status)

	require.NoError(t, store.DeleteJob(ctx, "job-1"))
	jobs, err = store.LoadJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

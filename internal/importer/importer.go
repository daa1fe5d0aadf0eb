// Package importer drives the end-to-end ingest of classified matches:
// deterministic destination paths, queued transfers, throttled progress
// reporting, and library registration.
package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/MimeLyc/flicks/internal/catalog"
	"github.com/MimeLyc/flicks/internal/library"
	"github.com/MimeLyc/flicks/internal/scan"
	"github.com/MimeLyc/flicks/internal/transfer"
	"github.com/MimeLyc/flicks/pkg/file"
	"github.com/MimeLyc/flicks/pkg/log"
)

// progressInterval bounds how often the caller is shown the transfer
// currently in flight.
const progressInterval = time.Second

// ProgressFunc is called with the transfer currently in flight, at most
// once per progressInterval.
type ProgressFunc func(*transfer.Transfer)

// Import drives every match to completion in order, registering each
// with lib as soon as its transfers finish. cancelled is sampled between
// transfer steps and between movies; on a true reading the current
// movie's in-flight transfers are cancelled and Import returns cleanly,
// leaving later movies unimported.
func Import(ctx context.Context, idx *catalog.Index, lib *library.Store, libRoot string, matches []scan.MovieFile, cancelled func() bool, onProgress ProgressFunc) error {
	for _, m := range matches {
		if cancelled() {
			return nil
		}
		if err := importOne(ctx, idx, lib, libRoot, m, cancelled, onProgress); err != nil {
			return err
		}
	}
	return nil
}

func importOne(ctx context.Context, idx *catalog.Index, lib *library.Store, libRoot string, m scan.MovieFile, cancelled func() bool, onProgress ProgressFunc) error {
	has, err := lib.HasFingerprint(ctx, m.Fingerprint)
	if err != nil {
		return err
	}
	if has {
		log.Info("importer: %s already in library, skipping", m.Path)
		return nil
	}

	title, ok := idx.Title(m.Identity.Value.TitleID)
	if !ok {
		log.Warn("importer: title %v no longer in catalog, skipping %s", m.Identity.Value.TitleID, m.Path)
		return nil
	}

	ext := strings.TrimPrefix(filepath.Ext(m.Path), ".")
	relMoviePath := MoviePath(title.PrimaryTitle, title.Year, ext)
	moviePath := filepath.Join(libRoot, relMoviePath)

	mgr := transfer.NewManager()
	mgr.AddTransfer(m.Path, moviePath)

	var subtitles []library.Subtitle
	subSeq := make(map[string]int, len(m.Subtitles))
	for _, sub := range m.Subtitles {
		base := SubtitlePath(relMoviePath, sub.Lang, sub.Ext)
		relSubPath := base
		if n := subSeq[base]; n > 0 {
			relSubPath = file.ReplaceExt(base, fmt.Sprintf("%d.%s", n, sub.Ext))
		}
		subSeq[base]++

		mgr.AddTransfer(sub.Path, filepath.Join(libRoot, relSubPath))
		subtitles = append(subtitles, library.Subtitle{
			Lang:        sub.Lang,
			Path:        relSubPath,
			Fingerprint: sub.Fingerprint,
		})
	}

	last := time.Now()
	for !mgr.Done() {
		if cancelled() {
			mgr.TryCancel()
			return nil
		}
		cur, err := mgr.Step()
		if err != nil {
			return err
		}
		if cur != nil && onProgress != nil && time.Since(last) >= progressInterval {
			onProgress(cur)
			last = time.Now()
		}
	}

	movie := library.Movie{
		File:          library.File{Path: relMoviePath, Fingerprint: m.Fingerprint},
		IMDbID:        title.TitleID,
		PrimaryTitle:  title.PrimaryTitle,
		OriginalTitle: title.OriginalTitle,
		Year:          title.Year,
		Subtitles:     subtitles,
	}
	return lib.SaveMovie(ctx, movie)
}

package scan

import (
	"github.com/MimeLyc/flicks/internal/catalog"
	"github.com/MimeLyc/flicks/internal/fingerprint"
	"github.com/MimeLyc/flicks/internal/vfs"
)

// Scan walks root (already snapshotted by vfs.Walk), prunes peer samples
// and featurettes, fingerprints the survivors, identifies them against
// idx, attaches subtitles, and returns the assembled report.
//
// I/O errors encountered while fingerprinting a survivor are fatal: the
// caller asked to import these exact bytes, so a file that can't be read
// aborts the scan rather than being silently dropped.
func Scan(root vfs.File, idx *catalog.Index) (*ScanReport, error) {
	var videos []vfs.File
	for _, f := range root.Descendants() {
		if !f.IsDir() && isVideoExt(f.Ext()) {
			videos = append(videos, f)
		}
	}

	parsed := make([]struct {
		title string
		year  int
		ok    bool
	}, len(videos))
	parseable := make([]bool, len(videos))
	for i, v := range videos {
		title, year, ok := ParseFilename(v.Stem())
		parsed[i].title, parsed[i].year, parsed[i].ok = title, year, ok
		parseable[i] = ok
	}

	ignored := prunePeers(root, videos, parseable)

	report := &ScanReport{ImportRoot: root.Path()}

	for i, v := range videos {
		if _, skip := ignored[v.Path()]; skip {
			continue
		}

		fp, err := fingerprint.File(v.Path())
		if err != nil {
			return nil, err
		}

		movie := MovieFile{
			Path:        v.Path(),
			Size:        v.Size(),
			Fingerprint: fp,
			Subtitles:   attachSubtitles(v),
		}

		if parsed[i].ok {
			year := parsed[i].year
			if best, found := idx.Find(parsed[i].title, &year); found {
				identity, ok := catalog.NewScored(best.Score, MovieIdentity{
					TitleID: best.Value.TitleID,
					Title:   best.Value.PrimaryTitle,
				})
				if ok {
					movie.Identity = &identity
				}
			}
		}

		report.Movies = append(report.Movies, movie)
	}

	return report, nil
}

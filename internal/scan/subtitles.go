package scan

import (
	"strings"

	"github.com/MimeLyc/flicks/internal/subtitle"
	"github.com/MimeLyc/flicks/internal/vfs"
	"github.com/MimeLyc/flicks/pkg/log"
)

// candidateSubtitles returns sibling files (and, when movie is the only
// video in its folder, descendants of sibling directories) whose
// extension is a recognized subtitle extension and whose filename
// begins with movie's stem.
func candidateSubtitles(movie vfs.File) []vfs.File {
	stem := strings.ToLower(movie.Stem())

	matches := func(f vfs.File) bool {
		if f.IsDir() || !subtitle.IsSubtitleExt(f.Ext()) {
			return false
		}
		return strings.HasPrefix(strings.ToLower(f.Name()), stem)
	}

	siblings := movie.Siblings()
	var candidates []vfs.File
	alone := true
	for _, sib := range siblings {
		if !sib.IsDir() && isVideoExt(sib.Ext()) {
			alone = false
		}
		if matches(sib) {
			candidates = append(candidates, sib)
		}
	}

	if alone {
		for _, sib := range siblings {
			if !sib.IsDir() {
				continue
			}
			for _, d := range sib.Descendants() {
				if matches(d) {
					candidates = append(candidates, d)
				}
			}
		}
	}

	return candidates
}

// attachSubtitles analyzes every subtitle candidate for movie, quietly
// dropping any that fail analysis.
func attachSubtitles(movie vfs.File) []SubtitleFile {
	var subs []SubtitleFile
	for _, cand := range candidateSubtitles(movie) {
		analysis, err := subtitle.Analyze(cand.Path(), cand.Ext())
		if err != nil {
			log.Debug("scan: dropping subtitle %s: %v", cand.Path(), err)
			continue
		}
		subs = append(subs, SubtitleFile{
			Path:        cand.Path(),
			Size:        cand.Size(),
			Lang:        analysis.Lang,
			Ext:         string(analysis.Format),
			Fingerprint: analysis.Fingerprint,
		})
	}
	return subs
}

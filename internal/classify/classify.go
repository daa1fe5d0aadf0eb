// Package classify partitions a scan's movie files against the
// existing library into ignored, unmatched, duplicate, matched, and
// conflicting sets.
package classify

import (
	"context"
	"sort"

	"github.com/MimeLyc/flicks/internal/catalog"
	"github.com/MimeLyc/flicks/internal/scan"
)

// Library is the subset of the persistent store the classifier needs.
// Implemented by internal/library.Store.
type Library interface {
	HasFingerprint(ctx context.Context, fingerprint string) (bool, error)
	HasTitle(ctx context.Context, id catalog.TitleID) (bool, error)
}

// Classified partitions a scan's movies. The five member sets are
// disjoint and their union is exactly the input slice.
type Classified struct {
	Ignored    []scan.MovieFile
	Unmatched  []scan.MovieFile
	Duplicates []scan.MovieFile
	Matches    []scan.MovieFile
	Conflicts  map[catalog.TitleID][]scan.MovieFile
}

// Classify partitions movies per the rules: no identity is unmatched;
// a known fingerprint is ignored; a known title with new bytes is a
// duplicate; otherwise group by title id, singletons are matches and
// groups of two or more are conflicts.
func Classify(ctx context.Context, lib Library, movies []scan.MovieFile) (*Classified, error) {
	c := &Classified{Conflicts: make(map[catalog.TitleID][]scan.MovieFile)}

	byTitle := make(map[catalog.TitleID][]scan.MovieFile)

	for _, m := range movies {
		if m.Identity == nil {
			c.Unmatched = append(c.Unmatched, m)
			continue
		}

		hasFP, err := lib.HasFingerprint(ctx, m.Fingerprint)
		if err != nil {
			return nil, err
		}
		if hasFP {
			c.Ignored = append(c.Ignored, m)
			continue
		}

		titleID := m.Identity.Value.TitleID
		hasTitle, err := lib.HasTitle(ctx, titleID)
		if err != nil {
			return nil, err
		}
		if hasTitle {
			c.Duplicates = append(c.Duplicates, m)
			continue
		}

		byTitle[titleID] = append(byTitle[titleID], m)
	}

	for titleID, group := range byTitle {
		if len(group) == 1 {
			c.Matches = append(c.Matches, group[0])
		} else {
			c.Conflicts[titleID] = group
		}
	}

	sortByScoreAsc(c.Matches)
	sortByScoreAsc(c.Duplicates)

	return c, nil
}

func sortByScoreAsc(movies []scan.MovieFile) {
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].Identity.Score < movies[j].Identity.Score
	})
}

package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/xrash/smetrics"
)

func normalizeForScoring(s string) string {
	return strings.ToLower(s)
}

// Index is the built catalog: titles keyed by id plus a token to title-id
// reverse map. Once built it is read-only.
type Index struct {
	entries map[TitleID]Title
	reverse map[string]map[TitleID]struct{}
}

// Len reports how many titles the index holds.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Title looks up a catalog entry by id.
func (idx *Index) Title(id TitleID) (Title, bool) {
	t, ok := idx.entries[id]
	return t, ok
}

// mostCommon returns the title ids whose token hit count is within one
// hit of the maximum, a one-token slack against query typos/omissions.
func mostCommon(hits map[TitleID]int) []TitleID {
	if len(hits) == 0 {
		return nil
	}
	max := 0
	for _, c := range hits {
		if c > max {
			max = c
		}
	}
	threshold := max - 1

	var out []TitleID
	for id, c := range hits {
		if c >= threshold {
			out = append(out, id)
		}
	}
	return out
}

func normalizedLevenshtein(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := smetrics.Levenshtein(a, b, 1, 1, 1)
	sim := 1.0 - float64(dist)/float64(maxLen)
	if sim < 0 {
		sim = 0
	}
	return sim
}

// FindAll returns every candidate title for text (and optional year),
// ordered by descending score. An empty result is not an error.
func (idx *Index) FindAll(text string, year *int) []Scored[Title] {
	tokens := tokenize(text)

	hits := make(map[TitleID]int)
	for _, tok := range tokens {
		for id := range idx.reverse[tok] {
			hits[id]++
		}
	}

	candidateIDs := mostCommon(hits)
	candidates := make([]Title, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		candidates = append(candidates, idx.entries[id])
	}

	if year != nil {
		filtered := candidates[:0]
		for _, t := range candidates {
			if absInt(int(t.Year)-*year) <= 1 {
				filtered = append(filtered, t)
			}
		}
		candidates = filtered
	}

	if len(candidates) == 0 {
		return nil
	}

	var maxVotes uint32
	for _, t := range candidates {
		if t.VoteCount > maxVotes {
			maxVotes = t.VoteCount
		}
	}

	queryLower := normalizeForScoring(text)

	scored := make([]Scored[Title], 0, len(candidates))
	for _, t := range candidates {
		sim := normalizedLevenshtein(normalizeForScoring(t.PrimaryTitle), queryLower)
		if t.OriginalTitle != "" {
			if alt := normalizedLevenshtein(normalizeForScoring(t.OriginalTitle), queryLower); alt > sim {
				sim = alt
			}
		}

		yearBonus := 1.0
		if year != nil {
			if int(t.Year) != *year {
				yearBonus = 0.90
			}
		}

		pop := 1.0
		if maxVotes > 1 && t.VoteCount > 0 {
			pop = math.Log10(float64(t.VoteCount)) / math.Log10(float64(maxVotes))
		}

		score := sim * yearBonus * pop
		s, ok := NewScored(score, t)
		if !ok {
			continue
		}
		scored = append(scored, s)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Value.VoteCount != b.Value.VoteCount {
			return a.Value.VoteCount > b.Value.VoteCount
		}
		return a.Value.TitleID < b.Value.TitleID
	})

	return scored
}

// Find returns the single best candidate, if any.
func (idx *Index) Find(text string, year *int) (Scored[Title], bool) {
	all := idx.FindAll(text, year)
	if len(all) == 0 {
		return Scored[Title]{}, false
	}
	return all[0], true
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

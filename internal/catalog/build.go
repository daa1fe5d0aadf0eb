package catalog

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/MimeLyc/flicks/internal/ferr"
	"github.com/MimeLyc/flicks/pkg/log"
)

const (
	basicsFileName  = "title.basics.tsv.gz"
	ratingsFileName = "title.ratings.tsv.gz"
)

func validTitleType(titleType string) bool {
	switch titleType {
	case "movie", "tvMovie", "video", "short":
		return true
	}
	return false
}

func openTSV(path string) (*csv.Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	r := csv.NewReader(gz)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	return r, gz, nil
}

func parseTitleID(raw string) (TitleID, error) {
	if len(raw) < 3 || raw[:2] != "tt" {
		return 0, fmt.Errorf("malformed title id %q", raw)
	}
	n, err := strconv.ParseUint(raw[2:], 10, 32)
	if err != nil {
		return 0, err
	}
	return TitleID(n), nil
}

func buildVoteTable(dataDir string) (map[TitleID]uint32, error) {
	r, closer, err := openTSV(dataDir + "/" + ratingsFileName)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	votes := make(map[TitleID]uint32)

	// First record is the TSV header; skip it.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return votes, nil
		}
		return nil, err
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("catalog: skipping malformed ratings row: %v", err)
			continue
		}
		if len(record) < 3 {
			continue
		}

		titleID, err := parseTitleID(record[0])
		if err != nil {
			continue
		}
		voteCount, err := strconv.ParseUint(record[2], 10, 32)
		if err != nil {
			continue
		}
		if uint32(voteCount) >= minVotes {
			votes[titleID] = uint32(voteCount)
		}
	}

	return votes, nil
}

func parseOptionalUint(raw string, bitSize int) (uint64, bool) {
	if raw == `\N` {
		return 0, false
	}
	n, err := strconv.ParseUint(raw, 10, bitSize)
	if err != nil {
		return 0, false
	}
	return n, true
}

func buildEntriesTable(dataDir string, votes map[TitleID]uint32) (map[TitleID]Title, error) {
	r, closer, err := openTSV(dataDir + "/" + basicsFileName)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	entries := make(map[TitleID]Title)

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return entries, nil
		}
		return nil, err
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("catalog: skipping malformed basics row: %v", err)
			continue
		}
		if len(record) < 9 {
			continue
		}

		titleID, err := parseTitleID(record[0])
		if err != nil {
			continue
		}
		titleType := record[1]
		primaryTitle := record[2]
		originalTitle := record[3]
		adult := record[4]
		startYearRaw := record[5]
		runtimeRaw := record[7]

		if !validTitleType(titleType) || adult != "0" {
			continue
		}
		startYear, ok := parseOptionalUint(startYearRaw, 16)
		if !ok {
			continue
		}
		runtime, ok := parseOptionalUint(runtimeRaw, 16)
		if !ok {
			continue
		}
		voteCount, ok := votes[titleID]
		if !ok {
			continue
		}

		title := Title{
			TitleID:      titleID,
			PrimaryTitle: primaryTitle,
			Year:         uint16(startYear),
			Runtime:      uint16(runtime),
			VoteCount:    voteCount,
		}
		if originalTitle != primaryTitle {
			title.OriginalTitle = originalTitle
		}

		entries[titleID] = title
	}

	return entries, nil
}

func buildReverseIndex(entries map[TitleID]Title) map[string]map[TitleID]struct{} {
	reverse := make(map[string]map[TitleID]struct{})

	index := func(text string, id TitleID) {
		for _, tok := range tokenize(text) {
			bucket, ok := reverse[tok]
			if !ok {
				bucket = make(map[TitleID]struct{})
				reverse[tok] = bucket
			}
			bucket[id] = struct{}{}
		}
	}

	for _, entry := range entries {
		index(entry.PrimaryTitle, entry.TitleID)
		if entry.OriginalTitle != "" {
			index(entry.OriginalTitle, entry.TitleID)
		}
	}

	return reverse
}

// Build reads title.basics.tsv.gz and title.ratings.tsv.gz from dataDir
// and constructs a fresh Index. It does not touch any persisted blob.
func Build(dataDir string) (*Index, error) {
	votes, err := buildVoteTable(dataDir)
	if err != nil {
		return nil, ferr.Wrap(ferr.KindCatalogParse, "read title.ratings.tsv.gz", err)
	}

	entries, err := buildEntriesTable(dataDir, votes)
	if err != nil {
		return nil, ferr.Wrap(ferr.KindCatalogParse, "read title.basics.tsv.gz", err)
	}

	reverse := buildReverseIndex(entries)

	return &Index{entries: entries, reverse: reverse}, nil
}

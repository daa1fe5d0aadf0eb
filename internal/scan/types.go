// Package scan walks an import tree, parses candidate filenames, prunes
// featurettes/samples by peer size, identifies movies against the
// catalog index, and attaches subtitles.
package scan

import "github.com/MimeLyc/flicks/internal/catalog"

// MovieIdentity is extensible: at minimum the resolved catalog title,
// optionally enriched with an external metadata id in the future.
type MovieIdentity struct {
	TitleID catalog.TitleID
	Title   string
}

// SubtitleFile is one subtitle attached to a MovieFile.
type SubtitleFile struct {
	Path        string
	Size        int64
	Lang        string
	Ext         string
	Fingerprint string
}

// MovieFile is one scanned candidate. Identity is unset when the filename
// didn't parse or no catalog entry matched.
type MovieFile struct {
	Path        string
	Size        int64
	Identity    *catalog.Scored[MovieIdentity]
	Fingerprint string
	Subtitles   []SubtitleFile
}

// ScanReport is the persisted handoff between scan and import.
type ScanReport struct {
	ImportRoot string
	Movies     []MovieFile
}

// Package library is the persistent relational store of ingested movies:
// an embedded sqlite database at <root>/.meta/library.db holding files,
// movies, subtitles, images, and background catalog-refresh jobs.
package library

import (
	"time"

	"github.com/MimeLyc/flicks/internal/catalog"
)

// File is one library-relative file on disk, uniquely identified by its
// content fingerprint.
type File struct {
	ID          int64
	Path        string
	Fingerprint string
}

// Subtitle is one subtitle file owned by a Movie.
type Subtitle struct {
	FileID      int64
	Path        string
	Fingerprint string
	Lang        string
}

// ImageKind distinguishes the two image roles a Movie may have.
type ImageKind string

const (
	ImageKindPoster   ImageKind = "poster"
	ImageKindBackdrop ImageKind = "backdrop"
)

// Image is one artwork file owned by a Movie.
type Image struct {
	FileID int64
	Kind   ImageKind
}

// Movie is one ingested title: its primary file plus dependent subtitles
// and images.
type Movie struct {
	ID            int64
	File          File
	IMDbID        catalog.TitleID
	PrimaryTitle  string
	OriginalTitle string
	Year          uint16
	Subtitles     []Subtitle
	Images        []Image
	CreatedAt     time.Time
}

// QueryFilter narrows the result of Query.
type QueryFilter struct {
	Title      string
	HasYear    bool
	Year       int
	HasYearGTE bool
	YearGTE    int
	HasYearLTE bool
	YearLTE    int
}

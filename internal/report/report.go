// Package report serializes and deserializes a scan.ScanReport, the
// persisted handoff artifact between the scan and import commands.
package report

import (
	"compress/gzip"
	"encoding/gob"
	"os"

	"github.com/MimeLyc/flicks/internal/scan"
)

// DefaultPath is the filename used when the caller doesn't specify one.
const DefaultPath = "scan-report.mero"

// Save writes report to path as a gzip-compressed gob blob.
func Save(path string, rep *scan.ScanReport) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	gz := gzip.NewWriter(f)
	encErr := gob.NewEncoder(gz).Encode(rep)
	closeErr := gz.Close()
	syncErr := f.Sync()
	f.Close()
	if encErr != nil || closeErr != nil || syncErr != nil {
		os.Remove(tmpPath)
		if encErr != nil {
			return encErr
		}
		if closeErr != nil {
			return closeErr
		}
		return syncErr
	}

	return os.Rename(tmpPath, path)
}

// Load reads a report previously written by Save.
func Load(path string) (*scan.ScanReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var rep scan.ScanReport
	if err := gob.NewDecoder(gz).Decode(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

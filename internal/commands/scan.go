package commands

import (
	"fmt"

	"github.com/MimeLyc/flicks/internal/ignore"
	"github.com/MimeLyc/flicks/internal/report"
	"github.com/MimeLyc/flicks/internal/scan"
	"github.com/MimeLyc/flicks/internal/vfs"
)

// Scan walks directory, identifies candidates against the catalog, and
// writes a ScanReport to outPath.
func (a *App) Scan(directory, outPath string) error {
	ign, err := ignore.Load(a.DataDir)
	if err != nil {
		return err
	}

	root, err := vfs.Walk(directory, ign.AsMap())
	if err != nil {
		return err
	}

	rep, err := scan.Scan(root, a.Index)
	if err != nil {
		return err
	}

	if err := report.Save(outPath, rep); err != nil {
		return err
	}

	fmt.Printf("Scanned %d candidate movie(s); report written to %s\n", len(rep.Movies), outPath)
	return nil
}

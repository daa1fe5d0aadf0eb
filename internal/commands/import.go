package commands

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/MimeLyc/flicks/internal/classify"
	"github.com/MimeLyc/flicks/internal/importer"
	"github.com/MimeLyc/flicks/internal/report"
	"github.com/MimeLyc/flicks/internal/transfer"
)

// Import loads reportPath, classifies it against the library, and
// transfers every match in. quit is a process-wide flag set once by an
// installed signal handler (see cmd/flicks); the import loop samples it
// between transfer steps and between movies.
func (a *App) Import(reportPath string, quit *atomic.Bool) error {
	rep, err := report.Load(reportPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	c, err := classify.Classify(ctx, a.Library, rep.Movies)
	if err != nil {
		return err
	}

	if len(c.Conflicts) > 0 {
		fmt.Printf("Skipping %d conflicting title(s); resolve manually before importing.\n", len(c.Conflicts))
	}

	cancelled := func() bool { return quit != nil && quit.Load() }
	onProgress := func(t *transfer.Transfer) {
		fmt.Printf("%s: %s\n", t.Dst, t.State)
	}

	if err := importer.Import(ctx, a.Index, a.Library, a.Config.RootPath, c.Matches, cancelled, onProgress); err != nil {
		return err
	}

	if cancelled() {
		fmt.Println("Import cancelled.")
	} else {
		fmt.Printf("Imported %d movie(s).\n", len(c.Matches))
	}
	return nil
}

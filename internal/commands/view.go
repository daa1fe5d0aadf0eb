package commands

import (
	"context"
	"fmt"

	"github.com/MimeLyc/flicks/internal/classify"
	"github.com/MimeLyc/flicks/internal/report"
)

// View loads reportPath and prints a classified summary. HTML rendering
// is an external collaborator (out of core scope); this always renders
// the plain-text view regardless of noHTML.
func (a *App) View(reportPath string, noHTML bool) error {
	rep, err := report.Load(reportPath)
	if err != nil {
		return err
	}

	c, err := classify.Classify(context.Background(), a.Library, rep.Movies)
	if err != nil {
		return err
	}

	fmt.Printf("Import root: %s\n\n", rep.ImportRoot)
	fmt.Printf("Matches (%d):\n", len(c.Matches))
	for _, m := range c.Matches {
		fmt.Printf("  %s -> %s\n", m.Path, m.Identity.Value.Title)
	}
	fmt.Printf("\nDuplicates (%d):\n", len(c.Duplicates))
	for _, m := range c.Duplicates {
		fmt.Printf("  %s -> %s\n", m.Path, m.Identity.Value.Title)
	}
	fmt.Printf("\nConflicts (%d titles):\n", len(c.Conflicts))
	for titleID, group := range c.Conflicts {
		fmt.Printf("  %s:\n", titleID)
		for _, m := range group {
			fmt.Printf("    %s\n", m.Path)
		}
	}
	fmt.Printf("\nUnmatched (%d):\n", len(c.Unmatched))
	for _, m := range c.Unmatched {
		fmt.Printf("  %s\n", m.Path)
	}
	fmt.Printf("\nIgnored (%d, already in library)\n", len(c.Ignored))

	return nil
}

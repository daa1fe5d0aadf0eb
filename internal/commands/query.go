package commands

import (
	"context"
	"fmt"

	"github.com/MimeLyc/flicks/internal/library"
)

// Query substring-matches primary/original title and range-filters by
// year, printing results ordered (year, primary_title) ascending.
func (a *App) Query(filter library.QueryFilter) error {
	movies, err := a.Library.Query(context.Background(), filter)
	if err != nil {
		return err
	}

	for _, m := range movies {
		fmt.Printf("%d  %s  (%s)\n", m.Year, m.PrimaryTitle, m.IMDbID)
	}
	fmt.Printf("\n%d movie(s) matched.\n", len(movies))
	return nil
}

package commands

import (
	"context"
	"fmt"
)

// Sync deletes library entries whose backing file no longer exists.
func (a *App) Sync() error {
	removed, err := a.Library.Sync(context.Background(), a.Config.RootPath)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d missing entry(s) from the library.\n", removed)
	return nil
}

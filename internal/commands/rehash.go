package commands

import (
	"context"
	"fmt"
)

// Rehash recomputes fingerprints for every library file, updating rows
// whose content changed since last hashed.
func (a *App) Rehash() error {
	changed, err := a.Library.Rehash(context.Background(), a.Config.RootPath)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %d fingerprint(s).\n", changed)
	return nil
}

package commands

import (
	"fmt"

	"github.com/MimeLyc/flicks/internal/ignore"
)

// IgnoreAdd adds paths to the canonical ignore set.
func (a *App) IgnoreAdd(paths ...string) error {
	ign, err := ignore.Load(a.DataDir)
	if err != nil {
		return err
	}
	if err := ign.Add(paths...); err != nil {
		return err
	}
	fmt.Printf("Added %d path(s) to the ignore list.\n", len(paths))
	return nil
}

// IgnoreRemove removes paths from the canonical ignore set.
func (a *App) IgnoreRemove(paths ...string) error {
	ign, err := ignore.Load(a.DataDir)
	if err != nil {
		return err
	}
	if err := ign.Remove(paths...); err != nil {
		return err
	}
	fmt.Printf("Removed %d path(s) from the ignore list.\n", len(paths))
	return nil
}

// IgnoreList prints every ignored path.
func (a *App) IgnoreList() error {
	ign, err := ignore.Load(a.DataDir)
	if err != nil {
		return err
	}
	for _, p := range ign.List() {
		fmt.Println(p)
	}
	return nil
}

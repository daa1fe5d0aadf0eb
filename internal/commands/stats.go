package commands

import (
	"context"
	"fmt"
)

// Stats prints the library's movie count.
func (a *App) Stats() error {
	count, err := a.Library.Count(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("There are %d movies in the library.\n", count)
	return nil
}

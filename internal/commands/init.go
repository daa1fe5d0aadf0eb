package commands

import (
	"fmt"
	"path/filepath"

	"github.com/MimeLyc/flicks/internal/config"
)

// Init writes a fresh config file pointing the library root at
// directory, creating no library data until the first scan/import.
func Init(configPath, directory string) error {
	absRoot, err := filepath.Abs(directory)
	if err != nil {
		return err
	}

	cfg := config.Config{RootPath: absRoot}
	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	fmt.Printf("Initialized flicks library at %s\n", absRoot)
	return nil
}

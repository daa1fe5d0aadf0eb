package catalog

import "os"

// Refresh forces a fresh rebuild of the index in dataDir: it discards any
// previously downloaded IMDb TSVs, re-fetches them, rebuilds the index from
// scratch, and persists the result. Unlike LoadOrBuild it never reuses a
// cached index.gz.
func Refresh(dataDir string) (*Index, error) {
	os.Remove(dataDir + "/" + basicsFileName)
	os.Remove(dataDir + "/" + ratingsFileName)

	if err := EnsureSourceFiles(dataDir); err != nil {
		return nil, err
	}

	idx, err := Build(dataDir)
	if err != nil {
		return nil, err
	}
	if err := idx.Save(dataDir); err != nil {
		return nil, err
	}
	return idx, nil
}

package catalog

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/MimeLyc/flicks/internal/ferr"
	"github.com/MimeLyc/flicks/pkg/log"
)

const (
	basicsURL  = "https://datasets.imdbws.com/title.basics.tsv.gz"
	ratingsURL = "https://datasets.imdbws.com/title.ratings.tsv.gz"
)

var httpClient = &http.Client{Timeout: 15 * time.Minute}

// EnsureSourceFiles downloads the two IMDb TSVs into dataDir if they are
// not already present. Existing files are never re-fetched.
func EnsureSourceFiles(dataDir string) error {
	if err := downloadIfMissing(basicsURL, dataDir+"/"+basicsFileName); err != nil {
		return err
	}
	return downloadIfMissing(ratingsURL, dataDir+"/"+ratingsFileName)
}

func downloadIfMissing(url, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return nil
	}

	log.Info("catalog: downloading %s", url)

	resp, err := httpClient.Get(url)
	if err != nil {
		return ferr.Wrap(ferr.KindNetwork, "download "+url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ferr.New(ferr.KindNetwork, "download "+url+": unexpected status "+resp.Status)
	}

	tmpPath := dest + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return ferr.Wrap(ferr.KindNetwork, "download "+url, copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return closeErr
	}

	return os.Rename(tmpPath, dest)
}

// importer/bundle.go
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xyproto/unzip"
)

// ImportBundle imports every .csv statement inside a zip archive, the
// form brokers hand out for multi-period exports. The archive is extracted
// to a temporary directory that is removed afterwards.
func (imp *Importer) ImportBundle(ctx context.Context, zipPath string) (*BatchResult, error) {
	dir, err := os.MkdirTemp("", "ledger-bundle-")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(zipPath, dir); err != nil {
		return nil, fmt.Errorf("extract %s: %w", zipPath, err)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".csv") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk bundle: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .csv statements in %s", zipPath)
	}

	return imp.ImportFiles(ctx, paths), nil
}

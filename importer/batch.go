// importer/batch.go
package importer

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/rustyeddy/ledger/statement"
)

// FileResult pairs one statement file with its import outcome.
type FileResult struct {
	Path   string
	Result *ImportResult
}

// BatchResult summarizes importing several statement files.
type BatchResult struct {
	Files []FileResult
}

// Succeeded counts files that imported cleanly.
func (b *BatchResult) Succeeded() int {
	n := 0
	for _, f := range b.Files {
		if f.Result.Success {
			n++
		}
	}
	return n
}

// TradeCount sums imported trades across files.
func (b *BatchResult) TradeCount() int {
	n := 0
	for _, f := range b.Files {
		n += len(f.Result.Trades)
	}
	return n
}

// ImportFiles imports several statement files concurrently. Parsing and
// aggregation run in parallel per file; each file's trades still commit in
// their own all-or-nothing transaction, serialized by the importer's
// writer lock. Results come back sorted by path.
func (imp *Importer) ImportFiles(ctx context.Context, paths []string) *BatchResult {
	batch := &BatchResult{Files: make([]FileResult, len(paths))}

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			batch.Files[i] = FileResult{Path: path, Result: imp.importFile(ctx, path)}
		}(i, path)
	}
	wg.Wait()

	sort.Slice(batch.Files, func(i, j int) bool {
		return batch.Files[i].Path < batch.Files[j].Path
	})
	return batch
}

func (imp *Importer) importFile(ctx context.Context, path string) *ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ImportResult{
			Account: statement.UnknownAccount(),
			Errors:  []string{fmt.Sprintf("read %s: %v", path, err)},
		}
	}
	return imp.ImportStatement(ctx, string(data))
}

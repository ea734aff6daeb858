package deployment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of signing a single file of a batch.
type BatchResult struct {
	Input  string
	Output string
	// ID is the new transaction ID, it's empty if Err is set.
	ID  string
	Err error
}

// SignBatch signs every *.json file from inDir into the file with the same
// name in outDir using up to workers goroutines. Every file is processed
// independently, failures are reported per file in the result. The error
// is only returned when directories can't be used.
func (s *Signer) SignBatch(ctx context.Context, inDir, outDir string, k *Keys, workers int) ([]BatchResult, error) {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err = os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	var res []BatchResult
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		res = append(res, BatchResult{
			Input:  filepath.Join(inDir, e.Name()),
			Output: filepath.Join(outDir, e.Name()),
		})
	}
	if workers <= 0 {
		workers = 1
	}
	s.log.Info("signing batch",
		zap.String("input", inDir),
		zap.String("output", outDir),
		zap.Int("files", len(res)),
		zap.Int("workers", workers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range res {
		r := &res[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				r.Err = err
				return nil
			}
			tx, err := s.SignFile(r.Input, r.Output, k)
			if err != nil {
				r.Err = err
				s.log.Warn("failed to sign transaction", zap.String("input", r.Input), zap.Error(err))
				return nil
			}
			r.ID = tx.ID
			return nil
		})
	}
	_ = g.Wait()
	return res, nil
}

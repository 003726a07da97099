package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// DefaultWorkers bounds AnalyzeBatch when workers is not positive.
const DefaultWorkers = 4

// AnalyzeBatch analyzes independent resume files with at most workers running
// at once. Reports are returned in the order of paths. The first failure
// cancels the remaining analyses and is returned.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, paths []string, jobDescription string, workers int) ([]*types.Report, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	reports := make([]*types.Report, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			report, err := a.Analyze(gCtx, Input{Path: path, JobDescription: jobDescription})
			if err != nil {
				return fmt.Errorf("analyzing %s: %w", path, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.logger.Info().Int("files", len(paths)).Int("workers", workers).Msg("batch analysis complete")
	return reports, nil
}

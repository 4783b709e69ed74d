package detect

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/docguard/anonymizer-cli/internal/apperr"
	"github.com/docguard/anonymizer-cli/internal/block"
)

// NlpResult is one block's outcome from the concurrent NLP fan-out: either
// Detections or a Warning, never both.
type NlpResult struct {
	BlockID    string
	Detections []Detection
	Warning    *apperr.Warning
}

// RunNlp invokes detector once per block, in parallel, bounded by
// concurrency goroutines at a time, each wrapped in its own per-call
// timeout (spec §5). Results are collected before returning, so the caller
// (DetectionMerger) always sees the complete per-block set. A block whose
// call errors or times out contributes no NLP detections and a warning; it
// never aborts the other blocks' calls (spec §4.5, §5).
func RunNlp(ctx context.Context, detector NlpDetector, blocks []block.Block, concurrency int, perCallTimeout time.Duration) []NlpResult {
	results := make([]NlpResult, len(blocks))

	g := new(errgroup.Group)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, b := range blocks {
		i, b := i, b
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, perCallTimeout)
			defer cancel()

			dets, err := detector.Detect(callCtx, b.ID, string(b.Kind), b.Text)
			if err != nil {
				w := apperr.NewWarning(apperr.NlpWarning, b.ID, "nlp detection failed: %v", err)
				results[i] = NlpResult{BlockID: b.ID, Warning: &w}
				log.Logf(b.ID, "nlp call failed: %v", err)
				return nil // isolated: never fails the group
			}
			results[i] = NlpResult{BlockID: b.ID, Detections: dets}
			log.Logf(b.ID, "nlp returned %d detection(s)", len(dets))
			return nil
		})
	}

	// g.Wait() never returns an error: every goroutine above always
	// returns nil and records its own outcome in results instead.
	_ = g.Wait()

	return results
}

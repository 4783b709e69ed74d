package detect

import (
	"sort"

	"github.com/docguard/anonymizer-cli/internal/block"
	"github.com/docguard/anonymizer-cli/internal/docmodel"
	"github.com/docguard/anonymizer-cli/internal/surrogate"
)

// Plan is a Detection enriched with its surrogate identifier and the
// block's element reference, ready for Applier (spec §3 ReplacementPlan).
type Plan struct {
	Detection
	UUID       string
	ElementRef docmodel.ElementRef
}

// Merge unions each block's rule and NLP detections, resolves overlaps, and
// enriches the survivors into ReplacementPlans via mapper (spec §4.6). The
// result is ordered by block traversal order then by span start within a
// block (spec §5).
func Merge(blocks []block.Block, ruleByBlock, nlpByBlock map[string][]Detection, mapper *surrogate.Mapper) []Plan {
	var plans []Plan
	for _, b := range blocks {
		combined := make([]Detection, 0, len(ruleByBlock[b.ID])+len(nlpByBlock[b.ID]))
		combined = append(combined, ruleByBlock[b.ID]...)
		combined = append(combined, nlpByBlock[b.ID]...)

		for _, d := range resolveOverlaps(combined) {
			plans = append(plans, Plan{
				Detection:  d,
				UUID:       mapper.UUIDFor(d.OriginalValue, d.Category),
				ElementRef: b.ElementRef,
			})
		}
	}
	return plans
}

// resolveOverlaps returns the pairwise-disjoint subset of dets surviving
// spec §4.6's overlap rule: two detections overlap iff they intersect
// (they are always from the same block here, by construction of Merge's
// per-block grouping). When two overlap, the NLP detection wins outright,
// regardless of confidence; ties between two detections from the same
// source are broken by higher confidence, then wider span, then
// lexicographically smaller method name.
//
// Implementation: candidates are stable-sorted by `wins`, so detections
// equal on source, confidence, width and method keep their input order;
// then each candidate that doesn't overlap an already-accepted one is
// accepted greedily. This applies the pairwise rule transitively across a
// whole block, not just for isolated pairs.
func resolveOverlaps(dets []Detection) []Detection {
	sorted := append([]Detection(nil), dets...)
	sort.SliceStable(sorted, func(i, j int) bool { return wins(sorted[i], sorted[j]) })

	var accepted []Detection
	for _, d := range sorted {
		clashes := false
		for _, a := range accepted {
			if d.Span.Overlaps(a.Span) {
				clashes = true
				break
			}
		}
		if !clashes {
			accepted = append(accepted, d)
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool { return accepted[i].Span.Start < accepted[j].Span.Start })
	return accepted
}

// wins reports whether a should be preferred over b when the two overlap.
func wins(a, b Detection) bool {
	as, bs := sourceRank(a.Source), sourceRank(b.Source)
	if as != bs {
		return as > bs
	}
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if a.Span.Len() != b.Span.Len() {
		return a.Span.Len() > b.Span.Len()
	}
	return a.Method < b.Method
}

func sourceRank(s Source) int {
	if s == SourceNlp {
		return 1
	}
	return 0
}

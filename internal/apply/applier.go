package apply

import (
	"sort"

	"github.com/beevik/etree"

	"github.com/docguard/anonymizer-cli/internal/detect"
	"github.com/docguard/anonymizer-cli/internal/docmodel"
)

// Applier rewrites a Document in place according to a set of
// ReplacementPlans, then leaves it ready for Document.WriteTo.
type Applier struct {
	Opts Options
}

// New builds an Applier with the given options.
func New(opts Options) *Applier {
	return &Applier{Opts: opts}
}

// Apply groups plans by block, applies each block's plans in descending
// span-start order (spec §4.7, so that a still-pending span to the left of
// an already-applied one stays valid), dispatches by element kind, and
// finally runs the header/footer fallback sweep. The source tree held by
// doc is mutated directly; doc is never re-read from disk.
func (a *Applier) Apply(doc *docmodel.Document, plans []detect.Plan) []Result {
	order, grouped := groupByBlock(plans)

	var results []Result
	for _, blockID := range order {
		group := grouped[blockID]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Span.Start > group[j].Span.Start })

		ref := group[0].ElementRef
		var blockResults []Result
		switch ref.Kind {
		case docmodel.KindParagraph:
			blockResults = a.applyParagraphGroup(ref.Paragraph, group)
		case docmodel.KindTable:
			blockResults = a.applyTableGroup(ref.Table, group)
		case docmodel.KindSdt:
			blockResults = a.applySdtGroup(ref.Sdt, group)
		}
		for _, r := range blockResults {
			if !r.Applied {
				log.Logf(blockID, "skipped %q: %s", r.Plan.OriginalValue, r.SkipReason)
			}
		}
		// Plans were applied right to left; report them left to right.
		for i, j := 0, len(blockResults)-1; i < j; i, j = i+1, j-1 {
			blockResults[i], blockResults[j] = blockResults[j], blockResults[i]
		}
		results = append(results, blockResults...)
	}

	fallback := a.fallbackSweep(doc, plans)
	if len(fallback) > 0 {
		log.Warnf("fallback sweep applied %d additional replacement(s) in header/footer parts", len(fallback))
	}
	results = append(results, fallback...)
	return results
}

func groupByBlock(plans []detect.Plan) ([]string, map[string][]detect.Plan) {
	grouped := make(map[string][]detect.Plan)
	var order []string
	for _, p := range plans {
		if _, ok := grouped[p.BlockID]; !ok {
			order = append(order, p.BlockID)
		}
		grouped[p.BlockID] = append(grouped[p.BlockID], p)
	}
	return order, grouped
}

func (a *Applier) applyParagraphGroup(paragraph *etree.Element, group []detect.Plan) []Result {
	results := make([]Result, 0, len(group))
	for _, p := range group {
		applied, reason := spliceReplace(runCarriers(paragraph, a.Opts), p.OriginalValue, p.UUID)
		results = append(results, Result{Plan: p, Applied: applied, SkipReason: reason})
	}
	return results
}

func (a *Applier) applySdtGroup(sdt *etree.Element, group []detect.Plan) []Result {
	results := make([]Result, 0, len(group))
	for _, p := range group {
		applied, reason := spliceReplace(sdtCarriers(sdt, a.Opts), p.OriginalValue, p.UUID)
		results = append(results, Result{Plan: p, Applied: applied, SkipReason: reason})
	}
	return results
}

// applyTableGroup re-derives the table's projection before each plan, since
// an earlier plan in this same group may have changed cell lengths; the
// group is already sorted by descending span start, so re-derivation never
// invalidates a still-pending plan's start offset (spec §4.7).
func (a *Applier) applyTableGroup(table *etree.Element, group []detect.Plan) []Result {
	results := make([]Result, 0, len(group))
	for _, p := range group {
		_, spans := docmodel.TableProjection(table)

		cell, ok := locateCell(spans, p.Span)
		if !ok {
			results = append(results, Result{Plan: p, Applied: false, SkipReason: "span straddles cell boundary"})
			continue
		}

		applied, reason := false, "text not found in cell"
		for _, para := range docmodel.CellParagraphs(cell.Cell) {
			if ok, r := spliceReplace(runCarriers(para, a.Opts), p.OriginalValue, p.UUID); ok {
				applied, reason = true, ""
				break
			} else if r != "" {
				reason = r
			}
		}
		results = append(results, Result{Plan: p, Applied: applied, SkipReason: reason})
	}
	return results
}

// locateCell finds the cell span containing start, and confirms the whole
// plan span fits inside it without crossing into the next cell or row
// separator.
func locateCell(spans []docmodel.CellSpan, span detect.Span) (docmodel.CellSpan, bool) {
	for _, cs := range spans {
		if span.Start >= cs.Start && span.Start < cs.End {
			if span.End > cs.End {
				return docmodel.CellSpan{}, false
			}
			return cs, true
		}
	}
	return docmodel.CellSpan{}, false
}

// fallbackSweep implements spec §4.7's "Header/footer fallback sweep":
// every distinct (original_value, uuid) pair seen anywhere in this run is
// attempted, in turn, against every header and footer paragraph returned by
// docmodel.HeaderFooterParagraphs; paragraphs inside a w:sdt subtree are not
// part of that set and are not swept. This is done so that
// occurrences the per-block traversal didn't individually address (the
// same literal surfacing in a sibling header/footer part) still get
// replaced. Already-applied occurrences are naturally idempotent, since
// the text being searched for is the original literal, not the surrogate.
// Only successful applications are reported, so the result set isn't
// dominated by the expected "pair absent from this paragraph" non-events.
func (a *Applier) fallbackSweep(doc *docmodel.Document, plans []detect.Plan) []Result {
	pairs := uniquePairs(plans)
	if len(pairs) == 0 {
		return nil
	}

	var results []Result
	for _, h := range doc.Headers {
		results = append(results, a.sweepParagraphs(docmodel.HeaderFooterParagraphs(h.Root), pairs)...)
	}
	for _, f := range doc.Footers {
		results = append(results, a.sweepParagraphs(docmodel.HeaderFooterParagraphs(f.Root), pairs)...)
	}
	return results
}

func (a *Applier) sweepParagraphs(paragraphs []*etree.Element, pairs []detect.Plan) []Result {
	var results []Result
	for _, para := range paragraphs {
		for _, p := range pairs {
			if applied, _ := spliceReplace(runCarriers(para, a.Opts), p.OriginalValue, p.UUID); applied {
				results = append(results, Result{Plan: p, Applied: true})
			}
		}
	}
	return results
}

func uniquePairs(plans []detect.Plan) []detect.Plan {
	seen := make(map[pairKey]bool)
	out := make([]detect.Plan, 0, len(plans))
	for _, p := range plans {
		k := pairKey{p.OriginalValue, p.UUID}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

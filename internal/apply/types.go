// Package apply rewrites a parsed document so that every ReplacementPlan's
// span is replaced with its surrogate, without disturbing adjacent
// formatting, then hands the mutated tree back for serialisation (spec
// §4.7).
package apply

import "github.com/docguard/anonymizer-cli/internal/detect"

// Result records the outcome of attempting one ReplacementPlan. A plan that
// could not be applied (stale text, a span straddling a table cell
// boundary, ...) is a soft failure: it is recorded here, never returned as
// an error (spec §7).
type Result struct {
	Plan       detect.Plan
	Applied    bool
	SkipReason string
}

// Options controls Applier's visible side effects.
type Options struct {
	// Highlight, when true, marks every newly written surrogate with a
	// highlight colour (spec §4.7 "Highlighting"). Default true.
	Highlight bool
	// HighlightColor is the w:highlight value used when Highlight is set.
	// Empty means the package default ("yellow").
	HighlightColor string
}

func (o Options) color() string {
	if o.HighlightColor != "" {
		return o.HighlightColor
	}
	return "yellow"
}

type pairKey struct {
	original string
	uuid     string
}

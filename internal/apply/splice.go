package apply

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/docguard/anonymizer-cli/internal/docmodel"
)

// textCarrier is one contiguous text-bearing unit (a run, or an SDT text
// node) that spliceReplace can rewrite. Both the paragraph and SDT
// replacement algorithms in spec §4.7 are the same algorithm applied to a
// different carrier sequence, so they share this one implementation.
type textCarrier struct {
	Text      string
	SetText   func(string)
	Highlight func()
}

// spliceReplace implements spec §4.7's paragraph-replacement algorithm:
// first try to rewrite original wholly within a single carrier; otherwise
// find the ordered carriers whose concatenated text contains original,
// splice it out of the first intersecting carrier (inheriting that
// carrier's formatting) and insert surrogate there, and delete the
// intersecting remainder from every subsequent carrier. Operates on raw
// byte offsets of literal string matches, so it never needs the code-point
// conversion detection spans require.
func spliceReplace(carriers []textCarrier, original, surrogate string) (applied bool, skipReason string) {
	if original == "" {
		return false, "text not found"
	}

	for _, c := range carriers {
		if idx := strings.Index(c.Text, original); idx >= 0 {
			c.SetText(c.Text[:idx] + surrogate + c.Text[idx+len(original):])
			c.Highlight()
			return true, ""
		}
	}

	type span struct{ start, end int }
	spans := make([]span, len(carriers))
	var full strings.Builder
	offset := 0
	for i, c := range carriers {
		spans[i] = span{offset, offset + len(c.Text)}
		offset += len(c.Text)
		full.WriteString(c.Text)
	}

	idx := strings.Index(full.String(), original)
	if idx < 0 {
		return false, "text not found"
	}
	start, end := idx, idx+len(original)

	var touched []int
	for i, sp := range spans {
		if sp.start < end && start < sp.end {
			touched = append(touched, i)
		}
	}
	if len(touched) == 0 {
		return false, "text not found"
	}

	first := touched[0]
	fc, fs := carriers[first], spans[first]
	localStart := clamp(start-fs.start, 0, len(fc.Text))
	localEnd := clamp(end-fs.start, 0, len(fc.Text))
	fc.SetText(fc.Text[:localStart] + surrogate + fc.Text[localEnd:])
	fc.Highlight()

	for _, i := range touched[1:] {
		c, sp := carriers[i], spans[i]
		ls := clamp(start-sp.start, 0, len(c.Text))
		le := clamp(end-sp.start, 0, len(c.Text))
		c.SetText(c.Text[:ls] + c.Text[le:])
	}

	return true, ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// runCarriers exposes a paragraph's runs as textCarriers. A run's formatting
// is preserved by construction: SetText only ever touches the run's w:t
// children, never its w:rPr.
func runCarriers(paragraph *etree.Element, opts Options) []textCarrier {
	runs := docmodel.Runs(paragraph)
	out := make([]textCarrier, len(runs))
	for i, r := range runs {
		r := r
		out[i] = textCarrier{
			Text:    docmodel.RunText(r),
			SetText: func(s string) { docmodel.SetRunText(r, s) },
			Highlight: func() {
				if opts.Highlight {
					docmodel.RunHighlight(r, opts.color())
				}
			},
		}
	}
	return out
}

// sdtCarriers exposes an SDT subtree's text nodes as textCarriers, in
// document order (spec §4.7 "SDT replacement"). Highlighting reaches up to
// the enclosing run when the text node is run-hosted, matching the
// paragraph case; a bare text node with no run parent is rewritten without
// a highlight, since WordprocessingML has no highlight facility outside
// w:rPr.
func sdtCarriers(root *etree.Element, opts Options) []textCarrier {
	nodes := docmodel.TextNodes(root)
	out := make([]textCarrier, len(nodes))
	for i, n := range nodes {
		n := n
		out[i] = textCarrier{
			Text:    n.Text(),
			SetText: func(s string) { n.SetText(s) },
			Highlight: func() {
				if !opts.Highlight {
					return
				}
				if parent := n.Parent(); parent != nil && isRunTag(parent.Tag) {
					docmodel.RunHighlight(parent, opts.color())
				}
			},
		}
	}
	return out
}

func isRunTag(tag string) bool {
	return tag == "r" || strings.HasSuffix(tag, ":r")
}

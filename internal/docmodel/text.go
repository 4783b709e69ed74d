package docmodel

import (
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
)

// RuneIndex converts a byte offset into s (as produced by the standard
// library regexp package, which reports byte offsets) into a code-point
// offset, the unit spec §3 defines spans in.
func RuneIndex(s string, byteIdx int) int {
	return utf8.RuneCountInString(s[:byteIdx])
}

// RuneSlice returns s[start:end] where start/end are code-point offsets.
func RuneSlice(s string, start, end int) string {
	r := []rune(s)
	return string(r[start:end])
}

// RuneLen returns the code-point length of s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Normalize applies the text normalisation every block's text and every
// re-extraction during apply must agree on (spec §4.1): non-breaking spaces
// become ordinary spaces, runs of whitespace collapse to one space, and
// leading/trailing whitespace is stripped. BlockBuilder and Applier both
// call this so detection spans measured against one line up with the other.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// Runs returns the w:r children of a paragraph, in document order.
func Runs(paragraph *etree.Element) []*etree.Element {
	return childElements(paragraph, "r")
}

// RunTextElements returns the w:t children of a run. Most runs carry exactly
// one; a run with several is treated as one contiguous text unit addressed
// by their concatenation.
func RunTextElements(run *etree.Element) []*etree.Element {
	return childElements(run, "t")
}

// RunText returns the concatenated text of a run's w:t children.
func RunText(run *etree.Element) string {
	var b strings.Builder
	for _, t := range RunTextElements(run) {
		b.WriteString(t.Text())
	}
	return b.String()
}

// SetRunText replaces a run's text with s, writing it into the first w:t
// child and clearing any others, and ensures xml:space="preserve" is set so
// leading/trailing spaces in the surrogate survive round-tripping.
func SetRunText(run *etree.Element, s string) {
	ts := RunTextElements(run)
	if len(ts) == 0 {
		t := run.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(s)
		return
	}
	ts[0].SetText(s)
	ts[0].CreateAttr("xml:space", "preserve")
	for _, extra := range ts[1:] {
		extra.SetText("")
	}
}

// ParagraphRawText concatenates a paragraph's runs' text, unnormalised. This
// is the text BlockBuilder normalises to produce a paragraph block, and what
// Applier re-extracts to detect stale spans (spec §4.7 edge case).
func ParagraphRawText(paragraph *etree.Element) string {
	var b strings.Builder
	for _, r := range Runs(paragraph) {
		b.WriteString(RunText(r))
	}
	return b.String()
}

// RunHighlight sets a run's highlight colour via w:rPr/w:highlight, creating
// the run properties element if absent. Used to mark newly written
// surrogate text (spec §4.7 "Highlighting").
func RunHighlight(run *etree.Element, color string) {
	rPr := run.SelectElement("w:rPr")
	if rPr == nil {
		rPr = etree.NewElement("w:rPr")
		run.InsertChildAt(0, rPr)
	}
	hl := rPr.SelectElement("w:highlight")
	if hl == nil {
		hl = rPr.CreateElement("w:highlight")
	}
	hl.CreateAttr("w:val", color)
}

// TextNodes returns every w:t descendant of root, in document order. Used by
// the SDT replacement algorithm, which addresses text at the level of raw
// text nodes rather than runs (spec §4.7 "SDT replacement").
func TextNodes(root *etree.Element) []*etree.Element {
	return descendantElements(root, "t")
}

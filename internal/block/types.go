// Package block flattens a parsed document into an ordered list of
// addressable text blocks (spec §3, §4.1). Each Block is immutable once
// built and carries a link back to the structural element it was produced
// from, so later pipeline stages can plan and apply replacements without
// re-parsing the document.
package block

import "github.com/docguard/anonymizer-cli/internal/docmodel"

// Kind is the origin of a Block, encoded in its BlockID prefix.
type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindTable     Kind = "table"
	KindHeader    Kind = "header"
	KindFooter    Kind = "footer"
	KindHeaderSdt Kind = "header_sdt"
	KindFooterSdt Kind = "footer_sdt"
)

// Block is an immutable record produced by Builder.Build. Text is the
// normalised plain-text projection of the element (spec §4.1); ElementRef is
// non-nil and owned by exactly one Block.
type Block struct {
	ID         string
	Text       string
	ElementRef docmodel.ElementRef
	Kind       Kind
}

package docmodel

import "github.com/beevik/etree"

// ElementKind is the closed sum type spec §9 asks for in place of runtime
// type-switching in the applier: every ElementRef is exactly one of these
// three shapes, and Applier dispatches on Kind rather than on a Go type
// assertion.
type ElementKind int

const (
	KindParagraph ElementKind = iota
	KindTable
	KindSdt
)

func (k ElementKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindTable:
		return "table"
	case KindSdt:
		return "sdt"
	default:
		return "unknown"
	}
}

// ElementRef is the opaque handle a Block carries back to the structural
// element it was built from. BlockBuilder owns the Document these elements
// belong to; Applier resolves a ReplacementPlan's ElementRef against the
// live tree to mutate it. Exactly one of Paragraph/Table/Sdt is set,
// matching Kind.
type ElementRef struct {
	Kind ElementKind

	Paragraph *etree.Element // w:p, when Kind == KindParagraph
	Table     *etree.Element // w:tbl, when Kind == KindTable
	Sdt       *etree.Element // w:sdt, when Kind == KindSdt
}

// ParagraphRef builds an ElementRef addressing a single paragraph.
func ParagraphRef(p *etree.Element) ElementRef {
	return ElementRef{Kind: KindParagraph, Paragraph: p}
}

// TableRef builds an ElementRef addressing a table.
func TableRef(t *etree.Element) ElementRef {
	return ElementRef{Kind: KindTable, Table: t}
}

// SdtRef builds an ElementRef addressing an SDT subtree.
func SdtRef(s *etree.Element) ElementRef {
	return ElementRef{Kind: KindSdt, Sdt: s}
}

package block

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/docguard/anonymizer-cli/internal/docmodel"
)

// Builder traverses a parsed document once, in reading order, and emits a
// flat sequence of Blocks (spec §4.1). A zero Builder is ready to use.
type Builder struct{}

// Build flattens doc into an ordered list of Blocks. An empty document
// yields zero blocks, not an error (spec §4.1 failure modes).
func (Builder) Build(doc *docmodel.Document) ([]Block, error) {
	var blocks []Block

	paraIdx := 0
	for _, p := range doc.BodyParagraphs() {
		raw := docmodel.ParagraphRawText(p)
		text := docmodel.Normalize(raw)
		if text == "" {
			continue
		}
		blocks = append(blocks, Block{
			ID:         fmt.Sprintf("paragraph_%d", paraIdx),
			Text:       text,
			ElementRef: docmodel.ParagraphRef(p),
			Kind:       KindParagraph,
		})
		paraIdx++
	}

	tableIdx := 0
	for _, t := range doc.BodyTables() {
		text, _ := docmodel.TableProjection(t)
		blocks = append(blocks, Block{
			ID:         fmt.Sprintf("table_%d", tableIdx),
			Text:       text,
			ElementRef: docmodel.TableRef(t),
			Kind:       KindTable,
		})
		tableIdx++
	}

	for _, h := range doc.Headers {
		hBlocks := sectionParagraphBlocks(h.Root, h.Section, KindHeader)
		blocks = append(blocks, hBlocks...)
		blocks = append(blocks, sectionSdtBlocks(h.Root, h.Section, KindHeaderSdt)...)
	}
	for _, f := range doc.Footers {
		fBlocks := sectionParagraphBlocks(f.Root, f.Section, KindFooter)
		blocks = append(blocks, fBlocks...)
		blocks = append(blocks, sectionSdtBlocks(f.Root, f.Section, KindFooterSdt)...)
	}

	log.Logf("", "built %d blocks", len(blocks))
	return blocks, nil
}

// sectionParagraphBlocks emits one block per non-empty paragraph in a
// header/footer part, including paragraphs nested in tables but not those
// inside SDTs (which belong to the SDT's own block), named
// "<header|footer>_<section>_<i>" (spec §3 block_id format).
func sectionParagraphBlocks(root *etree.Element, section int, kind Kind) []Block {
	var blocks []Block
	i := 0
	for _, p := range docmodel.HeaderFooterParagraphs(root) {
		raw := docmodel.ParagraphRawText(p)
		text := docmodel.Normalize(raw)
		if text == "" {
			continue
		}
		blocks = append(blocks, Block{
			ID:         fmt.Sprintf("%s_%d_%d", kind, section, i),
			Text:       text,
			ElementRef: docmodel.ParagraphRef(p),
			Kind:       kind,
		})
		i++
	}
	return blocks
}

// sectionSdtBlocks emits one block per SDT subtree in a header/footer part
// whose text content is non-empty, named
// "<header|footer>_sdt_<section>_<i>".
func sectionSdtBlocks(root *etree.Element, section int, kind Kind) []Block {
	var blocks []Block
	i := 0
	for _, s := range docmodel.SdtNodes(root) {
		text := sdtText(s)
		if text == "" {
			continue
		}
		blocks = append(blocks, Block{
			ID:         fmt.Sprintf("%s_%d_%d", kind, section, i),
			Text:       text,
			ElementRef: docmodel.SdtRef(s),
			Kind:       kind,
		})
		i++
	}
	return blocks
}

// sdtText concatenates all descendant text nodes of an SDT subtree, in
// document order, and normalises the result (spec §4.1).
func sdtText(sdt *etree.Element) string {
	var raw string
	for _, t := range docmodel.TextNodes(sdt) {
		raw += t.Text()
	}
	return docmodel.Normalize(raw)
}

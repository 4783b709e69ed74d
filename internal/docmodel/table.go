package docmodel

import (
	"strings"

	"github.com/beevik/etree"
)

const cellSeparator = " | "

// CellSpan locates one table cell's text within a table's projected text
// (see TableProjection), and carries a back-reference to the w:tc element
// that produced it. Start/End are in code points, matching the span unit
// used everywhere else (spec §3).
type CellSpan struct {
	Row, Col   int
	Start, End int
	Cell       *etree.Element
}

// TableProjection builds the flattened text representation of a table that
// spec §4.1 defines and §4.7 (Applier) re-derives to map a detection's span
// back to a cell: each row's cells are normalised individually and joined
// with " | ", and every row (including the last) ends with "\n". Building
// this the same way in both places is the contract that keeps detection
// positions valid.
func TableProjection(table *etree.Element) (string, []CellSpan) {
	var runes []rune
	var spans []CellSpan

	rows := childElements(table, "tr")
	for rowIdx, row := range rows {
		cells := childElements(row, "tc")
		for colIdx, cell := range cells {
			if colIdx > 0 {
				runes = append(runes, []rune(cellSeparator)...)
			}
			start := len(runes)
			runes = append(runes, []rune(cellText(cell))...)
			end := len(runes)
			spans = append(spans, CellSpan{Row: rowIdx, Col: colIdx, Start: start, End: end, Cell: cell})
		}
		runes = append(runes, '\n')
	}

	return string(runes), spans
}

// CellParagraphs returns the w:p children of a table cell, in document order.
func CellParagraphs(cell *etree.Element) []*etree.Element {
	return childElements(cell, "p")
}

func cellText(cell *etree.Element) string {
	paras := childElements(cell, "p")
	parts := make([]string, 0, len(paras))
	for _, p := range paras {
		parts = append(parts, ParagraphRawText(p))
	}
	return Normalize(strings.Join(parts, " "))
}

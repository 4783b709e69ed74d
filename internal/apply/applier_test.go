package apply

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docguard/anonymizer-cli/internal/detect"
	"github.com/docguard/anonymizer-cli/internal/docmodel"
)

func newRun(text string) *etree.Element {
	r := etree.NewElement("w:r")
	t := r.CreateElement("w:t")
	t.SetText(text)
	return r
}

func newParagraph(runs ...string) *etree.Element {
	p := etree.NewElement("w:p")
	for _, r := range runs {
		p.AddChild(newRun(r))
	}
	return p
}

func runText(p *etree.Element, i int) string {
	return docmodel.RunText(docmodel.Runs(p)[i])
}

func runHighlightColor(p *etree.Element, i int) string {
	r := docmodel.Runs(p)[i]
	rPr := r.SelectElement("w:rPr")
	if rPr == nil {
		return ""
	}
	hl := rPr.SelectElement("w:highlight")
	if hl == nil {
		return ""
	}
	return hl.SelectAttrValue("w:val", "")
}

// S1 — single-run paragraph.
func TestApplier_SingleRunParagraph(t *testing.T) {
	p := newParagraph("Иванов И. И. подписал")
	plan := detect.Plan{
		Detection:  detect.Detection{BlockID: "paragraph_0", Category: "person_name", OriginalValue: "Иванов И. И.", Method: "regex", Source: detect.SourceRule},
		UUID:       "11111111-1111-5111-8111-111111111111",
		ElementRef: docmodel.ParagraphRef(p),
	}

	a := New(Options{Highlight: true})
	results := a.Apply(&docmodel.Document{Body: etree.NewElement("w:body")}, []detect.Plan{plan})

	require.Len(t, results, 1)
	assert.True(t, results[0].Applied)
	assert.Equal(t, "yellow", runHighlightColor(p, 0))
	assert.Equal(t, "11111111-1111-5111-8111-111111111111 подписал", runText(p, 0))
}

// S2 — multi-run paragraph.
func TestApplier_MultiRunParagraph(t *testing.T) {
	p := newParagraph("Мини", "стерство ", "связи")
	plan := detect.Plan{
		Detection:  detect.Detection{BlockID: "paragraph_0", Category: "organization", OriginalValue: "Министерство связи", Method: "regex", Source: detect.SourceRule},
		UUID:       "22222222-2222-5222-8222-222222222222",
		ElementRef: docmodel.ParagraphRef(p),
	}

	a := New(Options{Highlight: true})
	results := a.Apply(&docmodel.Document{Body: etree.NewElement("w:body")}, []detect.Plan{plan})

	require.Len(t, results, 1)
	assert.True(t, results[0].Applied)
	assert.Equal(t, "22222222-2222-5222-8222-222222222222", runText(p, 0))
	assert.Equal(t, "yellow", runHighlightColor(p, 0))
	assert.Equal(t, "", runText(p, 1))
	assert.Equal(t, "", runText(p, 2))
}

// S3 — table cell.
func TestApplier_TableCell(t *testing.T) {
	table := etree.NewElement("w:tbl")
	row0 := table.CreateElement("w:tr")
	row0.CreateElement("w:tc").AddChild(newParagraph("ИНН"))
	cell01 := row0.CreateElement("w:tc")
	cell01.AddChild(newParagraph("7701234567"))
	row1 := table.CreateElement("w:tr")
	row1.CreateElement("w:tc").AddChild(newParagraph("КПП"))
	cell11 := row1.CreateElement("w:tc")
	cell11.AddChild(newParagraph("770101001"))

	_, spans := docmodel.TableProjection(table)
	var target docmodel.CellSpan
	for _, cs := range spans {
		if cs.Row == 0 && cs.Col == 1 {
			target = cs
		}
	}

	plan := detect.Plan{
		Detection:  detect.Detection{BlockID: "table_0", Category: "inn", OriginalValue: "7701234567", Span: detect.Span{Start: target.Start, End: target.End}, Method: "regex", Source: detect.SourceRule},
		UUID:       "33333333-3333-5333-8333-333333333333",
		ElementRef: docmodel.TableRef(table),
	}

	a := New(Options{Highlight: true})
	results := a.Apply(&docmodel.Document{Body: etree.NewElement("w:body")}, []detect.Plan{plan})

	require.Len(t, results, 1)
	assert.True(t, results[0].Applied)
	assert.Equal(t, "33333333-3333-5333-8333-333333333333", docmodel.ParagraphRawText(docmodel.CellParagraphs(cell01)[0]))
	assert.Equal(t, "770101001", docmodel.ParagraphRawText(docmodel.CellParagraphs(cell11)[0]))
}

// S4 — SDT header.
func TestApplier_SdtTextNode(t *testing.T) {
	hdr := etree.NewElement("w:hdr")
	sdt := hdr.CreateElement("w:sdt")
	content := sdt.CreateElement("w:sdtContent")
	p := content.CreateElement("w:p")
	r := p.CreateElement("w:r")
	tNode := r.CreateElement("w:t")
	tNode.SetText("ЕИСУФХД.13/ОК-2023")

	plan := detect.Plan{
		Detection:  detect.Detection{BlockID: "header_sdt_1_0", Category: "information_system", OriginalValue: "ЕИСУФХД", Method: "regex", Source: detect.SourceRule},
		UUID:       "44444444-4444-5444-8444-444444444444",
		ElementRef: docmodel.SdtRef(sdt),
	}

	a := New(Options{Highlight: true})
	results := a.Apply(&docmodel.Document{Body: etree.NewElement("w:body")}, []detect.Plan{plan})

	require.Len(t, results, 1)
	assert.True(t, results[0].Applied)
	assert.Equal(t, "44444444-4444-5444-8444-444444444444.13/ОК-2023", tNode.Text())
}

func TestApplier_SkipsWhenTextNoLongerPresent(t *testing.T) {
	p := newParagraph("already replaced text")
	plan := detect.Plan{
		Detection:  detect.Detection{BlockID: "paragraph_0", Category: "person_name", OriginalValue: "Иванов И. И.", Method: "regex", Source: detect.SourceRule},
		UUID:       "55555555-5555-5555-8555-555555555555",
		ElementRef: docmodel.ParagraphRef(p),
	}

	a := New(Options{Highlight: true})
	results := a.Apply(&docmodel.Document{Body: etree.NewElement("w:body")}, []detect.Plan{plan})

	require.Len(t, results, 1)
	assert.False(t, results[0].Applied)
	assert.Equal(t, "text not found", results[0].SkipReason)
}

func TestApplier_TableSpanStraddlingCellBoundarySkipped(t *testing.T) {
	table := etree.NewElement("w:tbl")
	row0 := table.CreateElement("w:tr")
	row0.CreateElement("w:tc").AddChild(newParagraph("aaaa"))
	row0.CreateElement("w:tc").AddChild(newParagraph("bbbb"))

	_, spans := docmodel.TableProjection(table)
	straddling := detect.Span{Start: spans[0].End - 1, End: spans[1].Start + 1}

	plan := detect.Plan{
		Detection:  detect.Detection{BlockID: "table_0", Category: "misc", OriginalValue: "a | b", Span: straddling, Method: "regex", Source: detect.SourceRule},
		UUID:       "66666666-6666-5666-8666-666666666666",
		ElementRef: docmodel.TableRef(table),
	}

	a := New(Options{Highlight: true})
	results := a.Apply(&docmodel.Document{Body: etree.NewElement("w:body")}, []detect.Plan{plan})

	require.Len(t, results, 1)
	assert.False(t, results[0].Applied)
	assert.Equal(t, "span straddles cell boundary", results[0].SkipReason)
}

func TestApplier_HeaderFooterFallbackSweep(t *testing.T) {
	hdr := etree.NewElement("w:hdr")
	p1 := hdr.CreateElement("w:p")
	p1.AddChild(newRun("Министерство связи"))
	p2 := hdr.CreateElement("w:p")
	p2.AddChild(newRun("копия: Министерство связи"))

	doc := &docmodel.Document{
		Body:    etree.NewElement("w:body"),
		Headers: []*docmodel.HeaderFooterPart{{Name: "word/header1.xml", Section: 1, Kind: "header", Root: hdr}},
	}

	bodyParagraph := newParagraph("Министерство связи уведомляет")
	plan := detect.Plan{
		Detection:  detect.Detection{BlockID: "paragraph_0", Category: "organization", OriginalValue: "Министерство связи", Method: "regex", Source: detect.SourceRule},
		UUID:       "77777777-7777-5777-8777-777777777777",
		ElementRef: docmodel.ParagraphRef(bodyParagraph),
	}

	a := New(Options{Highlight: true})
	results := a.Apply(doc, []detect.Plan{plan})

	var fallbackHits int
	for _, r := range results {
		if r.Applied && r.Plan.UUID == plan.UUID {
			fallbackHits++
		}
	}
	// one in the body paragraph plus one in each header paragraph that contained the literal
	assert.Equal(t, 3, fallbackHits)
}

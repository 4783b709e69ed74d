package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docguard/anonymizer-cli/internal/block"
	"github.com/docguard/anonymizer-cli/internal/docmodel"
	"github.com/docguard/anonymizer-cli/internal/surrogate"
)

func TestMerge_NlpWinsOverlappingRuleDetection(t *testing.T) {
	blocks := []block.Block{
		{ID: "paragraph_0", Text: "Иван Петров живет в Москве", Kind: block.KindParagraph},
	}
	ruleByBlock := map[string][]Detection{
		"paragraph_0": {
			{BlockID: "paragraph_0", Category: "person_name", OriginalValue: "Иван Петров", Span: Span{0, 11}, Confidence: 0.9, Source: SourceRule, Method: "regex"},
		},
	}
	nlpByBlock := map[string][]Detection{
		"paragraph_0": {
			{BlockID: "paragraph_0", Category: "person_name", OriginalValue: "Иван Петров", Span: Span{0, 11}, Confidence: 0.8, Source: SourceNlp, Method: "ner"},
		},
	}

	plans := Merge(blocks, ruleByBlock, nlpByBlock, surrogate.NewMapper())

	require.Len(t, plans, 1)
	assert.Equal(t, SourceNlp, plans[0].Source)
	assert.Equal(t, "ner", plans[0].Method)
	assert.NotEmpty(t, plans[0].UUID)
}

func TestMerge_NonOverlappingDetectionsBothSurvive(t *testing.T) {
	blocks := []block.Block{
		{ID: "paragraph_0", Text: "ИНН 7701234567 КПП 770101001", Kind: block.KindParagraph},
	}
	ruleByBlock := map[string][]Detection{
		"paragraph_0": {
			{BlockID: "paragraph_0", Category: "inn", OriginalValue: "7701234567", Span: Span{4, 14}, Confidence: 0.9, Source: SourceRule, Method: "regex"},
			{BlockID: "paragraph_0", Category: "kpp", OriginalValue: "770101001", Span: Span{19, 28}, Confidence: 0.9, Source: SourceRule, Method: "regex"},
		},
	}

	plans := Merge(blocks, ruleByBlock, nil, surrogate.NewMapper())

	require.Len(t, plans, 2)
	assert.Equal(t, 4, plans[0].Span.Start)
	assert.Equal(t, 19, plans[1].Span.Start)
}

func TestMerge_SameSourceTieBreaksByConfidenceThenWidthThenMethod(t *testing.T) {
	blocks := []block.Block{
		{ID: "paragraph_0", Text: "some overlapping span of text", Kind: block.KindParagraph},
	}
	ruleByBlock := map[string][]Detection{
		"paragraph_0": {
			{BlockID: "paragraph_0", Category: "misc", OriginalValue: "a", Span: Span{0, 5}, Confidence: 0.5, Source: SourceRule, Method: "zzz"},
			{BlockID: "paragraph_0", Category: "misc", OriginalValue: "b", Span: Span{2, 8}, Confidence: 0.9, Source: SourceRule, Method: "aaa"},
		},
	}

	plans := Merge(blocks, ruleByBlock, nil, surrogate.NewMapper())

	require.Len(t, plans, 1)
	assert.Equal(t, "aaa", plans[0].Method)
	assert.Equal(t, 0.9, plans[0].Confidence)
}

func TestMerge_ResultsAreDisjointWithinEachBlock(t *testing.T) {
	blocks := []block.Block{
		{ID: "paragraph_0", Text: "aaaaaaaaaa", Kind: block.KindParagraph, ElementRef: docmodel.ElementRef{Kind: docmodel.KindParagraph}},
	}
	ruleByBlock := map[string][]Detection{
		"paragraph_0": {
			{BlockID: "paragraph_0", Category: "x", OriginalValue: "aaaa", Span: Span{0, 4}, Confidence: 0.6, Source: SourceRule, Method: "m1"},
			{BlockID: "paragraph_0", Category: "x", OriginalValue: "aaaa", Span: Span{2, 6}, Confidence: 0.6, Source: SourceRule, Method: "m2"},
			{BlockID: "paragraph_0", Category: "x", OriginalValue: "aaaa", Span: Span{6, 10}, Confidence: 0.6, Source: SourceRule, Method: "m3"},
		},
	}

	plans := Merge(blocks, ruleByBlock, nil, surrogate.NewMapper())

	for i := 0; i < len(plans); i++ {
		for j := i + 1; j < len(plans); j++ {
			assert.False(t, plans[i].Span.Overlaps(plans[j].Span), "plans %d and %d overlap", i, j)
		}
	}
}

package detect

import (
	"github.com/docguard/anonymizer-cli/internal/block"
	"github.com/docguard/anonymizer-cli/internal/docmodel"
	"github.com/docguard/anonymizer-cli/internal/patterns"
)

// RuleDetector scans a block's text with every loaded pattern rule,
// independently of any other detector (spec §4.3). Rules run independently:
// overlapping matches from different rules all survive at this layer.
type RuleDetector struct {
	Store *patterns.Store
}

// Detect returns every regex match in b.Text across all loaded rules.
func (d RuleDetector) Detect(b block.Block) []Detection {
	if d.Store == nil {
		return nil
	}

	var out []Detection
	for _, rule := range d.Store.Rules {
		for _, loc := range rule.Regexp.FindAllStringIndex(b.Text, -1) {
			start := docmodel.RuneIndex(b.Text, loc[0])
			end := docmodel.RuneIndex(b.Text, loc[1])
			out = append(out, Detection{
				BlockID:       b.ID,
				Category:      rule.Category,
				OriginalValue: docmodel.RuneSlice(b.Text, start, end),
				Span:          Span{Start: start, End: end},
				Confidence:    rule.Confidence,
				Source:        SourceRule,
				Method:        "regex",
			})
		}
	}
	return out
}

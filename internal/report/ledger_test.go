package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docguard/anonymizer-cli/internal/apply"
	"github.com/docguard/anonymizer-cli/internal/detect"
)

func planResult(blockID, original, uuid, category, method string, confidence float64, source detect.Source, applied bool) apply.Result {
	return apply.Result{
		Plan: detect.Plan{
			Detection: detect.Detection{
				BlockID:       blockID,
				Category:      category,
				OriginalValue: original,
				Confidence:    confidence,
				Source:        source,
				Method:        method,
			},
			UUID: uuid,
		},
		Applied: applied,
	}
}

func TestBuild_DedupesLedgerButNotRows(t *testing.T) {
	results := []apply.Result{
		planResult("paragraph_0", "Иванов И. И.", "uuid-1", "person_name", "regex", 0.9, detect.SourceRule, true),
		planResult("paragraph_5", "Иванов И. И.", "uuid-1", "person_name", "regex", 0.9, detect.SourceRule, true),
		planResult("table_0", "7701234567", "uuid-2", "inn", "regex", 0.9, detect.SourceRule, true),
	}

	rows, ledger := Build(results, "2026-07-31T00:00:00Z", nil)

	require.Len(t, rows, 3)
	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, 3, ledger.TotalReplacements)
	assert.Equal(t, 2, ledger.CountsByCategory["person_name"])
	assert.Equal(t, 1, ledger.CountsByCategory["inn"])
}

func TestBuild_SkippedPlansBecomeWarningsNotRows(t *testing.T) {
	results := []apply.Result{
		{Plan: detect.Plan{Detection: detect.Detection{BlockID: "paragraph_0", OriginalValue: "x"}}, Applied: false, SkipReason: "text not found"},
	}

	rows, ledger := Build(results, "2026-07-31T00:00:00Z", nil)

	assert.Empty(t, rows)
	assert.Empty(t, ledger.Entries)
	require.Len(t, ledger.Warnings, 1)
	assert.Equal(t, "apply", string(ledger.Warnings[0].Kind))
}

// Package report produces the two artefacts a run leaves behind besides the
// rewritten document: a tabular summary and a structured change ledger
// (spec §4.8).
package report

import (
	"sort"

	"github.com/docguard/anonymizer-cli/internal/apperr"
	"github.com/docguard/anonymizer-cli/internal/apply"
)

// Row is one tabular-summary row: one per replacement occurrence, in the
// order Applier produced them (block traversal order, then span order;
// spec §5).
type Row struct {
	Index         int
	OriginalValue string
	UUID          string
	Category      string
	Method        string
	Confidence    float64
}

// LedgerEntry is one deduplicated `(original_value, uuid, category, method,
// confidence, source)` record in the change ledger (spec §4.8).
type LedgerEntry struct {
	OriginalValue string  `json:"original_value"`
	UUID          string  `json:"uuid"`
	Category      string  `json:"category"`
	Method        string  `json:"method"`
	Confidence    float64 `json:"confidence"`
	Source        string  `json:"source"`
}

// Ledger is the full structured change record spec §4.8 asks for.
type Ledger struct {
	Version           string           `json:"version"`
	GeneratedAt       string           `json:"generated_at"`
	TotalReplacements int              `json:"total_replacements"`
	CountsByCategory  map[string]int   `json:"counts_by_category"`
	Entries           []LedgerEntry    `json:"entries"`
	Warnings          []apperr.Warning `json:"warnings,omitempty"`
}

const ledgerVersion = "1"

// Build reduces an Applier's results (plus any non-apply warnings collected
// elsewhere in the run, e.g. pattern/NLP soft failures) into the tabular
// summary rows and the deduplicated ledger.
//
// Only applied results become rows: a skipped plan is not a replacement
// occurrence, but it is still surfaced, as an ApplyWarning, in the ledger's
// Warnings (spec §7 "Apply errors ... aggregates these in the report's
// statistics").
func Build(results []apply.Result, generatedAt string, extraWarnings []apperr.Warning) ([]Row, Ledger) {
	var rows []Row
	seen := make(map[string]bool) // dedup key: original_value + "\x00" + category
	var entries []LedgerEntry
	counts := make(map[string]int)
	warnings := append([]apperr.Warning(nil), extraWarnings...)

	for _, r := range results {
		if !r.Applied {
			warnings = append(warnings, apperr.NewWarning(apperr.ApplyWarning, r.Plan.BlockID,
				"skipped %q: %s", r.Plan.OriginalValue, r.SkipReason))
			continue
		}

		rows = append(rows, Row{
			Index:         len(rows),
			OriginalValue: r.Plan.OriginalValue,
			UUID:          r.Plan.UUID,
			Category:      r.Plan.Category,
			Method:        r.Plan.Method,
			Confidence:    r.Plan.Confidence,
		})

		counts[r.Plan.Category]++

		key := r.Plan.OriginalValue + "\x00" + r.Plan.Category
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, LedgerEntry{
			OriginalValue: r.Plan.OriginalValue,
			UUID:          r.Plan.UUID,
			Category:      r.Plan.Category,
			Method:        r.Plan.Method,
			Confidence:    r.Plan.Confidence,
			Source:        string(r.Plan.Source),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].OriginalValue < entries[j].OriginalValue })

	ledger := Ledger{
		Version:           ledgerVersion,
		GeneratedAt:       generatedAt,
		TotalReplacements: len(rows),
		CountsByCategory:  counts,
		Entries:           entries,
		Warnings:          warnings,
	}
	log.Warnf("built report: %d replacement row(s), %d ledger entr(ies), %d warning(s)", len(rows), len(entries), len(warnings))
	return rows, ledger
}

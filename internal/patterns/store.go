// Package patterns loads the configured catalogue of regular-expression
// detection rules (spec §4.2) from a tabular workbook.
package patterns

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/docguard/anonymizer-cli/internal/apperr"
)

// Rule is one compiled catalogue entry.
type Rule struct {
	Category    string
	Pattern     string
	Regexp      *regexp.Regexp
	Confidence  float64
	Description string
}

// Store holds the ordered, read-only list of rules loaded from a catalogue.
// Rules are loaded once and never mutated afterward (spec §5).
type Store struct {
	Rules    []Rule
	Warnings []apperr.Warning
}

const (
	colCategory    = "category"
	colPattern     = "pattern"
	colConfidence  = "confidence"
	colDescription = "description"
)

// Load reads a catalogue workbook at path. The first sheet's header row
// determines column order; unknown extra columns are ignored (spec §6).
// Rows with an empty pattern are skipped silently; rows whose pattern fails
// to compile are skipped and recorded as warnings naming the row index
// (spec §4.2, §7).
func Load(path string) (*Store, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperr.Input(path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperr.Input(path, err)
	}
	if len(rows) == 0 {
		return &Store{}, nil
	}

	cols := columnIndex(rows[0])
	for _, required := range []string{colCategory, colPattern, colConfidence} {
		if _, ok := cols[required]; !ok {
			return nil, apperr.Input(path, fmt.Errorf("missing required column %q", required))
		}
	}

	store := &Store{}
	for i, row := range rows[1:] {
		rowNum := i + 1 // 1-based, relative to the first data row

		pattern := cellAt(row, cols[colPattern])
		if strings.TrimSpace(pattern) == "" {
			continue
		}

		category := cellAt(row, cols[colCategory])
		description := ""
		if idx, ok := cols[colDescription]; ok {
			description = cellAt(row, idx)
		}

		confidence, err := strconv.ParseFloat(strings.TrimSpace(cellAt(row, cols[colConfidence])), 64)
		if err != nil {
			w := apperr.NewWarning(apperr.PatternWarning, fmt.Sprintf("row %d", rowNum),
				"invalid confidence value: %v", err)
			store.Warnings = append(store.Warnings, w)
			log.Warnf("%s", w)
			continue
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			w := apperr.NewWarning(apperr.PatternWarning, fmt.Sprintf("row %d", rowNum),
				"failed to compile pattern %q: %v", pattern, err)
			store.Warnings = append(store.Warnings, w)
			log.Warnf("%s", w)
			continue
		}

		store.Rules = append(store.Rules, Rule{
			Category:    category,
			Pattern:     pattern,
			Regexp:      re,
			Confidence:  confidence,
			Description: description,
		})
	}

	log.Warnf("loaded %d rule(s) from %s (%d warning(s))", len(store.Rules), path, len(store.Warnings))
	return store, nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

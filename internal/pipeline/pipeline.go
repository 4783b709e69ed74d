// Package pipeline wires BlockBuilder, the detectors, DetectionMerger,
// SurrogateMapper, Applier, and ReportBuilder into the single per-document
// run spec.md §4 and §5 describe.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docguard/anonymizer-cli/internal/apperr"
	"github.com/docguard/anonymizer-cli/internal/apply"
	"github.com/docguard/anonymizer-cli/internal/block"
	"github.com/docguard/anonymizer-cli/internal/config"
	"github.com/docguard/anonymizer-cli/internal/detect"
	"github.com/docguard/anonymizer-cli/internal/docmodel"
	"github.com/docguard/anonymizer-cli/internal/patterns"
	"github.com/docguard/anonymizer-cli/internal/report"
	"github.com/docguard/anonymizer-cli/internal/surrogate"
)

// Result is everything a run produces, for the CLI layer to report and
// write out.
type Result struct {
	OutputPath   string
	ReportPath   string
	LedgerPath   string
	Rows         []report.Row
	Ledger       report.Ledger
	Replacements int
}

// Run executes one document's full anonymization, end to end (spec §4, §5).
// Cancellation via ctx is honoured at the boundary between each component;
// the source document at inputPath is never modified in place.
func Run(ctx context.Context, inputPath string, mapper *surrogate.Mapper, cfg config.Config, nlp detect.NlpDetector, generatedAt string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, apperr.ErrCancelled
	}

	doc, err := docmodel.OpenFile(inputPath)
	if err != nil {
		return Result{}, err
	}

	blocks, err := (block.Builder{}).Build(doc)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, apperr.ErrCancelled
	}

	var store *patterns.Store
	var warnings []apperr.Warning
	if cfg.PatternsPath != "" {
		store, err = patterns.Load(cfg.PatternsPath)
		if err != nil {
			return Result{}, err
		}
		warnings = append(warnings, store.Warnings...)
	} else {
		store = &patterns.Store{}
	}

	ruleDetector := detect.RuleDetector{Store: store}
	ruleByBlock := make(map[string][]detect.Detection, len(blocks))
	for _, b := range blocks {
		ruleByBlock[b.ID] = ruleDetector.Detect(b)
	}

	nlpByBlock := make(map[string][]detect.Detection, len(blocks))
	if nlp != nil && cfg.NlpEndpoint != "" {
		for _, res := range detect.RunNlp(ctx, nlp, blocks, cfg.NlpConcurrency, cfg.NlpTimeout) {
			nlpByBlock[res.BlockID] = res.Detections
			if res.Warning != nil {
				warnings = append(warnings, *res.Warning)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, apperr.ErrCancelled
	}

	plans := detect.Merge(blocks, ruleByBlock, nlpByBlock, mapper)

	applier := apply.New(apply.Options{Highlight: cfg.HighlightReplacements})
	applyResults := applier.Apply(doc, plans)

	if err := ctx.Err(); err != nil {
		return Result{}, apperr.ErrCancelled
	}

	rows, ledger := report.Build(applyResults, generatedAt, warnings)

	outputPath := filepath.Join(cfg.OutputDir, "anonymized.docx")
	if err := writeDocument(doc, outputPath); err != nil {
		return Result{}, err
	}

	result := Result{
		OutputPath:   outputPath,
		Rows:         rows,
		Ledger:       ledger,
		Replacements: len(rows),
	}

	if cfg.GenerateExcelReport {
		result.ReportPath = filepath.Join(cfg.OutputDir, "report.xlsx")
		if err := report.WriteXlsx(rows, result.ReportPath); err != nil {
			return Result{}, err
		}
	}
	if cfg.GenerateJSONLedger {
		result.LedgerPath = filepath.Join(cfg.OutputDir, "ledger.json")
		if err := report.WriteJSON(ledger, result.LedgerPath); err != nil {
			return Result{}, err
		}
	}

	log.Warnf("anonymized %s: %d replacement(s), %d warning(s)", inputPath, result.Replacements, len(ledger.Warnings))
	return result, nil
}

// writeDocument serialises doc to outputPath. A failure partway through
// removes the partial file (spec §7 "Output errors ... partial files are
// removed").
func writeDocument(doc *docmodel.Document, outputPath string) error {
	f, err := createFile(outputPath)
	if err != nil {
		return apperr.Output(outputPath, err)
	}

	if err := doc.WriteTo(f); err != nil {
		f.Close()
		os.Remove(outputPath)
		return apperr.Output(outputPath, fmt.Errorf("serialize document: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(outputPath)
		return apperr.Output(outputPath, err)
	}
	return nil
}

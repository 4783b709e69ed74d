// Package anonymizer is the public, importable entry point for running the
// anonymization pipeline from other Go programs, without going through the
// CLI.
package anonymizer

import (
	"context"

	"github.com/docguard/anonymizer-cli/internal/config"
	"github.com/docguard/anonymizer-cli/internal/detect"
	"github.com/docguard/anonymizer-cli/internal/pipeline"
	"github.com/docguard/anonymizer-cli/internal/report"
	"github.com/docguard/anonymizer-cli/internal/surrogate"
)

// Config mirrors the CLI's configurable knobs (patterns catalogue, NLP
// endpoint, report toggles). Its fields are used as given: a zero value is
// not filled in with defaults. DefaultConfig returns the defaults the CLI
// starts from.
type Config = config.Config

// Result is what one document run produces.
type Result = pipeline.Result

// NlpDetector is the contract an external NLP collaborator must satisfy to
// be passed to New.
type NlpDetector = detect.NlpDetector

// Row is one row of the tabular replacement report.
type Row = report.Row

// Ledger is the structured replacement ledger.
type Ledger = report.Ledger

// DefaultConfig returns the same defaults the CLI starts from.
func DefaultConfig() Config {
	return config.Default()
}

// Anonymizer runs the pipeline against a shared SurrogateMapper, so that
// repeated sensitive values map to the same surrogate across every
// document processed through it.
type Anonymizer struct {
	mapper *surrogate.Mapper
	nlp    NlpDetector
}

// New creates an Anonymizer. nlp may be nil, in which case only rule-based
// detection runs regardless of cfg.NlpEndpoint.
func New(nlp NlpDetector) *Anonymizer {
	return &Anonymizer{mapper: surrogate.NewMapper(), nlp: nlp}
}

// Anonymize runs the full pipeline against one input document and returns
// where its outputs were written.
func (a *Anonymizer) Anonymize(ctx context.Context, inputPath string, cfg Config, generatedAt string) (Result, error) {
	return pipeline.Run(ctx, inputPath, a.mapper, cfg, a.nlp, generatedAt)
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docguard/anonymizer-cli/internal/apperr"
	"github.com/docguard/anonymizer-cli/internal/apply"
	"github.com/docguard/anonymizer-cli/internal/block"
	"github.com/docguard/anonymizer-cli/internal/config"
	"github.com/docguard/anonymizer-cli/internal/detect"
	"github.com/docguard/anonymizer-cli/internal/patterns"
	"github.com/docguard/anonymizer-cli/internal/pipeline"
	"github.com/docguard/anonymizer-cli/internal/report"
	"github.com/docguard/anonymizer-cli/internal/surrogate"
)

var (
	anonymizeOutputDir      string
	anonymizePatternsPath   string
	anonymizeNlpEndpoint    string
	anonymizeNlpTimeoutMs   int
	anonymizeNlpConcurrency int
	anonymizeNoHighlight    bool
	anonymizeNoExcelReport  bool
	anonymizeNoJSONLedger   bool
	anonymizeVerbose        bool
)

// anonymizeCmd replaces sensitive text in one or more Word documents with
// deterministic surrogates. Sharing one SurrogateMapper across every input
// path in a single invocation is what makes repeated sensitive values map
// to the same surrogate across documents, not just within one.
var anonymizeCmd = &cobra.Command{
	Use:   "anonymize [docx files...]",
	Short: "Replace sensitive text in one or more .docx files with deterministic surrogates",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnonymize,
}

func init() {
	anonymizeCmd.Flags().StringVarP(&anonymizeOutputDir, "output-dir", "o", ".", "directory to write anonymized.docx, report.xlsx and ledger.json into")
	anonymizeCmd.Flags().StringVar(&anonymizePatternsPath, "patterns", "", "path to the pattern catalogue workbook")
	anonymizeCmd.Flags().StringVar(&anonymizeNlpEndpoint, "nlp-endpoint", "", "URL of the external NLP detector (disabled if empty)")
	anonymizeCmd.Flags().IntVar(&anonymizeNlpTimeoutMs, "nlp-timeout-ms", 0, "per-block NLP call timeout in milliseconds")
	anonymizeCmd.Flags().IntVar(&anonymizeNlpConcurrency, "nlp-concurrency", 0, "maximum number of concurrent NLP calls")
	anonymizeCmd.Flags().BoolVar(&anonymizeNoHighlight, "no-highlight", false, "do not highlight newly written surrogates")
	anonymizeCmd.Flags().BoolVar(&anonymizeNoExcelReport, "no-excel-report", false, "do not write report.xlsx")
	anonymizeCmd.Flags().BoolVar(&anonymizeNoJSONLedger, "no-json-ledger", false, "do not write ledger.json")
	anonymizeCmd.Flags().BoolVarP(&anonymizeVerbose, "verbose", "v", false, "log per-block and per-component progress to stderr")

	viper.BindPFlag(config.KeyOutputDir, anonymizeCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag(config.KeyPatternsPath, anonymizeCmd.Flags().Lookup("patterns"))
	viper.BindPFlag(config.KeyNlpEndpoint, anonymizeCmd.Flags().Lookup("nlp-endpoint"))
	viper.BindPFlag(config.KeyNlpTimeoutMs, anonymizeCmd.Flags().Lookup("nlp-timeout-ms"))
	viper.BindPFlag(config.KeyNlpConcurrency, anonymizeCmd.Flags().Lookup("nlp-concurrency"))
}

func runAnonymize(cmd *cobra.Command, args []string) error {
	// Arguments are valid by now: errors from here on are not usage errors,
	// and main prints their message, so cobra prints neither usage nor error.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg := config.FromViper(viper.GetViper())
	if anonymizeNoHighlight {
		cfg.HighlightReplacements = false
	}
	if anonymizeNoExcelReport {
		cfg.GenerateExcelReport = false
	}
	if anonymizeNoJSONLedger {
		cfg.GenerateJSONLedger = false
	}

	if cfg.PatternsPath == "" {
		return apperr.User("no pattern catalogue configured: pass --patterns or set patterns_path")
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return apperr.Userf("cannot create output directory %q: %v", cfg.OutputDir, err)
	}

	if anonymizeVerbose {
		w := cmd.ErrOrStderr()
		block.SetLogger(w)
		patterns.SetLogger(w)
		detect.SetLogger(w)
		apply.SetLogger(w)
		report.SetLogger(w)
		pipeline.SetLogger(w)
	}

	var nlp detect.NlpDetector
	if cfg.NlpEndpoint != "" {
		nlp = detect.NewHTTPNlpDetector(cfg.NlpEndpoint, cfg.NlpTimeout)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	mapper := surrogate.NewMapper()
	generatedAt := time.Now().UTC().Format(time.RFC3339)

	for i, inputPath := range args {
		perDocDir := cfg.OutputDir
		if len(args) > 1 {
			perDocDir = filepath.Join(cfg.OutputDir, stemOf(inputPath))
			if err := os.MkdirAll(perDocDir, 0o755); err != nil {
				return apperr.Userf("cannot create output directory %q: %v", perDocDir, err)
			}
		}
		docCfg := cfg
		docCfg.OutputDir = perDocDir

		result, err := pipeline.Run(ctx, inputPath, mapper, docCfg, nlp, generatedAt)
		if err != nil {
			if errors.Is(err, apperr.ErrCancelled) {
				return err
			}
			return fmt.Errorf("%s: %w", inputPath, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s -> %s (%d replacement(s))\n",
			i+1, len(args), inputPath, result.OutputPath, result.Replacements)
	}

	return nil
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

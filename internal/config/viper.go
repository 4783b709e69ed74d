package config

import (
	"time"

	"github.com/spf13/viper"
)

// Viper keys, matching spec.md §6 one-to-one plus the ambient additions
// from §10.2. Dots become underscores for the ANONYMIZER_ environment
// prefix, the same rule the teacher's initConfig applies.
const (
	KeyPatternsPath          = "patterns_path"
	KeyHighlightReplacements = "highlight_replacements"
	KeyNlpEndpoint           = "nlp_endpoint"
	KeyNlpTimeoutMs          = "nlp_timeout_ms"
	KeyNlpConcurrency        = "nlp_concurrency"
	KeyGenerateExcelReport   = "generate_excel_report"
	KeyGenerateJSONLedger    = "generate_json_ledger"
	KeyOutputDir             = "output_dir"
	KeyLogLevel              = "log_level"
	KeyNoColor               = "no_color"
)

// SetDefaults seeds v with this package's Default() values, the same way
// the teacher's cmd/root.go seeds viper.SetDefault for generate.hf-mode
// before any config file or environment variable is read.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyHighlightReplacements, d.HighlightReplacements)
	v.SetDefault(KeyNlpTimeoutMs, int(d.NlpTimeout/time.Millisecond))
	v.SetDefault(KeyNlpConcurrency, d.NlpConcurrency)
	v.SetDefault(KeyGenerateExcelReport, d.GenerateExcelReport)
	v.SetDefault(KeyGenerateJSONLedger, d.GenerateJSONLedger)
	v.SetDefault(KeyOutputDir, d.OutputDir)
	v.SetDefault(KeyLogLevel, d.LogLevel)
}

// FromViper reads a Config out of v, after flags/config-file/env have been
// bound into it by the CLI layer.
func FromViper(v *viper.Viper) Config {
	return Config{
		PatternsPath:          v.GetString(KeyPatternsPath),
		HighlightReplacements: v.GetBool(KeyHighlightReplacements),
		NlpEndpoint:           v.GetString(KeyNlpEndpoint),
		NlpTimeout:            time.Duration(v.GetInt(KeyNlpTimeoutMs)) * time.Millisecond,
		NlpConcurrency:        v.GetInt(KeyNlpConcurrency),
		GenerateExcelReport:   v.GetBool(KeyGenerateExcelReport),
		GenerateJSONLedger:    v.GetBool(KeyGenerateJSONLedger),
		OutputDir:             v.GetString(KeyOutputDir),
		LogLevel:              v.GetString(KeyLogLevel),
		NoColor:               v.GetBool(KeyNoColor),
	}
}

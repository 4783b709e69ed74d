package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestSetDefaults_MatchesDefault(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg := FromViper(v)
	want := Default()
	assert.Equal(t, want.HighlightReplacements, cfg.HighlightReplacements)
	assert.Equal(t, want.NlpTimeout, cfg.NlpTimeout)
	assert.Equal(t, want.NlpConcurrency, cfg.NlpConcurrency)
	assert.Equal(t, want.GenerateExcelReport, cfg.GenerateExcelReport)
	assert.Equal(t, want.GenerateJSONLedger, cfg.GenerateJSONLedger)
	assert.Equal(t, want.OutputDir, cfg.OutputDir)
}

func TestFromViper_OverridesApply(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyPatternsPath, "/tmp/patterns.xlsx")
	v.Set(KeyNlpEndpoint, "http://localhost:9000/detect")
	v.Set(KeyNlpTimeoutMs, 5000)
	v.Set(KeyHighlightReplacements, false)

	cfg := FromViper(v)

	assert.Equal(t, "/tmp/patterns.xlsx", cfg.PatternsPath)
	assert.Equal(t, "http://localhost:9000/detect", cfg.NlpEndpoint)
	assert.Equal(t, 5*time.Second, cfg.NlpTimeout)
	assert.False(t, cfg.HighlightReplacements)
}

package pipeline

import (
	"io"

	"github.com/docguard/anonymizer-cli/internal/logging"
)

var log logging.Logger

// SetLogger sets an optional destination for pipeline-level logs. Component
// packages (block, patterns, detect, apply, report) have their own
// SetLogger and are wired up independently by the CLI layer.
func SetLogger(w io.Writer) {
	log.SetWriter(w)
	log.PrefixText = "Pipeline:"
	log.PrefixColor = logging.FgGreen
	log.OmitBlock = true
}

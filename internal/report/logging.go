package report

import (
	"io"

	"github.com/docguard/anonymizer-cli/internal/logging"
)

var log logging.Logger

// SetLogger sets an optional destination for report-builder logs.
func SetLogger(w io.Writer) {
	log.SetWriter(w)
	log.PrefixText = "Report:"
	log.PrefixColor = logging.FgGreen
	log.OmitBlock = true
}

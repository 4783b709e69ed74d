package detect

import (
	"io"

	"github.com/docguard/anonymizer-cli/internal/logging"
)

var log logging.Logger

// SetLogger sets an optional destination for detector logs.
func SetLogger(w io.Writer) {
	log.SetWriter(w)
	log.PrefixText = "Detect:"
	log.PrefixColor = logging.FgGreen
}

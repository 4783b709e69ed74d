package patterns

import (
	"io"

	"github.com/docguard/anonymizer-cli/internal/logging"
)

var log logging.Logger

// SetLogger sets an optional destination for pattern-store logs.
func SetLogger(w io.Writer) {
	log.SetWriter(w)
	log.PrefixText = "Patterns:"
	log.PrefixColor = logging.FgGreen
	log.OmitBlock = true
}

package apply

import (
	"io"

	"github.com/docguard/anonymizer-cli/internal/logging"
)

var log logging.Logger

// SetLogger sets an optional destination for applier logs.
func SetLogger(w io.Writer) {
	log.SetWriter(w)
	log.PrefixText = "Apply:"
	log.PrefixColor = logging.FgGreen
}

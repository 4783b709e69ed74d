package block

import (
	"io"

	"github.com/docguard/anonymizer-cli/internal/logging"
)

var log logging.Logger

// SetLogger sets an optional destination for block-builder logs.
func SetLogger(w io.Writer) {
	log.SetWriter(w)
	log.PrefixText = "Block:"
	log.PrefixColor = logging.FgGreen
}

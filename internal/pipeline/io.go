package pipeline

import "os"

// createFile creates outputPath for writing, truncating any existing file.
func createFile(outputPath string) (*os.File, error) {
	return os.Create(outputPath)
}

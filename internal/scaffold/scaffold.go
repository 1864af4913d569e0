// Package scaffold provides the starter file contents written by oee init.
package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateDatasetPath rejects empty paths and paths that climb out of the
// project directory. Absolute paths are fine; they just bypass
// config-relative resolution.
func ValidateDatasetPath(path string) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return fmt.Errorf("dataset path must not be empty")
	}
	cleaned := filepath.Clean(trimmed)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("dataset path %q points outside the project", path)
	}
	return nil
}

// StarterCSV returns a small production dataset with the canonical header.
// The rows span two machines, two products and two months so report and
// serve show grouped tables and a trend right after init.
func StarterCSV() string {
	return `Date,Machine,Product,Production per unit,Reject per unit,Performance %,Working days,downtime
2024-01-08,Press-1,Bracket,1180,24,91,1,1.5
2024-01-08,Press-2,Housing,960,12,88,1,0
2024-01-09,Press-1,Bracket,1215,18,93,1,0.5
2024-01-09,Press-2,Housing,940,31,86,1,2
2024-02-05,Press-1,Housing,1102,9,90,1,1
2024-02-06,Press-2,Bracket,998,40,84,1,3
`
}

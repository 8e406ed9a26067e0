package ui

import (
	"path/filepath"
	"strings"
)

// optimizePaths strips the directory prefix shared by all paths so the
// differences stand out. One shared directory is kept for context.
func optimizePaths(paths []string) []string {
	if len(paths) <= 1 {
		return paths
	}

	sep := string(filepath.Separator)
	parts := make([][]string, len(paths))
	shortest := -1
	for i, p := range paths {
		parts[i] = strings.Split(filepath.Clean(p), sep)
		if shortest < 0 || len(parts[i]) < shortest {
			shortest = len(parts[i])
		}
	}

	common := 0
	for common < shortest {
		same := true
		for _, components := range parts[1:] {
			if components[common] != parts[0][common] {
				same = false
				break
			}
		}
		if !same {
			break
		}
		common++
	}

	result := make([]string, len(paths))
	for i, components := range parts {
		start := common
		if start > 0 && len(components) > start {
			start--
		}
		if start >= len(components) {
			result[i] = paths[i]
			continue
		}

		result[i] = filepath.Join(components[start:]...)
		if start > 0 {
			result[i] = "..." + sep + result[i]
		}
	}

	return result
}

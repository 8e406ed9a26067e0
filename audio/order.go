package audio

import (
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// naturalKey is a base name split into alternating text and digit runs.
// Even positions are always text (possibly empty), odd positions are digit runs,
// so two keys always compare like with like position by position.
type naturalKey []string

func splitNatural(name string) naturalKey {
	key := naturalKey{}
	start := 0
	inDigits := false

	for i := 0; i < len(name); i++ {
		d := isDigit(name[i])
		if d != inDigits {
			key = append(key, name[start:i])
			start = i
			inDigits = d
		}
	}
	key = append(key, name[start:])

	// a name ending in digits still closes with an empty text run
	if inDigits {
		key = append(key, "")
	}
	return key
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// compareDigits compares two digit runs by numeric value without any size limit
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func compareKeys(a, b naturalKey) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		var c int
		if i%2 == 1 {
			c = compareDigits(a[i], b[i])
		} else {
			c = strings.Compare(a[i], b[i])
		}
		if c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// CompareNatural compares two file names in natural order.
// Names whose keys are equal (e.g. "file07" and "file7") fall back to plain text order.
func CompareNatural(a, b string) int {
	a = norm.NFC.String(a)
	b = norm.NFC.String(b)
	if c := compareKeys(splitNatural(a), splitNatural(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// OrderPaths returns paths sorted by the natural order of their base names.
// Directories are ignored for comparison but kept in the output; identical base
// names keep their input order.
func OrderPaths(paths []string) []string {
	type entry struct {
		path string
		name string
		key  naturalKey
	}

	entries := make([]entry, len(paths))
	for i, p := range paths {
		name := norm.NFC.String(filepath.Base(p))
		entries[i] = entry{path: p, name: name, key: splitNatural(name)}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if c := compareKeys(entries[i].key, entries[j].key); c != 0 {
			return c < 0
		}
		return entries[i].name < entries[j].name
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.path
	}
	return out
}

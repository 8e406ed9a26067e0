package audio

import (
	"log/slog"
	"sort"
)

type detectConfig struct {
	logger *slog.Logger
}

// DetectOption configures FindDuplicates
type DetectOption func(*detectConfig)

// WithDetectLogger records files that had to be skipped
func WithDetectLogger(l *slog.Logger) DetectOption {
	return func(c *detectConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// FindDuplicates groups inputs that probably share the same content.
//
// Files are grouped by exact size first; a size seen only once is unique and
// never read. Remaining candidates are compared by Fingerprint, which only
// samples the head and tail of each file: files that differ only in the middle
// are reported as duplicates. A file that cannot be read is left out and logged.
//
// Groups come back in the order of their first member in inputs, and members
// keep their input order. inputs is not modified.
func FindDuplicates(inputs []InputFile, opts ...DetectOption) []DuplicateGroup {
	cfg := detectConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}

	type candidate struct {
		file InputFile
		size int64
	}

	var sizeOrder []int64
	bySize := make(map[int64][]candidate)
	for _, in := range inputs {
		size, err := in.Size()
		if err != nil {
			cfg.logger.Warn("skipping unreadable file in duplicate check", "path", in.Path, "error", err)
			continue
		}
		if _, seen := bySize[size]; !seen {
			sizeOrder = append(sizeOrder, size)
		}
		bySize[size] = append(bySize[size], candidate{file: in, size: size})
	}

	type bucket struct {
		first int
		group DuplicateGroup
	}

	var buckets []bucket
	position := make(map[string]int, len(inputs))
	for i, in := range inputs {
		if _, ok := position[in.Path]; !ok {
			position[in.Path] = i
		}
	}

	for _, size := range sizeOrder {
		members := bySize[size]
		if len(members) < 2 {
			continue
		}

		var digestOrder []string
		byDigest := make(map[string][]InputFile)
		for _, m := range members {
			digest, err := Fingerprint(m.file.Path, m.size)
			if err != nil {
				cfg.logger.Warn("skipping unreadable file in duplicate check", "path", m.file.Path, "error", err)
				continue
			}
			if _, seen := byDigest[digest]; !seen {
				digestOrder = append(digestOrder, digest)
			}
			byDigest[digest] = append(byDigest[digest], m.file)
		}

		for _, digest := range digestOrder {
			files := byDigest[digest]
			if len(files) < 2 {
				continue
			}
			buckets = append(buckets, bucket{
				first: position[files[0].Path],
				group: DuplicateGroup{Size: size, Digest: digest, Files: files},
			})
		}
	}

	// restore input order across size buckets
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].first < buckets[j].first
	})

	groups := make([]DuplicateGroup, len(buckets))
	for i, b := range buckets {
		groups[i] = b.group
	}
	return groups
}

package audio

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/blake2b"
)

const (
	// SampleSize is how many bytes are read from each end of a file for its fingerprint
	SampleSize = 8192

	// digestSize gives a 128-bit BLAKE2b digest
	digestSize = 16
)

// Fingerprint hashes the first and last min(SampleSize, size) bytes of a file.
// Files smaller than SampleSize are therefore hashed twice over their whole content.
// Two files with equal fingerprints are probably, not certainly, identical.
func Fingerprint(path string, size int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file for fingerprint: %w", err)
	}
	defer func() { _ = f.Close() }()

	h, err := blake2b.New(digestSize, nil)
	if err != nil {
		return "", err
	}

	n := min(int64(SampleSize), size)
	if n < 0 {
		n = 0
	}
	buf := make([]byte, n)

	if _, err := f.ReadAt(buf, 0); err != nil && !(err == io.EOF && n == 0) {
		return "", fmt.Errorf("failed to read head sample: %w", err)
	}
	h.Write(buf)

	if _, err := f.ReadAt(buf, size-n); err != nil && !(err == io.EOF && n == 0) {
		return "", fmt.Errorf("failed to read tail sample: %w", err)
	}
	h.Write(buf)

	return hex.EncodeToString(h.Sum(nil)), nil
}

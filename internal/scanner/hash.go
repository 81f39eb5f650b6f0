package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// ComputeFileHash returns the hex-encoded SHA-256 digest of a file's
// contents. This is the content-addressing key used to deduplicate files
// across commits in the graph store.
func ComputeFileHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:]), nil
}

// HashBytes returns the hex-encoded SHA-256 digest of content, for callers
// that already hold the file's bytes in memory.
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)

	return hex.EncodeToString(sum[:])
}

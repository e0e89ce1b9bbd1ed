// Package fileid provides deterministic document IDs for documents ingested from files.
package fileid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strconv"
)

const prefix = "file:"

// FileDocID returns a stable ID for the given absolute path.
// Same path always yields the same ID.
func FileDocID(absolutePath string) string {
	normalized := filepath.Clean(absolutePath)
	hash := sha256.Sum256([]byte(normalized))
	return prefix + hex.EncodeToString(hash[:])
}

// LineDocID returns the ID of the document on the given 1-based line of an NDJSON
// file. Re-ingesting the same file replaces the same documents.
func LineDocID(absolutePath string, line int) string {
	return FileDocID(absolutePath) + ":" + strconv.Itoa(line)
}

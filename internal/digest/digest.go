// Package digest computes the content hashes the packer uses to detect
// unchanged plugins.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
)

func Bytes(input []byte) string {
	hash := sha256.Sum256(input)
	return hex.EncodeToString(hash[:])
}

func String(input string) string {
	return Bytes([]byte(input))
}

// Files hashes a set of files as one unit: each relative path and its
// contents feed the digest in sorted path order, so renames and edits both
// change the result.
func Files(root string, relPaths []string) (string, error) {
	sorted := make([]string, len(relPaths))
	copy(sorted, relPaths)
	sort.Strings(sorted)

	hash := sha256.New()
	for _, rel := range sorted {
		io.WriteString(hash, rel)
		hash.Write([]byte{0})
		file, err := os.Open(filepath.Join(root, rel))
		if err != nil {
			return "", err
		}
		_, err = io.Copy(hash, file)
		file.Close()
		if err != nil {
			return "", err
		}
		hash.Write([]byte{0})
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
